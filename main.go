package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/PostHog/contributions-bot/internal/config"
	"github.com/PostHog/contributions-bot/internal/intent"
	"github.com/PostHog/contributions-bot/internal/logger"
	"github.com/PostHog/contributions-bot/internal/model"
	"github.com/PostHog/contributions-bot/internal/svc"
)

var (
	configFile = flag.String("f", "etc/config.yaml", "the config file")
	repoName   = flag.String("repo", "PostHog/posthog", "owner/name of the repository")
	issueNum   = flag.Int("issue", 1, "issue number")
	issueTitle = flag.String("title", "", "issue title")
	sender     = flag.String("sender", "", "login of the comment author")
	comment    = flag.String("comment", "", "comment body, read from stdin when empty")
	threadFile = flag.String("thread", "", "JSON file with existing comments: [{\"login\": ..., \"body\": ...}]")
	mergedBy   = flag.String("merged-pr-author", "", "simulate a merged pull request by this login instead of a comment")
	parseOnly  = flag.Bool("parse", false, "only print the parsed intent")
)

type threadComment struct {
	Login string `json:"login"`
	Body  string `json:"body"`
}

func main() {
	flag.Parse()

	// 读取配置文件
	c, err := config.LoadFromFile(*configFile)
	if err != nil {
		logger.Fatalf("读取配置文件失败, %s", err)
	}
	if err := logger.Setup(c.Log.Dir, c.Log.File, c.Log.Level); err != nil {
		logger.Fatalf("初始化日志失败, %s", err)
	}

	owner, name, ok := strings.Cut(*repoName, "/")
	if !ok {
		logger.Fatalf("仓库格式应为 owner/name: %s", *repoName)
	}
	repo := model.Repository{Owner: owner, Name: name}

	thread, err := loadThread(*threadFile)
	if err != nil {
		logger.Fatalf("读取讨论串失败, %s", err)
	}

	// 创建服务上下文
	svcCtx, err := svc.NewServiceContext(c, repo, thread)
	if err != nil {
		logger.Fatalf("创建服务上下文失败, %s", err)
	}

	ctx := context.Background()
	if *mergedBy != "" {
		err = svcCtx.Bot.HandlePullRequestClosed(ctx, &model.PullRequestClosedEvent{
			Repository: repo,
			PullRequest: model.PullRequest{
				Number:    *issueNum,
				Title:     *issueTitle,
				HTMLURL:   "https://github.com/" + repo.FullName() + "/pull/" + strconv.Itoa(*issueNum),
				User:      model.User{Login: *mergedBy, Type: "User"},
				Merged:    true,
				BaseLabel: owner + ":main",
			},
		})
		if err != nil {
			logger.Fatalf("[Bot] 处理 PR 失败, %s", err)
		}
		return
	}

	body := *comment
	if body == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Fatalf("读取评论失败, %s", err)
		}
		body = string(data)
	}

	if *parseOnly {
		logger.Infof("[Intent] %s", intent.Parse(body))
		return
	}

	if *sender == "" {
		logger.Fatalf("缺少 -sender")
	}
	user := model.User{Login: *sender, Type: "User"}
	ev := &model.IssueCommentEvent{
		Repository: repo,
		Issue: model.Issue{
			Number:  *issueNum,
			Title:   *issueTitle,
			URL:     "https://api.github.com/repos/" + repo.FullName() + "/issues/" + strconv.Itoa(*issueNum),
			HTMLURL: "https://github.com/" + repo.FullName() + "/issues/" + strconv.Itoa(*issueNum),
		},
		Comment: model.Comment{
			ID:      int64(len(thread) + 1),
			Body:    body,
			User:    user,
			HTMLURL: "https://github.com/" + repo.FullName() + "/issues/" + strconv.Itoa(*issueNum) + "#issuecomment-local",
		},
		Sender: user,
	}
	svcCtx.GitHub.Record(ev.Comment)
	if err := svcCtx.Bot.HandleIssueComment(ctx, ev); err != nil {
		logger.Fatalf("[Bot] 处理评论失败, %s", err)
	}
	if len(svcCtx.GitHub.Posted()) == 0 {
		logger.Infof("[Bot] 没有需要回复的内容")
	}
}

func loadThread(path string) ([]model.Comment, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []threadComment
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	comments := make([]model.Comment, len(raw))
	for i, c := range raw {
		comments[i] = model.Comment{
			ID:   int64(i + 1),
			Body: c.Body,
			User: model.User{Login: c.Login, Type: "User"},
		}
	}
	return comments, nil
}
