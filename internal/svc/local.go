package svc

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PostHog/contributions-bot/internal/bot"
	"github.com/PostHog/contributions-bot/internal/contributor"
	"github.com/PostHog/contributions-bot/internal/logger"
	"github.com/PostHog/contributions-bot/internal/model"
	"github.com/PostHog/contributions-bot/internal/summarizer"
)

// LocalGitHub 内存中的讨论串，发表的评论只写日志
type LocalGitHub struct {
	mu       sync.Mutex
	comments []model.Comment
	posted   []string
}

func NewLocalGitHub(thread []model.Comment) *LocalGitHub {
	return &LocalGitHub{comments: append([]model.Comment(nil), thread...)}
}

func (g *LocalGitHub) ListComments(ctx context.Context, repo model.Repository, issue int) ([]model.Comment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]model.Comment(nil), g.comments...), nil
}

func (g *LocalGitHub) CreateComment(ctx context.Context, repo model.Repository, issue int, body string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.comments = append(g.comments, model.Comment{
		ID:        int64(len(g.comments) + 1),
		Body:      body,
		User:      model.User{Login: "local[bot]", Type: "Bot"},
		CreatedAt: time.Now(),
	})
	g.posted = append(g.posted, body)
	logger.Infof("[GitHub] %s#%d 新评论:\n%s", repo.FullName(), issue, body)
	return nil
}

// Record 记录触发事件的评论，与 GitHub 一样出现在讨论串中
func (g *LocalGitHub) Record(c model.Comment) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.comments = append(g.comments, c)
}

// Posted 返回已发表的评论
func (g *LocalGitHub) Posted() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.posted...)
}

// StaticMembers 配置文件中的组织成员，比较时忽略大小写
type StaticMembers struct {
	logins map[string]struct{}
}

func NewStaticMembers(logins []string) *StaticMembers {
	m := &StaticMembers{logins: make(map[string]struct{}, len(logins))}
	for _, login := range logins {
		m.logins[strings.ToLower(login)] = struct{}{}
	}
	return m
}

func (m *StaticMembers) IsMember(ctx context.Context, login string) (bool, error) {
	_, ok := m.logins[strings.ToLower(login)]
	return ok, nil
}

// DryRunAdder 在内存中更新 .all-contributorsrc，PR 只生成标题和正文
type DryRunAdder struct {
	mu       sync.Mutex
	rc       *contributor.RC
	branches map[string]bool
}

func NewDryRunAdder(rc *contributor.RC) *DryRunAdder {
	return &DryRunAdder{rc: rc, branches: make(map[string]bool)}
}

func (a *DryRunAdder) AddContributor(ctx context.Context, req bot.AddRequest) (*bot.AddResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var merch string
	if req.IsCodeContribution {
		merch = contributor.MerchNotification(req.Who, req.AuthorEmail)
	}

	if a.rc.HasContributions(req.Who, req.Contributions) {
		return &bot.AddResult{AlreadyContributed: true}, nil
	}

	a.rc.AddContributor(contributor.Contributor{
		Login:         req.Who,
		AvatarURL:     fmt.Sprintf("https://github.com/%s.png", req.Who),
		Profile:       fmt.Sprintf("https://github.com/%s", req.Who),
		Contributions: req.Contributions,
	})
	content, err := a.rc.Marshal()
	if err != nil {
		return nil, fmt.Errorf("生成 %s 失败: %w", contributor.RCPath, err)
	}

	branch := contributor.BranchName(req.Who)
	created := !a.branches[branch]
	a.branches[branch] = true

	// 除 .all-contributorsrc 外还要重新生成贡献者列表
	files := append([]string{contributor.RCPath}, a.rc.Files()...)
	logger.Infof("[DryRun] 需要更新的文件: %s", strings.Join(files, ", "))

	origin := contributor.RequestOrigin(req.Requester, req.CommentURL, req.PullRequestURL)
	logger.Infof("[DryRun] PR 标题: %s", contributor.PullRequestTitle(req.Who))
	logger.Infof("[DryRun] PR 正文:\n%s", contributor.PullRequestBody(req.Who, req.Contributions, origin, merch))
	logger.Debugf("[DryRun] %s 更新为:\n%s", contributor.RCPath, content)
	if req.ExtraMerch {
		logger.Infof("[DryRun] %s 获得额外周边", req.Who)
	}

	return &bot.AddResult{
		PullRequestURL: fmt.Sprintf("https://github.com/%s/compare/%s", req.Repository.FullName(), branch),
		Created:        created,
		Files:          files,
	}, nil
}

// RC 当前的贡献者文件
func (a *DryRunAdder) RC() *contributor.RC {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rc
}

// ExtractiveCompleter 不调用模型，取每位参与者的第一句话作为总结
type ExtractiveCompleter struct{}

func (ExtractiveCompleter) Complete(ctx context.Context, req summarizer.CompletionRequest) (string, error) {
	seen := make(map[string]bool)
	var lines []string
	for _, line := range strings.Split(req.User, "\n") {
		switch {
		case strings.HasPrefix(line, "- **"):
			// 上一轮的总结
			rest := line[len("- **"):]
			end := strings.Index(rest, "**")
			if end <= 0 || seen[rest[:end]] {
				continue
			}
			seen[rest[:end]] = true
			lines = append(lines, line)
		case strings.HasPrefix(line, "["):
			end := strings.Index(line, "] ")
			if end < 0 {
				continue
			}
			login, text := line[1:end], line[end+2:]
			if seen[login] {
				continue
			}
			seen[login] = true
			lines = append(lines, fmt.Sprintf("- **%s**: %s", login, firstSentence(text)))
		}
	}
	if len(lines) == 0 {
		return "Nothing notable was discussed.", nil
	}
	return strings.Join(lines, "\n"), nil
}

func firstSentence(text string) string {
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		return text[:i+1]
	}
	return text
}
