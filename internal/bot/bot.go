package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PostHog/contributions-bot/internal/config"
	"github.com/PostHog/contributions-bot/internal/contributor"
	"github.com/PostHog/contributions-bot/internal/intent"
	"github.com/PostHog/contributions-bot/internal/logger"
	"github.com/PostHog/contributions-bot/internal/model"
	"github.com/PostHog/contributions-bot/internal/nag"
	"github.com/PostHog/contributions-bot/internal/reply"
	"github.com/PostHog/contributions-bot/internal/summarizer"
)

// GitHub 讨论串读写
type GitHub interface {
	ListComments(ctx context.Context, repo model.Repository, issue int) ([]model.Comment, error)
	CreateComment(ctx context.Context, repo model.Repository, issue int, body string) error
}

// Members 组织成员
type Members interface {
	IsMember(ctx context.Context, login string) (bool, error)
}

type AddRequest struct {
	Repository    model.Repository
	Who           string
	Contributions []string

	// 评论请求时填写
	Requester  string
	CommentURL string

	// 合并 PR 自动触发时填写
	PullRequestURL     string
	AuthorEmail        string
	IsCodeContribution bool
	ExtraMerch         bool
}

type AddResult struct {
	PullRequestURL     string
	Created            bool
	AlreadyContributed bool
	Files              []string // PR 中更新的文件
}

// ContributorAdder 更新贡献者文件并提交 PR
type ContributorAdder interface {
	AddContributor(ctx context.Context, req AddRequest) (*AddResult, error)
}

// ThreadSummarizer 总结讨论串
type ThreadSummarizer interface {
	SummarizeThread(ctx context.Context, comments []model.Comment) (string, error)
}

type Bot struct {
	config     *config.Config
	github     GitHub
	members    Members
	adder      ContributorAdder
	summarizer ThreadSummarizer
}

func New(c *config.Config, github GitHub, members Members, adder ContributorAdder, summarizer ThreadSummarizer) *Bot {
	return &Bot{
		config:     c,
		github:     github,
		members:    members,
		adder:      adder,
		summarizer: summarizer,
	}
}

// issueSender 把回复发到事件所在的讨论串
type issueSender struct {
	github GitHub
	repo   model.Repository
	issue  int
}

func (s issueSender) CreateComment(ctx context.Context, body string) error {
	return s.github.CreateComment(ctx, s.repo, s.issue, body)
}

// HandleIssueComment 处理 issue_comment.created 事件
func (b *Bot) HandleIssueComment(ctx context.Context, ev *model.IssueCommentEvent) error {
	if IsMessageByApp(ev.Comment.User, b.config.Bot.AppLogin) {
		return nil
	}
	if IsMessageForApp(ev.Comment.Body, b.config.Bot.Name) {
		return b.handleMessageIntendedForBot(ctx, ev)
	}
	if !b.config.Nag.Enable {
		return nil
	}
	return b.handleGeneralMessage(ctx, ev)
}

func (b *Bot) handleMessageIntendedForBot(ctx context.Context, ev *model.IssueCommentEvent) error {
	// 只有组织成员可以发指令
	ok, err := b.members.IsMember(ctx, ev.Sender.Login)
	if err != nil {
		return fmt.Errorf("获取组织成员失败: %w", err)
	}
	if !ok {
		logger.Debugf("[Bot] %s 不是组织成员，忽略指令", ev.Sender.Login)
		return nil
	}
	if !b.config.Bot.IsAllowedOrg(ev.Repository.Owner) {
		logger.Debugf("[Bot] 仓库 %s 不在允许的组织内", ev.Repository.FullName())
		return nil
	}

	r := reply.New(issueSender{b.github, ev.Repository, ev.Issue.Number}, ev.Comment.User.Login, ev.Comment.HTMLURL)

	err = b.processIssueComment(ctx, ev, r)
	if err != nil {
		if known, ok := IsKnownError(err); ok {
			logger.WithFields(logger.Fields{"isKnownError": true}).Infof("[Bot] %s", known.Message)
			r.Reply(known.Message)
			err = nil
		} else {
			r.Reply(troubleMessage)
		}
	}

	if sendErr := r.Send(ctx, false); sendErr != nil {
		return errors.Join(err, fmt.Errorf("发送回复失败: %w", sendErr))
	}
	return err
}

func (b *Bot) processIssueComment(ctx context.Context, ev *model.IssueCommentEvent, r *reply.CommentReply) error {
	switch in := intent.Parse(ev.Comment.Body).(type) {
	case intent.Add:
		return b.processAdd(ctx, ev, in, r)
	case intent.Summarize:
		return b.processSummarize(ctx, ev, r)
	default:
		logger.Infof("[Bot] 无法识别的指令: %q", ev.Comment.Body)
		return unknownIntentError(b.config.Bot.Name)
	}
}

func (b *Bot) processAdd(ctx context.Context, ev *model.IssueCommentEvent, in intent.Add, r *reply.CommentReply) error {
	log := logger.WithFields(logger.Fields{
		"who":           in.Who,
		"action":        "add",
		"contributions": in.Contributions,
	})
	if len(in.Contributions) == 0 {
		log.Infof("[Bot] 没有可识别的贡献类型")
		return noContributionsError()
	}

	result, err := b.adder.AddContributor(ctx, AddRequest{
		Repository:    ev.Repository,
		Who:           in.Who,
		Contributions: in.Contributions,
		Requester:     r.ReplyingToWho(),
		CommentURL:    r.ReplyingToWhere(),
	})
	if err != nil {
		return fmt.Errorf("添加贡献者 %s 失败: %w", in.Who, err)
	}

	if result.AlreadyContributed {
		log.Infof("[Bot] 贡献者已存在")
		r.Reply(contributor.AlreadyContributedMessage(in.Who, in.Contributions))
		return nil
	}

	log.Infof("[Bot] 已提交 PR: %s，更新 %s", result.PullRequestURL, strings.Join(result.Files, ", "))
	r.Reply(contributor.AddedMessage(in.Who, result.PullRequestURL, result.Created))
	return nil
}

func (b *Bot) processSummarize(ctx context.Context, ev *model.IssueCommentEvent, r *reply.CommentReply) error {
	comments, err := b.github.ListComments(ctx, ev.Repository, ev.Issue.Number)
	if err != nil {
		return fmt.Errorf("获取评论失败: %w", err)
	}

	summary, err := b.summarizer.SummarizeThread(ctx, comments)
	if errors.Is(err, summarizer.ErrNothingToSummarize) {
		return nothingToSummarizeError()
	}
	if err != nil {
		return fmt.Errorf("总结讨论串失败: %w", err)
	}

	logger.Infof("[Bot] 已总结 %s#%d，共 %d 条评论", ev.Repository.FullName(), ev.Issue.Number, len(comments))
	r.Reply(summarizer.FormatForReply(summary, len(comments)))
	return nil
}

// handleGeneralMessage 讨论串过长时提醒
func (b *Bot) handleGeneralMessage(ctx context.Context, ev *model.IssueCommentEvent) error {
	if ev.Issue.IsPullRequest() {
		logger.Debugf("[Bot] 只在 issue 中提醒，跳过 PR")
		return nil
	}

	comments, err := b.github.ListComments(ctx, ev.Repository, ev.Issue.Number)
	if err != nil {
		return fmt.Errorf("获取评论失败: %w", err)
	}

	result := nag.Evaluate(&b.config.Nag, ev.Issue, comments)
	logger.Debugf("[Bot] %s#%d: %s", ev.Repository.FullName(), ev.Issue.Number, result.Reason)
	if !result.Nag {
		return nil
	}

	r := reply.New(issueSender{b.github, ev.Repository, ev.Issue.Number}, ev.Comment.User.Login, ev.Comment.HTMLURL)
	r.Reply(result.Message)
	return r.Send(ctx, true)
}

// HandlePullRequestClosed 外部贡献者的 PR 合并到默认分支后自动添加为 code 贡献者
func (b *Bot) HandlePullRequestClosed(ctx context.Context, ev *model.PullRequestClosedEvent) error {
	pr := ev.PullRequest
	if !b.config.Bot.IsAllowedOrg(ev.Repository.Owner) {
		return nil
	}
	if !pr.Merged || pr.User.IsBot() || !isDefaultBranch(pr.BaseLabel) {
		return nil
	}

	who := pr.User.Login
	ok, err := b.members.IsMember(ctx, who)
	if err != nil {
		return fmt.Errorf("获取组织成员失败: %w", err)
	}
	if ok {
		return nil
	}

	contributions := []string{"code"}
	log := logger.WithFields(logger.Fields{
		"who":           who,
		"action":        "add",
		"contributions": contributions,
	})

	result, err := b.adder.AddContributor(ctx, AddRequest{
		Repository:         ev.Repository,
		Who:                who,
		Contributions:      contributions,
		PullRequestURL:     pr.HTMLURL,
		AuthorEmail:        pr.AuthorEmail,
		IsCodeContribution: true,
		ExtraMerch:         pr.HasLabel("extra merch"),
	})
	if err != nil {
		if known, ok := IsKnownError(err); ok {
			log.Infof("[Bot] %s", known.Message)
			return nil
		}
		return fmt.Errorf("添加贡献者 %s 失败: %w", who, err)
	}

	if result.AlreadyContributed {
		log.Infof("[Bot] 贡献者已存在")
		return nil
	}
	log.Infof("[Bot] 已提交 PR: %s，更新 %s", result.PullRequestURL, strings.Join(result.Files, ", "))
	return nil
}

func isDefaultBranch(label string) bool {
	return strings.HasSuffix(label, ":main") || strings.HasSuffix(label, ":master")
}
