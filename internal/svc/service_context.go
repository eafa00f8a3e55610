package svc

import (
	"fmt"
	"net/http"
	"os"

	"github.com/PostHog/contributions-bot/internal/bot"
	"github.com/PostHog/contributions-bot/internal/config"
	"github.com/PostHog/contributions-bot/internal/contributor"
	"github.com/PostHog/contributions-bot/internal/llm"
	"github.com/PostHog/contributions-bot/internal/logger"
	"github.com/PostHog/contributions-bot/internal/model"
	"github.com/PostHog/contributions-bot/internal/summarizer"
	"golang.org/x/net/proxy"
)

type ServiceContext struct {
	Config     *config.Config
	GitHub     *LocalGitHub
	Members    *StaticMembers
	Adder      *DryRunAdder
	Completer  summarizer.Completer
	Summarizer *summarizer.Summarizer
	Bot        *bot.Bot
}

// NewServiceContext 使用本地实现组装机器人，thread 为讨论串中已有的评论
func NewServiceContext(c *config.Config, repo model.Repository, thread []model.Comment) (*ServiceContext, error) {
	rc, err := loadRC(c.Contributors.RCFile, repo)
	if err != nil {
		return nil, err
	}

	github := NewLocalGitHub(thread)
	members := NewStaticMembers(c.Bot.Members)
	adder := NewDryRunAdder(rc)
	completer, err := newCompleter(c)
	if err != nil {
		return nil, err
	}
	summ := summarizer.NewSummarizer(&c.Summary, completer)

	svcCtx := &ServiceContext{
		Config:     c,
		GitHub:     github,
		Members:    members,
		Adder:      adder,
		Completer:  completer,
		Summarizer: summ,
		Bot:        bot.New(c, github, members, adder, summ),
	}
	return svcCtx, nil
}

func loadRC(path string, repo model.Repository) (*contributor.RC, error) {
	if path == "" {
		return contributor.NewRC(repo.Name, repo.Owner), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Warnf("[Svc] %s 不存在，从空文件开始", path)
		return contributor.NewRC(repo.Name, repo.Owner), nil
	}
	if err != nil {
		return nil, err
	}
	return contributor.ParseRC(data)
}

// newCompleter 配置了 LLM.APIKey 时调用模型，否则使用本地抽取式总结
func newCompleter(c *config.Config) (summarizer.Completer, error) {
	if c.LLM.APIKey == "" {
		logger.Infof("[Svc] 未配置 LLM.APIKey，使用抽取式总结")
		return ExtractiveCompleter{}, nil
	}

	// 创建SOCKS5代理
	var transport http.RoundTripper
	if c.Sock5Proxy.Enable {
		socks5Proxy := fmt.Sprintf("%s:%d", c.Sock5Proxy.Host, c.Sock5Proxy.Port)
		dialer, err := proxy.SOCKS5("tcp", socks5Proxy, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("创建SOCKS5代理失败: %w", err)
		}
		transport = &http.Transport{Dial: dialer.Dial}
	}
	return llm.NewClient(&c.LLM, transport), nil
}
