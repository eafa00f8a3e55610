package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PostHog/contributions-bot/internal/config"
	"github.com/PostHog/contributions-bot/internal/logger"
	"github.com/PostHog/contributions-bot/internal/summarizer"
	"github.com/sashabaranov/go-openai"
)

const defaultTimeout = 5 * time.Minute

// openAIClientInterface 定义 OpenAI 客户端接口，便于测试
type openAIClientInterface interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client 兼容 OpenAI API 的补全后端
type Client struct {
	config       *config.LLM
	openaiClient openAIClientInterface
}

// NewClient transport 为空时使用默认的 HTTP 传输
func NewClient(cfg *config.LLM, transport http.RoundTripper) *Client {
	openaiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		openaiConfig.BaseURL = cfg.BaseURL
	}
	if transport != nil {
		openaiConfig.HTTPClient = &http.Client{Transport: transport}
	}

	return &Client{
		config:       cfg,
		openaiClient: openai.NewClientWithConfig(openaiConfig),
	}
}

// Complete 实现 summarizer.Completer
func (c *Client) Complete(ctx context.Context, req summarizer.CompletionRequest) (string, error) {
	timeout := defaultTimeout
	if c.config.TimeoutSeconds > 0 {
		timeout = time.Duration(c.config.TimeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	model := req.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	resp, err := c.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("调用 LLM API 失败: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM API 返回空结果")
	}
	logger.Debugf("[LLM] %s 用量: prompt %d, completion %d", model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```markdown")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content), nil
}
