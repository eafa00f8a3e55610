package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PostHog/contributions-bot/internal/config"
	"github.com/PostHog/contributions-bot/internal/logger"
	"github.com/PostHog/contributions-bot/internal/model"
)

var ErrNothingToSummarize = errors.New("nothing to summarize")

const systemPrompt = `You summarize GitHub issue threads for busy engineers.
Write a short neutral summary in markdown: the problem, the options discussed, any decision reached and open questions.
Refer to people by their GitHub login. Do not invent facts that are not in the thread.`

// CompletionRequest 一次对话补全请求
type CompletionRequest struct {
	Model       string
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Completer 对话补全后端（便于测试注入 mock）
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type Summarizer struct {
	config         *config.Summary
	completer      Completer
	maxInputTokens int
}

func NewSummarizer(cfg *config.Summary, completer Completer) *Summarizer {
	// 预留给 system prompt 和输出
	reserve := 1000
	if cfg.MaxTokens <= 2*reserve {
		reserve = cfg.MaxTokens / 2
	}
	return &Summarizer{
		config:         cfg,
		completer:      completer,
		maxInputTokens: cfg.MaxTokens - reserve,
	}
}

// estimateTokens 估算文本的 token 数量
func estimateTokens(text string) int {
	// 英文约 1.3 token/词
	tokens := int(float64(len(strings.Fields(text))) * 1.3)
	if tokens < len(text)/4 {
		// 如果估算值太小，使用字符数的 1/4 作为下限
		tokens = len(text) / 4
	}
	return tokens
}

func commentLine(c model.Comment) string {
	return fmt.Sprintf("[%s] %s", c.User.Login, strings.Join(strings.Fields(c.Body), " "))
}

// commentsToPromptText 每行一条评论，格式为 "[login] 内容"
func commentsToPromptText(comments []model.Comment) string {
	lines := make([]string, len(comments))
	for i, c := range comments {
		lines[i] = commentLine(c)
	}
	return strings.Join(lines, "\n")
}

// splitCommentsIntoChunks 将评论按 token 估算拆分为多个 chunk
func splitCommentsIntoChunks(comments []model.Comment, maxTokensPerChunk int) [][]model.Comment {
	if len(comments) == 0 {
		return nil
	}
	chunks := make([][]model.Comment, 0)
	current := make([]model.Comment, 0)
	currentTokens := 0

	for _, c := range comments {
		tokens := estimateTokens(commentLine(c))
		if currentTokens+tokens > maxTokensPerChunk && len(current) > 0 {
			chunks = append(chunks, current)
			current = nil
			currentTokens = 0
		}
		current = append(current, c)
		currentTokens += tokens
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

// SummarizeThread 总结讨论串，机器人的评论不参与总结
// 内容超过上下文窗口时拆分为多个 chunk，逐个在上一轮总结的基础上合并
func (s *Summarizer) SummarizeThread(ctx context.Context, comments []model.Comment) (string, error) {
	humans := make([]model.Comment, 0, len(comments))
	for _, c := range comments {
		if c.User.IsBot() || strings.TrimSpace(c.Body) == "" {
			continue
		}
		humans = append(humans, c)
	}
	if len(humans) == 0 {
		return "", ErrNothingToSummarize
	}

	text := commentsToPromptText(humans)
	tokens := estimateTokens(text)
	if tokens <= s.maxInputTokens {
		return s.summarizeOnce(ctx, text, "")
	}

	logger.Infof("[Summarizer] 讨论串过长 (%d tokens)，将拆分为多个 chunk 进行总结", tokens)
	chunks := splitCommentsIntoChunks(humans, s.maxInputTokens)

	var summary string
	for i, chunk := range chunks {
		logger.Debugf("[Summarizer] 处理 chunk %d/%d", i+1, len(chunks))
		next, err := s.summarizeOnce(ctx, commentsToPromptText(chunk), summary)
		if err != nil {
			return "", fmt.Errorf("总结 chunk %d 失败: %w", i+1, err)
		}
		summary = next
	}
	return summary, nil
}

// summarizeOnce 执行一次总结请求，previous 为上一轮的总结
func (s *Summarizer) summarizeOnce(ctx context.Context, chunk, previous string) (string, error) {
	user := "Please summarize this conversation:\n\n" + chunk
	if previous != "" {
		user = "Summary of the conversation so far:\n\n" + previous +
			"\n\nThe conversation continues:\n\n" + chunk +
			"\n\nPlease output an updated summary of the whole conversation."
	}

	content, err := s.completer.Complete(ctx, CompletionRequest{
		Model:       s.config.Model,
		System:      systemPrompt,
		User:        user,
		Temperature: s.config.Temperature,
		MaxTokens:   s.config.MaxTokens - s.maxInputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("调用补全接口失败: %w", err)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("补全接口返回空结果")
	}
	return content, nil
}

// FormatForReply 生成回复评论的 markdown
func FormatForReply(summary string, comments int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Here's a summary of this thread (%d comments):\n\n", comments))
	for _, line := range strings.Split(strings.TrimSpace(summary), "\n") {
		sb.WriteString("> " + line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
