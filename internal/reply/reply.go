package reply

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PostHog/contributions-bot/internal/logger"
)

const (
	MaxCommentLength = 65536 // GitHub 评论最大长度
)

var ErrAlreadySent = errors.New("message already sent")

// Sender 向讨论串发表评论
type Sender interface {
	CreateComment(ctx context.Context, body string) error
}

// CommentReply 暂存所有回复，最后合并为一条评论发送
type CommentReply struct {
	sender  Sender
	who     string
	where   string
	message string
	sent    bool
}

func New(sender Sender, who, where string) *CommentReply {
	return &CommentReply{sender: sender, who: who, where: where}
}

// ReplyingToWho 被回复评论的作者
func (r *CommentReply) ReplyingToWho() string {
	return r.who
}

// ReplyingToWhere 被回复评论的链接
func (r *CommentReply) ReplyingToWhere() string {
	return r.where
}

func (r *CommentReply) Reply(message string) {
	r.message += "\n\n" + message
}

// Empty 是否还没有任何回复内容
func (r *CommentReply) Empty() bool {
	return strings.TrimSpace(r.message) == ""
}

// Body 生成最终评论内容，omitMention 为 false 时 @ 原作者
func (r *CommentReply) Body(omitMention bool) string {
	body := r.message
	if !omitMention {
		body = fmt.Sprintf("@%s %s", r.who, r.message)
	}
	return strings.TrimSpace(body)
}

// Send 只能调用一次，没有内容时不发送，超长内容拆成多条评论
func (r *CommentReply) Send(ctx context.Context, omitMention bool) error {
	if r.sent {
		return ErrAlreadySent
	}
	r.sent = true

	if r.Empty() {
		logger.Debugf("[Reply] 没有回复内容，不发送评论")
		return nil
	}

	body := r.Body(omitMention)
	logger.Debugf("[Reply] 发送评论: %s", body)
	for i, part := range splitMessage(body) {
		if err := r.sender.CreateComment(ctx, part); err != nil {
			return fmt.Errorf("发送第 %d 条评论失败: %w", i+1, err)
		}
	}
	return nil
}

// splitMessage 将消息按长度拆分为多条
func splitMessage(content string) []string {
	if len(content) <= MaxCommentLength {
		return []string{content}
	}

	// 按段落拆分
	paragraphs := strings.Split(content, "\n\n")
	if len(paragraphs) == 1 {
		// 如果没有段落分隔，按换行拆分
		paragraphs = strings.Split(content, "\n")
	}

	messages := make([]string, 0)
	current := ""

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		candidate := current
		if candidate != "" {
			candidate += "\n\n"
		}
		candidate += para

		if len(candidate) <= MaxCommentLength {
			current = candidate
			continue
		}

		// 当前消息已满，保存并开始新消息
		if current != "" {
			messages = append(messages, current)
			current = ""
		}
		// 单个段落超长时按长度硬切，切点退回到字符边界
		for len(para) > MaxCommentLength {
			cut := MaxCommentLength
			for cut > 0 && !utf8.RuneStart(para[cut]) {
				cut--
			}
			messages = append(messages, para[:cut])
			para = para[cut:]
		}
		current = para
	}

	if current != "" {
		messages = append(messages, current)
	}

	return messages
}
