package bot

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PostHog/contributions-bot/internal/model"
)

// IsMessageByApp 评论由机器人或 App 自己发出
func IsMessageByApp(user model.User, appLogin string) bool {
	return user.IsBot() || (appLogin != "" && strings.EqualFold(user.Login, appLogin))
}

// IsMessageForApp 评论中 @ 了机器人，名字后面不能紧跟用户名字符
func IsMessageForApp(body, botName string) bool {
	if botName == "" {
		return false
	}
	lower := strings.ToLower(body)
	mention := "@" + strings.ToLower(botName)
	for offset := 0; ; {
		i := strings.Index(lower[offset:], mention)
		if i < 0 {
			return false
		}
		end := offset + i + len(mention)
		next, _ := utf8.DecodeRuneInString(lower[end:])
		if end == len(lower) || !isLoginRune(next) {
			return true
		}
		offset = end
	}
}

func isLoginRune(r rune) bool {
	return r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
