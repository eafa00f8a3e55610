package nag

import (
	"fmt"
	"strings"

	"github.com/PostHog/contributions-bot/internal/config"
	"github.com/PostHog/contributions-bot/internal/model"
)

// Marker 已发送过提醒的讨论串中必然包含这句话
const Marker = "Issues this long"

type Result struct {
	Nag      bool
	Reason   string
	Words    int
	Comments int
	Message  string
}

// Evaluate 判断 issue 是否过长，需要提醒参与者换种方式推进
func Evaluate(cfg *config.Nag, issue model.Issue, comments []model.Comment) Result {
	if issue.IsPullRequest() {
		return Result{Reason: "PR 中不提醒"}
	}
	if label, ok := sprawling(cfg.SprawlingLabels, issue); ok {
		return Result{Reason: fmt.Sprintf("标题或标签包含 %s", label)}
	}
	for _, c := range comments {
		if strings.Contains(c.Body, Marker) {
			return Result{Reason: "已经提醒过"}
		}
	}

	humans := 0
	words := 0
	for _, c := range comments {
		if c.User.IsBot() {
			continue
		}
		humans++
		words += len(strings.Fields(c.Body))
	}

	result := Result{Words: words, Comments: humans}
	if humans < cfg.CommentsThreshold || words < cfg.WordsThreshold {
		result.Reason = fmt.Sprintf("%d 个词，%d 条评论，未超过阈值", words, humans)
		return result
	}

	result.Nag = true
	result.Reason = fmt.Sprintf("%d 个词过多", words)
	result.Message = message(words, humans, cfg.SprawlingLabels)
	return result
}

func sprawling(labels []string, issue model.Issue) (string, bool) {
	title := strings.ToLower(issue.Title)
	for _, label := range labels {
		if strings.Contains(title, strings.ToLower(label)) {
			return label, true
		}
		for _, l := range issue.Labels {
			if strings.EqualFold(l, label) {
				return label, true
			}
		}
	}
	return "", false
}

func message(words, comments int, labels []string) string {
	quoted := make([]string, len(labels))
	for i, label := range labels {
		quoted[i] = "`" + label + "`"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("This issue has **%d words** at **%d comments**. ", words, comments))
	sb.WriteString(Marker + " are hard to read or contribute to, and tend to take very long to reach a conclusion. Instead, why not:\n\n")
	sb.WriteString("1. **Write some code** and submit a pull request! Code wins arguments\n")
	sb.WriteString("2. **Have a sync meeting** to reach a conclusion\n")
	sb.WriteString("3. **Create a Request for Comments** and submit a PR with it to the " +
		"[meta repo](https://github.com/PostHog/meta/blob/main/requests-for-comments/1970-01-01-template.md) or " +
		"[product internal repo](https://github.com/PostHog/product-internal/new/main/requests-for-comments)")
	if len(quoted) > 0 {
		sb.WriteString("\n\nIs this issue intended to be sprawling? Consider adding label ")
		sb.WriteString(strings.Join(quoted, " or "))
		sb.WriteString(" to indicate this.")
	}
	return sb.String()
}
