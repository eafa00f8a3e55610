package contributor

import (
	"fmt"
	"strings"
)

const merchURL = "https://merch.posthog.com/"

const feedbackURL = "https://www.g2.com/g2gives/girls-who-code-pillar-2022/and/posthog"

// MaskEmail 只保留用户名和域名的前两个字符
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s*******@%s*******.***", prefix(local, 2), prefix(domain, 2))
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) < n {
		return s
	}
	return string(r[:n])
}

// MerchNotification 代码贡献者的周边礼品提示，email 为空时请用户自行联系
func MerchNotification(who, email string) string {
	if masked := MaskEmail(email); masked != "" {
		return fmt.Sprintf("@%s As a thank you, we sent you an email at %s with a voucher for [our merch](%s)! "+
			"If you don't have access to that inbox, message hey@posthog.com and we'll sort something out. "+
			"If you have a moment, we'd also love to know [what you think about PostHog!](%s)",
			who, masked, merchURL, feedbackURL)
	}
	return fmt.Sprintf("@%s As a thank you, we'd like to gift you a voucher for [our merch](%s) – just email hey@posthog.com to get it! "+
		"If you have a moment, we'd also love to know [what you think about PostHog!](%s)",
		who, merchURL, feedbackURL)
}

func PullRequestTitle(who string) string {
	return fmt.Sprintf("chore(contributors): 🤖 - Add %s as a contributor 🎉", who)
}

// RequestOrigin 说明 PR 的来源：评论请求或合并 PR 自动触发
func RequestOrigin(requester, commentURL, pullRequestURL string) string {
	if requester != "" {
		return fmt.Sprintf("This was requested by %s [in this comment](%s)", requester, commentURL)
	}
	return fmt.Sprintf("This is an automatic action triggered by the merging of [this PR](%s).", pullRequestURL)
}

func PullRequestBody(who string, contributions []string, origin, merch string) string {
	return fmt.Sprintf("Adds @%s as a contributor for %s.\n\n%s\n\n%s",
		who, strings.Join(contributions, ", "), origin, merch)
}

func AddedMessage(who, pullRequestURL string, created bool) string {
	if created {
		return fmt.Sprintf("I've put up [a pull request](%s) to add @%s! :tada:", pullRequestURL, who)
	}
	return fmt.Sprintf("I've updated [the pull request](%s) to add @%s! :tada:", pullRequestURL, who)
}

func AlreadyContributedMessage(who string, contributions []string) string {
	return fmt.Sprintf("@%s already contributed before to %s", who, strings.Join(contributions, ", "))
}

// BranchName 同一贡献者的请求复用同一分支
func BranchName(who string) string {
	return "all-contributors/add-" + strings.ToLower(who)
}
