package model

import (
	"fmt"
	"strings"
	"time"
)

type User struct {
	Login string
	Type  string // "User" / "Bot" / "Organization"
}

// IsBot GitHub App 的账号以 [bot] 结尾
func (u User) IsBot() bool {
	return u.Type == "Bot" || strings.HasSuffix(u.Login, "[bot]")
}

type Repository struct {
	Owner string
	Name  string
}

func (r Repository) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

type Issue struct {
	Number  int
	Title   string
	URL     string // API 地址，PR 的地址中包含 /pull/
	HTMLURL string
	Labels  []string
}

// IsPullRequest 判断讨论串是否属于 PR
func (i Issue) IsPullRequest() bool {
	return strings.Contains(i.URL, "/pull/") || strings.Contains(i.HTMLURL, "/pull/")
}

type Comment struct {
	ID        int64
	Body      string
	User      User
	HTMLURL   string
	CreatedAt time.Time
}

// IssueCommentEvent issue_comment.created 事件
type IssueCommentEvent struct {
	Repository Repository
	Issue      Issue
	Comment    Comment
	Sender     User
}

type PullRequest struct {
	Number      int
	Title       string
	HTMLURL     string
	User        User
	AuthorEmail string
	Merged      bool
	BaseLabel   string // 如 PostHog:main
	Labels      []string
}

// HasLabel 标签名比较忽略大小写
func (pr PullRequest) HasLabel(name string) bool {
	for _, label := range pr.Labels {
		if strings.EqualFold(label, name) {
			return true
		}
	}
	return false
}

// PullRequestClosedEvent pull_request.closed 事件
type PullRequestClosedEvent struct {
	Repository  Repository
	PullRequest PullRequest
}
