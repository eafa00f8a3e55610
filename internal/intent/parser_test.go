package intent

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		want    Intent
	}{
		{
			name:    "基本添加",
			comment: "@posthog-bot please add jakebolam for doc, infra and code",
			want:    Add{Who: "jakebolam", Contributions: []string{"doc", "infra", "code"}},
		},
		{
			name:    "动作和贡献类型忽略大小写，用户名保留大小写",
			comment: "@posthog-bot please Add jakeBolam for DOC, inFra and coDe",
			want:    Add{Who: "jakeBolam", Contributions: []string{"doc", "infra", "code"}},
		},
		{
			name:    "非人名用户名",
			comment: "@posthog-bot please add tbenning for design",
			want:    Add{Who: "tbenning", Contributions: []string{"design"}},
		},
		{
			name:    "带大写和下划线的用户名",
			comment: "@posthog-bot please add Rbot25_RULES for tool",
			want:    Add{Who: "Rbot25_RULES", Contributions: []string{"tool"}},
		},
		{
			name:    "复数形式",
			comment: "@posthog-bot please add dat2 for docs",
			want:    Add{Who: "dat2", Contributions: []string{"doc"}},
		},
		{
			name:    "完整单词",
			comment: "@posthog-bot please add jakebolam for infrastructure, documentation",
			want:    Add{Who: "jakebolam", Contributions: []string{"infra", "doc"}},
		},
		{
			name:    "用户名带 @",
			comment: "@posthog-bot please add @sinchang for infrastructure",
			want:    Add{Who: "sinchang", Contributions: []string{"infra"}},
		},
		{
			name:    "省略 please",
			comment: "@posthog-bot add @sinchang for infrastructure",
			want:    Add{Who: "sinchang", Contributions: []string{"infra"}},
		},
		{
			name: "叙述句中的添加",
			comment: "Jane you are crushing it in documentation and your infrastructure work has been great too. " +
				"Let's add jane.doe23 for her contributions. cc @posthog-bot-bot",
			want: Add{Who: "jane.doe23", Contributions: []string{"doc", "infra"}},
		},
		{
			name:    "多词别名",
			comment: "@posthog-bot please add jakebolam for infrastructure, fund finding",
			want:    Add{Who: "jakebolam", Contributions: []string{"infra", "fundingFinding"}},
		},
		{
			name:    "多词别名优先于单词",
			comment: "@posthog-bot please add jakebolam for infrastructure, user testing and testing",
			want:    Add{Who: "jakebolam", Contributions: []string{"infra", "userTesting", "test"}},
		},
		{
			name:    "多词类型的复数别名",
			comment: "@posthog-bot please add @jakebolam for infrastructure, funds",
			want:    Add{Who: "jakebolam", Contributions: []string{"infra", "fundingFinding"}},
		},
		{
			name:    "保留结尾连字符",
			comment: "@posthog-bot please add @jakebolam- for testing",
			want:    Add{Who: "jakebolam-", Contributions: []string{"test"}},
		},
		{
			name:    "保留中间连字符",
			comment: "@posthog-bot please add @jakebolam-jakebolam for bugs, ideas",
			want:    Add{Who: "jakebolam-jakebolam", Contributions: []string{"bug", "ideas"}},
		},
		{
			name:    "未知贡献类型",
			comment: "@posthog-bot please add @octocat for unknown",
			want:    Add{Who: "octocat", Contributions: []string{}},
		},
		{
			name:    "规范代码本身也是别名",
			comment: "@posthog-bot add octocat for userTesting and fundingFinding",
			want:    Add{Who: "octocat", Contributions: []string{"userTesting", "fundingFinding"}},
		},
		{
			name:    "重复类型不去重",
			comment: "@posthog-bot add octocat for doc, docs and documentation",
			want:    Add{Who: "octocat", Contributions: []string{"doc", "doc", "doc"}},
		},
		{
			name:    "未知贡献类型后还有其他句子",
			comment: "@posthog-bot please add @octocat for unknown. Thanks for the support!",
			want:    Add{Who: "octocat", Contributions: []string{}},
		},
		{
			name:    "未知贡献类型后还有其他短语",
			comment: "@posthog-bot please add @octocat for unknown, great feedback everyone",
			want:    Add{Who: "octocat", Contributions: []string{}},
		},
		{
			name:    "用户名所在句子结束，后文不算贡献类型",
			comment: "@posthog-bot add octocat. Thanks for the docs",
			want:    Unknown{},
		},
		{
			name:    "没有 for 子句",
			comment: "@posthog-bot please add octocat",
			want:    Unknown{},
		},
		{
			name:    "for 之后为空",
			comment: "@posthog-bot please add octocat for",
			want:    Unknown{},
		},
		{
			name:    "for 之后只有标点",
			comment: "@posthog-bot please add octocat for .",
			want:    Unknown{},
		},
		{
			name:    "没有 for 子句但前文提到贡献类型",
			comment: "Great documentation work! @posthog-bot add octocat",
			want:    Add{Who: "octocat", Contributions: []string{"doc"}},
		},
		{
			name:    "用户名保留非法 UTF-8 字节",
			comment: "@posthog-bot add \xffoo for docs",
			want:    Add{Who: "\xffoo", Contributions: []string{"doc"}},
		},
		{
			name:    "意图未知",
			comment: "@posthog-bot please lollmate for tool",
			want:    Unknown{},
		},
		{
			name:    "add 后没有用户名",
			comment: "@posthog-bot please add, for docs",
			want:    Unknown{},
		},
		{
			name:    "add 后直接是 for",
			comment: "@posthog-bot please add for docs",
			want:    Unknown{},
		},
		{
			name:    "空评论",
			comment: "",
			want:    Unknown{},
		},
		{
			name:    "总结",
			comment: "@posthog-bot please summarize thread",
			want:    Summarize{},
		},
		{
			name:    "总结忽略大小写",
			comment: "@posthog-bot Summarize this.",
			want:    Summarize{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.comment))
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	comment := "@posthog-bot please add jakebolam for infrastructure, user testing and testing"
	assert.Equal(t, Parse(comment), Parse(comment))
}

func TestParse_Concurrent(t *testing.T) {
	comment := "@posthog-bot please add @jakebolam for bugs, ideas"
	want := Add{Who: "jakebolam", Contributions: []string{"bug", "ideas"}}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Parse(comment))
		}()
	}
	wg.Wait()
}

func TestParse_OrderFollowsText(t *testing.T) {
	got := Parse("@posthog-bot add octocat for code, design, doc and infrastructure")
	add, ok := got.(Add)
	require.True(t, ok)
	assert.Equal(t, []string{"code", "design", "doc", "infra"}, add.Contributions)

	got = Parse("@posthog-bot add octocat for infrastructure, doc and design, code")
	add, ok = got.(Add)
	require.True(t, ok)
	assert.Equal(t, []string{"infra", "doc", "design", "code"}, add.Contributions)
}

func TestTokenize(t *testing.T) {
	toks := tokenize("Hi @bot, add jane.doe23 & co.")
	require.Len(t, toks, 7)
	assert.True(t, toks[1].mention)
	assert.True(t, toks[2].sep)
	assert.Equal(t, "jane.doe23", toks[4].raw)
	assert.True(t, toks[5].sep)
	assert.Equal(t, "co", toks[6].raw)
	assert.True(t, toks[6].sentence)
}
