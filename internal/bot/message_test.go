package bot

import (
	"testing"

	"github.com/PostHog/contributions-bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestIsMessageForApp(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{"@posthog-bot please add jakebolam for doc", true},
		{"@PostHog-Bot summarize", true},
		{"thanks! cc @posthog-bot", true},
		{"@posthog-bot, add x for code", true},
		{"cc @posthog-bot-bot", false},
		{"@posthog-botty add x", false},
		{"cc @posthog-bot-bot and @posthog-bot", true},
		{"posthog-bot add x for code", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsMessageForApp(tt.body, "posthog-bot"), tt.body)
	}
	assert.False(t, IsMessageForApp("@posthog-bot hi", ""))
}

func TestIsMessageByApp(t *testing.T) {
	assert.True(t, IsMessageByApp(model.User{Login: "posthog-bot[bot]", Type: "Bot"}, "posthog-bot[bot]"))
	assert.True(t, IsMessageByApp(model.User{Login: "other[bot]"}, "posthog-bot[bot]"))
	assert.True(t, IsMessageByApp(model.User{Login: "Posthog-Bot[bot]"}, "posthog-bot[bot]"))
	assert.False(t, IsMessageByApp(model.User{Login: "jakebolam", Type: "User"}, "posthog-bot[bot]"))
}

func TestIsDefaultBranch(t *testing.T) {
	assert.True(t, isDefaultBranch("PostHog:main"))
	assert.True(t, isDefaultBranch("PostHog:master"))
	assert.False(t, isDefaultBranch("PostHog:main-backup"))
	assert.False(t, isDefaultBranch("PostHog:develop"))
}
