package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load([]byte("Bot:\n  Name: posthog-bot\n"))
	require.NoError(t, err)

	assert.Equal(t, "posthog-bot[bot]", c.Bot.AppLogin)
	assert.Equal(t, 2000, c.Nag.WordsThreshold)
	assert.Equal(t, 5, c.Nag.CommentsThreshold)
	assert.Equal(t, []string{"epic", "sprint"}, c.Nag.SprawlingLabels)
	assert.Equal(t, 4000, c.Summary.MaxTokens)
	assert.InDelta(t, 0.5, c.Summary.Temperature, 1e-6)
	assert.Empty(t, c.LLM.APIKey)
	assert.Equal(t, "logs", c.Log.Dir)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
Bot:
  Name: posthog-bot
  AllowedOrgs: [PostHog]
  Members: [jakebolam, tbenning]
Nag:
  Enable: true
  WordsThreshold: 100
  SprawlingLabels: []
Summary:
  Model: gpt-4o-mini
  MaxTokens: 8000
Log:
  Level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"jakebolam", "tbenning"}, c.Bot.Members)
	assert.True(t, c.Nag.Enable)
	assert.Equal(t, 100, c.Nag.WordsThreshold)
	assert.Empty(t, c.Nag.SprawlingLabels)
	assert.Equal(t, "gpt-4o-mini", c.Summary.Model)
	assert.Equal(t, 8000, c.Summary.MaxTokens)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoad_ZeroTemperature(t *testing.T) {
	c, err := Load([]byte("Bot:\n  Name: posthog-bot\nSummary:\n  Temperature: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, c.Summary.Temperature)

	c, err = Load([]byte("Bot:\n  Name: posthog-bot\nSummary:\n  Temperature: 1.2\n"))
	require.NoError(t, err)
	assert.InDelta(t, 1.2, c.Summary.Temperature, 1e-6)
}

func TestLoad_LLM(t *testing.T) {
	c, err := Load([]byte(`
Bot:
  Name: posthog-bot
LLM:
  BaseURL: https://api.deepseek.com/v1
  APIKey: sk-test
  TimeoutSeconds: 60
Sock5Proxy:
  Enable: true
  Host: 127.0.0.1
  Port: 1080
`))
	require.NoError(t, err)
	assert.Equal(t, "https://api.deepseek.com/v1", c.LLM.BaseURL)
	assert.Equal(t, "sk-test", c.LLM.APIKey)
	assert.Equal(t, 60, c.LLM.TimeoutSeconds)
	assert.True(t, c.Sock5Proxy.Enable)
	assert.Equal(t, 1080, c.Sock5Proxy.Port)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"缺少 Bot.Name", "Nag:\n  Enable: true\n"},
		{"Bot.Name 带 @", "Bot:\n  Name: \"@posthog-bot\"\n"},
		{"MaxTokens 过小", "Bot:\n  Name: bot\nSummary:\n  MaxTokens: 100\n"},
		{"非法日志级别", "Bot:\n  Name: bot\nLog:\n  Level: trace\n"},
		{"负阈值", "Bot:\n  Name: bot\nNag:\n  WordsThreshold: -1\n"},
		{"Temperature 超出范围", "Bot:\n  Name: bot\nSummary:\n  Temperature: 3\n"},
		{"代理缺少端口", "Bot:\n  Name: bot\nSock5Proxy:\n  Enable: true\n  Host: 127.0.0.1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestBot_IsAllowedOrg(t *testing.T) {
	open := Bot{}
	assert.True(t, open.IsAllowedOrg("anyone"))

	restricted := Bot{AllowedOrgs: []string{"PostHog"}}
	assert.True(t, restricted.IsAllowedOrg("posthog"))
	assert.False(t, restricted.IsAllowedOrg("octo-org"))
}
