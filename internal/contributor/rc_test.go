package contributor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRC = `{
  "projectName": "posthog",
  "projectOwner": "PostHog",
  "files": ["README.md", "CONTRIBUTORS.md"],
  "badgeTemplate": "custom",
  "contributors": [
    {
      "login": "jakebolam",
      "name": "Jake Bolam",
      "avatar_url": "https://avatars.githubusercontent.com/u/1",
      "profile": "https://jakebolam.com",
      "contributions": ["code", "doc"]
    }
  ]
}`

func TestParseRC(t *testing.T) {
	rc, err := ParseRC([]byte(sampleRC))
	require.NoError(t, err)
	require.Len(t, rc.Contributors, 1)
	assert.Equal(t, "Jake Bolam", rc.Contributors[0].Name)
	assert.Equal(t, []string{"README.md", "CONTRIBUTORS.md"}, rc.Files())
}

func TestParseRC_Invalid(t *testing.T) {
	_, err := ParseRC([]byte("{"))
	assert.Error(t, err)

	_, err = ParseRC([]byte(`{"contributors": "nope"}`))
	assert.Error(t, err)
}

func TestRC_HasContributions(t *testing.T) {
	rc, err := ParseRC([]byte(sampleRC))
	require.NoError(t, err)

	assert.True(t, rc.HasContributions("jakebolam", []string{"code"}))
	assert.True(t, rc.HasContributions("JakeBolam", []string{"doc", "code"}))
	assert.False(t, rc.HasContributions("jakebolam", []string{"code", "infra"}))
	assert.False(t, rc.HasContributions("octocat", []string{"code"}))
}

func TestRC_AddContributor(t *testing.T) {
	rc, err := ParseRC([]byte(sampleRC))
	require.NoError(t, err)

	rc.AddContributor(Contributor{Login: "jakebolam", Contributions: []string{"doc", "infra"}})
	require.Len(t, rc.Contributors, 1)
	assert.Equal(t, []string{"code", "doc", "infra"}, rc.Contributors[0].Contributions)
	assert.Equal(t, "Jake Bolam", rc.Contributors[0].Name)

	rc.AddContributor(Contributor{Login: "octocat", Name: "Mona", Contributions: []string{"bug", "bug", "ideas"}})
	require.Len(t, rc.Contributors, 2)
	assert.Equal(t, []string{"bug", "ideas"}, rc.Contributors[1].Contributions)
}

func TestRC_MarshalKeepsUnknownKeys(t *testing.T) {
	rc, err := ParseRC([]byte(sampleRC))
	require.NoError(t, err)
	rc.AddContributor(Contributor{Login: "octocat", Contributions: []string{"test"}})

	data, err := rc.Marshal()
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "custom", out["badgeTemplate"])
	assert.Len(t, out["contributors"], 2)
}

func TestNewRC(t *testing.T) {
	rc := NewRC("posthog", "PostHog")
	assert.Empty(t, rc.Contributors)
	assert.Equal(t, []string{"README.md"}, rc.Files())

	data, err := rc.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"projectOwner": "PostHog"`)
	assert.Contains(t, string(data), `"contributors": []`)
}
