package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Bot struct {
	Name        string   `yaml:"Name"`        // 评论中 @ 的名字，如 posthog-bot
	AppLogin    string   `yaml:"AppLogin"`    // App 自己的账号，如 posthog-bot[bot]
	AllowedOrgs []string `yaml:"AllowedOrgs"` // 为空时不限制仓库所属组织
	Members     []string `yaml:"Members"`     // 组织成员，只有成员能发指令
}

type Nag struct {
	Enable            bool     `yaml:"Enable"`
	WordsThreshold    int      `yaml:"WordsThreshold"`    // 默认 2000
	CommentsThreshold int      `yaml:"CommentsThreshold"` // 默认 5
	SprawlingLabels   []string `yaml:"SprawlingLabels"`   // 默认 epic, sprint
}

type Summary struct {
	Model       string  `yaml:"Model"`
	MaxTokens   int     `yaml:"MaxTokens"` // 模型上下文窗口大小
	Temperature float32 `yaml:"Temperature"`
}

// LLM 兼容 OpenAI API 的补全服务，APIKey 为空时使用本地抽取式总结
type LLM struct {
	BaseURL        string `yaml:"BaseURL"` // 为空时使用 OpenAI 官方端点
	APIKey         string `yaml:"APIKey"`
	TimeoutSeconds int    `yaml:"TimeoutSeconds"` // 默认 300
}

type Sock5Proxy struct {
	Enable bool   `yaml:"Enable"`
	Host   string `yaml:"Host"`
	Port   int    `yaml:"Port"`
}

type Contributors struct {
	RCFile string `yaml:"RCFile"` // 本地 .all-contributorsrc 路径，为空时从空文件开始
}

type Log struct {
	Dir   string `yaml:"Dir"`
	File  string `yaml:"File"`
	Level string `yaml:"Level"` // debug / info / warn / error
}

type Config struct {
	Bot          Bot          `yaml:"Bot"`
	Nag          Nag          `yaml:"Nag"`
	Summary      Summary      `yaml:"Summary"`
	LLM          LLM          `yaml:"LLM"`
	Sock5Proxy   Sock5Proxy   `yaml:"Sock5Proxy"`
	Contributors Contributors `yaml:"Contributors"`
	Log          Log          `yaml:"Log"`
}

func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

func Load(data []byte) (*Config, error) {
	// Temperature 允许配置为 0，只有缺少该项时才使用默认值
	c := Config{Summary: Summary{Temperature: 0.5}}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	// 验证配置
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Bot.AppLogin == "" && c.Bot.Name != "" {
		c.Bot.AppLogin = c.Bot.Name + "[bot]"
	}
	if c.Nag.WordsThreshold == 0 {
		c.Nag.WordsThreshold = 2000
	}
	if c.Nag.CommentsThreshold == 0 {
		c.Nag.CommentsThreshold = 5
	}
	if c.Nag.SprawlingLabels == nil {
		c.Nag.SprawlingLabels = []string{"epic", "sprint"}
	}
	if c.Summary.MaxTokens == 0 {
		c.Summary.MaxTokens = 4000
	}
	if c.Log.Dir == "" {
		c.Log.Dir = "logs"
	}
	if c.Log.File == "" {
		c.Log.File = "contributions-bot.log"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// IsAllowedOrg AllowedOrgs 为空表示所有组织都允许
func (c *Bot) IsAllowedOrg(owner string) bool {
	if len(c.AllowedOrgs) == 0 {
		return true
	}
	for _, org := range c.AllowedOrgs {
		if strings.EqualFold(org, owner) {
			return true
		}
	}
	return false
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	// 验证 Bot
	if c.Bot.Name == "" {
		return fmt.Errorf("Bot.Name 不能为空")
	}
	if strings.HasPrefix(c.Bot.Name, "@") {
		return fmt.Errorf("Bot.Name 不需要 @ 前缀")
	}

	// 验证 Nag
	if c.Nag.WordsThreshold < 0 {
		return fmt.Errorf("Nag.WordsThreshold 必须 >= 0")
	}
	if c.Nag.CommentsThreshold < 0 {
		return fmt.Errorf("Nag.CommentsThreshold 必须 >= 0")
	}

	// 验证 Summary
	if c.Summary.MaxTokens <= 500 {
		return fmt.Errorf("Summary.MaxTokens 必须大于 500")
	}
	if c.Summary.Temperature < 0 || c.Summary.Temperature > 2 {
		return fmt.Errorf("Summary.Temperature 必须在 0 到 2 之间")
	}

	// 验证 LLM
	if c.LLM.TimeoutSeconds < 0 {
		return fmt.Errorf("LLM.TimeoutSeconds 必须 >= 0")
	}
	if c.Sock5Proxy.Enable && (c.Sock5Proxy.Host == "" || c.Sock5Proxy.Port <= 0) {
		return fmt.Errorf("Sock5Proxy 启用时 Host 和 Port 不能为空")
	}

	// 验证 Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("Log.Level 必须是 'debug', 'info', 'warn' 或 'error'")
	}

	return nil
}
