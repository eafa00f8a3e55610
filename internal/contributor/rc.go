package contributor

import (
	"encoding/json"
	"fmt"
	"strings"
)

const RCPath = ".all-contributorsrc"

type Contributor struct {
	Login         string   `json:"login"`
	Name          string   `json:"name"`
	AvatarURL     string   `json:"avatar_url"`
	Profile       string   `json:"profile"`
	Contributions []string `json:"contributions"`
}

// RC .all-contributorsrc 文件，未识别的字段原样保留
type RC struct {
	raw          map[string]json.RawMessage
	Contributors []Contributor
}

func NewRC(projectName, projectOwner string) *RC {
	rc := &RC{raw: make(map[string]json.RawMessage), Contributors: []Contributor{}}
	rc.setRaw("projectName", projectName)
	rc.setRaw("projectOwner", projectOwner)
	rc.setRaw("files", []string{"README.md"})
	rc.setRaw("commitConvention", "none")
	rc.setRaw("contributorsPerLine", 7)
	return rc
}

func ParseRC(data []byte) (*RC, error) {
	rc := &RC{raw: make(map[string]json.RawMessage), Contributors: []Contributor{}}
	if err := json.Unmarshal(data, &rc.raw); err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", RCPath, err)
	}
	if contributors, ok := rc.raw["contributors"]; ok {
		if err := json.Unmarshal(contributors, &rc.Contributors); err != nil {
			return nil, fmt.Errorf("解析 %s 中的 contributors 失败: %w", RCPath, err)
		}
	}
	return rc, nil
}

func (rc *RC) setRaw(key string, v any) {
	data, _ := json.Marshal(v)
	rc.raw[key] = data
}

// Files 需要生成贡献者列表的文件
func (rc *RC) Files() []string {
	var files []string
	if data, ok := rc.raw["files"]; ok {
		_ = json.Unmarshal(data, &files)
	}
	if len(files) == 0 {
		files = []string{"README.md"}
	}
	return files
}

func (rc *RC) find(login string) int {
	for i, c := range rc.Contributors {
		if strings.EqualFold(c.Login, login) {
			return i
		}
	}
	return -1
}

// HasContributions 用户已拥有全部请求的贡献类型
func (rc *RC) HasContributions(login string, contributions []string) bool {
	i := rc.find(login)
	if i < 0 {
		return false
	}
	for _, want := range contributions {
		if !contains(rc.Contributors[i].Contributions, want) {
			return false
		}
	}
	return true
}

// AddContributor 新增贡献者，已存在时合并贡献类型
func (rc *RC) AddContributor(c Contributor) {
	i := rc.find(c.Login)
	if i < 0 {
		merged := make([]string, 0, len(c.Contributions))
		for _, code := range c.Contributions {
			if !contains(merged, code) {
				merged = append(merged, code)
			}
		}
		c.Contributions = merged
		rc.Contributors = append(rc.Contributors, c)
		return
	}

	existing := &rc.Contributors[i]
	for _, code := range c.Contributions {
		if !contains(existing.Contributions, code) {
			existing.Contributions = append(existing.Contributions, code)
		}
	}
	if c.Name != "" {
		existing.Name = c.Name
	}
	if c.AvatarURL != "" {
		existing.AvatarURL = c.AvatarURL
	}
	if c.Profile != "" {
		existing.Profile = c.Profile
	}
}

func (rc *RC) Marshal() ([]byte, error) {
	rc.setRaw("contributors", rc.Contributors)
	data, err := json.MarshalIndent(rc.raw, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
