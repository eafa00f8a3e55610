package intent

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasesYAML []byte

// aliases 进程启动时加载一次，之后只读
var aliases = mustLoadAliases(aliasesYAML)

type alias struct {
	phrase string
	code   string
}

// aliasGroup 同词数的别名
type aliasGroup struct {
	size    int
	aliases []alias
}

// aliasTable 按词数降序排列的别名组，保证多词别名优先于其中的单词
type aliasTable struct {
	groups []aliasGroup
	codes  []string
}

func mustLoadAliases(data []byte) *aliasTable {
	table, err := loadAliases(data)
	if err != nil {
		panic(fmt.Sprintf("加载贡献类型别名表失败: %v", err))
	}
	return table
}

// loadAliases 解析 "规范代码: [别名...]" 形式的 YAML
// 每个规范代码自身也是自己的别名，同一别名不能指向两个代码
func loadAliases(data []byte) (*aliasTable, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("别名表为空")
	}

	owner := make(map[string]string)
	bySize := make(map[int][]alias)
	codes := make([]string, 0, len(raw))
	for code, phrases := range raw {
		if strings.TrimSpace(code) == "" {
			return nil, fmt.Errorf("规范代码不能为空")
		}
		codes = append(codes, code)
		for _, p := range append([]string{code}, phrases...) {
			words := strings.Fields(strings.ToLower(p))
			if len(words) == 0 {
				return nil, fmt.Errorf("%s 存在空别名", code)
			}
			phrase := strings.Join(words, " ")
			if prev, ok := owner[phrase]; ok {
				if prev == code {
					continue
				}
				return nil, fmt.Errorf("别名 %q 同时指向 %s 和 %s", phrase, prev, code)
			}
			owner[phrase] = code
			bySize[len(words)] = append(bySize[len(words)], alias{phrase: phrase, code: code})
		}
	}

	table := &aliasTable{codes: codes}
	for size, list := range bySize {
		sort.Slice(list, func(i, j int) bool { return list[i].phrase < list[j].phrase })
		table.groups = append(table.groups, aliasGroup{size: size, aliases: list})
	}
	sort.Slice(table.groups, func(i, j int) bool { return table.groups[i].size > table.groups[j].size })
	sort.Strings(table.codes)
	return table, nil
}

// lookup 先精确匹配，再尝试去掉末尾的 s
func (g aliasGroup) lookup(phrase string) (string, bool) {
	for _, a := range g.aliases {
		if a.phrase == phrase {
			return a.code, true
		}
	}
	singular, ok := singularize(phrase)
	if !ok {
		return "", false
	}
	for _, a := range g.aliases {
		if a.phrase == singular {
			return a.code, true
		}
	}
	return "", false
}

func singularize(phrase string) (string, bool) {
	if len(phrase) < 2 || !strings.HasSuffix(phrase, "s") || strings.HasSuffix(phrase, "ss") {
		return "", false
	}
	return phrase[:len(phrase)-1], true
}

// longest 返回 words 开头能匹配的最长别名及其词数，未匹配时词数为 0
func (t *aliasTable) longest(words []string) (string, int) {
	for _, g := range t.groups {
		if g.size > len(words) {
			continue
		}
		if code, ok := g.lookup(strings.Join(words[:g.size], " ")); ok {
			return code, g.size
		}
	}
	return "", 0
}

// scan 从左到右扫描短语中的全部别名
func (t *aliasTable) scan(words []string) []string {
	var codes []string
	for i := 0; i < len(words); {
		code, n := t.longest(words[i:])
		if n == 0 {
			i++
			continue
		}
		codes = append(codes, code)
		i += n
	}
	return codes
}

// ContributionCodes 返回所有规范贡献代码（已排序）
func ContributionCodes() []string {
	codes := make([]string, len(aliases.codes))
	copy(codes, aliases.codes)
	return codes
}
