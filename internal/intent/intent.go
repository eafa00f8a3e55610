package intent

import "fmt"

// Intent 评论解析结果，只可能是 Add、Summarize、Unknown 三者之一
type Intent interface {
	isIntent()
	fmt.Stringer
}

// Add 为用户添加贡献类型
type Add struct {
	Who           string
	Contributions []string
}

// Summarize 总结整个讨论串
type Summarize struct{}

// Unknown 无法识别的指令
type Unknown struct{}

func (Add) isIntent()       {}
func (Summarize) isIntent() {}
func (Unknown) isIntent()   {}

func (a Add) String() string {
	return fmt.Sprintf("add %s for %v", a.Who, a.Contributions)
}

func (Summarize) String() string { return "summarize" }

func (Unknown) String() string { return "unknown" }
