package intent

import (
	"strings"
	"unicode"
)

// token 评论中的一个词
type token struct {
	raw      string // 原文，已去掉句末标点
	norm     string // 小写并去掉首尾符号，用于关键词和别名匹配
	sep      bool   // 子句分隔符: , ; &
	mention  bool   // @ 提及
	sentence bool   // 该词结束了一个句子
}

const trailingPunct = ".!?:)\"'"

// tokenize 按字节下标从原文切词，用户名因此保持原样（包括非法 UTF-8 字节）
func tokenize(text string) []token {
	var toks []token

	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		w := text[start:end]
		start = -1
		if w == "&" {
			toks = append(toks, token{raw: w, sep: true})
			return
		}

		raw := strings.TrimRight(w, trailingPunct)
		sentence := strings.ContainsAny(w[len(raw):], ".!?")
		if raw == "" {
			if sentence && len(toks) > 0 {
				toks[len(toks)-1].sentence = true
			}
			return
		}
		toks = append(toks, token{
			raw:      raw,
			norm:     strings.ToLower(strings.TrimFunc(raw, isSymbol)),
			mention:  strings.HasPrefix(raw, "@"),
			sentence: sentence,
		})
	}

	for i, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush(i)
		case r == ',' || r == ';':
			flush(i)
			toks = append(toks, token{raw: string(r), sep: true})
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(text))
	return toks
}

func isSymbol(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Parse 将发给机器人的评论解析为结构化指令，不会失败
func Parse(text string) Intent {
	toks := tokenize(text)

	for _, t := range toks {
		if t.norm == "summarize" || t.norm == "summarise" {
			return Summarize{}
		}
	}

	for i, t := range toks {
		if t.norm != "add" || t.mention || t.sentence {
			continue
		}
		who, ok := username(toks, i+1)
		if !ok {
			continue
		}
		codes, ok := contributions(toks, i)
		if !ok {
			continue
		}
		return Add{Who: who, Contributions: codes}
	}

	return Unknown{}
}

// username 取 add 之后的词作为用户名，只去掉一个开头的 @，保留大小写
func username(toks []token, i int) (string, bool) {
	if i >= len(toks) {
		return "", false
	}
	t := toks[i]
	if t.sep || t.norm == "for" || t.norm == "and" {
		return "", false
	}
	who := strings.TrimPrefix(t.raw, "@")
	if strings.IndexFunc(who, func(r rune) bool { return !isSymbol(r) }) < 0 {
		return "", false
	}
	return who, true
}

// contributions 优先解析用户名之后的 for 子句；子句里没有可识别的贡献类型时，
// 退回扫描 add 之前的文字。没有 for 子句且前文也找不到时返回 false
func contributions(toks []token, add int) ([]string, bool) {
	clause, ok := forClause(toks, add+1)
	codes := matchPhrases(clause)
	if len(codes) == 0 {
		codes = matchPhrases(toks[:add])
	}
	if len(codes) == 0 && !ok {
		return nil, false
	}
	if codes == nil {
		codes = []string{}
	}
	return codes, true
}

// forClause 返回同一句中 for 之后直到句末的词，for 之后没有任何词时返回 false
func forClause(toks []token, who int) ([]token, bool) {
	if toks[who].sentence {
		return nil, false
	}
	for k := who + 1; k < len(toks); k++ {
		if toks[k].norm == "for" && !toks[k].sep {
			if toks[k].sentence {
				return nil, false
			}
			end := k + 1
			for end < len(toks) && !toks[end].sentence {
				end++
			}
			if end < len(toks) {
				end++
			}
			clause := toks[k+1 : end]
			for _, t := range clause {
				if t.norm != "" {
					return clause, true
				}
			}
			return nil, false
		}
		if toks[k].sentence {
			return nil, false
		}
	}
	return nil, false
}

// matchPhrases 按逗号、and、句末切分短语，逐个短语做最长匹配
func matchPhrases(toks []token) []string {
	var (
		codes  []string
		phrase []string
	)
	flush := func() {
		codes = append(codes, aliases.scan(phrase)...)
		phrase = phrase[:0]
	}

	for _, t := range toks {
		if t.sep || t.mention || t.norm == "and" || t.norm == "" {
			flush()
			continue
		}
		phrase = append(phrase, t.norm)
		if t.sentence {
			flush()
		}
	}
	flush()
	return codes
}
