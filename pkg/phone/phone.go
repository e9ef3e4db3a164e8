// Package phone 提供尼日利亚手机号的规范化，规范化结果作为提交记录的唯一键。
package phone

import (
	"strings"
	"unicode"
)

const countryCode = "+234"

// dropSpace 去除 Unicode 空白（含 NBSP、U+202F）及 BOM
func dropSpace(r rune) rune {
	if unicode.IsSpace(r) || r == '\uFEFF' {
		return -1
	}
	return r
}

// Normalize 将用户输入的手机号转换为规范形式：
//   - 去除所有空白（任意 Unicode 空白）
//   - "+234..." 原样保留
//   - "234..."  补 "+"
//   - "0..."    首位 0 替换为 "+234"
//   - 其他输入原样返回
func Normalize(raw string) string {
	p := strings.Map(dropSpace, raw)

	switch {
	case strings.HasPrefix(p, countryCode):
		return p
	case strings.HasPrefix(p, "234"):
		return "+" + p
	case strings.HasPrefix(p, "0"):
		return countryCode + p[1:]
	default:
		return p
	}
}
