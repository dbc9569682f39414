package pattern

import (
	"fmt"
	"strings"
)

// segment 格式串编译后的一段。
// conv 为 nil 表示字面量段，text 即为要透传的文本；
// 否则 text 是指令名，arg 是花括号参数。
type segment struct {
	text string
	arg  string
	conv Converter
}

// parse 把格式串拆成字面量段与指令段。
// 语法:
//
//	%m %level %d{2006-01-02} %%（转义的百分号）
//
// 指令名取 % 之后最长的字母序列，必须精确命中已注册的指令。
func parse(format string, index map[string]Converter) ([]segment, error) {
	var segments []segment
	var literal strings.Builder

	flushLiteral := func() {
		if literal.Len() > 0 {
			segments = append(segments, segment{text: literal.String()})
			literal.Reset()
		}
	}

	i := 0
	for i < len(format) {
		ch := format[i]
		if ch != '%' {
			literal.WriteByte(ch)
			i++
			continue
		}

		// 行尾孤立的 %
		if i+1 >= len(format) {
			return nil, fmt.Errorf("pattern: dangling %% at end of format %q", format)
		}

		// %% 转义
		if format[i+1] == '%' {
			literal.WriteByte('%')
			i += 2
			continue
		}

		// 取最长字母序列作为指令名
		j := i + 1
		for j < len(format) && isAlpha(format[j]) {
			j++
		}
		if j == i+1 {
			return nil, fmt.Errorf("pattern: invalid directive at offset %d in %q", i, format)
		}
		name := format[i+1 : j]

		conv, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("pattern: unknown directive %%%s in %q", name, format)
		}

		// 可选的 {arg}
		arg := ""
		if j < len(format) && format[j] == '{' {
			end := strings.IndexByte(format[j:], '}')
			if end < 0 {
				return nil, fmt.Errorf("pattern: unterminated argument for %%%s in %q", name, format)
			}
			arg = format[j+1 : j+end]
			j += end + 1
		}

		flushLiteral()
		segments = append(segments, segment{text: name, arg: arg, conv: conv})
		i = j
	}

	flushLiteral()
	return segments, nil
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
