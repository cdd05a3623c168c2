// Package strtemplate fills "{}" placeholders in a template, one argument per
// placeholder, left to right.
package strtemplate

import (
	"fmt"
	"strings"
)

const placeholder = "{}"

// Customize replaces each "{}" in template with the next value of vars,
// formatted with fmt.Sprint. A placeholder preceded by a backslash is kept
// literally (without the backslash). Placeholders beyond len(vars) stay as
// they are and surplus vars are ignored.
//
//	Customize("{}/posts/{}", "users", 42) // users/posts/42
func Customize(template string, vars ...any) string {
	if len(vars) == 0 && !strings.Contains(template, `\{}`) {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	next := 0
	for {
		i := strings.Index(template, placeholder)
		if i < 0 {
			b.WriteString(template)
			return b.String()
		}
		if i > 0 && template[i-1] == '\\' {
			b.WriteString(template[:i-1])
			b.WriteString(placeholder)
		} else {
			b.WriteString(template[:i])
			if next < len(vars) {
				b.WriteString(fmt.Sprint(vars[next]))
				next++
			} else {
				b.WriteString(placeholder)
			}
		}
		template = template[i+len(placeholder):]
	}
}

// Count returns the number of unescaped placeholders in template.
func Count(template string) int {
	n := 0
	for {
		i := strings.Index(template, placeholder)
		if i < 0 {
			return n
		}
		if i == 0 || template[i-1] != '\\' {
			n++
		}
		template = template[i+len(placeholder):]
	}
}
