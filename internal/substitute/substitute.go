// Package substitute replaces {{name}} placeholders in text templates,
// keeping the indentation of multi-line values.
package substitute

import (
	"strings"
	"unicode"
)

// Placeholder is a named, pre-rendered text block.
type Placeholder struct {
	Name  string
	Value string
}

// Token returns the literal marker of the placeholder in a template.
func (p Placeholder) Token() string {
	return "{{" + p.Name + "}}"
}

// Render substitutes every placeholder in the template.
//
// Each placeholder is an independent pass over the whole template, in the given order.
// On a line containing the placeholder's token, everything before the first occurrence
// is the indentation prefix: the value's continuation lines are prefixed with it,
// all occurrences on the line are replaced and the line is right-trimmed.
// Tokens without a placeholder are left untouched.
func Render(template string, placeholders []Placeholder) string {
	result := template
	for _, ph := range placeholders {
		result = renderOne(result, ph)
	}
	return result
}

func renderOne(template string, ph Placeholder) string {
	token := ph.Token()
	if !strings.Contains(template, token) {
		return template
	}
	lines := strings.Split(template, "\n")
	for i, line := range lines {
		position := strings.Index(line, token)
		if position < 0 {
			continue
		}
		value := Indent(line[:position], ph.Value)
		lines[i] = strings.TrimRightFunc(strings.ReplaceAll(line, token, value), unicode.IsSpace)
	}
	return strings.Join(lines, "\n")
}

// Indent prepends prefix to every line of value but the first one,
// which continues the line the value is spliced into.
func Indent(prefix, value string) string {
	if !strings.Contains(value, "\n") {
		return value
	}
	lines := strings.Split(value, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
