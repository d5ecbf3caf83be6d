package ui

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnclosedBlock is returned when a rule's "{" has no matching "}".
var ErrUnclosedBlock = errors.New("ui: unclosed block")

// ParseCSS parses a small CSS subset: ".class { k: v; }" and "#id { ... }" with /* */ comments.
// Blocks under any other selector are skipped.
func ParseCSS(src string) (*Stylesheet, error) {
	src = stripComments(src)
	sheet := &Stylesheet{}
	for {
		selector, rest, ok := strings.Cut(src, "{")
		if !ok {
			if strings.TrimSpace(src) != "" {
				return sheet, fmt.Errorf("ui: trailing text %q", strings.TrimSpace(src))
			}
			return sheet, nil
		}
		body, after, ok := strings.Cut(rest, "}")
		if !ok {
			return sheet, fmt.Errorf("%w: %s", ErrUnclosedBlock, strings.TrimSpace(selector))
		}
		src = after
		selector = strings.TrimSpace(selector)
		if len(selector) < 2 || (selector[0] != '.' && selector[0] != '#') {
			continue
		}
		sheet.Rules = append(sheet.Rules, Rule{Selector: selector, Props: declarations(body)})
	}
}

func declarations(body string) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(body, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		if k = strings.TrimSpace(k); k != "" {
			props[k] = strings.TrimSpace(v)
		}
	}
	return props
}

func stripComments(s string) string {
	var b strings.Builder
	for {
		before, rest, ok := strings.Cut(s, "/*")
		b.WriteString(before)
		if !ok {
			return b.String()
		}
		_, s, _ = strings.Cut(rest, "*/")
	}
}
