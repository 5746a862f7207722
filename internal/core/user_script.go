package core

import "strings"

// frontMatter holds the metadata a user script declares about itself
// in leading `// @key: value` comment lines.
type frontMatter struct {
	Name        string
	Description string
}

// parseFrontMatter scans leading comment lines for `// @key: value`
// directives, stopping at the first line that is neither a comment
// nor blank. Unrecognized keys are ignored.
func parseFrontMatter(src string) frontMatter {
	fm := frontMatter{}
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "//") {
			break
		}
		body := strings.TrimSpace(strings.TrimPrefix(trimmed, "//"))
		if !strings.HasPrefix(body, "@") {
			continue
		}
		directive := strings.TrimPrefix(body, "@")
		key, value, ok := strings.Cut(directive, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "name":
			fm.Name = value
		case "description":
			fm.Description = value
		}
	}
	return fm
}
