// Package docs holds the embedded help topics served by the topic command.
package docs

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.md
var topics embed.FS

// Topic returns the content of a help topic. The special name "*" returns
// every topic concatenated, readme first excluded.
func Topic(name string) (string, error) {
	if name == "*" {
		var b strings.Builder
		for _, t := range All() {
			content, err := Topic(t)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
		return b.String(), nil
	}

	content, err := topics.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// All returns the sorted list of topic names. The readme is an index, not a
// topic.
func All() []string {
	entries, err := topics.ReadDir(".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name == "readme" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
