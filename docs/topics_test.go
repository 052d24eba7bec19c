package docs

import (
	"bufio"
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// readmeTopics extracts the topic names listed in readme.md.
func readmeTopics(t *testing.T) []string {
	t.Helper()

	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var names []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			names = append(names, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}
	return names
}

// TestTopics keeps the readme index and the topic files in sync: every topic
// the readme lists loads, and every topic file is listed.
func TestTopics(t *testing.T) {
	listed := readmeTopics(t)
	if len(listed) == 0 {
		t.Fatal("readme.md lists no topics")
	}

	for _, name := range listed {
		t.Run("load_"+name, func(t *testing.T) {
			if _, err := Topic(name); err != nil {
				t.Errorf("failed to get topic %q: %v", name, err)
			}
		})
	}

	for _, name := range All() {
		if !slices.Contains(listed, name) {
			t.Errorf("topic %q is not listed in readme.md", name)
		}
	}
}

func TestTopicStar(t *testing.T) {
	all, err := Topic("*")
	if err != nil {
		t.Fatalf(`Topic("*") error = %v`, err)
	}
	for _, name := range All() {
		content, err := Topic(name)
		if err != nil {
			t.Fatalf("Topic(%q) error = %v", name, err)
		}
		if !strings.Contains(all, content) {
			t.Errorf(`Topic("*") does not contain topic %q`, name)
		}
	}
}

func TestUnknownTopic(t *testing.T) {
	if _, err := Topic("no-such-topic"); err == nil {
		t.Error("Topic() on an unknown name should fail")
	}
}

// knownLangs are the fence languages topics are allowed to use, so rendered
// help stays consistent.
var knownLangs = map[string]bool{
	"bash":    true,
	"console": true,
	"jsonl":   true,
	"json":    true,
	"yaml":    true,
}

// TestTopicStructure parses every topic and checks it opens with a level 1
// heading and tags its fenced code blocks with a known language.
func TestTopicStructure(t *testing.T) {
	for _, name := range All() {
		t.Run(name, func(t *testing.T) {
			content, err := topics.ReadFile(name + ".md")
			if err != nil {
				t.Fatalf("failed to read topic: %v", err)
			}

			root := goldmark.DefaultParser().Parse(text.NewReader(content))

			first := root.FirstChild()
			h, ok := first.(*ast.Heading)
			if !ok || h.Level != 1 {
				t.Errorf("topic %s must start with a # heading", name)
			}

			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering {
					return ast.WalkContinue, nil
				}
				if fcb, ok := n.(*ast.FencedCodeBlock); ok {
					if fcb.Info == nil {
						t.Errorf("topic %s has an untagged code fence", name)
						return ast.WalkContinue, nil
					}
					lang := string(fcb.Info.Segment.Value(content))
					if !knownLangs[lang] {
						t.Errorf("topic %s uses unknown fence language %q", name, lang)
					}
				}
				return ast.WalkContinue, nil
			})
		})
	}
}
