package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// This test ensures that the documentation index is in sync with the topics.
	// It checks two things:
	// 1. Every topic listed in docs/readme.md can be loaded.
	// 2. Every .md file in the docs directory (excluding readme.md itself) is listed in docs/readme.md.

	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)

	for scanner.Scan() {
		matches := topicRegex.FindStringSubmatch(scanner.Text())
		if len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}
	for _, file := range files {
		topic := strings.TrimSuffix(filepath.Base(file), ".md")
		if topic == "readme" {
			continue
		}
		found := false
		for _, listed := range topicsInReadme {
			if listed == topic {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q is not listed in docs/readme.md", topic)
		}
	}
}

func TestGetAllTopics(t *testing.T) {
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"change", "config", "lots", "stats", "valuation"}
	if strings.Join(topics, ",") != strings.Join(want, ",") {
		t.Errorf("GetAllTopics() = %v, want %v", topics, want)
	}

	all, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range want {
		content, _ := GetTopic(topic)
		if !strings.Contains(all, content) {
			t.Errorf("GetTopic(\"*\") does not contain topic %q", topic)
		}
	}

	if _, err := GetTopic("unknown"); err == nil {
		t.Errorf("GetTopic(\"unknown\") succeeded, want an error")
	}
}

// TestHeadings checks that every topic starts with a single level 1 heading.
func TestHeadings(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("failed to read %s: %v", file, err)
			}
			root := goldmark.DefaultParser().Parse(text.NewReader(content))

			var levels []int
			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if h, ok := n.(*ast.Heading); ok && entering {
					levels = append(levels, h.Level)
				}
				return ast.WalkContinue, nil
			})

			if len(levels) == 0 || levels[0] != 1 {
				t.Fatalf("%s: want a level 1 heading first, got levels %v", file, levels)
			}
			for _, l := range levels[1:] {
				if l == 1 {
					t.Errorf("%s: more than one level 1 heading", file)
				}
			}
		})
	}
}
