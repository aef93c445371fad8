package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// This test ensures that the documentation index is in sync with the
	// topic files:
	// 1. Every topic listed in readme.md can be loaded by GetTopic.
	// 2. Every .md file (excluding readme.md) is listed in readme.md.

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
	if len(topicsInReadme) == 0 {
		t.Fatal("no topics listed in readme.md")
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics: %v", err)
	}
	for _, topic := range all {
		found := false
		for _, listed := range topicsInReadme {
			if listed == topic {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestTopicNotFound(t *testing.T) {
	if _, err := GetTopic("no-such-topic"); err == nil {
		t.Error("expected an error for an unknown topic")
	}
}

func TestStarExpansion(t *testing.T) {
	doc, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*): %v", err)
	}
	for _, want := range []string{"# Accounting", "# Research", "# Quotes"} {
		if !strings.Contains(doc, want) {
			t.Errorf("expanded doc is missing %q", want)
		}
	}
}

func TestMarkdownParses(t *testing.T) {
	// Every topic must at least parse as markdown with a top-level
	// heading, since `aivest topic` renders them for the terminal.
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no markdown files found")
	}

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("failed to read %s: %v", file, err)
			}
			root := goldmark.DefaultParser().Parse(text.NewReader(content))
			if !root.HasChildren() {
				t.Errorf("%s parsed to an empty document", file)
			}
			if !strings.HasPrefix(string(content), "# ") {
				t.Errorf("%s does not start with a top-level heading", file)
			}
		})
	}
}
