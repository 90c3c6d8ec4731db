package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name            string
		input           string
		expectedEntries int
		expectedFront   string
		expectedBack    string
		expectedTags    []string
	}{
		{
			name:            "Simple Q&A",
			input:           "Q: What is the capital of France?\nA: Paris",
			expectedEntries: 1,
			expectedFront:   "What is the capital of France?",
			expectedBack:    "Paris",
		},
		{
			name:            "Q, A and tags",
			input:           "Q: What is 1+1?\nA: 2\nT: math, basics",
			expectedEntries: 1,
			expectedFront:   "What is 1+1?",
			expectedBack:    "2",
			expectedTags:    []string{"math", "basics"},
		},
		{
			name: "Multiline answer",
			input: `
Q: What are the primary colors?
A: Red
Blue
Yellow
`,
			expectedEntries: 1,
			expectedFront:   "What are the primary colors?",
			expectedBack:    "Red\nBlue\nYellow",
		},
		{
			name: "Two cards",
			input: `
Q: First question
A: First answer

Q: Second question
A: Second answer
`,
			expectedEntries: 2,
		},
		{
			name: "Separator ends a card",
			input: `Q: One
A: 1
---
Stray text is ignored
Q: Two
A: 2`,
			expectedEntries: 2,
		},
		{
			name:            "No cards, just text",
			input:           "This is a file with no questions.",
			expectedEntries: 0,
		},
		{
			name:            "Answer without question is dropped",
			input:           "A: orphan\nT: x",
			expectedEntries: 0,
		},
		{
			name:            "Prefixes with no space",
			input:           "Q:Question\nA:Answer\nT:a,,b",
			expectedEntries: 1,
			expectedFront:   "Question",
			expectedBack:    "Answer",
			expectedTags:    []string{"a", "b"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := Parse(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("Parse() returned an unexpected error: %v", err)
			}

			if len(entries) != tc.expectedEntries {
				t.Fatalf("Expected %d entries, but got %d", tc.expectedEntries, len(entries))
			}

			if tc.expectedEntries == 1 {
				e := entries[0]
				if e.Front != tc.expectedFront {
					t.Errorf("Expected Front to be '%s', but got '%s'", tc.expectedFront, e.Front)
				}
				if e.Back != tc.expectedBack {
					t.Errorf("Expected Back to be '%s', but got '%s'", tc.expectedBack, e.Back)
				}
				if strings.Join(e.Tags, "|") != strings.Join(tc.expectedTags, "|") {
					t.Errorf("Expected Tags to be %v, but got %v", tc.expectedTags, e.Tags)
				}
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(path, []byte("Q: a\nA: b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() returned an unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Front != "a" || entries[0].Back != "b" {
		t.Errorf("Unexpected entries: %+v", entries)
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.md")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
