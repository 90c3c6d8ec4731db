// Package parser extracts flashcards from markdown notes. A card starts with a
// "Q:" line, its answer follows a "A:" line and an optional "T:" line lists
// comma-separated tags. Each block may span several lines; "---" ends a card.
package parser

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const (
	frontPrefix = "Q:"
	backPrefix  = "A:"
	tagsPrefix  = "T:"
	separator   = "---"
)

// Entry is a card as written in a note, before it belongs to a deck.
type Entry struct {
	Front string
	Back  string
	Tags  []string
}

type state int

const (
	seeking state = iota
	readingFront
	readingBack
	readingTags
)

// ParseFile reads a file from the given path and extracts all entries.
func ParseFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all entries. Blocks without a
// front are dropped.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var entries []Entry
	var current Entry
	var block []string
	currentState := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.TrimSpace(strings.Join(block, "\n"))
		switch currentState {
		case readingFront:
			current.Front = content
		case readingBack:
			current.Back = content
		case readingTags:
			current.Tags = splitTags(content)
		}
		block = nil
	}

	finishEntry := func() {
		flushBlock()
		if current.Front != "" {
			entries = append(entries, current)
		}
		current = Entry{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		if line == separator {
			finishEntry()
			continue
		}

		next, rest, ok := cutPrefix(line)
		if !ok {
			if currentState != seeking {
				block = append(block, line)
			}
			continue
		}

		if next == readingFront && currentState != seeking {
			finishEntry() // a new question always starts a new card
		} else {
			flushBlock()
		}
		currentState = next
		block = append(block, rest)
	}

	finishEntry() // Finish the very last card in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// cutPrefix reports which block a line opens and returns its content with
// the prefix and one optional space removed.
func cutPrefix(line string) (state, string, bool) {
	for _, p := range []struct {
		prefix string
		state  state
	}{
		{frontPrefix, readingFront},
		{backPrefix, readingBack},
		{tagsPrefix, readingTags},
	} {
		if rest, ok := strings.CutPrefix(line, p.prefix); ok {
			return p.state, strings.TrimPrefix(rest, " "), true
		}
	}
	return seeking, "", false
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' }) {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
