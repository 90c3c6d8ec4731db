// Package importer turns directories of markdown notes, local or in a git
// repository, into decks. Each note file becomes a deck named after the file.
package importer

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/conorfennell/flashflow/internal/domain"
	"github.com/conorfennell/flashflow/internal/gitsource"
	"github.com/conorfennell/flashflow/internal/knol"
	"github.com/conorfennell/flashflow/internal/parser"
)

// Decks is the part of the store an import writes through.
type Decks interface {
	State() domain.AppState
	AddDeck(title, description string) string
	AddCard(deckID, front, back string, tags []string) (string, bool)
}

// Result summarizes an import.
type Result struct {
	Files        int
	DecksCreated int
	CardsAdded   int
	CardsSkipped int // already present in the deck
	Errors       []error
}

type Importer struct {
	decks    Decks
	reposDir string
	progress io.Writer
	log      *slog.Logger
}

// New creates an Importer. Git sources are checked out under reposDir.
func New(decks Decks, reposDir string, log *slog.Logger) *Importer {
	return &Importer{decks: decks, reposDir: reposDir, log: log}
}

// WithProgress sets where git clone/pull progress is written.
func (im *Importer) WithProgress(w io.Writer) *Importer {
	im.progress = w
	return im
}

// Import reads all markdown files under source, a directory or a git URL.
// Files that fail to parse are reported in Result.Errors; the returned error
// is for failures that stop the whole import.
func (im *Importer) Import(ctx context.Context, source string) (Result, error) {
	dir := source
	if gitsource.IsGitURL(source) {
		localPath, err := gitsource.LocalPath(im.reposDir, source)
		if err != nil {
			return Result{}, err
		}
		if err := gitsource.Sync(ctx, im.log, source, localPath, im.progress); err != nil {
			return Result{}, err
		}
		dir = localPath
	}

	res, err := im.importDir(ctx, dir)
	if err != nil {
		return res, err
	}

	im.log.Info("Import complete",
		"source", source,
		"files", res.Files,
		"decks_created", res.DecksCreated,
		"cards_added", res.CardsAdded,
		"cards_skipped", res.CardsSkipped,
		"errors", len(res.Errors),
	)
	return res, nil
}

func (im *Importer) importDir(ctx context.Context, dir string) (Result, error) {
	var res Result
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		entries, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			res.Errors = append(res.Errors, fmt.Errorf("parsing %s: %w", path, parseErr))
			return nil
		}
		res.Files++

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		im.importFile(&res, rel, entries)
		return nil
	})
	if walkErr != nil {
		return res, fmt.Errorf("error walking directory %s: %w", dir, walkErr)
	}
	return res, nil
}

func (im *Importer) importFile(res *Result, rel string, entries []parser.Entry) {
	title := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))

	deckID, seen := im.findDeck(title)
	if deckID == "" {
		deckID = im.decks.AddDeck(title, "Imported from "+filepath.ToSlash(rel))
		seen = make(map[string]bool)
		res.DecksCreated++
		im.log.Info("New deck created", "title", title)
	}

	for _, e := range entries {
		hash := knol.Hash(e.Front, e.Back)
		if seen[hash] {
			res.CardsSkipped++
			continue
		}
		if _, ok := im.decks.AddCard(deckID, e.Front, e.Back, e.Tags); !ok {
			res.Errors = append(res.Errors, fmt.Errorf("deck %s disappeared during import", deckID))
			return
		}
		seen[hash] = true
		res.CardsAdded++
	}
}

// findDeck returns the first deck with the given title and the content
// hashes of its cards.
func (im *Importer) findDeck(title string) (string, map[string]bool) {
	for _, d := range im.decks.State().Decks {
		if d.Title != title {
			continue
		}
		seen := make(map[string]bool, len(d.Cards))
		for _, c := range d.Cards {
			seen[knol.Hash(c.Front, c.Back)] = true
		}
		return d.ID, seen
	}
	return "", nil
}
