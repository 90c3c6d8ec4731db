package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/conorfennell/flashflow/internal/config"
	"github.com/conorfennell/flashflow/internal/domain"
	"github.com/conorfennell/flashflow/internal/importer"
	"github.com/conorfennell/flashflow/internal/logger"
	"github.com/conorfennell/flashflow/internal/storage"
	"github.com/conorfennell/flashflow/internal/store"
	"github.com/conorfennell/flashflow/internal/web"
)

const usage = `Usage: flashflow [flags] <command> [args]

Commands:
  serve              run the JSON API (default)
  import <dir|url>   import markdown notes from a directory or git repository
  due [deck-id]      list cards due for review
  stats              show card counts per deck
  clear              delete the saved state
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "flashflow: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, rest, err := config.Load(args)
	if err != nil {
		fmt.Fprint(stderr, usage)
		return err
	}
	log := logger.New(cfg.Log, stderr)

	backend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	snaps := storage.NewSnapshots(backend,
		storage.WithKey(cfg.StateKey),
		storage.WithTimeout(cfg.PersistTimeout),
		storage.WithLogger(log),
	)

	state, ok := snaps.Load(ctx)
	if !ok {
		log.Info("No saved state, starting empty", "backend", cfg.Backend)
		state = domain.EmptyState()
	}
	st := store.New(
		store.WithInitialState(state),
		store.WithPersister(snaps),
		store.WithLogger(log),
	)

	cmd := "serve"
	if len(rest) > 0 {
		cmd, rest = rest[0], rest[1:]
	}

	switch cmd {
	case "serve":
		return serve(ctx, cfg.HTTP.Addr, st, log)
	case "import":
		if len(rest) != 1 {
			return errors.New("import needs exactly one source")
		}
		res, err := importer.New(st, cfg.Import.ReposDir, log).WithProgress(stderr).Import(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Imported %d files: %d new decks, %d cards added, %d skipped, %d errors.\n",
			res.Files, res.DecksCreated, res.CardsAdded, res.CardsSkipped, len(res.Errors))
		for _, e := range res.Errors {
			fmt.Fprintf(stdout, "- %s\n", e)
		}
		return nil
	case "due":
		var cards []domain.Card
		if len(rest) > 0 {
			cards = st.DeckCardsDueToday(rest[0])
		} else {
			cards = st.CardsDueToday()
		}
		printDue(stdout, st, cards)
		return nil
	case "stats":
		printStats(stdout, st)
		return nil
	case "clear":
		snaps.Clear(ctx)
		fmt.Fprintln(stdout, "Saved state cleared.")
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func openBackend(cfg *config.Config) (storage.Backend, error) {
	switch cfg.Backend {
	case "sqlite":
		return storage.OpenSQLite(cfg.SQLite.Path)
	case "redis":
		return storage.OpenRedis(cfg.Redis.URL)
	case "memory":
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func serve(ctx context.Context, addr string, st *store.Store, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           web.NewServer(st, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	log.Info("Server stopped")
	return nil
}

func printDue(w io.Writer, st *store.Store, cards []domain.Card) {
	fmt.Fprintf(w, "%d cards due.\n", len(cards))
	for _, c := range cards {
		title := c.DeckID
		if d, ok := st.DeckByID(c.DeckID); ok {
			title = d.Title
		}
		fmt.Fprintf(w, "- [%s] %s (%s)\n", title, c.Front, c.Status)
	}
}

func printStats(w io.Writer, st *store.Store) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DECK\tID\tTOTAL\tNEW\tLEARNING\tMASTERED\tDUE")
	for _, d := range st.State().Decks {
		stats, _ := st.DeckStats(d.ID)
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			d.Title, d.ID, stats.Total, stats.NewCards, stats.Learning, stats.Mastered,
			len(st.DeckCardsDueToday(d.ID)))
	}
	tw.Flush()
}
