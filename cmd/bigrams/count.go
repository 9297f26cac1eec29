package main

import (
	"context"
	"fmt"

	"github.com/cognicore/bigrams/internal/histogram"
	"github.com/cognicore/bigrams/internal/input"
	"github.com/cognicore/bigrams/pkg/bigram"
	"github.com/cognicore/bigrams/pkg/bigram/config"
	"github.com/cognicore/bigrams/pkg/bigram/store"
	"github.com/cognicore/bigrams/pkg/bigram/store/sqlite"
)

func (a *app) runCount(ctx context.Context, comp *config.Components, f *flags, paths []string) error {
	var sources []input.Source
	switch {
	case len(paths) > 0:
		for _, p := range paths {
			src := input.FileSource(p)
			src.HTML = src.HTML || f.html
			sources = append(sources, src)
		}
	case a.stdinIsTerminal():
		return &exitError{code: 2, msg: "Use -i, or provide file input(s)."}
	default:
		src := input.ReaderSource("stdin", a.stdin)
		src.HTML = f.html
		sources = append(sources, src)
	}

	cfg := comp.Config()
	total, err := input.CountSources(ctx, cfg, sources, f.jobs)
	if err != nil {
		return err
	}

	entries := total.Top(comp.Top)
	if comp.Hist {
		err = histogram.Render(a.stdout, entries, a.width())
	} else {
		err = histogram.List(a.stdout, entries)
	}
	if err != nil {
		return err
	}

	if f.db != "" {
		return a.saveRun(ctx, f.db, input.Names(sources), cfg, total, comp.Top)
	}
	return nil
}

func (a *app) saveRun(ctx context.Context, dbPath, source string, cfg bigram.Config, counts bigram.Counts, top int) error {
	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	run := store.NewIDs().NewRun(source, cfg, counts, top)
	if err := st.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	a.logger.Info("saved run", "id", run.ID, "pairs", len(run.Pairs), "db", dbPath)
	return nil
}
