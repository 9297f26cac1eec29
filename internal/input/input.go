// Package input opens the text sources counted by the command-line tool.
package input

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/bigrams/pkg/bigram"
)

// Source is one independently counted input.
type Source struct {
	Name string
	HTML bool // extract text from markup before counting
	Open func() (io.ReadCloser, error)
}

// FileSource reads path. Files ending in .html or .htm are treated as HTML.
func FileSource(path string) Source {
	ext := strings.ToLower(filepath.Ext(path))
	return Source{
		Name: path,
		HTML: ext == ".html" || ext == ".htm",
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// ReaderSource wraps an already open reader such as stdin. The reader is
// not closed.
func ReaderSource(name string, r io.Reader) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	}
}

// Count counts a single source.
func (s Source) Count(cfg bigram.Config) (bigram.Counts, error) {
	rc, err := s.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if s.HTML {
		text, err := HTMLText(rc)
		if err != nil {
			return nil, fmt.Errorf("%s: parse html: %w", s.Name, err)
		}
		r = strings.NewReader(text)
	}

	counts, err := bigram.CountReader(r, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	return counts, nil
}

// CountSources counts every source on its own, at most jobs at a time, and
// sums the results. Pairs never span two sources. The first error cancels
// the remaining work.
func CountSources(ctx context.Context, cfg bigram.Config, sources []Source, jobs int) (bigram.Counts, error) {
	results := make([]bigram.Counts, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			counts, err := src.Count(cfg)
			if err != nil {
				return err
			}
			results[i] = counts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return bigram.Merge(results...), nil
}

// Names lists the source names, comma separated.
func Names(sources []Source) string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}
	return strings.Join(names, ",")
}
