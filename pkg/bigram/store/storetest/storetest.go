// Package storetest runs the same behavioral checks against every
// store.Store implementation.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/bigrams/pkg/bigram"
	"github.com/cognicore/bigrams/pkg/bigram/internalerr"
	"github.com/cognicore/bigrams/pkg/bigram/store"
)

// Run exercises s. The store must start empty.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()
	ids := store.NewIDs()

	opts := bigram.DefaultOptions()
	opts.LineSeparated = true
	cfg := bigram.NewConfig(opts)
	counts := bigram.CountLines([]string{"a b a b a c"}, cfg)

	first := ids.NewRun("one.txt", cfg, counts, 2)
	require.NoError(t, s.SaveRun(ctx, first))
	second := ids.NewRun("stdin", bigram.DefaultConfig(), bigram.Counts{}, 0)
	require.NoError(t, s.SaveRun(ctx, second))

	t.Run("get", func(t *testing.T) {
		got, err := s.GetRun(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, "one.txt", got.Source)
		assert.Equal(t, opts, got.Options)
		assert.Equal(t, 5, got.Total)
		assert.Equal(t, 3, got.Unique)
		assert.Equal(t, first.Pairs, got.Pairs)
		assert.WithinDuration(t, first.CreatedAt, got.CreatedAt, time.Millisecond)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.GetRun(ctx, "missing")
		assert.ErrorIs(t, err, internalerr.ErrNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		runs, err := s.ListRuns(ctx, 0)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, second.ID, runs[0].ID)
		assert.Equal(t, first.ID, runs[1].ID)
		assert.Empty(t, runs[1].Pairs)

		limited, err := s.ListRuns(ctx, 1)
		require.NoError(t, err)
		require.Len(t, limited, 1)
		assert.Equal(t, second.ID, limited[0].ID)
	})

	t.Run("replace", func(t *testing.T) {
		replaced := first
		replaced.Source = "renamed.txt"
		replaced.Pairs = replaced.Pairs[:1]
		require.NoError(t, s.SaveRun(ctx, replaced))

		got, err := s.GetRun(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed.txt", got.Source)
		assert.Len(t, got.Pairs, 1)
	})

	t.Run("reject empty id", func(t *testing.T) {
		err := s.SaveRun(ctx, store.Run{})
		assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
	})
}
