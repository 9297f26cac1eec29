package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/bigrams/pkg/bigram"
)

// Store persists finished counting runs.
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	// GetRun returns internalerr.ErrNotFound for unknown IDs.
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns the newest runs first, without their pairs.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// Run is one counting result as shown to the user.
type Run struct {
	ID        string
	Source    string // file names, "stdin" or "web"
	CreatedAt time.Time
	Options   bigram.Options
	Total     int            // pair occurrences before truncation to Pairs
	Unique    int            // distinct pairs before truncation to Pairs
	Pairs     []bigram.Entry // ranked, highest count first
}

// IDs generates lexically sortable run IDs.
type IDs struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewIDs creates a new run ID generator
func NewIDs() *IDs {
	return &IDs{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// New returns an ID for a run created at t.
func (g *IDs) New(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

// NewRun builds a run from counts, keeping the top entries (all when top <= 0).
func (g *IDs) NewRun(source string, cfg bigram.Config, counts bigram.Counts, top int) Run {
	now := time.Now().UTC()
	return Run{
		ID:        g.New(now),
		Source:    source,
		CreatedAt: now,
		Options:   cfg.Options(),
		Total:     counts.Total(),
		Unique:    len(counts),
		Pairs:     counts.Top(top),
	}
}
