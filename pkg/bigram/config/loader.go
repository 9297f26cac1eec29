package config

import (
	"fmt"

	"github.com/cognicore/bigrams/pkg/bigram"
	"github.com/cognicore/bigrams/pkg/bigram/stoplist"
)

// DefaultTop is the number of pairs shown when nothing says otherwise.
const DefaultTop = 50

// Loader loads all configuration files and constructs components
type Loader struct {
	ProfilePath  string
	StoplistPath string
}

// Components holds all loaded configuration components
type Components struct {
	Options  bigram.Options
	Top      int
	Hist     bool
	Stoplist *stoplist.Manager // nil when no stopwords are configured
}

// Config returns the normalized counting configuration.
func (c *Components) Config() bigram.Config {
	cfg := bigram.NewConfig(c.Options)
	if c.Stoplist != nil && c.Stoplist.Len() > 0 {
		cfg = cfg.WithFilter(c.Stoplist)
	}
	return cfg
}

// Load reads all configuration files and returns initialized components.
// Anything not set by a file keeps its default.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{
		Options: bigram.DefaultOptions(),
		Top:     DefaultTop,
	}
	var stops []string

	// Load profile
	if l.ProfilePath != "" {
		profile, err := LoadProfile(l.ProfilePath)
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		comp.Options = profile.Options
		if profile.Top != nil {
			comp.Top = *profile.Top
		}
		if profile.Hist != nil {
			comp.Hist = *profile.Hist
		}
		stops = append(stops, profile.Stopwords...)
	}

	// Load stoplist
	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stops = append(stops, sl.Terms...)
	}

	if len(stops) > 0 {
		comp.Stoplist = stoplist.NewManager(stops)
	}

	return comp, nil
}
