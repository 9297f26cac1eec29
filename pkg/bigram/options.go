package bigram

// Options are the caller-supplied tokenization switches.
type Options struct {
	LettersOnly          bool `yaml:"letters_only" json:"letters_only"`                     // a-z only, no digits
	IgnoreAllPunctuation bool `yaml:"ignore_all_punctuation" json:"ignore_all_punctuation"` // strip ASCII punctuation first
	CaseSensitive        bool `yaml:"case_sensitive" json:"case_sensitive"`
	IncludeApostrophes   bool `yaml:"include_apostrophes" json:"include_apostrophes"` // don't vs dont
	IncludeHyphens       bool `yaml:"include_hyphens" json:"include_hyphens"`         // mother-in-law as one word
	SentenceSensitive    bool `yaml:"sentence_sensitive" json:"sentence_sensitive"`   // no pairs across sentences
	LineSeparated        bool `yaml:"line_separated" json:"line_separated"`           // no pairs across lines
	ValidWords           bool `yaml:"valid_words" json:"valid_words"`                 // reserved, see TokenFilter
}

// DefaultOptions returns letters-only, punctuation-free, case-folded counting.
func DefaultOptions() Options {
	return Options{
		LettersOnly:          true,
		IgnoreAllPunctuation: true,
	}
}

// TokenFilter decides whether a token takes part in pairing.
// Rejected tokens are dropped before they reach the pair state.
type TokenFilter interface {
	Keep(token string) bool
}

// Config is a normalized, read-only set of Options.
// The zero value counts alphanumeric, case-folded tokens with no resets.
type Config struct {
	opts   Options
	filter TokenFilter
}

// NewConfig normalizes opts. Removing all punctuation leaves nothing for
// apostrophes, hyphens or sentence delimiters to act on, so those switches
// are turned off.
func NewConfig(opts Options) Config {
	if opts.IgnoreAllPunctuation {
		opts.IncludeApostrophes = false
		opts.IncludeHyphens = false
		opts.SentenceSensitive = false
	}
	return Config{opts: opts}
}

// DefaultConfig is NewConfig(DefaultOptions()).
func DefaultConfig() Config {
	return NewConfig(DefaultOptions())
}

// Options returns a copy of the normalized switches.
func (c Config) Options() Options {
	return c.opts
}

// WithFilter returns a copy of c that drops tokens rejected by f.
func (c Config) WithFilter(f TokenFilter) Config {
	c.filter = f
	return c
}

// Filter returns the token filter, or nil.
func (c Config) Filter() TokenFilter {
	return c.filter
}

func (c Config) keep(token string) bool {
	return c.filter == nil || c.filter.Keep(token)
}
