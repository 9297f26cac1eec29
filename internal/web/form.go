package web

import (
	"strconv"
	"strings"

	"github.com/cognicore/bigrams/pkg/bigram"
)

const (
	TopNDefault  = 50
	TopNMax      = 500
	TextMaxChars = 200_000
)

// option is one checkbox of the form.
type option struct {
	Name  string
	Label string
	field func(*bigram.Options) *bool
}

var formOptions = []option{
	{"ignore_all_punctuation", "Ignore punctuation", func(o *bigram.Options) *bool { return &o.IgnoreAllPunctuation }},
	{"letters_only", "Letters only", func(o *bigram.Options) *bool { return &o.LettersOnly }},
	{"case_sensitive", "Case sensitive", func(o *bigram.Options) *bool { return &o.CaseSensitive }},
	{"include_apostrophes", "Include apostrophes", func(o *bigram.Options) *bool { return &o.IncludeApostrophes }},
	{"include_hyphens", "Include hyphens", func(o *bigram.Options) *bool { return &o.IncludeHyphens }},
	{"sentence_sensitive", "Sentence sensitive", func(o *bigram.Options) *bool { return &o.SentenceSensitive }},
	{"line_separated", "Line separated", func(o *bigram.Options) *bool { return &o.LineSeparated }},
	{"valid_words", "Valid words", func(o *bigram.Options) *bool { return &o.ValidWords }},
}

// optionsFromForm sets each switch whose checkbox was posted with a
// non-empty value. Unchecked boxes are not posted at all.
func optionsFromForm(get func(string) string) (bigram.Options, map[string]bool) {
	var opts bigram.Options
	checked := make(map[string]bool)
	for _, o := range formOptions {
		if get(o.Name) != "" {
			*o.field(&opts) = true
			checked[o.Name] = true
		}
	}
	return opts, checked
}

// parseTopN accepts digits only; anything else falls back to the default.
func parseTopN(val string) int {
	val = strings.TrimSpace(val)
	if val == "" || strings.TrimLeft(val, "0123456789") != "" {
		return TopNDefault
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		// too many digits to fit an int
		return TopNMax
	}
	return min(max(n, 1), TopNMax)
}

// truncateChars keeps the first limit characters (not bytes) of s.
func truncateChars(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
