package bigram

import (
	"iter"
	"regexp"
	"strings"
)

// punctuation is every printable ASCII character that is neither
// alphanumeric nor whitespace.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Abbreviations, decimals and ellipses all split here.
var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Preprocess folds case, strips punctuation and collapses whitespace,
// in that order.
func Preprocess(line string, c Config) string {
	if !c.opts.CaseSensitive {
		line = strings.ToLower(line)
	}
	if c.opts.IgnoreAllPunctuation {
		line = removePunctuation(line)
	}
	return strings.Join(strings.Fields(line), " ")
}

func removePunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)
}

// Sentences yields the preprocessed line, split on runs of . ! ? when
// SentenceSensitive is set.
func (c Config) Sentences(line string) iter.Seq[string] {
	normalized := Preprocess(line, c)
	return func(yield func(string) bool) {
		if !c.opts.SentenceSensitive {
			yield(normalized)
			return
		}
		for _, sentence := range sentenceSplit.Split(normalized, -1) {
			if !yield(sentence) {
				return
			}
		}
	}
}

// Tokens lazily yields the words of text in order of appearance.
// text is matched as given; run it through Preprocess first.
func (c Config) Tokens(text string) iter.Seq[string] {
	re := compile(c)
	return func(yield func(string) bool) {
		rest := text
		for len(rest) > 0 {
			loc := re.FindStringIndex(rest)
			if loc == nil {
				return
			}
			word := rest[loc[0]:loc[1]]
			rest = rest[loc[1]:]
			if !c.keep(word) {
				continue
			}
			if !yield(word) {
				return
			}
		}
	}
}
