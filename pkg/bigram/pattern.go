package bigram

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Only four switches shape the pattern, so 16 entries hold every variant.
const patternCacheSize = 16

type patternKey struct {
	lettersOnly   bool
	caseSensitive bool
	apostrophes   bool
	hyphens       bool
}

var patternCache *lru.Cache[patternKey, *regexp.Regexp]

func init() {
	var err error
	patternCache, err = lru.New[patternKey, *regexp.Regexp](patternCacheSize)
	if err != nil {
		panic(err)
	}
}

func keyOf(c Config) patternKey {
	return patternKey{
		lettersOnly:   c.opts.LettersOnly,
		caseSensitive: c.opts.CaseSensitive,
		apostrophes:   c.opts.IncludeApostrophes,
		hyphens:       c.opts.IncludeHyphens,
	}
}

// Pattern returns the token-matching expression for c.
//
// Apostrophes and hyphens are only allowed between runs of base characters,
// so a token never starts or ends on one and never holds two in a row.
func Pattern(c Config) string {
	return keyOf(c).pattern()
}

func (k patternKey) pattern() string {
	var base string
	switch {
	case k.lettersOnly && k.caseSensitive:
		base = "[A-Za-z]"
	case k.lettersOnly:
		base = "[a-z]"
	case k.caseSensitive:
		base = "[A-Za-z0-9]"
	default:
		base = "[a-z0-9]"
	}

	var inner strings.Builder
	if k.apostrophes {
		inner.WriteString("'")
	}
	if k.hyphens {
		inner.WriteString(`\-`)
	}
	if inner.Len() == 0 {
		return base + "+"
	}
	return base + "+(?:[" + inner.String() + "]" + base + "+)*"
}

// compile returns the cached matcher for c. *regexp.Regexp is safe for
// concurrent use.
func compile(c Config) *regexp.Regexp {
	key := keyOf(c)
	if re, ok := patternCache.Get(key); ok {
		return re
	}
	re := regexp.MustCompile(key.pattern())
	patternCache.Add(key, re)
	return re
}
