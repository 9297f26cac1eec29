package bigram

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
)

// Pair is an ordered pair of consecutive tokens.
type Pair struct {
	Prev string
	Curr string
}

// String renders the pair as "(prev, curr)".
func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s)", p.Prev, p.Curr)
}

// Label renders the pair as "prev,curr".
func (p Pair) Label() string {
	return p.Prev + "," + p.Curr
}

// Counts maps each distinct pair to its number of occurrences.
type Counts map[Pair]int

// Add sums other into c.
func (c Counts) Add(other Counts) {
	for p, n := range other {
		c[p] += n
	}
}

// Total returns the number of pair occurrences.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Merge sums independently counted sources. No pair spans two sources.
func Merge(all ...Counts) Counts {
	merged := make(Counts)
	for _, c := range all {
		merged.Add(c)
	}
	return merged
}

// pairState is the single previous-word slot threaded through a count.
type pairState struct {
	prev string
	ok   bool
}

func (s pairState) step(word string, counts Counts) pairState {
	if s.ok {
		counts[Pair{Prev: s.prev, Curr: word}]++
	}
	return pairState{prev: word, ok: true}
}

func (pairState) reset() pairState {
	return pairState{}
}

type counter struct {
	cfg    Config
	counts Counts
	state  pairState
}

func newCounter(cfg Config) *counter {
	return &counter{cfg: cfg, counts: make(Counts)}
}

func (k *counter) line(line string) {
	if k.cfg.opts.LineSeparated {
		k.state = k.state.reset()
	}
	for sentence := range k.cfg.Sentences(line) {
		for word := range k.cfg.Tokens(sentence) {
			k.state = k.state.step(word, k.counts)
		}
		if k.cfg.opts.SentenceSensitive {
			k.state = k.state.reset()
		}
	}
}

// Count consumes lines in order and returns the pair frequencies.
func Count(lines iter.Seq[string], cfg Config) Counts {
	k := newCounter(cfg)
	for line := range lines {
		k.line(line)
	}
	return k.counts
}

// CountLines is Count over a slice.
func CountLines(lines []string, cfg Config) Counts {
	return Count(slices.Values(lines), cfg)
}

// CountSeq is Count over a fallible sequence. It stops at the first
// error and returns it with no counts.
func CountSeq(lines iter.Seq2[string, error], cfg Config) (Counts, error) {
	k := newCounter(cfg)
	for line, err := range lines {
		if err != nil {
			return nil, err
		}
		k.line(line)
	}
	return k.counts, nil
}

// CountReader counts the lines read from r.
func CountReader(r io.Reader, cfg Config) (Counts, error) {
	return CountSeq(Lines(r), cfg)
}

// Lines yields the lines of r without their terminators. Lines may be any
// length.
func Lines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if len(line) > 0 {
				if !yield(strings.TrimRight(line, "\r\n"), nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", fmt.Errorf("read line: %w", err))
				return
			}
		}
	}
}

// SplitLines splits text on \n, \r\n and \r.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
