package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/cognicore/bigrams/internal/histogram"
	"github.com/cognicore/bigrams/pkg/bigram"
	"github.com/cognicore/bigrams/pkg/bigram/config"
)

const promptLine = "bigrams>> "

// errQuit ends the interactive session without an error.
var errQuit = errors.New("quit")

func (a *app) runInteractive(comp *config.Components) error {
	rl, err := a.newLineReader()
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(a.stdout, "Enter empty line to quit.")

	opts, err := a.askOptions(rl, comp.Options)
	if errors.Is(err, errQuit) {
		return nil
	}
	if err != nil {
		return err
	}
	cfg := bigram.NewConfig(opts)
	if comp.Stoplist != nil && comp.Stoplist.Len() > 0 {
		cfg = cfg.WithFilter(comp.Stoplist)
	}

	fmt.Fprintln(a.stdout, "\nType a line of text to find bigrams.")
	fmt.Fprintln(a.stdout)
	rl.SetPrompt(promptLine)
	for {
		text, err := readLine(rl)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return nil
		}
		if err := a.countLine(text, cfg); err != nil {
			return err
		}
	}
}

// askOptions walks through the switches that matter most, starting from
// current. Removing punctuation skips the questions it would override.
func (a *app) askOptions(rl lineReader, current bigram.Options) (bigram.Options, error) {
	opts := current
	var err error

	if opts.LettersOnly, err = a.askYesNo(rl, "Only letters?", opts.LettersOnly); err != nil {
		return opts, err
	}
	if opts.IgnoreAllPunctuation, err = a.askYesNo(rl, "Remove all punctuation?", opts.IgnoreAllPunctuation); err != nil {
		return opts, err
	}

	if opts.IgnoreAllPunctuation {
		fmt.Fprintln(a.stdout, "***punctuation removed*** apostrophes, hyphens, and sentence markings are ignored.")
		return opts, nil
	}
	if opts.IncludeApostrophes, err = a.askYesNo(rl, "Keep apostrophes inside words ex. don't?", opts.IncludeApostrophes); err != nil {
		return opts, err
	}
	if opts.IncludeHyphens, err = a.askYesNo(rl, "Keep hyphens inside words ex. mother-in-law?", opts.IncludeHyphens); err != nil {
		return opts, err
	}
	if opts.SentenceSensitive, err = a.askYesNo(rl, "Reset bigrams at sentence ends?", opts.SentenceSensitive); err != nil {
		return opts, err
	}
	return opts, nil
}

// askYesNo repeats the question until it gets y, n or an empty answer,
// which keeps def.
func (a *app) askYesNo(rl lineReader, question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	rl.SetPrompt(fmt.Sprintf("%s [%s]: ", question, hint))
	for {
		ans, err := readLine(rl)
		if err != nil {
			return def, err
		}
		switch strings.ToLower(strings.TrimSpace(ans)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(a.stdout, "Please answer 'y' or 'n'.")
	}
}

func (a *app) countLine(text string, cfg bigram.Config) error {
	counts := bigram.CountLines([]string{text}, cfg)
	if len(counts) == 0 {
		_, err := fmt.Fprintln(a.stdout, "**no data**")
		return err
	}
	return histogram.List(a.stdout, counts.Top(0))
}

// readLine maps Ctrl+C and Ctrl+D to errQuit.
func readLine(rl lineReader) (string, error) {
	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", errQuit
	}
	return line, err
}
