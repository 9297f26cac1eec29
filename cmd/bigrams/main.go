package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cognicore/bigrams/internal/histogram"
	"github.com/cognicore/bigrams/pkg/bigram"
	"github.com/cognicore/bigrams/pkg/bigram/config"
)

// exitError carries a message and exit status that bypass error logging.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// lineReader is the part of *readline.Instance the interactive mode uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// app wires the commands to their terminal.
type app struct {
	stdin           io.Reader
	stdout          io.Writer
	stderr          io.Writer
	logger          *slog.Logger
	stdinIsTerminal func() bool
	width           func() int
	newLineReader   func() (lineReader, error)
}

func newApp(logger *slog.Logger) *app {
	return &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger,
		stdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		width: func() int {
			return histogram.TerminalWidth(int(os.Stdout.Fd()))
		},
		newLineReader: func() (lineReader, error) {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          promptLine,
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				Stdin:           readline.NewCancelableStdin(os.Stdin),
				Stdout:          os.Stdout,
				Stderr:          os.Stderr,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to initialize readline: %w", err)
			}
			return rl, nil
		},
	}
}

// flags holds every command-line setting of the root command.
type flags struct {
	opts        bigram.Options
	top         int
	hist        bool
	interactive bool
	profile     string
	stoplist    string
	html        bool
	jobs        int
	db          string
}

// optionFlags maps each counting switch to its flag.
var optionFlags = []struct {
	name  string
	usage string
	field func(*bigram.Options) *bool
}{
	{"letters-only", "Only letters, no digits.", func(o *bigram.Options) *bool { return &o.LettersOnly }},
	{"ignore-all-punctuation", "Strip all punctuation.", func(o *bigram.Options) *bool { return &o.IgnoreAllPunctuation }},
	{"case-sensitive", "Keep letter case.", func(o *bigram.Options) *bool { return &o.CaseSensitive }},
	{"include-apostrophes", "Keep apostrophes within words.", func(o *bigram.Options) *bool { return &o.IncludeApostrophes }},
	{"include-hyphens", "Keep hyphens within words.", func(o *bigram.Options) *bool { return &o.IncludeHyphens }},
	{"sentence-sensitive", "Reset bigram sequence across sentences.", func(o *bigram.Options) *bool { return &o.SentenceSensitive }},
	{"line-separated", "Reset bigram sequence at newline.", func(o *bigram.Options) *bool { return &o.LineSeparated }},
	{"valid-words", "Reserved; has no effect yet.", func(o *bigram.Options) *bool { return &o.ValidWords }},
}

func (a *app) rootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:           "bigrams [FILES...]",
		Short:         "Count bigrams from files or stdin. Use -i for interactive mode.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := a.resolve(cmd, f)
			if err != nil {
				return err
			}
			if f.interactive {
				return a.runInteractive(comp)
			}
			return a.runCount(cmd.Context(), comp, f, args)
		},
	}
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	defaults := bigram.DefaultOptions()
	fs := cmd.Flags()
	for _, of := range optionFlags {
		fs.BoolVar(of.field(&f.opts), of.name, *of.field(&defaults), of.usage)
	}
	fs.IntVar(&f.top, "top", config.DefaultTop, "Show top # results (0 for all).")
	fs.BoolVar(&f.hist, "hist", false, "Show a bar chart of bigrams.")
	fs.BoolVarP(&f.interactive, "interactive", "i", false, "Interactive helper.")
	fs.StringVar(&f.profile, "config", "", "YAML profile with options, top, hist and stopwords.")
	fs.StringVar(&f.stoplist, "stoplist", "", "YAML stoplist; listed words are skipped before pairing.")
	fs.BoolVar(&f.html, "html", false, "Treat every input as HTML.")
	fs.IntVar(&f.jobs, "jobs", 4, "Files counted in parallel.")
	cmd.PersistentFlags().StringVar(&f.db, "db", os.Getenv("BIGRAMS_DB"), "SQLite database for saved runs.")

	cmd.AddCommand(a.historyCmd(f), a.showCmd(f))
	return cmd
}

// resolve loads the profile and stoplist, then applies explicitly set flags
// on top.
func (a *app) resolve(cmd *cobra.Command, f *flags) (*config.Components, error) {
	loader := config.Loader{
		ProfilePath:  f.profile,
		StoplistPath: f.stoplist,
	}
	comp, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	fs := cmd.Flags()
	for _, of := range optionFlags {
		if fs.Changed(of.name) {
			*of.field(&comp.Options) = *of.field(&f.opts)
		}
	}
	if fs.Changed("top") {
		if f.top < 0 {
			return nil, fmt.Errorf("--top must be >= 0, got %d", f.top)
		}
		comp.Top = f.top
	}
	if fs.Changed("hist") {
		comp.Hist = f.hist
	}
	return comp, nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newApp(logger).rootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	var exit *exitError
	if errors.As(err, &exit) {
		fmt.Fprintln(os.Stderr, exit.msg)
		stop()
		os.Exit(exit.code)
	}
	logger.Error("bigrams failed", "err", err)
	stop()
	os.Exit(1)
}
