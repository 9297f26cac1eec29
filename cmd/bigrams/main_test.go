package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/bigrams/pkg/bigram/internalerr"
)

func init() {
	color.NoColor = true
}

type testApp struct {
	*app
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestApp(stdin string, terminal bool) *testApp {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return &testApp{
		app: &app{
			stdin:           strings.NewReader(stdin),
			stdout:          out,
			stderr:          errOut,
			logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
			stdinIsTerminal: func() bool { return terminal },
			width:           func() int { return 40 },
		},
		out: out,
		err: errOut,
	}
}

func (ta *testApp) run(args ...string) error {
	cmd := ta.rootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCountStdin(t *testing.T) {
	ta := newTestApp("a b a b a\n", false)
	require.NoError(t, ta.run())
	assert.Equal(t, "(a, b): 2\n(b, a): 2\n", ta.out.String())
}

func TestNoInputOnTerminalExitsWithTwo(t *testing.T) {
	ta := newTestApp("", true)
	err := ta.run()

	var exit *exitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 2, exit.code)
	assert.Empty(t, ta.out.String())
}

func TestFlagsOverrideDefaults(t *testing.T) {
	ta := newTestApp("Don't stop. Don't go\n", false)
	require.NoError(t, ta.run(
		"--ignore-all-punctuation=false",
		"--include-apostrophes",
		"--sentence-sensitive",
		"--case-sensitive",
	))
	assert.Equal(t, "(Don't, go): 1\n(Don't, stop): 1\n", ta.out.String())
}

func TestTopLimitsOutput(t *testing.T) {
	ta := newTestApp("a b c d e f\n", false)
	require.NoError(t, ta.run("--top", "2"))
	assert.Equal(t, 2, strings.Count(ta.out.String(), "\n"))
}

func TestNegativeTopRejected(t *testing.T) {
	ta := newTestApp("a b\n", false)
	assert.Error(t, ta.run("--top", "-3"))
}

func TestFilesAreCountedIndependently(t *testing.T) {
	a := writeFile(t, "a.txt", "one two\n")
	b := writeFile(t, "b.txt", "three four\n")

	ta := newTestApp("", true)
	require.NoError(t, ta.run(a, b))
	out := ta.out.String()
	assert.Contains(t, out, "(one, two): 1")
	assert.Contains(t, out, "(three, four): 1")
	assert.NotContains(t, out, "(two, three)")
}

func TestMissingFileFails(t *testing.T) {
	ta := newTestApp("", true)
	err := ta.run(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHistogramOutput(t *testing.T) {
	ta := newTestApp("x y x y\n", false)
	require.NoError(t, ta.run("--hist"))
	lines := strings.Split(strings.TrimSuffix(ta.out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	// width 40, label 3: 31 columns of bar for the top pair
	assert.Equal(t, "x,y | "+strings.Repeat("#", 31)+" 2", lines[0])
}

func TestProfileAndFlagPrecedence(t *testing.T) {
	profile := writeFile(t, "profile.yaml", `options:
  letters_only: false
top: 1
stopwords: [the]
`)

	ta := newTestApp("the r2 d2 the r2 d2 c3\n", false)
	require.NoError(t, ta.run("--config", profile))
	assert.Equal(t, "(r2, d2): 2\n", ta.out.String())

	ta = newTestApp("the r2 d2 the r2 d2 c3\n", false)
	require.NoError(t, ta.run("--config", profile, "--letters-only", "--top", "0"))
	assert.Equal(t, "(r, d): 2\n(d, c): 1\n(d, r): 1\n", ta.out.String())
}

func TestSaveAndShowRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	ta := newTestApp("new york new york\n", false)
	require.NoError(t, ta.run("--db", db))

	ta = newTestApp("", true)
	require.NoError(t, ta.run("history", "--db", db))
	lines := strings.Split(strings.TrimSpace(ta.out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	id := strings.Fields(lines[1])[0]
	assert.Contains(t, lines[1], "stdin")

	ta = newTestApp("", true)
	require.NoError(t, ta.run("show", id, "--db", db))
	assert.Contains(t, ta.out.String(), "(new, york): 2")
	assert.Contains(t, ta.out.String(), "(york, new): 1")

	ta = newTestApp("", true)
	assert.ErrorIs(t, ta.run("show", "01ARZ3NDEKTSV4RRFFQ69G5FAV", "--db", db), internalerr.ErrNotFound)
}

func TestHistoryRequiresDB(t *testing.T) {
	ta := newTestApp("", true)
	assert.ErrorIs(t, ta.run("history", "--db", ""), internalerr.ErrInvalidInput)
}
