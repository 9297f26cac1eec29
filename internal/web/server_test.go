package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/bigrams/pkg/bigram"
	"github.com/cognicore/bigrams/pkg/bigram/store/memstore"
)

type testServer struct {
	*Server
	store    *memstore.Store
	observer *PrometheusObserver
	registry *prometheus.Registry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	obs, err := NewPrometheusObserver(reg)
	require.NoError(t, err)
	st := memstore.New()
	srv, err := New(Config{Store: st, Observer: obs, Gatherer: reg})
	require.NoError(t, err)
	return &testServer{Server: srv, store: st, observer: obs, registry: reg}
}

func (ts *testServer) post(t *testing.T, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNewRequiresStore(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestFormRendersOptions(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.get(t, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, o := range formOptions {
		assert.Contains(t, body, `name="`+o.Name+`"`)
		assert.Contains(t, body, o.Label)
	}
	assert.Contains(t, body, `value="50"`)
}

func TestSubmitEmptyText(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.post(t, url.Values{"text": {"   \n  "}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), msgEmpty)
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.observer.submissions.WithLabelValues(outcomeEmpty)))
}

func TestSubmitCountsAndSaves(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.post(t, url.Values{
		"text":                   {"The cat sat.\nThe cat ran."},
		"ignore_all_punctuation": {"on"},
		"letters_only":           {"on"},
		"top_n":                  {"2"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<td>the,cat</td><td class=\"count\">2</td>")
	assert.Contains(t, body, "5 pairs, 4 distinct")
	assert.NotContains(t, body, "sat,the")

	runs, err := ts.store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "web", runs[0].Source)
	assert.Contains(t, body, "/runs/"+runs[0].ID)

	saved, err := ts.store.GetRun(context.Background(), runs[0].ID)
	require.NoError(t, err)
	require.Len(t, saved.Pairs, 2)
	assert.Equal(t, bigram.Entry{Pair: bigram.Pair{Prev: "the", Curr: "cat"}, Count: 2}, saved.Pairs[0])
	assert.True(t, saved.Options.LettersOnly)
	assert.False(t, saved.Options.CaseSensitive)

	assert.Equal(t, 1.0, testutil.ToFloat64(ts.observer.submissions.WithLabelValues(outcomeCounted)))
}

func TestSubmitKeepsCheckedBoxes(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.post(t, url.Values{"text": {"a b"}, "case_sensitive": {"on"}})

	body := rec.Body.String()
	assert.Contains(t, body, `name="case_sensitive" value="on" checked`)
	assert.NotContains(t, body, `name="letters_only" value="on" checked`)
}

func TestSubmitNoPairs(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.post(t, url.Values{"text": {"alone"}})

	assert.Contains(t, rec.Body.String(), msgNoPairs)
	runs, err := ts.store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSubmitRecoversFromCountPanic(t *testing.T) {
	ts := newTestServer(t)
	ts.count = func([]string, bigram.Config) bigram.Counts { panic("boom") }

	rec := ts.post(t, url.Values{"text": {"a b c"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), msgFailed)
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.observer.submissions.WithLabelValues(outcomeFailed)))
}

func TestRunPage(t *testing.T) {
	ts := newTestServer(t)
	ts.post(t, url.Values{"text": {"x y x y"}, "line_separated": {"on"}})
	runs, err := ts.store.ListRuns(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	rec := ts.get(t, "/runs/"+runs[0].ID)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<td>x,y</td><td class=\"count\">2</td>")
	assert.Contains(t, body, `name="line_separated" value="on" checked`)

	missing := ts.get(t, "/runs/01ARZ3NDEKTSV4RRFFQ69G5FAV")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Contains(t, missing.Body.String(), msgNoRun)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.post(t, url.Values{"text": {"a b c"}})

	rec := ts.get(t, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `bigrams_submissions_total{outcome="counted"} 1`)
	assert.Contains(t, rec.Body.String(), "bigrams_input_chars_count 1")
}

func TestParseTopN(t *testing.T) {
	tests := map[string]int{
		"":     TopNDefault,
		"  7 ": 7,
		"0":    1,
		"501":  TopNMax,
		"-3":   TopNDefault,
		"4.5":  TopNDefault,
		"ten":  TopNDefault,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseTopN(in), "parseTopN(%q)", in)
	}
	assert.Equal(t, TopNMax, parseTopN(strings.Repeat("9", 30)))
}

func TestTruncateChars(t *testing.T) {
	assert.Equal(t, "abc", truncateChars("abc", 5))
	assert.Equal(t, "ab", truncateChars("abc", 2))
	assert.Equal(t, "éé", truncateChars("ééé", 2))
	assert.Equal(t, "ééé", truncateChars("ééé", 3))

	long := strings.Repeat("ab ", TextMaxChars)
	assert.Len(t, []rune(truncateChars(long, TextMaxChars)), TextMaxChars)
}
