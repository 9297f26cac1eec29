package config

import (
	"errors"
	"os"
	"testing"

	"github.com/cognicore/bigrams/pkg/bigram"
)

func TestLoaderAllEmpty(t *testing.T) {
	loader := Loader{}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Empty loader should succeed: %v", err)
	}

	if comp.Options != bigram.DefaultOptions() {
		t.Errorf("Options = %+v, want defaults", comp.Options)
	}
	if comp.Top != DefaultTop {
		t.Errorf("Top = %d, want %d", comp.Top, DefaultTop)
	}
	if comp.Hist {
		t.Error("Hist should default to false")
	}
	if comp.Stoplist != nil {
		t.Error("Stoplist should be nil without stopwords")
	}
	if comp.Config().Filter() != nil {
		t.Error("Config should carry no filter without stopwords")
	}
}

func TestLoaderNonExistentProfile(t *testing.T) {
	loader := Loader{ProfilePath: "/nonexistent/profile.yaml"}

	_, err := loader.Load()
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Should wrap not-exist error, got %v", err)
	}
}

func TestLoaderNonExistentStoplist(t *testing.T) {
	loader := Loader{StoplistPath: "/nonexistent/stoplist.yaml"}

	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent stoplist")
	}
}

func TestLoaderValidFiles(t *testing.T) {
	profilePath := writeFile(t, "profile.yaml", `options:
  ignore_all_punctuation: true
  include_hyphens: true
hist: true
top: 0
stopwords: [of]
`)
	stoplistPath := writeFile(t, "stoplist.yaml", "terms: [the]\n")

	loader := Loader{ProfilePath: profilePath, StoplistPath: stoplistPath}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !comp.Hist || comp.Top != 0 {
		t.Errorf("Hist/Top = %v/%d, want true/0", comp.Hist, comp.Top)
	}
	if comp.Stoplist == nil || !comp.Stoplist.IsStop("of") || !comp.Stoplist.IsStop("the") {
		t.Fatal("Stoplist should merge profile stopwords and stoplist terms")
	}

	cfg := comp.Config()
	if cfg.Options().IncludeHyphens {
		t.Error("Config should be normalized: hyphens are off without punctuation")
	}
	counts := bigram.CountLines([]string{"the end of the line"}, cfg)
	if counts[bigram.Pair{Prev: "end", Curr: "line"}] != 1 {
		t.Errorf("stopwords should be filtered, got %v", counts)
	}
}
