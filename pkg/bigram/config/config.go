package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/bigrams/pkg/bigram"
	"github.com/cognicore/bigrams/pkg/bigram/internalerr"
)

// Profile is a saved set of counting and display settings.
type Profile struct {
	Options   bigram.Options `yaml:"options"`
	Top       *int           `yaml:"top"`
	Hist      *bool          `yaml:"hist"`
	Stopwords []string       `yaml:"stopwords"`
}

// LoadProfile loads a profile from a YAML file. Options missing from the
// file keep their bigram.DefaultOptions value.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	p := Profile{Options: bigram.DefaultOptions()}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate checks values that YAML alone cannot constrain.
func (p *Profile) Validate() error {
	if p.Top != nil && *p.Top < 0 {
		return fmt.Errorf("%w: top must be >= 0, got %d", internalerr.ErrInvalidConfig, *p.Top)
	}
	return nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
