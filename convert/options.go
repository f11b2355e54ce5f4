package convert

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Options override course identity and export behavior for one run. They
// can be loaded from a YAML file passed on the command line.
type Options struct {
	Org      string `yaml:"org"`
	Run      string `yaml:"run"`
	Language string `yaml:"language"`
	Force    bool   `yaml:"force"`
}

// LoadOptionsFile reads an Options YAML file. An empty path yields zero
// Options.
func LoadOptionsFile(path string) (Options, error) {
	var opts Options
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, errors.Wrapf(err, "reading options file %s", path)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, errors.Wrapf(err, "parsing options file %s", path)
	}
	return opts, nil
}
