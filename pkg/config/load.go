package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML or JSON options file (format detected by extension) and
// decodes it over Default(), so any group or key the file omits keeps its
// default value.
func Load(path string) (Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var blob map[string]interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &blob); err != nil {
			return Options{}, fmt.Errorf("config: parsing %s as YAML: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(raw, &blob); err != nil {
			return Options{}, fmt.Errorf("config: parsing %s as JSON: %w", path, err)
		}
	default:
		return Options{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	opts := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			verboseLevelHookFunc(),
			selectionModeHookFunc(),
		),
		Result:           &opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Options{}, fmt.Errorf("config: building decoder: %w", err)
	}
	if err := decoder.Decode(blob); err != nil {
		return Options{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return opts, nil
}
