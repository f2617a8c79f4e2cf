package config

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/gitrdm/printemps/pkg/presolve"
)

// verboseLevelHookFunc decodes a YAML/JSON string into a VerboseLevel,
// grounded on operator-framework's metaTimeHookFunc idiom: check the target
// type first, fall through untouched for every other field, parse and
// reject on mismatch for the field this hook owns.
func verboseLevelHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(VerboseOff) {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		switch s {
		case "Off":
			return VerboseOff, nil
		case "Warning":
			return VerboseWarning, nil
		case "Outer":
			return VerboseOuter, nil
		case "Inner":
			return VerboseInner, nil
		case "Full":
			return VerboseFull, nil
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidVerboseLevel, s)
		}
	}
}

// selectionModeHookFunc decodes a YAML/JSON string into a
// presolve.SelectionMode.
func selectionModeHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(presolve.SelectionNone) {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		mode, ok := presolve.ParseSelectionMode(s)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSelectionMode, s)
		}
		return mode, nil
	}
}
