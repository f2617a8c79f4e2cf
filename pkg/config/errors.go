package config

import "errors"

// Error kinds returned by Load and its decode hooks, per §7's
// "InvalidSelectionMode / InvalidVerboseLevel — configuration parse error;
// fatal" entry.
var (
	// ErrInvalidVerboseLevel is returned when output.verbose names a string
	// other than Off/Warning/Outer/Inner/Full.
	ErrInvalidVerboseLevel = errors.New("config: invalid verbose level")

	// ErrInvalidSelectionMode is returned when neighborhood.selection_mode
	// names a string other than None/Defined/Smaller/Larger/Independent.
	ErrInvalidSelectionMode = errors.New("config: invalid selection mode")

	// ErrUnsupportedFormat is returned by Load when the file extension is
	// neither .yaml/.yml nor .json.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")
)
