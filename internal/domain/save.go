package domain

import "strings"

// SaveMode governs whether and how existing target table contents are
// replaced by a save operation.
type SaveMode string

const (
	SaveModeAppend        SaveMode = "append"
	SaveModeOverwrite     SaveMode = "overwrite"
	SaveModeErrorIfExists SaveMode = "errorifexists"
	SaveModeIgnore        SaveMode = "ignore"
)

// ParseSaveMode maps a mode name to a SaveMode.
func ParseSaveMode(s string) (SaveMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "append":
		return SaveModeAppend, nil
	case "overwrite":
		return SaveModeOverwrite, nil
	case "errorifexists", "error":
		return SaveModeErrorIfExists, nil
	case "ignore":
		return SaveModeIgnore, nil
	default:
		return "", ErrConfiguration("unsupported save mode %q", s)
	}
}
