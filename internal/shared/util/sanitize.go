package util

import (
	"errors"
	"strings"
)

var errInvalidFileName = errors.New("invalid file name")

var pathSeparators = strings.NewReplacer("/", "_", "\\", "_")

// SanitizeFileName flattens path separators in a user-supplied file name and
// rejects traversal sequences outright.
func SanitizeFileName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, "..") {
		return "", errInvalidFileName
	}
	return pathSeparators.Replace(name), nil
}
