// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// fallbackName is used when os.Args[0] is unavailable.
const fallbackName = "c509-converter"

// GetExecutableName returns the executable name without directory or .exe
// suffix, for CLI usage strings. Both '/' and '\' are treated as separators
// so Windows paths are handled on any host.
func GetExecutableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return fallbackName
	}
	return strings.TrimSuffix(baseName(os.Args[0]), ".exe")
}

// baseName returns the last non-empty component of p split on either separator.
func baseName(p string) string {
	parts := strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' })
	if len(parts) == 0 {
		return filepath.Base(p)
	}
	return parts[len(parts)-1]
}

// ReplaceExt returns the base name of path with its extension replaced by
// ext, e.g. ReplaceExt("certs/leaf.pem", ".c509") is "leaf.c509".
func ReplaceExt(path, ext string) string {
	base := baseName(path)
	if e := filepath.Ext(base); e != "" && e != base {
		base = strings.TrimSuffix(base, e)
	}
	return base + ext
}

// IndexedName returns base+ext for the only item of a set and
// base_index+ext otherwise, so multi-certificate inputs do not overwrite
// each other.
func IndexedName(base string, index, total int, ext string) string {
	if total <= 1 {
		return base + ext
	}
	return base + "_" + strconv.Itoa(index) + ext
}
