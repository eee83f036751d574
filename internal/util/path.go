// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ClientBaseName returns the last element of a client-supplied file name.
// Both slash and backslash count as separators, since browsers on Windows
// may send a full "C:\dir\file" path.
func ClientBaseName(name string) (string, error) {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("invalid filename")
	}
	return name, nil
}

// RefName strips prefix from an upload reference and returns the stored file
// name. The name must be a single path element.
func RefName(ref, prefix string) (string, error) {
	name, ok := strings.CutPrefix(ref, prefix)
	if !ok || name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid upload reference %q", ref)
	}
	return name, nil
}

// JoinWithin joins name onto dir and fails if the cleaned result is not
// strictly inside dir.
func JoinWithin(dir, name string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	full := filepath.Join(absDir, name)
	if !strings.HasPrefix(full, absDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%q escapes %s", name, dir)
	}
	return full, nil
}
