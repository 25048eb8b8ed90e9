package core

import "strings"

// ResolvePath joins an instance base path, an optional per-call override
// and a relative path into one canonical remote path. The override
// replaces the instance base entirely; it never concatenates with it.
//
// The result never starts with "/" and never contains "//". Resolving an
// already-canonical path with empty bases returns it unchanged.
func ResolvePath(instanceBase, callBase, relative string) string {
	base := instanceBase
	if callBase != "" {
		base = callBase
	}

	relative = strings.TrimPrefix(relative, "/")

	resolved := relative
	if base != "" {
		resolved = base + "/" + relative
	}

	for strings.Contains(resolved, "//") {
		resolved = strings.ReplaceAll(resolved, "//", "/")
	}
	resolved = strings.TrimSuffix(resolved, "/")
	resolved = strings.TrimPrefix(resolved, "/")

	return resolved
}
