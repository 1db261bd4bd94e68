package core

import "strings"

// SanitizeFilename reduces a user-supplied filename to a safe form for use
// as part of an artifact path. Path separators and any character outside
// [A-Za-z0-9._-] are replaced with underscores, and leading dots are
// stripped so the result can never escape the output directory or hide as
// a dotfile.
func SanitizeFilename(name string) string {
	// Drop any path components the client may have sent.
	if idx := strings.LastIndexAny(name, "/\\"); idx >= 0 {
		name = name[idx+1:]
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		default:
			b.WriteRune('_')
		}
	}

	return strings.TrimLeft(b.String(), ".")
}
