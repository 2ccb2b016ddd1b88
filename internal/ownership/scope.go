package ownership

import "strings"

// ScopeDelimiter separates a file name from its scope in plan tokens,
// e.g. "handlers.py::RequestHandler.parse".
const ScopeDelimiter = "::"

// ParseScope splits a "file::scope" token into its file name and scope.
// Both halves are trimmed of surrounding whitespace. A token without a
// delimiter yields an empty scope, meaning the whole file is claimed.
func ParseScope(token string) (resource, scope string) {
	if i := strings.Index(token, ScopeDelimiter); i >= 0 {
		return strings.TrimSpace(token[:i]), strings.TrimSpace(token[i+len(ScopeDelimiter):])
	}
	return strings.TrimSpace(token), ""
}

// ScopesOverlap reports whether two MODIFY scopes on the same file can
// collide. An empty scope claims the entire file and overlaps everything.
// Identical scopes overlap, and so does dotted-prefix nesting ("Handler"
// contains "Handler.parse"). Sibling scopes ("Handler.parse" vs
// "Handler.render") are independently ownable and do not overlap.
func ScopesOverlap(a, b string) bool {
	if a == "" || b == "" {
		return true
	}
	if a == b {
		return true
	}
	return strings.HasPrefix(a, b+".") || strings.HasPrefix(b, a+".")
}
