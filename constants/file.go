package constants

import "strings"

// AllowedExtensions holds the file extensions picked up from the inbox.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// NotFound is the sentinel stored for fields no pattern matched.
const NotFound = "NOT_FOUND"
