package constants

import "strings"

// AllowedExtensions holds the accepted upload extensions. The pipeline only
// understands PDF sources; parsed markdown is produced internally.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
