package utils

import (
	"path/filepath"
	"strings"
)

var declaredTextExtensions = map[string]struct{}{
	".txt": {}, ".py": {}, ".js": {}, ".html": {}, ".css": {}, ".md": {}, ".json": {},
	".xml": {}, ".csv": {}, ".yaml": {}, ".yml": {}, ".ini": {}, ".cfg": {}, ".log": {},
	".sql": {}, ".sh": {}, ".bat": {}, ".ps1": {}, ".rst": {}, ".toml": {},
	".java": {}, ".c": {}, ".cpp": {}, ".h": {}, ".hpp": {}, ".go": {}, ".rs": {},
	".php": {}, ".rb": {}, ".swift": {}, ".xhtml": {}, ".ts": {}, ".tsx": {}, ".cs": {},
}

// IsDeclaredText reports whether the extension of path is on the text allow-list.
// The comparison ignores case.
func IsDeclaredText(path string) bool {
	_, declared := declaredTextExtensions[strings.ToLower(FileExtension(path))]
	return declared
}

// FileExtension returns the extension of the base name of path including the dot.
// Leading dots of the base name do not start an extension, so ".txt" has none.
func FileExtension(path string) string {
	return filepath.Ext(strings.TrimLeft(filepath.Base(path), "."))
}

// FenceTag returns the extension of path without its leading dot, as written.
func FenceTag(path string) string {
	return strings.TrimPrefix(FileExtension(path), ".")
}
