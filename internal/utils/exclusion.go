// Package utils contains general helper functions used across the treemd tool.
package utils

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// wildcardCharacters lists the characters that turn a pattern into a glob.
// A bracket alone does not; "[ab]" classes apply only inside such a glob.
const wildcardCharacters = "*?"

// defaultExclusionPatterns is always applied before any caller pattern.
var defaultExclusionPatterns = []string{
	GitDirectoryName, ".github", ".vscode", "__pycache__", ".idea",
	".DS_Store", "Thumbs.db", ".gitignore", ".env",
	"node_modules", "venv", "env", ".venv",
	"*.pyc", "*.pyo", "*.pyd",
	".svn", ".hg", ".bzr",
	"build", "dist", "*.egg-info",
	".pytest_cache", ".coverage", "htmlcov",
	".tox", ".eggs", "skins", "bin", "obj",
	"*.log",
}

type exclusionPattern struct {
	value   string
	matcher glob.Glob
}

// ExclusionSet is an ordered, immutable list of exclusion patterns.
// The zero value holds no patterns; use NewExclusionSet to include the defaults.
type ExclusionSet struct {
	patterns []exclusionPattern
}

// DefaultExclusionPatterns returns a copy of the built-in exclusion patterns.
func DefaultExclusionPatterns() []string {
	return append([]string(nil), DeduplicatePatterns(defaultExclusionPatterns)...)
}

// NewExclusionSet builds the default patterns followed by the additional ones.
// Blank additional patterns and repeats of an earlier pattern are dropped.
func NewExclusionSet(additionalPatterns ...string) ExclusionSet {
	combinedPatterns := DefaultExclusionPatterns()
	for _, additionalPattern := range additionalPatterns {
		trimmedPattern := strings.TrimSpace(additionalPattern)
		if trimmedPattern == "" {
			continue
		}
		combinedPatterns = append(combinedPatterns, trimmedPattern)
	}
	return newExclusionSet(DeduplicatePatterns(combinedPatterns))
}

func newExclusionSet(patternValues []string) ExclusionSet {
	compiledPatterns := make([]exclusionPattern, 0, len(patternValues))
	for _, patternValue := range patternValues {
		compiledPattern := exclusionPattern{value: patternValue}
		if strings.ContainsAny(patternValue, wildcardCharacters) {
			compiledPattern.matcher = compileWildcard(patternValue)
		}
		compiledPatterns = append(compiledPatterns, compiledPattern)
	}
	return ExclusionSet{patterns: compiledPatterns}
}

// compileWildcard compiles a shell-style pattern. A pattern that does not
// compile, such as an unterminated character class, matches itself literally.
func compileWildcard(patternValue string) glob.Glob {
	compiledGlob, compileError := glob.Compile(patternValue)
	if compileError == nil {
		return compiledGlob
	}
	return glob.MustCompile(glob.QuoteMeta(patternValue))
}

// Patterns returns the patterns of the set in evaluation order.
func (exclusions ExclusionSet) Patterns() []string {
	patternValues := make([]string, 0, len(exclusions.patterns))
	for _, compiledPattern := range exclusions.patterns {
		patternValues = append(patternValues, compiledPattern.value)
	}
	return patternValues
}

// Len reports the number of patterns in the set.
func (exclusions ExclusionSet) Len() int {
	return len(exclusions.patterns)
}

// ShouldExclude reports whether path is excluded by any pattern of the set.
// Patterns are evaluated in order and the first match wins:
//   - a pattern with a wildcard is glob-matched against the base name;
//   - any other pattern matches when it equals the base name;
//   - or when it occurs anywhere inside path.
//
// The substring rule is intentionally broad: "env" excludes "environment.py".
func ShouldExclude(path string, exclusions ExclusionSet) bool {
	baseName := filepath.Base(path)
	for _, compiledPattern := range exclusions.patterns {
		if compiledPattern.matcher != nil {
			if compiledPattern.matcher.Match(baseName) {
				return true
			}
			continue
		}
		if baseName == compiledPattern.value {
			return true
		}
		if strings.Contains(path, compiledPattern.value) {
			return true
		}
	}
	return false
}

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// RelativeSlashPath returns fullPath relative to root using forward slashes.
// It returns "." when both resolve to the same location and the cleaned
// fullPath when no relative form exists.
func RelativeSlashPath(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	cleanRoot := filepath.Clean(root)
	if cleanPath == cleanRoot {
		return "."
	}
	relativePath, relativeError := filepath.Rel(cleanRoot, cleanPath)
	if relativeError != nil {
		return filepath.ToSlash(cleanPath)
	}
	return filepath.ToSlash(relativePath)
}
