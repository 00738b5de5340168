package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/treemd/internal/types"
)

// writeFixtureTree creates every file of fixtures below rootDirectory.
// Keys ending with a slash create empty directories.
func writeFixtureTree(t *testing.T, rootDirectory string, fixtures map[string]string) {
	t.Helper()
	for relativePath, content := range fixtures {
		fullPath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
		if strings.HasSuffix(relativePath, "/") {
			if mkdirError := os.MkdirAll(fullPath, 0o755); mkdirError != nil {
				t.Fatalf("mkdir %s: %v", relativePath, mkdirError)
			}
			continue
		}
		if mkdirError := os.MkdirAll(filepath.Dir(fullPath), 0o755); mkdirError != nil {
			t.Fatalf("mkdir for %s: %v", relativePath, mkdirError)
		}
		if writeError := os.WriteFile(fullPath, []byte(content), 0o644); writeError != nil {
			t.Fatalf("write %s: %v", relativePath, writeError)
		}
	}
}

func displayLines(treeLines []types.TreeLine) []string {
	lines := make([]string, 0, len(treeLines))
	for _, treeLine := range treeLines {
		name := treeLine.Name
		if treeLine.AccessDenied {
			name = "<denied>"
		}
		lines = append(lines, treeLine.Prefix+treeLine.Connector+name)
	}
	return lines
}
