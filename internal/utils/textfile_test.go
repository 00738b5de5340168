package utils_test

import (
	"testing"

	"github.com/temirov/treemd/internal/utils"
)

func TestIsDeclaredText(t *testing.T) {
	testCases := map[string]bool{
		"main.go":        true,
		"README.MD":      true,
		"src/App.TSX":    true,
		"config.toml":    true,
		"image.png":      false,
		"archive.tar.gz": false,
		"Makefile":       false,
		".txt":           false,
	}
	for path, expected := range testCases {
		if result := utils.IsDeclaredText(path); result != expected {
			t.Errorf("IsDeclaredText(%q) = %t, expected %t", path, result, expected)
		}
	}
}

func TestFenceTag(t *testing.T) {
	testCases := map[string]string{
		"a.py":             "py",
		"web/Index.HTML":   "HTML",
		"Makefile":         "",
		".eslintrc.json":   "json",
		"notes.backup.txt": "txt",
	}
	for path, expected := range testCases {
		if result := utils.FenceTag(path); result != expected {
			t.Errorf("FenceTag(%q) = %q, expected %q", path, result, expected)
		}
	}
}
