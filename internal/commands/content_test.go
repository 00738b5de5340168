package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/treemd/internal/commands"
	"github.com/temirov/treemd/internal/types"
)

func TestReadContent(t *testing.T) {
	windows1251Greeting := []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2, '!'}
	utf16Chinese := []byte{0xFF, 0xFE, 0x2D, 0x4E, 0x87, 0x65}
	utf16ASCII := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	testCases := []struct {
		name             string
		fileName         string
		content          []byte
		expectedKind     types.ContentKind
		expectedText     string
		expectedEncoding string
	}{
		{
			name:             "utf-8 source",
			fileName:         "a.py",
			content:          []byte("x=1"),
			expectedKind:     types.ContentKindText,
			expectedText:     "x=1",
			expectedEncoding: commands.EncodingUTF8,
		},
		{
			name:             "upper-case declared extension",
			fileName:         "NOTES.TXT",
			content:          []byte("hello"),
			expectedKind:     types.ContentKindText,
			expectedText:     "hello",
			expectedEncoding: commands.EncodingUTF8,
		},
		{
			name:             "carriage returns normalized",
			fileName:         "script.bat",
			content:          []byte("echo one\r\necho two\rdone"),
			expectedKind:     types.ContentKindText,
			expectedText:     "echo one\necho two\ndone",
			expectedEncoding: commands.EncodingUTF8,
		},
		{
			name:             "utf-16 without control bytes",
			fileName:         "hanzi.txt",
			content:          utf16Chinese,
			expectedKind:     types.ContentKindText,
			expectedText:     "中文",
			expectedEncoding: commands.EncodingUTF16,
		},
		{
			name:             "utf-16 ascii holds null bytes",
			fileName:         "wide.txt",
			content:          utf16ASCII,
			expectedKind:     types.ContentKindBinary,
			expectedEncoding: commands.EncodingUTF16,
		},
		{
			name:             "windows-1251 fallback",
			fileName:         "greeting.txt",
			content:          windows1251Greeting,
			expectedKind:     types.ContentKindText,
			expectedText:     "Привет!",
			expectedEncoding: commands.EncodingWindows1251,
		},
		{
			name:             "binary wearing a text extension",
			fileName:         "fake.json",
			content:          []byte("{\x00\x01}"),
			expectedKind:     types.ContentKindBinary,
			expectedEncoding: commands.EncodingUTF8,
		},
		{
			name:         "undeclared binary",
			fileName:     "blob",
			content:      []byte{0x7F, 'E', 'L', 'F', 0x00, 0x00},
			expectedKind: types.ContentKindBinary,
		},
		{
			name:             "undeclared text with invalid bytes",
			fileName:         "Makefile",
			content:          []byte("all:\xff\r\n"),
			expectedKind:     types.ContentKindText,
			expectedText:     "all:�\n",
			expectedEncoding: commands.EncodingUTF8,
		},
		{
			name:             "empty declared file",
			fileName:         "empty.md",
			content:          []byte{},
			expectedKind:     types.ContentKindText,
			expectedText:     "",
			expectedEncoding: commands.EncodingUTF8,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			filePath := filepath.Join(t.TempDir(), testCase.fileName)
			if writeError := os.WriteFile(filePath, testCase.content, 0o644); writeError != nil {
				t.Fatalf("write fixture: %v", writeError)
			}
			content := commands.ReadContent(filePath)
			if content.Kind != testCase.expectedKind {
				t.Fatalf("expected kind %s, got %s (%+v)", testCase.expectedKind, content.Kind, content)
			}
			if content.Text != testCase.expectedText {
				t.Fatalf("expected text %q, got %q", testCase.expectedText, content.Text)
			}
			if content.Encoding != testCase.expectedEncoding {
				t.Fatalf("expected encoding %q, got %q", testCase.expectedEncoding, content.Encoding)
			}
			if content.IsBinaryMarker() != (testCase.expectedKind == types.ContentKindBinary) {
				t.Fatalf("IsBinaryMarker disagrees with kind %s", content.Kind)
			}
		})
	}
}

func TestReadContentConvertsReadFailures(t *testing.T) {
	temporaryDirectory := t.TempDir()
	for _, fileName := range []string{"missing.go", "missing.dat"} {
		content := commands.ReadContent(filepath.Join(temporaryDirectory, fileName))
		if content.Kind != types.ContentKindReadError {
			t.Fatalf("%s: expected read error, got %s", fileName, content.Kind)
		}
		if content.ReadError == "" {
			t.Fatalf("%s: expected error description", fileName)
		}
	}
}
