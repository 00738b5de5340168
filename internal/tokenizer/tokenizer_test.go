package tokenizer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/temirov/treemd/internal/types"
)

type testCounter struct{}

func (testCounter) Name() string { return "stub" }

func (testCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

type failingCounter struct{}

func (failingCounter) Name() string { return "failing" }

func (failingCounter) CountString(string) (int, error) { return 0, errors.New("count failed") }

func TestCountText(t *testing.T) {
	result, err := CountText(testCounter{}, "hello")
	if err != nil {
		t.Fatalf("CountText error: %v", err)
	}
	if !result.Counted || result.Tokens != len([]rune("hello")) {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCountTextRejectsNilCounter(t *testing.T) {
	if _, err := CountText(nil, "text"); !errors.Is(err, errNilCounter) {
		t.Fatalf("expected nil counter error, got %v", err)
	}
}

func TestCountDocumentFiles(t *testing.T) {
	document := &types.Document{Directories: []types.DirectorySection{
		{Files: []types.FileSection{
			{RelativePath: "a.py", Content: types.FileContent{Kind: types.ContentKindText, Text: "x=1"}},
			{RelativePath: "b.bin", Content: types.FileContent{Kind: types.ContentKindBinary}},
		}},
		{RelativePath: "sub", Files: []types.FileSection{
			{RelativePath: "sub/readme.md", Content: types.FileContent{Kind: types.ContentKindText, Text: "привет"}},
			{RelativePath: "sub/broken.txt", Content: types.FileContent{Kind: types.ContentKindReadError, ReadError: "denied"}},
		}},
	}}
	fileTokens, err := CountDocumentFiles(testCounter{}, document)
	if err != nil {
		t.Fatalf("CountDocumentFiles error: %v", err)
	}
	expected := []FileTokens{{RelativePath: "a.py", Tokens: 3}, {RelativePath: "sub/readme.md", Tokens: 6}}
	if !reflect.DeepEqual(fileTokens, expected) {
		t.Fatalf("expected %+v, got %+v", expected, fileTokens)
	}

	if _, err := CountDocumentFiles(failingCounter{}, document); err == nil {
		t.Fatalf("expected counter failure to propagate")
	}
}

func TestIsOpenAIModel(t *testing.T) {
	testCases := map[string]bool{
		"gpt-4o":                 true,
		"text-embedding-3-small": true,
		"claude-3-5-sonnet":      false,
		"llama-3":                false,
	}
	for model, expected := range testCases {
		if actual := isOpenAIModel(model); actual != expected {
			t.Fatalf("%s: expected %v, got %v", model, expected, actual)
		}
	}
}

func TestTiktokenCounterRequiresEncoding(t *testing.T) {
	counter := tiktokenCounter{name: "empty"}
	if _, err := counter.CountString("text"); !errors.Is(err, errNilEncoding) {
		t.Fatalf("expected nil encoding error, got %v", err)
	}
	if counter.Name() != "empty" {
		t.Fatalf("unexpected name %q", counter.Name())
	}
}
