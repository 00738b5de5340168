package tokenizer

import (
	"errors"

	"github.com/temirov/treemd/internal/types"
)

var errNilCounter = errors.New("nil tokenizer counter")

// CountResult captures the outcome of counting a text.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountText estimates tokens for text.
func CountText(counter Counter, text string) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errNilCounter
	}
	tokens, err := counter.CountString(text)
	if err != nil {
		return CountResult{}, err
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}

// FileTokens is the token estimate of one rendered file.
type FileTokens struct {
	RelativePath string
	Tokens       int
}

// CountDocumentFiles estimates tokens for every text file of document, in document order.
// Binary markers and error placeholders are skipped.
func CountDocumentFiles(counter Counter, document *types.Document) ([]FileTokens, error) {
	if counter == nil {
		return nil, errNilCounter
	}
	var fileTokens []FileTokens
	for _, directorySection := range document.Directories {
		for _, fileSection := range directorySection.Files {
			if fileSection.Content.Kind != types.ContentKindText {
				continue
			}
			result, err := CountText(counter, fileSection.Content.Text)
			if err != nil {
				return nil, err
			}
			fileTokens = append(fileTokens, FileTokens{RelativePath: fileSection.RelativePath, Tokens: result.Tokens})
		}
	}
	return fileTokens, nil
}
