// Package snapshot assembles a directory snapshot and renders it as wrapped Markdown.
package snapshot

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/treemd/internal/commands"
	"github.com/temirov/treemd/internal/output"
	"github.com/temirov/treemd/internal/tokenizer"
	"github.com/temirov/treemd/internal/types"
	"github.com/temirov/treemd/internal/utils"
)

// DefaultIdentifier names the wrapped snapshot when the caller gives none.
const DefaultIdentifier = "files_content"

var errEmptyRoot = errors.New("snapshot: root path is empty")

const (
	errorCountTokens      = "counting tokens: %w"

	infoSnapshotMessage = "snapshot assembled"
)

// Options configures a Service.
type Options struct {
	Labels          types.Labels
	SniffUndeclared bool
	// TokenCounter, when set, adds token estimates to the summary.
	TokenCounter tokenizer.Counter
	Logger       *zap.Logger
}

// Summary describes an assembled document.
type Summary struct {
	Directories int
	Files       int
	TextFiles   int
	BinaryFiles int
	Bytes       int64
	Tokens      int
	Model       string
}

// Service builds snapshots of directory trees.
type Service struct {
	options Options
	logger  *zap.Logger
}

// NewService constructs a Service. Zero labels select the English labels.
func NewService(options Options) *Service {
	if options.Labels == (types.Labels{}) {
		options.Labels = types.EnglishLabels
	}
	return &Service{options: options, logger: utils.LoggerOrNop(options.Logger)}
}

// Document collects the snapshot of root with the default exclusions plus exclusions.
func (service *Service) Document(root string, exclusions []string) (*types.Document, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errEmptyRoot
	}
	return commands.BuildDocument(root, commands.DocumentOptions{
		Exclusions:      utils.NewExclusionSet(exclusions...),
		SniffUndeclared: service.options.SniffUndeclared,
		Logger:          service.logger,
	})
}

// Render returns the unwrapped Markdown snapshot of root.
func (service *Service) Render(root string, exclusions []string) (string, error) {
	document, documentError := service.Document(root, exclusions)
	if documentError != nil {
		return "", documentError
	}
	return service.RenderDocument(document), nil
}

// Snapshot returns the wrapped snapshot of root assigned to identifier.
// The pure Markdown is recovered with output.Unwrap.
func (service *Service) Snapshot(root string, identifier string, exclusions []string) (string, error) {
	if strings.TrimSpace(identifier) == "" {
		identifier = DefaultIdentifier
	}
	document, documentError := service.Document(root, exclusions)
	if documentError != nil {
		return "", documentError
	}
	return output.Wrap(identifier, service.RenderDocument(document)), nil
}

// Tree returns only the ASCII tree of root.
func (service *Service) Tree(root string, exclusions []string) (string, error) {
	document, documentError := service.Document(root, exclusions)
	if documentError != nil {
		return "", documentError
	}
	return output.RenderTree(document.Tree, service.options.Labels), nil
}

// Summarize counts the sections and files of document and, when a token
// counter is configured, the tokens of rendered.
func (service *Service) Summarize(document *types.Document, rendered string) (Summary, error) {
	summary := Summary{Directories: len(document.Directories)}
	for _, directorySection := range document.Directories {
		for _, fileSection := range directorySection.Files {
			summary.Files++
			switch fileSection.Content.Kind {
			case types.ContentKindText:
				summary.TextFiles++
				summary.Bytes += int64(len(fileSection.Content.Text))
			case types.ContentKindBinary:
				summary.BinaryFiles++
			}
		}
	}
	if service.options.TokenCounter != nil {
		result, countError := tokenizer.CountText(service.options.TokenCounter, rendered)
		if countError != nil {
			return Summary{}, fmt.Errorf(errorCountTokens, countError)
		}
		summary.Tokens = result.Tokens
		summary.Model = service.options.TokenCounter.Name()
	}
	service.logger.Debug(infoSnapshotMessage,
		zap.Int("directories", summary.Directories),
		zap.Int("files", summary.Files),
		zap.Int("binary_files", summary.BinaryFiles),
		zap.String("text_size", utils.FormatFileSize(summary.Bytes)),
		zap.Int("tokens", summary.Tokens),
	)
	return summary, nil
}

// RenderDocument renders document as unwrapped Markdown with the configured labels.
func (service *Service) RenderDocument(document *types.Document) string {
	return output.RenderMarkdown(document, service.options.Labels)
}
