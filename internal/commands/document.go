package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/treemd/internal/types"
	"github.com/temirov/treemd/internal/utils"
)

const (
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorStatRootFormat is used when the root cannot be inspected.
	errorStatRootFormat = "inspecting %s: %w"
	// errorRootNotDirectoryFormat is used when the root is a regular file.
	errorRootNotDirectoryFormat = "%s is not a directory"
	// errorBuildTreeFormat is used when building the tree fails.
	errorBuildTreeFormat = "building tree for %s: %w"
	// errorWalkFormat is used when the content walk stops.
	errorWalkFormat = "walking %s: %w"

	warningAccessPathMessage = "skipping unreadable path"
	warningReadFileMessage   = "file content replaced by read error"
	debugFileMessage         = "collected file"

	rootRelativePath = "."
)

// DocumentOptions configures BuildDocument.
type DocumentOptions struct {
	Exclusions utils.ExclusionSet
	// SniffUndeclared renders files without a declared text extension when
	// they do not look binary, instead of marking them binary.
	SniffUndeclared bool
	Logger          *zap.Logger
}

// BuildDocument collects the tree lines and per-directory file sections for rootPath.
// Excluded directories are pruned from both the tree and the content walk.
func BuildDocument(rootPath string, options DocumentOptions) (*types.Document, error) {
	logger := utils.LoggerOrNop(options.Logger)
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	// WalkDir does not follow a symlinked root, so resolve it up front.
	resolvedRootPath, resolveError := filepath.EvalSymlinks(absoluteRootPath)
	if resolveError != nil {
		return nil, fmt.Errorf(errorStatRootFormat, rootPath, resolveError)
	}
	absoluteRootPath = resolvedRootPath
	rootInfo, rootStatError := os.Stat(absoluteRootPath)
	if rootStatError != nil {
		return nil, fmt.Errorf(errorStatRootFormat, rootPath, rootStatError)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf(errorRootNotDirectoryFormat, rootPath)
	}

	treeBuilder := TreeBuilder{
		Root:       absoluteRootPath,
		Exclusions: options.Exclusions,
		Logger:     logger,
	}
	treeLines, treeError := treeBuilder.GenerateTree(absoluteRootPath, "")
	if treeError != nil {
		return nil, fmt.Errorf(errorBuildTreeFormat, rootPath, treeError)
	}

	sections := newSectionCollector()
	walkError := filepath.WalkDir(absoluteRootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		relativePath := utils.RelativeSlashPath(walkedPath, absoluteRootPath)
		if accessError != nil {
			logger.Warn(warningAccessPathMessage, zap.String("path", walkedPath), zap.Error(accessError))
			if directoryEntry != nil && directoryEntry.IsDir() {
				sections.dropIfEmpty(relativePath)
			}
			return nil
		}
		if relativePath == rootRelativePath {
			sections.enter(relativePath)
			return nil
		}
		if utils.ShouldExclude(relativePath, options.Exclusions) {
			if directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if directoryEntry.IsDir() {
			sections.enter(relativePath)
			return nil
		}
		if directoryEntry.Type()&fs.ModeSymlink != 0 && isDirectoryEntry(walkedPath, directoryEntry) {
			return nil
		}

		fileSection := buildFileSection(walkedPath, relativePath, options.SniffUndeclared)
		if fileSection.Content.Kind == types.ContentKindReadError {
			logger.Warn(warningReadFileMessage, zap.String("path", walkedPath), zap.String("error", fileSection.Content.ReadError))
		}
		logger.Debug(debugFileMessage, zap.String("path", relativePath), zap.String("kind", string(fileSection.Content.Kind)))
		sections.add(path.Dir(relativePath), fileSection)
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(errorWalkFormat, rootPath, walkError)
	}

	return &types.Document{
		Root:        absoluteRootPath,
		Tree:        treeLines,
		Directories: sections.ordered(),
	}, nil
}

func buildFileSection(filePath string, relativePath string, sniffUndeclared bool) types.FileSection {
	fileSection := types.FileSection{
		RelativePath: relativePath,
		Extension:    utils.FenceTag(filePath),
	}
	if utils.IsDeclaredText(filePath) || sniffUndeclared {
		fileSection.Content = ReadContent(filePath)
	} else {
		fileSection.Content = types.FileContent{Kind: types.ContentKindBinary}
	}
	return fileSection
}

// sectionCollector keeps directory sections in the order directories are entered.
type sectionCollector struct {
	sections     []*types.DirectorySection
	sectionByDir map[string]*types.DirectorySection
}

func newSectionCollector() *sectionCollector {
	return &sectionCollector{sectionByDir: map[string]*types.DirectorySection{}}
}

func (collector *sectionCollector) enter(relativeDirectory string) {
	if _, exists := collector.sectionByDir[relativeDirectory]; exists {
		return
	}
	headingPath := relativeDirectory
	if relativeDirectory == rootRelativePath {
		headingPath = ""
	}
	section := &types.DirectorySection{RelativePath: headingPath}
	collector.sections = append(collector.sections, section)
	collector.sectionByDir[relativeDirectory] = section
}

func (collector *sectionCollector) add(relativeDirectory string, fileSection types.FileSection) {
	collector.enter(relativeDirectory)
	section := collector.sectionByDir[relativeDirectory]
	section.Files = append(section.Files, fileSection)
}

// dropIfEmpty removes the section of a directory that could not be listed.
func (collector *sectionCollector) dropIfEmpty(relativeDirectory string) {
	section, exists := collector.sectionByDir[relativeDirectory]
	if !exists || len(section.Files) > 0 {
		return
	}
	delete(collector.sectionByDir, relativeDirectory)
	for sectionIndex, candidate := range collector.sections {
		if candidate == section {
			collector.sections = append(collector.sections[:sectionIndex], collector.sections[sectionIndex+1:]...)
			return
		}
	}
}

func (collector *sectionCollector) ordered() []types.DirectorySection {
	orderedSections := make([]types.DirectorySection, 0, len(collector.sections))
	for _, section := range collector.sections {
		orderedSections = append(orderedSections, *section)
	}
	return orderedSections
}
