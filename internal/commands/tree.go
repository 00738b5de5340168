// Package commands contains the core logic for collecting snapshot data.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/treemd/internal/types"
	"github.com/temirov/treemd/internal/utils"
)

const (
	// TreeBranchConnector precedes every entry except the last of its siblings.
	TreeBranchConnector = "├── "
	// TreeLastConnector precedes the last entry among its siblings.
	TreeLastConnector = "└── "

	treeBranchPadding = "│   "
	treeLastPadding   = "    "

	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
	// warningNoAccessMessage is logged when a directory listing is denied.
	warningNoAccessMessage = "no access to directory"
)

// DirectoryReader lists the entries of a directory sorted by name.
type DirectoryReader func(directoryPath string) ([]os.DirEntry, error)

// TreeBuilder generates ASCII tree lines for a directory.
type TreeBuilder struct {
	Root          string
	Exclusions    utils.ExclusionSet
	ReadDirectory DirectoryReader
	Logger        *zap.Logger
}

type treeEntry struct {
	name      string
	path      string
	isSymlink bool
}

// GenerateTree returns the tree lines for the entries below directoryPath.
// Directories are listed before files, each group in lexical order. A listing
// denied by permissions yields one AccessDenied line; other listing errors are
// returned.
func (treeBuilder TreeBuilder) GenerateTree(directoryPath string, prefix string) ([]types.TreeLine, error) {
	readDirectory := treeBuilder.ReadDirectory
	if readDirectory == nil {
		readDirectory = os.ReadDir
	}
	logger := utils.LoggerOrNop(treeBuilder.Logger)

	directoryEntries, readDirectoryError := readDirectory(directoryPath)
	if readDirectoryError != nil {
		if errors.Is(readDirectoryError, fs.ErrPermission) {
			logger.Warn(warningNoAccessMessage, zap.String("path", directoryPath), zap.Error(readDirectoryError))
			return []types.TreeLine{{Prefix: prefix, Connector: TreeBranchConnector, AccessDenied: true}}, nil
		}
		return nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}

	var directories []treeEntry
	var files []treeEntry
	for _, directoryEntry := range directoryEntries {
		entry := treeEntry{
			name:      directoryEntry.Name(),
			path:      filepath.Join(directoryPath, directoryEntry.Name()),
			isSymlink: directoryEntry.Type()&fs.ModeSymlink != 0,
		}
		if treeBuilder.isExcluded(entry.path) {
			continue
		}
		if isDirectoryEntry(entry.path, directoryEntry) {
			directories = append(directories, entry)
		} else {
			files = append(files, entry)
		}
	}

	orderedEntries := append(directories, files...)
	var treeLines []types.TreeLine
	for entryIndex, entry := range orderedEntries {
		isLast := entryIndex == len(orderedEntries)-1
		isDirectory := entryIndex < len(directories)
		connector, childPrefix := TreeBranchConnector, prefix+treeBranchPadding
		if isLast {
			connector, childPrefix = TreeLastConnector, prefix+treeLastPadding
		}
		treeLines = append(treeLines, types.TreeLine{
			Prefix:      prefix,
			Connector:   connector,
			Name:        entry.name,
			IsLast:      isLast,
			IsDirectory: isDirectory,
		})
		if !isDirectory || entry.isSymlink {
			continue
		}
		childLines, childError := treeBuilder.GenerateTree(entry.path, childPrefix)
		if childError != nil {
			return nil, childError
		}
		treeLines = append(treeLines, childLines...)
	}
	return treeLines, nil
}

// isExcluded evaluates the exclusion set against the path relative to the tree root.
func (treeBuilder TreeBuilder) isExcluded(entryPath string) bool {
	root := treeBuilder.Root
	if root == "" {
		return utils.ShouldExclude(entryPath, treeBuilder.Exclusions)
	}
	return utils.ShouldExclude(utils.RelativeSlashPath(entryPath, root), treeBuilder.Exclusions)
}

// isDirectoryEntry reports whether the entry is a directory, following symbolic links.
func isDirectoryEntry(entryPath string, directoryEntry os.DirEntry) bool {
	if directoryEntry.IsDir() {
		return true
	}
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	targetInfo, statError := os.Stat(entryPath)
	return statError == nil && targetInfo.IsDir()
}
