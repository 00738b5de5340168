// Package output renders snapshot documents as Markdown.
package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/temirov/treemd/internal/types"
)

const (
	// WrapDelimiter opens and closes the wrapped form of a document.
	WrapDelimiter = "'''"

	wrapAssignmentFormat = "%s = " + WrapDelimiter + "\n"
	codeFence            = "```"
	lineSeparator        = "\n"
)

// FormatTreeLines renders tree lines as display strings.
func FormatTreeLines(treeLines []types.TreeLine, labels types.Labels) []string {
	displayLines := make([]string, 0, len(treeLines))
	for _, treeLine := range treeLines {
		name := treeLine.Name
		if treeLine.AccessDenied {
			name = labels.NoAccess
		}
		displayLines = append(displayLines, treeLine.Prefix+treeLine.Connector+name)
	}
	return displayLines
}

// RenderTree returns the tree lines joined by newlines without a trailing newline.
func RenderTree(treeLines []types.TreeLine, labels types.Labels) string {
	return strings.Join(FormatTreeLines(treeLines, labels), lineSeparator)
}

// RenderMarkdown returns the Markdown body of a document: the tree block
// followed by one section per directory.
func RenderMarkdown(document *types.Document, labels types.Labels) string {
	var buffer bytes.Buffer

	buffer.WriteString("# " + labels.ProjectStructure + "\n\n")
	buffer.WriteString(codeFence + "\n")
	buffer.WriteString(RenderTree(document.Tree, labels))
	buffer.WriteString("\n" + codeFence + "\n\n")

	for _, directorySection := range document.Directories {
		heading := labels.RootDirectory
		if directorySection.RelativePath != "" {
			heading = fmt.Sprintf(labels.DirectoryFormat, directorySection.RelativePath)
		}
		buffer.WriteString("\n## " + heading + "\n\n")
		for _, fileSection := range directorySection.Files {
			writeFileSection(&buffer, fileSection, labels)
		}
	}
	return buffer.String()
}

func writeFileSection(buffer *bytes.Buffer, fileSection types.FileSection, labels types.Labels) {
	fileHeading := "### " + fmt.Sprintf(labels.FileFormat, fileSection.RelativePath)
	if fileSection.Content.IsBinaryMarker() {
		buffer.WriteString(fileHeading + " " + labels.BinaryMarker + "\n\n")
		return
	}
	buffer.WriteString(fileHeading + "\n")
	buffer.WriteString(codeFence + fileSection.Extension + "\n")
	buffer.WriteString(fileBody(fileSection.Content, labels))
	buffer.WriteString("\n" + codeFence + "\n\n")
}

func fileBody(content types.FileContent, labels types.Labels) string {
	switch content.Kind {
	case types.ContentKindUnknownEncoding:
		return labels.UnknownEncoding
	case types.ContentKindReadError:
		return fmt.Sprintf(labels.ReadErrorFormat, content.ReadError)
	default:
		return content.Text
	}
}

// Wrap assigns body to identifier between triple-quote delimiters.
func Wrap(identifier string, body string) string {
	return fmt.Sprintf(wrapAssignmentFormat, identifier) + body + WrapDelimiter
}

// Unwrap returns the text between the first and the last delimiter of wrapped.
// It reports false when wrapped does not hold two distinct delimiters.
func Unwrap(wrapped string) (string, bool) {
	openingIndex := strings.Index(wrapped, WrapDelimiter)
	closingIndex := strings.LastIndex(wrapped, WrapDelimiter)
	if openingIndex < 0 || closingIndex < openingIndex+len(WrapDelimiter) {
		return "", false
	}
	return wrapped[openingIndex+len(WrapDelimiter) : closingIndex], true
}
