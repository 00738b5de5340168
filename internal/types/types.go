// Package types defines the data structures shared by the treemd packages.
package types

const (
	CommandRender = "render"
	CommandTree   = "tree"

	LanguageEnglish = "en"
	LanguageRussian = "ru"
)

// ContentKind classifies the outcome of reading one file.
type ContentKind string

const (
	ContentKindText            ContentKind = "text"
	ContentKindBinary          ContentKind = "binary"
	ContentKindUnknownEncoding ContentKind = "unknown_encoding"
	ContentKindReadError       ContentKind = "read_error"
)

// FileContent is the result of reading a file for the document.
type FileContent struct {
	Kind      ContentKind
	Text      string
	Encoding  string
	ReadError string
}

// IsBinaryMarker reports whether the file content must be replaced by the binary marker.
func (content FileContent) IsBinaryMarker() bool {
	return content.Kind == ContentKindBinary
}

// TreeLine is one display line of the ASCII directory tree.
type TreeLine struct {
	Prefix       string
	Connector    string
	Name         string
	IsLast       bool
	IsDirectory  bool
	AccessDenied bool
}

// FileSection is one file entry rendered under its directory heading.
type FileSection struct {
	RelativePath string
	Extension    string
	Content      FileContent
}

// DirectorySection groups the files found directly inside one directory.
type DirectorySection struct {
	RelativePath string
	Files        []FileSection
}

// Document is the complete snapshot of a directory tree before rendering.
type Document struct {
	Root        string
	Tree        []TreeLine
	Directories []DirectorySection
}

// Labels holds the human-readable strings used when rendering a Document.
type Labels struct {
	ProjectStructure   string
	RootDirectory      string
	DirectoryFormat    string
	FileFormat         string
	BinaryMarker       string
	NoAccess           string
	UnknownEncoding    string
	ReadErrorFormat    string
	SavedConfirmFormat string
}

// EnglishLabels are the default document labels.
var EnglishLabels = Labels{
	ProjectStructure:   "Project structure",
	RootDirectory:      "Root directory",
	DirectoryFormat:    "Directory: %s",
	FileFormat:         "File: %s",
	BinaryMarker:       "*(binary file)*",
	NoAccess:           "[No access]",
	UnknownEncoding:    "[Error reading file - unknown encoding]",
	ReadErrorFormat:    "[Error reading file: %s]",
	SavedConfirmFormat: "File saved as %s",
}

// RussianLabels are the Russian document labels.
var RussianLabels = Labels{
	ProjectStructure:   "Структура проекта",
	RootDirectory:      "Корневая директория",
	DirectoryFormat:    "Директория: %s",
	FileFormat:         "Файл: %s",
	BinaryMarker:       "*(бинарный файл)*",
	NoAccess:           "[Нет доступа]",
	UnknownEncoding:    "[Ошибка чтения файла - неизвестная кодировка]",
	ReadErrorFormat:    "[Ошибка чтения файла: %s]",
	SavedConfirmFormat: "Файл сохранен как %s",
}

// LabelsForLanguage returns the label set for a language code and whether it is known.
func LabelsForLanguage(language string) (Labels, bool) {
	switch language {
	case "", LanguageEnglish:
		return EnglishLabels, true
	case LanguageRussian:
		return RussianLabels, true
	default:
		return Labels{}, false
	}
}
