package commands

import (
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/temirov/treemd/internal/types"
	"github.com/temirov/treemd/internal/utils"
)

// Encoding names reported in FileContent.Encoding.
const (
	EncodingUTF8        = "utf-8"
	EncodingUTF16       = "utf-16"
	EncodingWindows1251 = "cp1251"
	EncodingKOI8R       = "koi8-r"
)

const (
	highSurrogateFirst = 0xD800
	lowSurrogateFirst  = 0xDC00
	surrogateLast      = 0xDFFF
)

type textDecoder struct {
	name   string
	decode func(data []byte) (string, bool)
}

// declaredTextDecoders lists the encodings tried for declared text files, in priority order.
var declaredTextDecoders = []textDecoder{
	{name: EncodingUTF8, decode: decodeUTF8},
	{name: EncodingUTF16, decode: decodeUTF16},
	{name: EncodingWindows1251, decode: singleByteDecoder(charmap.Windows1251)},
	{name: EncodingKOI8R, decode: singleByteDecoder(charmap.KOI8R)},
}

// ReadContent reads the file at filePath for inclusion in a document.
//
// Files with a declared text extension are decoded with the first encoding of
// declaredTextDecoders that accepts the whole file; decoded files whose
// leading bytes still look binary are reported as binary. Other files are
// reported as binary when they look binary and are otherwise decoded as UTF-8
// with invalid bytes replaced. Read failures are returned as
// ContentKindReadError and never abort the caller.
func ReadContent(filePath string) types.FileContent {
	if !utils.IsDeclaredText(filePath) {
		return readUndeclaredContent(filePath)
	}

	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		return types.FileContent{Kind: types.ContentKindReadError, ReadError: readError.Error()}
	}
	for _, decoder := range declaredTextDecoders {
		decodedText, decoded := decoder.decode(fileBytes)
		if !decoded {
			continue
		}
		if utils.LooksBinaryData(fileBytes) {
			return types.FileContent{Kind: types.ContentKindBinary, Encoding: decoder.name}
		}
		return types.FileContent{
			Kind:     types.ContentKindText,
			Text:     normalizeNewlines(decodedText),
			Encoding: decoder.name,
		}
	}
	return types.FileContent{Kind: types.ContentKindUnknownEncoding}
}

func readUndeclaredContent(filePath string) types.FileContent {
	if utils.LooksBinary(filePath) {
		return types.FileContent{Kind: types.ContentKindBinary}
	}
	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		return types.FileContent{Kind: types.ContentKindReadError, ReadError: readError.Error()}
	}
	return types.FileContent{
		Kind:     types.ContentKindText,
		Text:     normalizeNewlines(decodeUTF8Lenient(fileBytes)),
		Encoding: EncodingUTF8,
	}
}

func decodeUTF8(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// decodeUTF8Lenient replaces invalid UTF-8 sequences with U+FFFD.
func decodeUTF8Lenient(data []byte) string {
	decoded, decodeError := unicode.UTF8.NewDecoder().Bytes(data)
	if decodeError != nil {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError))
	}
	return string(decoded)
}

// decodeUTF16 decodes data as UTF-16, honouring a byte order mark and
// defaulting to little-endian. Odd lengths and unpaired surrogates are rejected.
func decodeUTF16(data []byte) (string, bool) {
	if len(data)%2 != 0 {
		return "", false
	}
	bigEndian := len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF
	if !validUTF16Surrogates(data, bigEndian) {
		return "", false
	}
	decoded, decodeError := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(data)
	if decodeError != nil {
		return "", false
	}
	return string(decoded), true
}

func validUTF16Surrogates(data []byte, bigEndian bool) bool {
	expectLowSurrogate := false
	for offset := 0; offset+1 < len(data); offset += 2 {
		codeUnit := uint16(data[offset]) | uint16(data[offset+1])<<8
		if bigEndian {
			codeUnit = uint16(data[offset])<<8 | uint16(data[offset+1])
		}
		isHigh := codeUnit >= highSurrogateFirst && codeUnit < lowSurrogateFirst
		isLow := codeUnit >= lowSurrogateFirst && codeUnit <= surrogateLast
		if expectLowSurrogate != isLow {
			return false
		}
		expectLowSurrogate = isHigh
	}
	return !expectLowSurrogate
}

// singleByteDecoder decodes with an 8-bit code page and fails on bytes the page leaves undefined.
func singleByteDecoder(codePage *charmap.Charmap) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		var builder strings.Builder
		builder.Grow(len(data))
		for _, byteValue := range data {
			decodedRune := codePage.DecodeByte(byteValue)
			if decodedRune == utf8.RuneError {
				return "", false
			}
			builder.WriteRune(decodedRune)
		}
		return builder.String(), true
	}
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
}
