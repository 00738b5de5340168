package utils

import (
	"errors"
	"io"
	"os"
)

const (
	// sniffLength defines the maximum number of bytes read when detecting binary content.
	sniffLength = 1024
	// controlCharacterRatioLimit is the share of control bytes above which a sample is binary.
	controlCharacterRatioLimit = 0.3
	controlCharacterCeiling    = 32
)

var allowedControlCharacters = map[byte]struct{}{
	'\t': {},
	'\n': {},
	'\r': {},
}

// LooksBinaryData reports whether the sample appears to hold binary data.
// A null byte marks the sample binary, otherwise it is binary when more than
// controlCharacterRatioLimit of its bytes are control characters other than
// tab, newline and carriage return. Only the first sniffLength bytes count.
func LooksBinaryData(sample []byte) bool {
	if len(sample) > sniffLength {
		sample = sample[:sniffLength]
	}
	if len(sample) == 0 {
		return false
	}
	controlCharacterCount := 0
	for _, byteValue := range sample {
		if byteValue == 0 {
			return true
		}
		if byteValue >= controlCharacterCeiling {
			continue
		}
		if _, allowed := allowedControlCharacters[byteValue]; !allowed {
			controlCharacterCount++
		}
	}
	return float64(controlCharacterCount)/float64(len(sample)) > controlCharacterRatioLimit
}

// LooksBinary reads up to sniffLength bytes from the file at path and reports
// whether they appear binary. Files that cannot be read are not binary.
func LooksBinary(path string) bool {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return false
	}
	defer fileHandle.Close()

	buffer := make([]byte, sniffLength)
	bytesRead, readError := io.ReadFull(fileHandle, buffer)
	if readError != nil && !errors.Is(readError, io.EOF) && !errors.Is(readError, io.ErrUnexpectedEOF) {
		return false
	}
	return LooksBinaryData(buffer[:bytesRead])
}
