package utils

import (
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText implements the lossy decode policy used for bundled content.
// A leading byte order mark selects UTF-8 or UTF-16 (either endianness) and is
// stripped; without one the data is treated as UTF-8. Byte sequences that are
// not valid in the selected encoding are replaced with U+FFFD, so decoding
// never fails on content.
func DecodeText(data []byte) string {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, decodeError := transform.Bytes(decoder, data)
	if decodeError != nil {
		return string(data)
	}
	return string(decoded)
}

// ReadTextFile reads the file at path and decodes it with DecodeText.
// Only I/O failures are reported; undecodable bytes are never an error.
//
// #nosec G304
func ReadTextFile(path string) (string, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return "", openError
	}
	defer fileHandle.Close()

	data, readError := io.ReadAll(fileHandle)
	if readError != nil {
		return "", readError
	}
	return DecodeText(data), nil
}
