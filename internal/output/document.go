// Package output writes the bundle document: the structure block followed by the content block.
package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/temirov/bundler/internal/types"
)

const (
	StructureHeader = "--- PROJECT STRUCTURE ---"
	StructureFooter = "--- END PROJECT STRUCTURE ---"

	fileStartFormat = "--- START FILE: %s ---\n"
	fileEndFormat   = "--- END FILE: %s ---\n\n"
	fileErrorFormat = "--- ERROR READING FILE FOR CONTENT: %s (%v) ---\n\n"

	rootLineFormat = "%s/\n"
)

// Document is an append-only writer for one bundle. The first write error is
// sticky: later writes become no-ops and the error is reported by Err and Flush.
type Document struct {
	writer       *bufio.Writer
	writeError   error
	contentBytes int64
}

// NewDocument buffers writes to destination.
func NewDocument(destination io.Writer) *Document {
	return &Document{writer: bufio.NewWriter(destination)}
}

func (document *Document) write(text string) {
	if document.writeError != nil {
		return
	}
	_, document.writeError = document.writer.WriteString(text)
}

// BeginStructure writes the structure header and the project root line.
func (document *Document) BeginStructure(rootName string) {
	document.write(StructureHeader + "\n")
	document.write(fmt.Sprintf(rootLineFormat, rootName))
}

// WriteTreeLines writes rendered tree lines, one per line.
func (document *Document) WriteTreeLines(lines []string) {
	for _, line := range lines {
		document.write(line + "\n")
	}
}

// EndStructure closes the structure block and leaves a blank line before the content block.
func (document *Document) EndStructure() {
	document.write(StructureFooter + "\n\n")
}

// WriteFileRecord appends one content record. A failed record is written as a
// single error line in place of the content.
func (document *Document) WriteFileRecord(record types.FileRecord) {
	if record.Failed() {
		document.write(fmt.Sprintf(fileErrorFormat, record.RelativePath, record.ReadError))
		return
	}
	document.write(fmt.Sprintf(fileStartFormat, record.RelativePath))
	document.write(record.Content)
	document.write("\n")
	document.write(fmt.Sprintf(fileEndFormat, record.RelativePath))
	if document.writeError == nil {
		document.contentBytes += int64(len(record.Content))
	}
}

// ContentBytes reports the number of file content bytes written so far.
func (document *Document) ContentBytes() int64 {
	return document.contentBytes
}

// Err returns the first write error.
func (document *Document) Err() error {
	return document.writeError
}

// Flush writes buffered data to the destination.
func (document *Document) Flush() error {
	if document.writeError != nil {
		return document.writeError
	}
	document.writeError = document.writer.Flush()
	return document.writeError
}
