package html2pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Result holds a generated PDF and provides helpers for common delivery
// targets: raw bytes, streaming readers, and files. Methods may be called
// multiple times; the underlying data is never modified.
type Result struct {
	data     []byte
	filename string
}

// Bytes returns the raw PDF content.
func (r *Result) Bytes() []byte {
	return r.data
}

// Filename returns the suggested download name from the conversion
// settings (for example "document.pdf").
func (r *Result) Filename() string {
	return r.filename
}

// Reader returns a [*bytes.Reader] over the PDF content, suitable for
// streaming uploads or any API that accepts an [io.Reader].
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the full PDF content to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// WriteToFile writes the PDF to the file at path, creating it if needed.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	if err := os.WriteFile(path, r.data, perm); err != nil {
		return wrapStage(StageDeliver, fmt.Errorf("%w: %v", ErrWritePDF, err))
	}
	return nil
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}
