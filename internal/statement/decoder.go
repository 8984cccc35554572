package statement

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
)

// Wells Fargo checking exports carry 5 columns and no guaranteed header.
const (
	NumFields   = 5
	ColDate     = 0
	ColAmount   = 1
	ColType     = 2
	ColCategory = 3
	ColDesc     = 4
)

// Row is one decoded statement record, padded to NumFields fields.
type Row struct {
	// Line is the 1-based record number within the upload.
	Line   int
	Fields []string
}

// Reader lazily decodes statement records from upload bytes. It is a
// single-consumption forward reader.
type Reader struct {
	cr   *csv.Reader
	line int
}

// NewReader prepares a Reader over raw upload bytes. A UTF-8 byte-order
// mark is stripped and invalid byte sequences are replaced with U+FFFD so
// one bad byte cannot fail the whole decode.
func NewReader(data []byte) *Reader {
	text := strings.ToValidUTF8(string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), "�")

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	return &Reader{cr: cr}
}

// Next returns the next record, padded with empty fields to NumFields.
// Records with more than NumFields fields are returned as-is; callers only
// consult the first NumFields. Blank lines are skipped by the underlying
// CSV reader. Returns io.EOF when the input is exhausted; any other error
// is tagged with the record number it occurred on, and reading may continue.
func (r *Reader) Next() (Row, error) {
	fields, err := r.cr.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	r.line++
	if err != nil {
		return Row{Line: r.line}, err
	}

	for len(fields) < NumFields {
		fields = append(fields, "")
	}
	return Row{Line: r.line, Fields: fields}, nil
}
