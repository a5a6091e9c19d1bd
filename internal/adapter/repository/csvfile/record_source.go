package csvfile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/simaogato/salesdash-backend/internal/domain"
)

// utf8BOM is dropped from the start of the file before the charset decoder sees it
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// recordSource implements domain.RecordSource for a delimited text file
type recordSource struct {
	path     string
	comma    rune
	decoding *encoding.Decoder
}

// Option configures a CSV record source
type Option func(*recordSource)

// WithComma sets the field delimiter (default ',')
func WithComma(comma rune) Option {
	return func(s *recordSource) {
		s.comma = comma
	}
}

// WithCharmap sets the single-byte charset of the file (default ISO-8859-1)
func WithCharmap(cm *charmap.Charmap) Option {
	return func(s *recordSource) {
		s.decoding = cm.NewDecoder()
	}
}

// NewRecordSource creates a record source reading the file at path
func NewRecordSource(path string, opts ...Option) domain.RecordSource {
	s := &recordSource{
		path:     path,
		comma:    ',',
		decoding: charmap.ISO8859_1.NewDecoder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadAll reads the header and every row of the file.
// Rows that the CSV reader rejects are counted as malformed and skipped.
func (s *recordSource) ReadAll(ctx context.Context) (*domain.SourceRows, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", domain.ErrSourceUnavailable, s.path, err)
	}
	defer file.Close()

	buffered := bufio.NewReader(file)
	if prefix, err := buffered.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = buffered.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(s.decoding.Reader(buffered))
	reader.Comma = s.comma
	reader.FieldsPerRecord = -1 // Field count is checked by the loader

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s is empty", domain.ErrSourceUnavailable, s.path)
		}
		return nil, fmt.Errorf("%w: failed to read header of %s: %v", domain.ErrSourceUnavailable, s.path, err)
	}

	result := &domain.SourceRows{Header: header}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Malformed++
				continue
			}
			return nil, fmt.Errorf("%w: failed to read %s: %v", domain.ErrSourceUnavailable, s.path, err)
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}
