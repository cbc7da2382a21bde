// Package output handles writing converted records to disk as CSV.
// Lines end in CRLF and fields are quoted only when they contain the
// delimiter, a quote or a line break.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/onepux/core"
)

// Writer writes CSV output to a directory.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("%w: getting working directory: %w", core.ErrWriteFailure, err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating output directory: %w", core.ErrWriteFailure, err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write encodes a header line plus one line per row into
// OutputDir/filename and returns the file's path. Every row must carry
// a value for every header column.
func (w *Writer) Write(filename string, header []string, rows []core.Row) (string, error) {
	data, err := Encode(header, rows)
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.OutputDir, filename)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("%w: writing file %s: %w", core.ErrWriteFailure, path, err)
	}
	return path, nil
}

// Encode renders header and rows as CSV bytes.
func Encode(header []string, rows []core.Row) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.UseCRLF = true

	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("%w: encoding header: %w", core.ErrWriteFailure, err)
	}

	record := make([]string, len(header))
	for i, row := range rows {
		for j, col := range header {
			v, ok := row[col]
			if !ok {
				return nil, fmt.Errorf("%w: row %d has no value for column %q", core.ErrSchemaMismatch, i, col)
			}
			record[j] = v
		}
		if err := cw.Write(record); err != nil {
			return nil, fmt.Errorf("%w: encoding row %d: %w", core.ErrWriteFailure, i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrWriteFailure, err)
	}
	return buf.Bytes(), nil
}
