// Package core defines the conversion pipeline for onepux.
// Each stage of the pipeline is a clean, testable interface.
package core

// Record is one password entry read from a 1Password export.
// Every field is always set; missing source data is an empty string.
type Record struct {
	Title    string
	URL      string
	Username string
	Password string
	Notes    string
	OTPAuth  string
}

// Row maps a column name to its value for a single output line.
type Row map[string]string

// Extractor unpacks an export archive and returns the path of the
// embedded data document.
type Extractor interface {
	Extract(archivePath, destDir string) (string, error)
}

// Parser reads a data document into records, in source order.
type Parser interface {
	Parse(documentPath string) ([]Record, error)
}

// Schema describes one target password manager's import format.
type Schema interface {
	Name() string
	// Header returns the column names in output order.
	Header() []string
	Transform(r Record) Row
	// OutputFilename returns the file name for an input with the given stem
	// (e.g. "vault" -> "vault_icloud.csv").
	OutputFilename(stem string) string
}

// RowWriter serializes rows under a header into a named file.
type RowWriter interface {
	Write(filename string, header []string, rows []Row) (string, error)
}
