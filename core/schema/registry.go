// Package schema holds the output formats onepux can produce.
// Each format is a fixed header, a record-to-row transform and an output
// file suffix; adding a format means adding one entry to the registry.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/onepux/core"
)

// NameICloud selects the iCloud Passwords import format.
const NameICloud = "icloud"

// Table is a core.Schema backed by a static column list.
type Table struct {
	name      string
	header    []string
	transform func(core.Record) core.Row
	suffix    string
}

// Name returns the format selector, e.g. "icloud".
func (s *Table) Name() string {
	return s.name
}

// Header returns a copy of the column names in output order.
func (s *Table) Header() []string {
	return append([]string(nil), s.header...)
}

// Transform maps one record to a row keyed by column name.
func (s *Table) Transform(r core.Record) core.Row {
	return s.transform(r)
}

// OutputFilename returns stem + suffix + ".csv".
func (s *Table) OutputFilename(stem string) string {
	return stem + s.suffix + ".csv"
}

var iCloud = &Table{
	name:   NameICloud,
	header: []string{"Title", "URL", "Username", "Password", "Notes", "OTPAuth"},
	transform: func(r core.Record) core.Row {
		return core.Row{
			"Title":    r.Title,
			"URL":      r.URL,
			"Username": r.Username,
			"Password": r.Password,
			"Notes":    r.Notes,
			"OTPAuth":  r.OTPAuth,
		}
	},
	suffix: "_icloud",
}

var registry = map[string]*Table{
	iCloud.name: iCloud,
}

// Resolve returns the schema registered under name.
func Resolve(name string) (core.Schema, error) {
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", core.ErrUnsupportedFormat, name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names returns the registered format names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
