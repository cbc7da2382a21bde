// Package convert runs the onepux pipeline:
// validate → extract → parse → export.
//
// Each call to Convert owns a fresh scratch directory that is removed on
// every exit path. A Converter holds no per-run state, so separate calls
// are independent of each other.
package convert

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/onepux/core"
	"github.com/gaurav-prasanna/onepux/core/extract"
	"github.com/gaurav-prasanna/onepux/core/output"
	"github.com/gaurav-prasanna/onepux/core/parse"
	"github.com/gaurav-prasanna/onepux/core/schema"
)

// State is a step of a conversion run.
type State int

const (
	StateValidating State = iota
	StateExtracting
	StateParsing
	StateExporting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateExtracting:
		return "extracting"
	case StateParsing:
		return "parsing"
	case StateExporting:
		return "exporting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Error reports the step a failed run stopped at. The underlying error
// keeps its kind reachable through errors.Is.
type Error struct {
	State State
	Err   error
}

func (e *Error) Error() string {
	return e.State.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Converter wires the pipeline stages together.
type Converter struct {
	Extractor core.Extractor
	Parser    core.Parser
	// Resolve looks up an output schema by name.
	Resolve func(name string) (core.Schema, error)
	// TempDir is the parent of each run's scratch directory.
	// Empty means the OS default.
	TempDir string

	logger *slog.Logger
}

// New creates a Converter using the default stages.
func New(logger *slog.Logger) *Converter {
	return &Converter{
		Extractor: extract.New(),
		Parser:    parse.New(logger),
		Resolve:   schema.Resolve,
		logger:    logger,
	}
}

// Convert turns the .1pux export at inputPath into a CSV file for the
// named format and returns the path written. An empty outputDir means
// the input file's directory.
func (c *Converter) Convert(inputPath, outputDir, format string) (string, error) {
	state := StateValidating
	fail := func(err error) (string, error) {
		c.logger.Debug("state transition", "from", state, "to", StateFailed, "error", err)
		return "", &Error{State: state, Err: err}
	}
	enter := func(next State) {
		c.logger.Debug("state transition", "from", state, "to", next)
		state = next
	}

	if err := extract.Validate(inputPath); err != nil {
		return fail(err)
	}
	c.logger.Info("starting conversion", "input", inputPath, "format", format)

	enter(StateExtracting)
	scratch, err := os.MkdirTemp(c.TempDir, "onepux-*")
	if err != nil {
		return fail(fmt.Errorf("%w: creating scratch directory: %w", core.ErrWriteFailure, err))
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			c.logger.Warn("removing scratch directory", "path", scratch, "error", err)
		}
	}()

	docPath, err := c.Extractor.Extract(inputPath, scratch)
	if err != nil {
		return fail(err)
	}

	enter(StateParsing)
	records, err := c.Parser.Parse(docPath)
	if err != nil {
		return fail(err)
	}

	enter(StateExporting)
	s, err := c.Resolve(format)
	if err != nil {
		return fail(err)
	}

	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}
	writer, err := output.New(outputDir)
	if err != nil {
		return fail(err)
	}

	rows := make([]core.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, s.Transform(r))
	}

	path, err := writer.Write(s.OutputFilename(stem(inputPath)), s.Header(), rows)
	if err != nil {
		return fail(err)
	}

	enter(StateDone)
	c.logger.Info("export complete", "count", len(records), "output", path)
	return path, nil
}

// stem returns the base name of path without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
