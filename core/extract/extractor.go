// Package extract implements the Extractor interface.
// It unpacks a 1Password .1pux export (a zip archive) into a scratch
// directory and locates the export.data document inside it.
package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/onepux/core"
	"github.com/klauspost/compress/zip"
)

const (
	// Extension is the file extension of a 1Password export.
	Extension = ".1pux"
	// DocumentName is the data document stored at the archive root.
	DocumentName = "export.data"
)

// ArchiveExtractor unpacks .1pux archives onto the local filesystem.
type ArchiveExtractor struct{}

// New creates an ArchiveExtractor.
func New() *ArchiveExtractor {
	return &ArchiveExtractor{}
}

// Validate checks that path exists, is a regular file and carries the
// .1pux extension (any case). It performs no reads of the file content.
func Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: input file not found: %s", core.ErrInvalidInput, path)
		}
		return fmt.Errorf("%w: %w", core.ErrInvalidInput, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: path is not a file: %s", core.ErrInvalidInput, path)
	}
	if ext := filepath.Ext(path); !strings.EqualFold(ext, Extension) {
		return fmt.Errorf("%w: invalid file extension: expected %s, got %q", core.ErrInvalidInput, Extension, ext)
	}
	return nil
}

// Extract unpacks every entry of archivePath into destDir and returns the
// path of the extracted export.data. Other entries are left in destDir;
// removing them is the caller's job.
func (e *ArchiveExtractor) Extract(archivePath, destDir string) (string, error) {
	if err := Validate(archivePath); err != nil {
		return "", err
	}

	absDestDir, err := filepath.Abs(destDir)
	if err != nil {
		return "", fmt.Errorf("%w: resolving destination directory: %w", core.ErrWriteFailure, err)
	}

	zipReader, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("%w: invalid or corrupted 1Password file %s: %w", core.ErrCorruptArchive, archivePath, err)
	}
	defer zipReader.Close()

	for _, file := range zipReader.File {
		if err := extractEntry(file, absDestDir); err != nil {
			return "", err
		}
	}

	docPath := filepath.Join(absDestDir, DocumentName)
	info, err := os.Stat(docPath)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s not found in the archive", core.ErrMissingDocument, DocumentName)
	}
	return docPath, nil
}

// extractEntry writes a single archive entry below destDir.
func extractEntry(file *zip.File, destDir string) error {
	destPath := filepath.Join(destDir, filepath.FromSlash(file.Name))

	// Entries must not escape the destination (zip slip).
	relPath, err := filepath.Rel(destDir, destPath)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: invalid path in archive: %s", core.ErrCorruptArchive, file.Name)
	}

	if file.FileInfo().IsDir() {
		if err := os.MkdirAll(destPath, 0o755); err != nil {
			return fmt.Errorf("%w: creating directory %s: %w", core.ErrWriteFailure, destPath, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("%w: creating directory for %s: %w", core.ErrWriteFailure, file.Name, err)
	}

	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", core.ErrCorruptArchive, file.Name, err)
	}
	defer rc.Close()

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", core.ErrWriteFailure, destPath, err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, rc); err != nil {
		return fmt.Errorf("%w: extracting %s: %w", core.ErrCorruptArchive, file.Name, err)
	}
	if err := destFile.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", core.ErrWriteFailure, destPath, err)
	}
	return nil
}
