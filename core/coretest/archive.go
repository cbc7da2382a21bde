// Package coretest builds .1pux fixtures for pipeline tests.
package coretest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// WriteArchive writes a zip archive at path holding the given entries
// (name -> content). Entries are added in name order.
func WriteArchive(t *testing.T, path string, entries map[string]string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(entries[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

// Document wraps raw item JSON values into a single-account,
// single-vault export document.
func Document(items ...string) string {
	return `{"accounts":[{"vaults":[{"items":[` + strings.Join(items, ",") + `]}]}]}`
}

// LoginItem returns the JSON for a login item with a username and password.
func LoginItem(title, url, username, password string) string {
	return `{"overview":{"title":` + quote(title) + `,"url":` + quote(url) + `},` +
		`"details":{"loginFields":[` +
		`{"name":"username","value":` + quote(username) + `},` +
		`{"name":"password","value":` + quote(password) + `}]}}`
}

// WriteExport writes a .1pux archive holding export.data built from items.
func WriteExport(t *testing.T, path string, items ...string) string {
	t.Helper()
	return WriteArchive(t, path, map[string]string{
		"export.attributes": `{"version":3}`,
		"export.data":       Document(items...),
	})
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}
