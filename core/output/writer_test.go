package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/gaurav-prasanna/onepux/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var header = []string{"Title", "URL", "Username", "Password", "Notes", "OTPAuth"}

func row(title, url, user, pass string) core.Row {
	return core.Row{"Title": title, "URL": url, "Username": user, "Password": pass, "Notes": "", "OTPAuth": ""}
}

func TestNew_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	w, err := New(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, w.OutputDir)
	assert.DirExists(t, dir)
}

func TestNew_FailsWhenDirIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := New(filepath.Join(file, "sub"))

	assert.ErrorIs(t, err, core.ErrWriteFailure)
}

func TestWrite_HeaderAndRows(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.Write("vault_icloud.csv", header, []core.Row{row("Bank", "bank.com", "alice", "s3cr3t")})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "vault_icloud.csv"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Title,URL,Username,Password,Notes,OTPAuth\r\nBank,bank.com,alice,s3cr3t,,\r\n", string(data))
}

func TestWrite_NoRowsWritesHeaderOnly(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.Write("empty.csv", header, nil)

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Title,URL,Username,Password,Notes,OTPAuth\r\n", string(data))
}

func TestEncode_Quoting(t *testing.T) {
	data, err := Encode([]string{"a", "b", "c", "d"}, []core.Row{{
		"a": "plain",
		"b": "with,comma",
		"c": `say "hi"`,
		"d": "two\nlines",
	}})

	require.NoError(t, err)
	assert.Equal(t, "a,b,c,d\r\nplain,\"with,comma\",\"say \"\"hi\"\"\",\"two\r\nlines\"\r\n", string(data))
}

func TestWrite_RoundTrip(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)
	rows := []core.Row{
		row("Bank", "bank.com", "alice", "s3cr3t"),
		row("Mail, personal", "https://mail.example/?a=1&b=2", "bob@example.com", `p"w,d`),
		row("Untitled", "", "", ""),
	}

	path, err := w.Write("out.csv", header, rows)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, got, len(rows)+1)
	assert.Equal(t, header, got[0])
	for i, r := range rows {
		assert.Equal(t, []string{r["Title"], r["URL"], r["Username"], r["Password"], "", ""}, got[i+1])
	}
}

func TestWrite_SchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	_, err = w.Write("out.csv", header, []core.Row{{"Title": "only a title"}})

	assert.ErrorIs(t, err, core.ErrSchemaMismatch)
	assert.NoFileExists(t, filepath.Join(dir, "out.csv"))
}

func TestWrite_UnwritablePath(t *testing.T) {
	w := &Writer{OutputDir: filepath.Join(t.TempDir(), "does-not-exist")}

	_, err := w.Write("out.csv", header, nil)

	assert.ErrorIs(t, err, core.ErrWriteFailure)
}
