package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const example = `{"title":"","children":[` +
	`{"title":"A","type":"text/x-moz-place-container","children":[{"title":"L1","type":"text/x-moz-place-url","uri":"http://x"}]},` +
	`{"title":"L2","type":"text/x-moz-place-url","uri":"http://y"}]}`

func writeExample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	require.NoError(t, os.WriteFile(path, []byte(example), 0o600))
	return path
}

func TestRun(t *testing.T) {
	path := writeExample(t)

	tests := []struct {
		name     string
		args     []string
		code     int
		expected string
	}{
		{name: "titles", args: []string{path}, expected: "\nA\nL1\nL2\n"},
		{name: "spaces", args: []string{"--pretty_text", "spaces", path}, expected: "root\n A\n  L1\n L2\n"},
		{name: "tabs", args: []string{path, "--pretty_text", "tabs"}, expected: "root\n\tA\n\t\tL1\n\tL2\n"},
		{
			name:     "markdown",
			args:     []string{"--to_markdown", "1", path},
			expected: "\n# root\n\n- [L2](http://y)\n\n## A\n\n- [L1](http://x)\n",
		},
		{
			name:     "both flags",
			args:     []string{"--to_markdown", "2", "--pretty_text", "tabs", "/missing.json"},
			code:     1,
			expected: "Please choose --pretty_text or --to_markdown, not both.\n",
		},
		{
			name:     "missing file",
			args:     []string{filepath.Join(t.TempDir(), "nope.json")},
			code:     1,
			expected: "The specified file does not exist.\n",
		},
		{
			name:     "level out of range",
			args:     []string{"--to_markdown", "9", path},
			code:     1,
			expected: "--to_markdown must be between 1 and 6.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			code := run(tt.args, &out)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestRunRequiresFile(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run(nil, &out))
	assert.NotEmpty(t, out.String())
}

func TestRunImport(t *testing.T) {
	path := writeExample(t)
	dbPath := filepath.Join(t.TempDir(), "nested", "archive.db")

	var out bytes.Buffer
	code := run([]string{"import", "--db", dbPath, path}, &out)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Imported 4 records.\n", out.String())
	assert.FileExists(t, dbPath)
}

func TestRootCommandHelp(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 0, run([]string{"--help"}, &out))

	for _, expected := range []string{"ffmarks", "--to_markdown", "--pretty_text", "import", "search", "children", "browse"} {
		assert.Contains(t, out.String(), expected)
	}
}

const archived = `{"guid":"root","title":"","children":[` +
	`{"guid":"dev","title":"Dev","type":"text/x-moz-place-container","children":[` +
	`{"guid":"go","title":"The Go Blog","type":"text/x-moz-place","uri":"https://go.dev/blog"}]},` +
	`{"guid":"hn","title":"Hacker News","type":"text/x-moz-place","uri":"https://news.ycombinator.com"}]}`

func importArchive(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	require.NoError(t, os.WriteFile(path, []byte(archived), 0o600))
	dbPath := filepath.Join(t.TempDir(), "archive.db")

	var out bytes.Buffer
	require.Equal(t, 0, run([]string{"import", "--db", dbPath, path}, &out), out.String())
	return dbPath
}

func TestRunArchiveQueries(t *testing.T) {
	dbPath := importArchive(t)

	tests := []struct {
		name     string
		args     []string
		code     int
		expected string
	}{
		{name: "search by uri", args: []string{"search", "--db", dbPath, "GO.DEV"}, expected: "go\tThe Go Blog\thttps://go.dev/blog\n"},
		{name: "search folder title", args: []string{"search", "--db", dbPath, "dev"}, expected: "dev\tDev\ngo\tThe Go Blog\thttps://go.dev/blog\n"},
		{name: "search without match", args: []string{"search", "--db", dbPath, "rust"}, expected: "No bookmarks match \"rust\".\n"},
		{
			name:     "children of root",
			args:     []string{"children", "--db", dbPath, "root"},
			expected: "dev\tDev\nhn\tHacker News\thttps://news.ycombinator.com\n",
		},
		{name: "children of unknown guid", args: []string{"children", "--db", dbPath, "nope"}, code: 1, expected: "No archived record has GUID \"nope\".\n"},
		{
			name:     "missing archive",
			args:     []string{"search", "--db", filepath.Join(t.TempDir(), "none.db"), "go"},
			code:     1,
			expected: "The specified file does not exist.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			code := run(tt.args, &out)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestRunSearchDoesNotCreateArchive(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "none.db")

	var out bytes.Buffer
	assert.Equal(t, 1, run([]string{"search", "--db", dbPath, "x"}, &out))
	assert.NoFileExists(t, dbPath)
}
