package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dastanaron/ffmarks/internal/repository"
	"github.com/dastanaron/ffmarks/internal/service"
)

const example = `{"title":"","children":[` +
	`{"title":"A","type":"text/x-moz-place-container","children":[{"title":"L1","type":"text/x-moz-place-url","uri":"http://x"}]},` +
	`{"title":"L2","type":"text/x-moz-place-url","uri":"http://y"}]}`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

func TestNewRenderOptions(t *testing.T) {
	tests := []struct {
		name     string
		markdown *int
		pretty   *string
		expected RenderOptions
		wantErr  string
	}{
		{name: "default", expected: RenderOptions{Mode: ModeTitles}},
		{name: "markdown", markdown: intPtr(3), expected: RenderOptions{Mode: ModeMarkdown, Level: 3}},
		{name: "spaces", pretty: strPtr("spaces"), expected: RenderOptions{Mode: ModeOutline, Unit: " "}},
		{name: "tabs", pretty: strPtr("tabs"), expected: RenderOptions{Mode: ModeOutline, Unit: "\t"}},
		{
			name:     "both",
			markdown: intPtr(1),
			pretty:   strPtr("tabs"),
			wantErr:  "Please choose --pretty_text or --to_markdown, not both.",
		},
		{name: "level too low", markdown: intPtr(0), wantErr: "--to_markdown must be between 1 and 6."},
		{name: "level too high", markdown: intPtr(7), wantErr: "--to_markdown must be between 1 and 6."},
		{name: "bad spacer", pretty: strPtr("dots"), wantErr: `--pretty_text must be "spaces" or "tabs".`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := NewRenderOptions(tt.markdown, tt.pretty)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUsage)
				assert.Equal(t, tt.wantErr, Diagnostic(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, opts)
		})
	}
}

func TestRenderCommand(t *testing.T) {
	path := writeFile(t, example)

	tests := []struct {
		name     string
		opts     RenderOptions
		expected string
	}{
		{name: "titles", opts: RenderOptions{Mode: ModeTitles}, expected: "\nA\nL1\nL2\n"},
		{name: "spaces", opts: RenderOptions{Mode: ModeOutline, Unit: " "}, expected: "root\n A\n  L1\n L2\n"},
		{
			name:     "markdown",
			opts:     RenderOptions{Mode: ModeMarkdown, Level: 1},
			expected: "\n# root\n\n- [L2](http://y)\n\n## A\n\n- [L1](http://x)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, NewRenderCommand(&out, tt.opts).Execute(path))
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestRenderCommandNoPartialOutput(t *testing.T) {
	path := writeFile(t, `{"title":"","children":[{"title":"a"}, 5]}`)

	var out bytes.Buffer
	err := NewRenderCommand(&out, RenderOptions{}).Execute(path)
	require.Error(t, err)
	assert.Empty(t, out.String())
}

func TestLoadTreeErrors(t *testing.T) {
	_, err := LoadTree(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "The specified file does not exist.", Diagnostic(err))

	_, err = LoadTree(writeFile(t, `not json`))
	require.Error(t, err)
	assert.Contains(t, Diagnostic(err), "failed to parse bookmarks")
}

func TestLoadTreePermission(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	path := writeFile(t, example)
	require.NoError(t, os.Chmod(path, 0o000))

	_, err := LoadTree(path)
	assert.ErrorIs(t, err, ErrPermission)
	assert.Equal(t, "The program does not have permission to read the specified file.", Diagnostic(err))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestWriteLinesError(t *testing.T) {
	err := WriteLines(failingWriter{}, func(yield func(string) bool) { yield("x") })
	assert.ErrorContains(t, err, "closed pipe")
}

func TestImportCommand(t *testing.T) {
	repo, err := repository.NewSQLiteRepository(filepath.Join(t.TempDir(), "import.db"))
	require.NoError(t, err)
	defer repo.Close()

	var out bytes.Buffer
	cmd := NewImportCommand(&out, service.NewRecordService(repo))
	require.NoError(t, cmd.Execute(writeFile(t, example)))
	assert.Equal(t, "Imported 4 records.\n", out.String())

	n, err := repo.Records().Count()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestImportCommandMissingFile(t *testing.T) {
	repo, err := repository.NewSQLiteRepository(filepath.Join(t.TempDir(), "import.db"))
	require.NoError(t, err)
	defer repo.Close()

	var out bytes.Buffer
	err = NewImportCommand(&out, service.NewRecordService(repo)).Execute("/does/not/exist.json")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, out.String())
}

func importExample(t *testing.T) *service.RecordService {
	t.Helper()
	repo, err := repository.NewSQLiteRepository(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	svc := service.NewRecordService(repo)
	var out bytes.Buffer
	require.NoError(t, NewImportCommand(&out, svc).Execute(writeFile(t, example)))
	return svc
}

func TestSearchCommand(t *testing.T) {
	svc := importExample(t)

	var out bytes.Buffer
	require.NoError(t, NewSearchCommand(&out, svc).Execute("http://"))
	assert.Equal(t, "\tL1\thttp://x\n\tL2\thttp://y\n", out.String())

	out.Reset()
	require.NoError(t, NewSearchCommand(&out, svc).Execute("zzz"))
	assert.Equal(t, "No bookmarks match \"zzz\".\n", out.String())
}

func TestChildrenCommandUnknownGUID(t *testing.T) {
	svc := importExample(t)

	var out bytes.Buffer
	err := NewChildrenCommand(&out, svc).Execute("missing")
	assert.ErrorIs(t, err, ErrUsage)
	assert.Empty(t, out.String())
}
