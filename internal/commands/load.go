package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dastanaron/ffmarks/internal/parser"
	"github.com/dastanaron/ffmarks/internal/tree"
)

var (
	// ErrNotFound is returned when the bookmarks file does not exist
	ErrNotFound = errors.New("bookmarks file does not exist")
	// ErrPermission is returned when the bookmarks file cannot be read
	ErrPermission = errors.New("no permission to read bookmarks file")
	// ErrUsage marks invalid flag combinations or values
	ErrUsage = errors.New("usage error")
)

// UsageError carries a user-facing message for a bad invocation
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// Is lets errors.Is match ErrUsage
func (e *UsageError) Is(target error) bool { return target == ErrUsage }

// LoadTree opens a Firefox JSON backup and builds its tree.
// The file is closed before returning.
func LoadTree(filePath string) (*tree.Tree, error) {
	file, err := os.Open(filePath)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, ErrNotFound
		case errors.Is(err, fs.ErrPermission):
			return nil, ErrPermission
		}
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	t, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks: %w", err)
	}
	return t, nil
}

// Diagnostic returns the one-line message printed for err
func Diagnostic(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "The specified file does not exist."
	case errors.Is(err, ErrPermission):
		return "The program does not have permission to read the specified file."
	}
	return err.Error()
}
