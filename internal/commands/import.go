package commands

import (
	"fmt"
	"io"

	"github.com/dastanaron/ffmarks/internal/service"
)

// ImportCommand stores a bookmarks file in the SQLite archive
type ImportCommand struct {
	out       io.Writer
	recordSvc *service.RecordService
}

// NewImportCommand creates a new import command
func NewImportCommand(out io.Writer, recordSvc *service.RecordService) *ImportCommand {
	return &ImportCommand{out: out, recordSvc: recordSvc}
}

// Execute replaces the archive with the records of the file
func (c *ImportCommand) Execute(filePath string) error {
	t, err := LoadTree(filePath)
	if err != nil {
		return err
	}

	imported, err := c.recordSvc.Import(t)
	if err != nil {
		return fmt.Errorf("failed to store records: %w", err)
	}

	fmt.Fprintf(c.out, "Imported %d records.\n", imported)
	return nil
}
