package commands

import (
	"fmt"
	"io"

	"github.com/dastanaron/ffmarks/internal/service"
)

// ChildrenCommand lists the direct children of an archived folder
type ChildrenCommand struct {
	out       io.Writer
	recordSvc *service.RecordService
}

// NewChildrenCommand creates a new children command
func NewChildrenCommand(out io.Writer, recordSvc *service.RecordService) *ChildrenCommand {
	return &ChildrenCommand{out: out, recordSvc: recordSvc}
}

// Execute prints the folder's children in source order
func (c *ChildrenCommand) Execute(guid string) error {
	parent, err := c.recordSvc.GetByGUID(guid)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	if parent == nil {
		return &UsageError{Message: fmt.Sprintf("No archived record has GUID %q.", guid)}
	}

	children, err := c.recordSvc.Children(guid)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	return WriteLines(c.out, recordLines(children))
}
