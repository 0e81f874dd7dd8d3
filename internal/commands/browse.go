package commands

import (
	"fmt"

	"github.com/dastanaron/ffmarks/internal/service"
	"github.com/dastanaron/ffmarks/internal/ui"
)

// BrowseCommand opens a bookmark tree in the terminal browser
type BrowseCommand struct{}

// NewBrowseCommand creates a new browse command
func NewBrowseCommand() *BrowseCommand {
	return &BrowseCommand{}
}

// Execute loads the file and runs the TUI until the user quits
func (c *BrowseCommand) Execute(filePath string) error {
	t, err := LoadTree(filePath)
	if err != nil {
		return err
	}
	return ui.NewApp(t).Run()
}

// ExecuteArchive browses the tree last stored by import
func (c *BrowseCommand) ExecuteArchive(recordSvc *service.RecordService) error {
	t, err := recordSvc.Tree()
	if err != nil {
		return fmt.Errorf("failed to load archive: %w", err)
	}
	return ui.NewApp(t).Run()
}
