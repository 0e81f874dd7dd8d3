package commands

import (
	"fmt"
	"io"
	"iter"

	"github.com/dastanaron/ffmarks/internal/models"
	"github.com/dastanaron/ffmarks/internal/service"
)

// SearchCommand prints archived records whose title or URI match a query
type SearchCommand struct {
	out       io.Writer
	recordSvc *service.RecordService
}

// NewSearchCommand creates a new search command
func NewSearchCommand(out io.Writer, recordSvc *service.RecordService) *SearchCommand {
	return &SearchCommand{out: out, recordSvc: recordSvc}
}

// Execute prints one line per match in pre-order
func (c *SearchCommand) Execute(query string) error {
	found, err := c.recordSvc.Search(query)
	if err != nil {
		return fmt.Errorf("failed to search archive: %w", err)
	}
	if len(found) == 0 {
		fmt.Fprintf(c.out, "No bookmarks match %q.\n", query)
		return nil
	}
	return WriteLines(c.out, recordLines(found))
}

// recordLines formats records as "guid<TAB>title", followed by
// "<TAB>uri" for links
func recordLines(records []models.Record) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := range records {
			r := &records[i]
			line := r.GUID + "\t" + r.Title
			if !r.IsFolder() && r.URI != nil {
				line += "\t" + *r.URI
			}
			if !yield(line) {
				return
			}
		}
	}
}
