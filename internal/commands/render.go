package commands

import (
	"bufio"
	"fmt"
	"io"
	"iter"

	"github.com/dastanaron/ffmarks/internal/render"
	"github.com/dastanaron/ffmarks/internal/tree"
)

// Mode selects the output format
type Mode int

const (
	ModeTitles Mode = iota
	ModeOutline
	ModeMarkdown
)

// Heading levels accepted for markdown output
const (
	MinLevel = 1
	MaxLevel = 6
)

// indent units for --pretty_text
var spacers = map[string]string{
	"spaces": " ",
	"tabs":   "\t",
}

// RenderOptions describes the requested output
type RenderOptions struct {
	Mode  Mode
	Level int    // markdown starting heading level
	Unit  string // outline indent per level
}

// NewRenderOptions validates the flag values. markdown and pretty are nil
// when the corresponding flag was not given.
func NewRenderOptions(markdown *int, pretty *string) (RenderOptions, error) {
	switch {
	case markdown != nil && pretty != nil:
		return RenderOptions{}, &UsageError{Message: "Please choose --pretty_text or --to_markdown, not both."}
	case markdown != nil:
		if *markdown < MinLevel || *markdown > MaxLevel {
			return RenderOptions{}, &UsageError{
				Message: fmt.Sprintf("--to_markdown must be between %d and %d.", MinLevel, MaxLevel),
			}
		}
		return RenderOptions{Mode: ModeMarkdown, Level: *markdown}, nil
	case pretty != nil:
		unit, ok := spacers[*pretty]
		if !ok {
			return RenderOptions{}, &UsageError{Message: `--pretty_text must be "spaces" or "tabs".`}
		}
		return RenderOptions{Mode: ModeOutline, Unit: unit}, nil
	}
	return RenderOptions{Mode: ModeTitles}, nil
}

// Lines returns the renderer selected by the options
func (o RenderOptions) Lines(t *tree.Tree) iter.Seq[string] {
	switch o.Mode {
	case ModeMarkdown:
		return render.Markdown(t, o.Level)
	case ModeOutline:
		return render.Outline(t, "", o.Unit)
	}
	return render.Titles(t)
}

// RenderCommand prints a bookmarks file in the selected format
type RenderCommand struct {
	out  io.Writer
	opts RenderOptions
}

// NewRenderCommand creates a new render command
func NewRenderCommand(out io.Writer, opts RenderOptions) *RenderCommand {
	return &RenderCommand{out: out, opts: opts}
}

// Execute loads the file and writes one line per rendered element.
// Nothing is written when loading fails.
func (c *RenderCommand) Execute(filePath string) error {
	t, err := LoadTree(filePath)
	if err != nil {
		return err
	}
	return WriteLines(c.out, c.opts.Lines(t))
}

// WriteLines writes each line followed by a newline and flushes once.
func WriteLines(out io.Writer, lines iter.Seq[string]) error {
	w := bufio.NewWriter(out)
	for line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
