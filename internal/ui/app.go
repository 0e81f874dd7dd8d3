package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/dastanaron/ffmarks/internal/models"
	"github.com/dastanaron/ffmarks/internal/tree"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	ModeNormal = 1
	ModeSearch = 2
)

// App represents the TUI application
type App struct {
	app    *tview.Application
	view   *tview.TreeView
	detail *tview.TextView
	search *tview.InputField
	status *tview.TextView
	layout *tview.Flex
	root   *tree.Tree
	nodes  *Nodes
	mode   uint8
	query  string
}

// NewApp creates a new application instance for a bookmark tree
func NewApp(t *tree.Tree) *App {
	return &App{
		app:    tview.NewApplication(),
		view:   tview.NewTreeView(),
		detail: tview.NewTextView().SetDynamicColors(true).SetWrap(true),
		search: tview.NewInputField().SetLabel("Search: "),
		status: tview.NewTextView().SetDynamicColors(true),
		root:   t,
		nodes:  BuildNodes(t),
		mode:   ModeNormal,
	}
}

// Run starts the application
func (a *App) Run() error {
	a.view.SetBorder(true).SetTitle("Bookmarks")
	a.detail.SetBorder(true).SetTitle("Details")

	cols := tview.NewFlex().
		AddItem(a.view, 0, 3, true).
		AddItem(a.detail, 0, 2, false)

	a.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(cols, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.view.SetRoot(a.nodes.Root).SetCurrentNode(a.nodes.Root)
	a.view.SetChangedFunc(a.onChange)
	a.view.SetSelectedFunc(a.onSelect)
	a.search.SetDoneFunc(a.onSearchDone)

	a.showDetails(a.root)
	a.updateStatus("")

	a.app.SetRoot(a.layout, true)
	a.app.SetInputCapture(a.globalInput)
	a.app.SetFocus(a.view)
	return a.app.Run()
}

func (a *App) updateStatus(message string) {
	folders, links := a.root.Stats()
	countText := fmt.Sprintf(" [::b]%d[::r] folders, [::b]%d[::r] links", folders, links)
	statusText := "[::b]Enter[::r] open/toggle  [::b]/[::r] search  [::b]n[::r] next  [::b]q[::r] quit" + countText
	if message != "" {
		statusText += "  " + message
	}
	a.status.SetText(statusText)
}

func (a *App) onChange(node *tview.TreeNode) {
	if src, ok := node.GetReference().(*tree.Tree); ok {
		a.showDetails(src)
	}
}

func (a *App) onSelect(node *tview.TreeNode) {
	src, ok := node.GetReference().(*tree.Tree)
	if !ok {
		return
	}
	if src.Record.IsFolder() || src == a.root {
		node.SetExpanded(!node.IsExpanded())
		return
	}
	if uri := src.Record.Link(); uri != "" {
		openURL(uri)
	}
}

func (a *App) showDetails(t *tree.Tree) {
	a.detail.SetText(DetailText(&t.Record))
}

// DetailText formats every attribute of a record for the details pane
func DetailText(r *models.Record) string {
	var b strings.Builder
	field := func(name, value string) {
		fmt.Fprintf(&b, "[::b]%s:[::-]\n%s\n\n", name, tview.Escape(value))
	}

	field("Title", r.Title)
	if r.IsFolder() {
		field("Type", "Folder")
	} else {
		field("Type", "Link")
		field("URI", r.Link())
	}
	field("GUID", r.GUID)
	if r.HasParent() {
		field("Parent", *r.ParentGUID)
	}
	if r.Root != nil {
		field("Root", *r.Root)
	}
	if r.Index != nil {
		field("Index", fmt.Sprint(*r.Index))
	}
	if r.ID != nil {
		field("ID", fmt.Sprint(*r.ID))
	}
	if r.DateAdded != nil {
		field("Added", r.Added().Format(time.DateTime))
	}
	if r.LastModified != nil {
		field("Modified", r.Modified().Format(time.DateTime))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) setMode(m uint8) {
	a.mode = m
	switch m {
	case ModeSearch:
		a.layout.RemoveItem(a.search)
		a.layout.AddItem(a.search, 1, 0, false)
		a.search.SetText(a.query)
		a.app.SetFocus(a.search)
	default:
		a.layout.RemoveItem(a.search)
		a.app.SetFocus(a.view)
	}
}

func (a *App) onSearchDone(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		a.query = a.search.GetText()
		a.setMode(ModeNormal)
		a.findNext()
	case tcell.KeyEscape:
		a.setMode(ModeNormal)
	}
}

func (a *App) findNext() {
	node := a.nodes.Find(a.query, a.view.GetCurrentNode())
	if node == nil {
		a.updateStatus(fmt.Sprintf("[red]no match for %q[-]", tview.Escape(a.query)))
		return
	}
	a.nodes.Reveal(node)
	a.view.SetCurrentNode(node)
	a.onChange(node)
	a.updateStatus("")
}

func (a *App) globalInput(event *tcell.EventKey) *tcell.EventKey {
	if a.mode == ModeSearch {
		return event
	}

	switch event.Key() {
	case tcell.KeyEscape:
		a.app.Stop()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			a.app.Stop()
			return nil
		case '/':
			a.setMode(ModeSearch)
			return nil
		case 'n':
			a.findNext()
			return nil
		}
	}
	return event
}

func openURL(url string) {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start"}
	case "darwin":
		cmd = "open"
	default:
		cmd = "xdg-open"
	}
	args = append(args, url)
	_ = exec.Command(cmd, args...).Start()
}
