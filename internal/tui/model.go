package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"shapemask/internal/mskfile"
)

// Model is the interactive mask viewer.
type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	ext     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	mask *mskfile.Mask

	// query mode
	queryMode bool
	ta        textarea.Model

	popup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverState  string

	// header table
	showHeader bool
	tbl        table.Model
}

// New returns a viewer listing files with extension ext (".msk" when empty)
// from the working directory.
func New(ext string) Model {
	if ext == "" {
		ext = ".msk"
	}
	m := Model{
		helpVisible: true,
		zoom:        1.0,
		ext:         ext,
		status:      "shapemask viewer ready",
	}
	m.cwd, _ = os.Getwd()
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Masks"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.ta = textarea.New()
	m.ta.Placeholder = "One point per line: \"lon lat\", \"lon,lat\" or POINT(lon lat). Enter to query; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(14)
	m.refreshDir()
	return m
}

// NewWithPath opens a mask at launch.
func NewWithPath(path, ext string) Model {
	m := New(ext)
	m.loadPath(path)
	return m
}

// Mask returns the loaded mask, or nil.
func (m Model) Mask() *mskfile.Mask { return m.mask }

func (m Model) Init() tea.Cmd { return nil }
