package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"shapemask/internal/logx"
	"shapemask/internal/mskfile"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), m.ext) {
			continue
		}
		desc := ""
		if info, err := e.Info(); err == nil {
			desc = fmt.Sprintf("%d KiB", info.Size()/1024)
		}
		items = append(items, fileItem{title: name, desc: desc, path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no " + m.ext + " files in current directory"
	}
}

// loadPath reads a mask file and resets the viewport to its extent.
func (m *Model) loadPath(p string) {
	mk, err := mskfile.Read(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		logx.Logger().Warn("viewer load failed", "path", p, "err", err)
		return
	}
	m.selPath = p
	m.mask = mk
	m.resetView()
	m.popup = ""
	m.status = fmt.Sprintf("loaded: %s  %dx%d  land=%.1f%%",
		filepath.Base(p), mk.Width, mk.Height, 100*mk.LandFraction())
	if m.showHeader {
		m.refreshHeaderTable()
	}
}

func (m *Model) resetView() {
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
}
