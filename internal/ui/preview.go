// Package ui implements the optional pre-write preview screen.
package ui

import (
	"fmt"
	"strings"

	"github.com/dastanaron/bookmarks-convert/internal/models"
	"github.com/dastanaron/bookmarks-convert/internal/normalize"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Preview shows the parsed bookmarks grouped by top-level folder so the
// result can be inspected before any file is written. It is read-only.
type Preview struct {
	app        *tview.Application
	folderList *tview.List
	list       *tview.List
	detail     *tview.TextView
	status     *tview.TextView

	source  string
	folders []string // top-level folder names, first-seen order
	groups  map[string][]models.RawBookmark
	current []models.RawBookmark // records of the selected folder
	proceed bool
}

// NewPreview groups the records by top-level folder and prepares the screen.
func NewPreview(raws []models.RawBookmark, source string) *Preview {
	p := &Preview{
		app:        tview.NewApplication(),
		folderList: tview.NewList(),
		list:       tview.NewList(),
		detail:     tview.NewTextView().SetDynamicColors(true).SetWrap(true),
		status:     tview.NewTextView().SetDynamicColors(true),
		source:     source,
		groups:     make(map[string][]models.RawBookmark),
	}
	for _, raw := range raws {
		top := raw.TopFolder()
		if _, ok := p.groups[top]; !ok {
			p.folders = append(p.folders, top)
		}
		p.groups[top] = append(p.groups[top], raw)
	}
	return p
}

// Run blocks until the user confirms or aborts. It returns true when the
// conversion should proceed to write files.
func (p *Preview) Run() (bool, error) {
	p.folderList.SetBorder(true).SetTitle("Folders")
	p.list.SetBorder(true).SetTitle("Bookmarks")
	p.detail.SetBorder(true).SetTitle("Record")

	cols := tview.NewFlex().
		AddItem(p.folderList, 0, 1, true).
		AddItem(p.list, 0, 2, false).
		AddItem(p.detail, 0, 2, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(cols, 0, 1, true).
		AddItem(p.status, 1, 0, false)

	for _, folder := range p.folders {
		p.folderList.AddItem(fmt.Sprintf("%s (%d)", folder, len(p.groups[folder])), "", 0, nil)
	}
	p.folderList.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		p.showFolder(index)
	})
	p.list.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		p.showRecord(index)
	})
	if len(p.folders) > 0 {
		p.showFolder(0)
	}

	p.status.SetText("[::b]Tab[::r] switch  [::b]w[::r] write files  [::b]q[::r]/[::b]Esc[::r] abort")

	p.app.SetRoot(main, true)
	p.app.SetInputCapture(p.globalInput)
	p.app.SetFocus(p.folderList)

	if err := p.app.Run(); err != nil {
		return false, err
	}
	return p.proceed, nil
}

func (p *Preview) showFolder(index int) {
	if index < 0 || index >= len(p.folders) {
		return
	}
	p.current = p.groups[p.folders[index]]
	p.list.Clear()
	for _, raw := range p.current {
		title := raw.Title
		if title == "" {
			title = "Untitled"
		}
		p.list.AddItem(title, raw.URL, 0, nil)
	}
	if len(p.current) > 0 {
		p.showRecord(0)
	} else {
		p.detail.SetText("")
	}
}

// showRecord renders the normalized form of the selected record, so the
// preview shows exactly what will land in the output file.
func (p *Preview) showRecord(index int) {
	if index < 0 || index >= len(p.current) {
		return
	}
	raw := p.current[index]
	b := normalize.Normalize(raw, p.source)

	var sb strings.Builder
	fmt.Fprintf(&sb, "[::b]%s[::-]\n\n", b.Title)
	fmt.Fprintf(&sb, "[yellow]URL:[-] %s\n", b.URL)
	fmt.Fprintf(&sb, "[yellow]Folder:[-] %s\n", raw.FolderPath())
	fmt.Fprintf(&sb, "[yellow]Tags:[-] %s\n", strings.Join(b.Tags, ", "))
	if b.CreatedAt != nil {
		fmt.Fprintf(&sb, "[yellow]Created:[-] %s\n", *b.CreatedAt)
	}
	fmt.Fprintf(&sb, "[yellow]Source:[-] %s\n", b.Source)
	p.detail.SetText(sb.String())
}

func (p *Preview) globalInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		p.proceed = false
		p.app.Stop()
		return nil
	case tcell.KeyTab:
		if p.app.GetFocus() == p.folderList {
			p.app.SetFocus(p.list)
		} else {
			p.app.SetFocus(p.folderList)
		}
		return nil
	}

	switch event.Rune() {
	case 'q':
		p.proceed = false
		p.app.Stop()
		return nil
	case 'w':
		p.proceed = true
		p.app.Stop()
		return nil
	}
	return event
}
