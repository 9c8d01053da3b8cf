package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"scrawl/internal/notes"
	"scrawl/internal/store"
)

// Explorer lists the notes tree and opens files on the board.
type Explorer struct {
	notes    *notes.Tree
	store    *store.Store
	window   fyne.Window
	view     *widget.Tree
	selected string

	// OnOpen receives the path of a file the user picked, or "" when the
	// open document was deleted.
	OnOpen func(path string)
	// Current reports the path shown on the board.
	Current func() string
}

func NewExplorer(st *store.Store, win fyne.Window) (*Explorer, error) {
	t, err := notes.Load(context.Background(), st.Blobs())
	if err != nil {
		return nil, err
	}
	e := &Explorer{notes: t, store: st, window: win}
	e.view = widget.NewTree(e.childUIDs, e.isBranch, e.create, e.update)
	e.view.OnSelected = e.onSelected
	return e, nil
}

func (e *Explorer) node(uid widget.TreeNodeID) *notes.Node {
	n, err := e.notes.Find(uid)
	if err != nil {
		return nil
	}
	return n
}

func (e *Explorer) childUIDs(uid widget.TreeNodeID) []widget.TreeNodeID {
	n := e.node(uid)
	if n == nil {
		return nil
	}
	ids := make([]widget.TreeNodeID, 0, len(n.Children))
	for _, c := range n.Children {
		ids = append(ids, c.Path)
	}
	return ids
}

func (e *Explorer) isBranch(uid widget.TreeNodeID) bool {
	n := e.node(uid)
	return n != nil && n.IsFolder()
}

func (e *Explorer) create(bool) fyne.CanvasObject {
	return widget.NewLabel("")
}

func (e *Explorer) update(uid widget.TreeNodeID, _ bool, obj fyne.CanvasObject) {
	if n := e.node(uid); n != nil {
		obj.(*widget.Label).SetText(n.Name)
	}
}

func (e *Explorer) onSelected(uid widget.TreeNodeID) {
	e.selected = uid
	n := e.node(uid)
	if n == nil || n.IsFolder() {
		return
	}
	if e.OnOpen != nil {
		e.OnOpen(n.Path)
	}
}

// Select highlights path in the tree without reopening it.
func (e *Explorer) Select(path string) {
	if e.node(path) == nil {
		return
	}
	e.selected = path
	e.view.OnSelected = nil
	e.view.Select(path)
	e.view.OnSelected = e.onSelected
}

// parent is the folder new entries go into: the selected folder, the
// folder of the selected file, or the root.
func (e *Explorer) parent() string {
	n := e.node(e.selected)
	if n == nil {
		return ""
	}
	if n.IsFolder() {
		return n.Path
	}
	return notes.Dir(n.Path)
}

func (e *Explorer) save() {
	if err := e.notes.Save(context.Background(), e.store.Blobs()); err != nil {
		dialog.ShowError(err, e.window)
	}
	e.view.Refresh()
}

func (e *Explorer) prompt(title string, add func(parent, name string) (*notes.Node, error)) {
	entry := widget.NewEntry()
	items := []*widget.FormItem{widget.NewFormItem("Name", entry)}
	dialog.ShowForm(title, "Create", "Cancel", items, func(ok bool) {
		if !ok || entry.Text == "" {
			return
		}
		parent := e.parent()
		n, err := add(parent, entry.Text)
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		log.Printf("[notes] added %q", n.Path)
		e.save()
		if parent != "" {
			e.view.OpenBranch(parent)
		}
		if !n.IsFolder() {
			e.view.Select(n.Path)
		}
	}, e.window)
}

func (e *Explorer) NewFile() {
	e.prompt("New File", e.notes.AddFile)
}

func (e *Explorer) NewFolder() {
	e.prompt("New Folder", e.notes.AddFolder)
}

// DeleteSelected removes the selected node and the documents below it.
func (e *Explorer) DeleteSelected() {
	n := e.node(e.selected)
	if n == nil || e.selected == "" {
		return
	}
	msg := fmt.Sprintf("Delete %q?", n.Path)
	dialog.ShowConfirm("Delete", msg, func(ok bool) {
		if !ok {
			return
		}
		removed, err := e.notes.Delete(n.Path)
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		// close the open document first so its pending save is not
		// written back after the delete
		if e.Current != nil && e.OnOpen != nil && slices.Contains(removed, e.Current()) {
			e.OnOpen("")
		}
		var errs []error
		for _, p := range removed {
			if err := e.store.Delete(context.Background(), p); err != nil {
				errs = append(errs, err)
			}
		}
		if err := errors.Join(errs...); err != nil {
			dialog.ShowError(err, e.window)
		}
		e.selected = ""
		e.view.UnselectAll()
		e.save()
	}, e.window)
}

func (e *Explorer) Container() fyne.CanvasObject {
	bar := container.NewHBox(
		widget.NewButtonWithIcon("", theme.FileIcon(), e.NewFile),
		widget.NewButtonWithIcon("", theme.FolderNewIcon(), e.NewFolder),
		widget.NewButtonWithIcon("", theme.DeleteIcon(), e.DeleteSelected),
	)
	return container.NewBorder(bar, nil, nil, nil, e.view)
}
