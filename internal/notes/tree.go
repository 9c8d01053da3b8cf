// Package notes keeps the folder tree that names the whiteboard documents.
// File node paths are the document keys.
package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"scrawl/internal/store"
)

var (
	ErrExists      = errors.New("notes: name already exists")
	ErrNotFound    = errors.New("notes: no such node")
	ErrInvalidName = errors.New("notes: invalid name")
	ErrNotFolder   = errors.New("notes: not a folder")
)

// Node is a file or a folder. Folders have a non-nil Children slice.
type Node struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Children []*Node `json:"children"`
}

func (n *Node) IsFolder() bool { return n.Children != nil }

func (n *Node) child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Tree is the whole explorer hierarchy. Its root is an unnamed folder.
type Tree struct {
	Root *Node
}

func NewTree() *Tree {
	return &Tree{Root: &Node{Name: "root", Children: []*Node{}}}
}

// JoinPaths joins path parts with "/", trimming one leading and one
// trailing slash from each part and dropping empty parts.
func JoinPaths(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimPrefix(p, "/")
		p = strings.TrimSuffix(p, "/")
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}

// Find returns the node at path. The empty path is the root.
func (t *Tree) Find(path string) (*Node, error) {
	n := t.Root
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		next := n.child(part)
		if next == nil {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
		}
		n = next
	}
	return n, nil
}

func (t *Tree) add(parent, name string, folder bool) (*Node, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, "/") || name == store.TreeKey {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	p, err := t.Find(parent)
	if err != nil {
		return nil, err
	}
	if !p.IsFolder() {
		return nil, fmt.Errorf("%w: %q", ErrNotFolder, parent)
	}
	if p.child(name) != nil {
		return nil, fmt.Errorf("%w: %q in %q", ErrExists, name, parent)
	}
	n := &Node{Name: name, Path: JoinPaths(p.Path, name)}
	if folder {
		n.Children = []*Node{}
	}
	p.Children = append(p.Children, n)
	return n, nil
}

// AddFile creates a document entry below the folder at parent.
func (t *Tree) AddFile(parent, name string) (*Node, error) {
	return t.add(parent, name, false)
}

func (t *Tree) AddFolder(parent, name string) (*Node, error) {
	return t.add(parent, name, true)
}

// Delete removes the node at path and returns the paths of every file it
// contained, so their documents can be dropped too.
func (t *Tree) Delete(path string) ([]string, error) {
	path = JoinPaths(path)
	if path == "" {
		return nil, fmt.Errorf("%w: cannot delete root", ErrInvalidName)
	}
	parent, err := t.Find(Dir(path))
	if err != nil {
		return nil, err
	}
	for i, c := range parent.Children {
		if c.Path != path {
			continue
		}
		parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
		return files(c, nil), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
}

// Files lists every file path in depth-first order.
func (t *Tree) Files() []string {
	return files(t.Root, nil)
}

func files(n *Node, acc []string) []string {
	if !n.IsFolder() {
		return append(acc, n.Path)
	}
	for _, c := range n.Children {
		acc = files(c, acc)
	}
	return acc
}

// Dir returns the folder part of a node path.
func Dir(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ""
	}
	return path[:i]
}

// Load reads the tree from b. A tree that was never saved is empty.
func Load(ctx context.Context, b store.Blobs) (*Tree, error) {
	data, err := b.Get(ctx, store.TreeKey)
	if errors.Is(err, store.ErrNotFound) {
		return NewTree(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("notes: load: %w", err)
	}
	root := &Node{}
	if err := json.Unmarshal(data, root); err != nil {
		return nil, fmt.Errorf("notes: decode: %w", err)
	}
	if root.Children == nil {
		root.Children = []*Node{}
	}
	return &Tree{Root: root}, nil
}

func (t *Tree) Save(ctx context.Context, b store.Blobs) error {
	data, err := json.Marshal(t.Root)
	if err != nil {
		return fmt.Errorf("notes: encode: %w", err)
	}
	if err := b.Put(ctx, store.TreeKey, data); err != nil {
		return fmt.Errorf("notes: save: %w", err)
	}
	log.Printf("[notes] saved tree with %d files", len(t.Files()))
	return nil
}
