package store

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"slices"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
)

const fileExt = ".json"

// FyneBlobs keeps one file per key below a fyne storage root, usually the
// app's Storage().RootURI(). Keys are path-escaped so nested document
// paths stay flat on disk.
type FyneBlobs struct {
	root fyne.URI
	mu   sync.Mutex
}

// NewFyneStore returns a document store rooted at root, creating the
// directory when needed.
func NewFyneStore(root fyne.URI) (*Store, error) {
	b, err := NewFyneBlobs(root)
	if err != nil {
		return nil, err
	}
	return New(b), nil
}

func NewFyneBlobs(root fyne.URI) (*FyneBlobs, error) {
	if root == nil {
		return nil, fmt.Errorf("store: nil root")
	}
	ok, err := storage.Exists(root)
	if err != nil {
		return nil, fmt.Errorf("store: check %s: %w", root, err)
	}
	if !ok {
		if err := storage.CreateListable(root); err != nil {
			return nil, fmt.Errorf("store: create %s: %w", root, err)
		}
		log.Printf("[store] created %s", root)
	}
	return &FyneBlobs{root: root}, nil
}

func (f *FyneBlobs) uri(key string) (fyne.URI, error) {
	if key == "" {
		return nil, ErrInvalidPath
	}
	return storage.Child(f.root, url.PathEscape(key)+fileExt)
}

func (f *FyneBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := f.uri(key)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ok, err := storage.Exists(u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	r, err := storage.Reader(u)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (f *FyneBlobs) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u, err := f.uri(key)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	w, err := storage.Writer(u)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (f *FyneBlobs) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u, err := f.uri(key)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ok, err := storage.Exists(u)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return storage.Delete(u)
}

func (f *FyneBlobs) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	children, err := storage.List(f.root)
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", f.root, err)
	}
	var keys []string
	for _, c := range children {
		name, ok := strings.CutSuffix(c.Name(), fileExt)
		if !ok {
			continue
		}
		key, err := url.PathUnescape(name)
		if err != nil {
			log.Printf("[store] skipping %s: %v", c.Name(), err)
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, nil
}
