package vfs

import (
	"context"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

var _ FS = (*Mem)(nil)

type memNode struct {
	entry    Entry
	children []string
}

// Mem is an in-memory tree using slash-separated paths. Failures can be
// injected per path with FailStat and FailReadDir.
type Mem struct {
	mu          sync.Mutex
	nodes       map[string]*memNode
	statErrs    map[string]error
	readDirErrs map[string]error
	now         func() time.Time
}

func NewMem() *Mem {
	m := &Mem{
		nodes:       make(map[string]*memNode),
		statErrs:    make(map[string]error),
		readDirErrs: make(map[string]error),
		now:         time.Now,
	}
	m.nodes["/"] = &memNode{entry: Entry{Path: "/", IsDir: true}}
	return m
}

// AddDir creates p and any missing parents.
func (m *Mem) AddDir(p string) *Mem {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirAll(path.Clean(p))
	return m
}

// AddFile creates a file of the given size, creating missing parents.
func (m *Mem) AddFile(p string, size int64) *Mem {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = path.Clean(p)
	m.mkdirAll(path.Dir(p))
	m.link(p, Entry{Path: p, Size: size})
	return m
}

func (m *Mem) FailStat(p string, err error) *Mem {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statErrs[path.Clean(p)] = err
	return m
}

func (m *Mem) FailReadDir(p string, err error) *Mem {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readDirErrs[path.Clean(p)] = err
	return m
}

func (m *Mem) mkdirAll(p string) {
	if _, ok := m.nodes[p]; ok {
		return
	}
	m.mkdirAll(path.Dir(p))
	m.link(p, Entry{Path: p, IsDir: true})
}

func (m *Mem) link(p string, e Entry) {
	now := m.now()
	e.CreatedAt, e.ModifiedAt, e.AccessedAt = now, now, now
	if _, ok := m.nodes[p]; !ok {
		parent := m.nodes[path.Dir(p)]
		parent.children = append(parent.children, path.Base(p))
	}
	m.nodes[p] = &memNode{entry: e}
}

func (m *Mem) ReadDir(ctx context.Context, p string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p = path.Clean(p)
	if err := m.readDirErrs[p]; err != nil {
		return nil, &PathError{Op: "readdir", Path: p, Err: err}
	}
	n, ok := m.nodes[p]
	if !ok {
		return nil, &PathError{Op: "readdir", Path: p, Err: ErrNotFound}
	}
	if !n.entry.IsDir {
		return nil, &PathError{Op: "readdir", Path: p, Err: ErrInvalidName}
	}
	return append([]string(nil), n.children...), nil
}

func (m *Mem) Stat(ctx context.Context, p string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p = path.Clean(p)
	if err := m.statErrs[p]; err != nil {
		return Entry{}, &PathError{Op: "stat", Path: p, Err: err}
	}
	n, ok := m.nodes[p]
	if !ok {
		return Entry{}, &PathError{Op: "stat", Path: p, Err: ErrNotFound}
	}
	return n.entry, nil
}

func (m *Mem) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	oldPath = path.Clean(oldPath)
	dir, name := splitTarget(newPath, "/")
	if !ValidName(name) || path.Clean(dir) != path.Dir(oldPath) {
		return &PathError{Op: "rename", Path: newPath, Err: ErrInvalidName}
	}
	newPath = path.Clean(newPath)
	if _, ok := m.nodes[oldPath]; !ok {
		return &PathError{Op: "rename", Path: oldPath, Err: ErrNotFound}
	}
	if _, ok := m.nodes[newPath]; ok {
		return &PathError{Op: "rename", Path: newPath, Err: ErrNameConflict}
	}
	if _, ok := m.nodes[path.Dir(newPath)]; !ok {
		return &PathError{Op: "rename", Path: newPath, Err: ErrNotFound}
	}

	moved := make([]string, 0, 1)
	for p := range m.nodes {
		if p == oldPath || strings.HasPrefix(p, oldPath+"/") {
			moved = append(moved, p)
		}
	}
	sort.Strings(moved)
	for _, p := range moved {
		n := m.nodes[p]
		delete(m.nodes, p)
		np := newPath + strings.TrimPrefix(p, oldPath)
		n.entry.Path = np
		m.nodes[np] = n
	}

	oldParent := m.nodes[path.Dir(oldPath)]
	for i, c := range oldParent.children {
		if c == path.Base(oldPath) {
			oldParent.children = append(oldParent.children[:i], oldParent.children[i+1:]...)
			break
		}
	}
	newParent := m.nodes[path.Dir(newPath)]
	newParent.children = append(newParent.children, path.Base(newPath))
	return nil
}

// Exists reports whether p is present in the tree.
func (m *Mem) Exists(p string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.nodes[path.Clean(p)]
	return ok
}
