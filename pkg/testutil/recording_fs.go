package testutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/arthur-debert/jarreloc/pkg/types"
)

// Op is one filesystem call observed by RecordingFS
type Op struct {
	Name string
	Path string
}

func (o Op) String() string {
	return fmt.Sprintf("%s %s", o.Name, o.Path)
}

// RecordingFS wraps a types.FS, records every mutating call in order and
// can inject errors for a given operation and path.
type RecordingFS struct {
	types.FS

	mu     sync.Mutex
	ops    []Op
	faults map[Op]error
	// partial makes writes to the keyed path fail after that many bytes
	partial map[string]int
}

// NewRecordingFS wraps inner
func NewRecordingFS(inner types.FS) *RecordingFS {
	return &RecordingFS{
		FS:      inner,
		faults:  make(map[Op]error),
		partial: make(map[string]int),
	}
}

// FailOn makes the named operation on path return err
func (r *RecordingFS) FailOn(op, path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faults[Op{Name: op, Path: path}] = err
}

// FailWriteAfter makes writes to path fail once n bytes have been written
func (r *RecordingFS) FailWriteAfter(path string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.partial[path] = n
}

// Ops returns a copy of the recorded operations
func (r *RecordingFS) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Count returns how many times op was called
func (r *RecordingFS) Count(op string) int {
	n := 0
	for _, o := range r.Ops() {
		if o.Name == op {
			n++
		}
	}
	return n
}

// IndexOf returns the position of the first matching op, or -1
func (r *RecordingFS) IndexOf(op, path string) int {
	for i, o := range r.Ops() {
		if o.Name == op && o.Path == path {
			return i
		}
	}
	return -1
}

// Reset forgets recorded operations, keeping injected faults
func (r *RecordingFS) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

func (r *RecordingFS) record(op, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := Op{Name: op, Path: path}
	r.ops = append(r.ops, key)
	return r.faults[key]
}

func (r *RecordingFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := r.record("mkdir", path); err != nil {
		return err
	}
	return r.FS.MkdirAll(path, perm)
}

func (r *RecordingFS) Create(name string) (io.WriteCloser, error) {
	if err := r.record("create", name); err != nil {
		return nil, err
	}
	w, err := r.FS.Create(name)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	limit, ok := r.partial[name]
	r.mu.Unlock()
	if ok {
		return &limitedWriter{WriteCloser: w, remaining: limit}, nil
	}
	return w, nil
}

func (r *RecordingFS) Open(name string) (io.ReadCloser, error) {
	if err := r.record("open", name); err != nil {
		return nil, err
	}
	return r.FS.Open(name)
}

func (r *RecordingFS) ReadFile(name string) ([]byte, error) {
	if err := r.record("read", name); err != nil {
		return nil, err
	}
	return r.FS.ReadFile(name)
}

func (r *RecordingFS) Rename(oldpath, newpath string) error {
	if err := r.record("rename", newpath); err != nil {
		return err
	}
	return r.FS.Rename(oldpath, newpath)
}

func (r *RecordingFS) Remove(name string) error {
	if err := r.record("remove", name); err != nil {
		return err
	}
	return r.FS.Remove(name)
}

// ErrInjectedWrite is returned by writers configured with FailWriteAfter
var ErrInjectedWrite = errors.New("injected write failure")

type limitedWriter struct {
	io.WriteCloser
	remaining int
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	if len(p) <= l.remaining {
		l.remaining -= len(p)
		return l.WriteCloser.Write(p)
	}
	n, err := l.WriteCloser.Write(p[:l.remaining])
	l.remaining = 0
	if err != nil {
		return n, err
	}
	return n, ErrInjectedWrite
}
