package screens

import (
	"sync"
	"testing"

	"github.com/user-none/padnav/standalone/storage"
)

// fakeCallback records what pages ask of the window. Posted functions are
// delivered on a channel so tests can run them on their own goroutine.
type fakeCallback struct {
	mu       sync.Mutex
	rebuilds int
	notes    []string
	exited   bool
	posted   chan func()
}

func newFakeCallback() *fakeCallback {
	return &fakeCallback{posted: make(chan func(), 4)}
}

func (f *fakeCallback) RequestRebuild() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rebuilds++
}

func (f *fakeCallback) Post(fn func()) { f.posted <- fn }

func (f *fakeCallback) Notify(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, msg)
}

func (f *fakeCallback) Exit() { f.exited = true }

func (f *fakeCallback) rebuildCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rebuilds
}

// useTempDataDir points storage at a fresh directory for one test.
func useTempDataDir(t *testing.T) {
	t.Helper()
	storage.SetDataDir(t.TempDir())
	t.Cleanup(func() { storage.SetDataDir("") })
}
