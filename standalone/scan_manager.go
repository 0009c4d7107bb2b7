package standalone

import (
	"fmt"
	"log"

	"github.com/user-none/padnav/standalone/storage"
	"github.com/user-none/padnav/standalone/style"
)

// ScanManager runs package scans and merges the results into the library.
// Update must be called each frame from the UI thread.
type ScanManager struct {
	scanner *Scanner
	last    ScanProgress

	library *storage.Library
	dirs    func() []string

	// Callbacks to App
	onProgress func()
	onComplete func(msg string)
}

// NewScanManager creates a scan manager. dirs is asked for the directories
// to search each time a scan starts.
func NewScanManager(library *storage.Library, dirs func() []string, onProgress func(), onComplete func(msg string)) *ScanManager {
	return &ScanManager{
		library:    library,
		dirs:       dirs,
		onProgress: onProgress,
		onComplete: onComplete,
	}
}

// IsScanning returns true if a scan is in progress
func (sm *ScanManager) IsScanning() bool {
	return sm.scanner != nil
}

// Status describes the running scan for display
func (sm *ScanManager) Status() string {
	if sm.scanner == nil {
		return ""
	}
	if sm.last.StatusText == "" {
		return "Scanning..."
	}
	return fmt.Sprintf("%s %d found", sm.last.StatusText, sm.last.PackagesFound)
}

// Start begins a new scan unless one is already running
func (sm *ScanManager) Start() {
	if sm.scanner != nil {
		return
	}
	sm.last = ScanProgress{}

	// The scanner runs on another goroutine; give it copies
	existing := make(map[string]*storage.PackageEntry, len(sm.library.Packages))
	for id, entry := range sm.library.Packages {
		e := *entry
		existing[id] = &e
	}
	sm.scanner = NewScanner(sm.dirs(), existing)
	go sm.scanner.Run()
}

// Update polls for scan progress and completion
func (sm *ScanManager) Update() {
	if sm.scanner == nil {
		return
	}

	select {
	case progress, ok := <-sm.scanner.Progress():
		if ok {
			sm.last = progress
			if sm.onProgress != nil {
				sm.onProgress()
			}
		}
	default:
	}

	select {
	case result, ok := <-sm.scanner.Done():
		if ok {
			sm.handleComplete(result)
		}
	default:
	}
}

// Cancel stops the current scan
func (sm *ScanManager) Cancel() {
	if sm.scanner != nil {
		sm.scanner.Cancel()
	}
}

// handleComplete merges the discovered packages and reports the outcome
func (sm *ScanManager) handleComplete(result ScanResult) {
	for id, entry := range sm.scanner.Packages() {
		// The user may have patched it while the scan ran
		if cur := sm.library.GetPackage(id); cur != nil {
			entry.Patched = cur.Patched
			entry.Added = cur.Added
		}
		sm.library.AddPackage(entry)
		log.Printf("Registered package %s", id)
	}
	sm.scanner = nil

	if err := storage.SaveLibrary(sm.library); err != nil {
		log.Printf("Failed to save library: %v", err)
	}

	var msg string
	switch {
	case result.Cancelled:
		msg = "" // No notification on cancel
	case len(result.Errors) > 0:
		log.Printf("Scan finished with %d errors: %v", len(result.Errors), result.Errors[0])
		msg = result.Errors[0].Error()
	case result.NewPackages > 0:
		msg = "Found " + style.FormatCount(result.NewPackages, "new package", "new packages")
	default:
		msg = "Library up to date"
	}

	if sm.onComplete != nil {
		sm.onComplete(msg)
	}
}
