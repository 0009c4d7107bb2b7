package standalone

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/user-none/padnav/standalone/storage"
)

// manifestName is the package manifest file searched for while scanning
const manifestName = "AppxManifest.xml"

// ScanPhase represents the current scanning phase
type ScanPhase int

const (
	ScanPhaseDiscovery ScanPhase = iota
	ScanPhaseManifests
	ScanPhaseComplete
)

// ScanProgress represents progress updates from the scanner
type ScanProgress struct {
	Phase         ScanPhase
	Progress      float64 // 0.0 to 1.0
	PackagesFound int
	StatusText    string
}

// ScanResult represents the final scan result
type ScanResult struct {
	NewPackages int
	Errors      []error
	Cancelled   bool
}

// Scanner looks for package manifests in the background
type Scanner struct {
	directories []string
	existing    map[string]*storage.PackageEntry // entries whose user data is preserved

	// Channels
	cancel   chan struct{}
	progress chan ScanProgress
	done     chan ScanResult

	mu        sync.Mutex
	packages  map[string]*storage.PackageEntry
	errors    []error
	cancelled bool
	now       func() time.Time
}

// NewScanner creates a scanner for dirs. existing is read, never written.
func NewScanner(dirs []string, existing map[string]*storage.PackageEntry) *Scanner {
	return &Scanner{
		directories: dirs,
		existing:    existing,
		cancel:      make(chan struct{}),
		progress:    make(chan ScanProgress, 10),
		done:        make(chan ScanResult, 1),
		packages:    make(map[string]*storage.PackageEntry),
		now:         time.Now,
	}
}

// Progress returns the progress channel
func (s *Scanner) Progress() <-chan ScanProgress {
	return s.progress
}

// Done returns the done channel
func (s *Scanner) Done() <-chan ScanResult {
	return s.done
}

// Cancel signals the scanner to stop
func (s *Scanner) Cancel() {
	s.mu.Lock()
	if !s.cancelled {
		s.cancelled = true
		close(s.cancel)
	}
	s.mu.Unlock()
}

// Packages returns the discovered packages by id
func (s *Scanner) Packages() map[string]*storage.PackageEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.packages
}

// Run starts the scanning process
func (s *Scanner) Run() {
	defer close(s.done)
	defer close(s.progress)

	s.sendProgress(ScanProgress{
		Phase:      ScanPhaseDiscovery,
		StatusText: "Looking for packages...",
	})

	var manifests []string
	for _, dir := range s.directories {
		if s.isCancelled() {
			s.done <- ScanResult{Cancelled: true}
			return
		}

		files, err := s.scanDirectory(dir)
		if err != nil {
			s.addError(err)
			continue
		}
		manifests = append(manifests, files...)
	}

	newPackages := 0
	for i, path := range manifests {
		if s.isCancelled() {
			break
		}

		if err := s.processManifest(path, &newPackages); err != nil {
			s.addError(err)
		}

		s.sendProgress(ScanProgress{
			Phase:         ScanPhaseManifests,
			Progress:      float64(i+1) / float64(len(manifests)),
			PackagesFound: s.packagesCount(),
			StatusText:    "Reading manifests...",
		})
	}

	s.sendProgress(ScanProgress{
		Phase:         ScanPhaseComplete,
		Progress:      1,
		PackagesFound: s.packagesCount(),
	})
	s.done <- ScanResult{
		NewPackages: newPackages,
		Errors:      s.getErrors(),
		Cancelled:   s.isCancelled(),
	}
}

// scanDirectory walks dir looking for manifests and package archives. A
// missing directory has no packages.
func (s *Scanner) scanDirectory(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if s.isCancelled() {
			return filepath.SkipAll
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(d.Name(), manifestName) || isPackageArchive(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", dir, err)
	}
	return files, nil
}

// appxManifest is the part of a package manifest the library records
type appxManifest struct {
	Identity struct {
		Name      string `xml:"Name,attr"`
		Publisher string `xml:"Publisher,attr"`
		Version   string `xml:"Version,attr"`
	} `xml:"Identity"`
	Properties struct {
		DisplayName          string `xml:"DisplayName"`
		PublisherDisplayName string `xml:"PublisherDisplayName"`
	} `xml:"Properties"`
}

// parseManifest reads the identity and display names from a manifest
func parseManifest(data []byte) (*storage.PackageEntry, error) {
	var m appxManifest
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Identity.Name == "" {
		return nil, errors.New("manifest has no identity name")
	}

	entry := &storage.PackageEntry{
		ID:        m.Identity.Name,
		Name:      displayName(m.Properties.DisplayName, m.Identity.Name),
		Publisher: displayName(m.Properties.PublisherDisplayName, publisherCN(m.Identity.Publisher)),
		Version:   m.Identity.Version,
	}
	return entry, nil
}

// displayName returns name unless it is empty or an unresolved resource
// reference, in which case fallback is used
func displayName(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasPrefix(name, "ms-resource:") {
		return fallback
	}
	return name
}

// publisherCN extracts the common name from a publisher distinguished name
func publisherCN(dn string) string {
	for _, part := range strings.Split(dn, ",") {
		if k, v, ok := strings.Cut(strings.TrimSpace(part), "="); ok && strings.EqualFold(k, "CN") {
			return strings.TrimSpace(v)
		}
	}
	return dn
}

// processManifest records the package described by the manifest or package
// archive at path. An archive is its own package directory.
func (s *Scanner) processManifest(path string, newPackages *int) error {
	var (
		data []byte
		err  error
		dir  = filepath.Dir(path)
	)
	if isPackageArchive(path) {
		data, err = readArchiveManifest(path)
		dir = path
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	entry, err := parseManifest(data)
	if err != nil {
		return fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	entry.Dir = dir

	// Keep what the user did to a package already in the library
	if existing := s.existing[entry.ID]; existing != nil {
		entry.Patched = existing.Patched
		entry.Added = existing.Added
	} else {
		entry.Added = s.now().Unix()
		*newPackages++
	}

	s.mu.Lock()
	s.packages[entry.ID] = entry
	s.mu.Unlock()
	return nil
}

func (s *Scanner) addError(err error) {
	s.mu.Lock()
	s.errors = append(s.errors, err)
	s.mu.Unlock()
}

// isCancelled checks if the scanner was cancelled
func (s *Scanner) isCancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

func (s *Scanner) packagesCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.packages)
}

// getErrors returns a copy of the errors slice
func (s *Scanner) getErrors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	errs := make([]error, len(s.errors))
	copy(errs, s.errors)
	return errs
}

// sendProgress sends a progress update without blocking
func (s *Scanner) sendProgress(p ScanProgress) {
	select {
	case s.progress <- p:
	default:
		// Progress channel full, skip this update
	}
}
