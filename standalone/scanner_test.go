package standalone

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user-none/padnav/standalone/storage"
)

const haloManifest = `<?xml version="1.0" encoding="utf-8"?>
<Package xmlns="http://schemas.microsoft.com/appx/2010/manifest">
  <Identity Name="Halo.MCC" Publisher="CN=Microsoft Studios, O=Microsoft, C=US" Version="1.2.0.0" />
  <Properties>
    <DisplayName>Halo</DisplayName>
    <PublisherDisplayName>ms-resource:Publisher</PublisherDisplayName>
  </Properties>
</Package>`

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestName), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestParseManifest(t *testing.T) {
	entry, err := parseManifest([]byte(haloManifest))
	if err != nil {
		t.Fatalf("parseManifest: %v", err)
	}
	want := storage.PackageEntry{ID: "Halo.MCC", Name: "Halo", Publisher: "Microsoft Studios", Version: "1.2.0.0"}
	if *entry != want {
		t.Errorf("entry = %+v, want %+v", *entry, want)
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not xml", "{"},
		{"no identity", "<Package><Properties/></Package>"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseManifest([]byte(tc.body)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPublisherCN(t *testing.T) {
	tests := []struct {
		dn   string
		want string
	}{
		{"CN=Microsoft Studios, O=Microsoft", "Microsoft Studios"},
		{"O=Org, cn=Lower", "Lower"},
		{"Plain", "Plain"},
	}
	for _, tc := range tests {
		if got := publisherCN(tc.dn); got != tc.want {
			t.Errorf("publisherCN(%q) = %q, want %q", tc.dn, got, tc.want)
		}
	}
}

func runScanner(t *testing.T, s *Scanner) ScanResult {
	t.Helper()
	go s.Run()
	select {
	case result := <-s.Done():
		return result
	case <-time.After(5 * time.Second):
		t.Fatal("scan did not finish")
	}
	return ScanResult{}
}

func TestScannerFindsManifests(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "halo"), haloManifest)
	writeManifest(t, filepath.Join(root, "nested", "fable"), `<Package><Identity Name="Fable" Version="2.0"/></Package>`)
	writeManifest(t, filepath.Join(root, "broken"), "<Package>")

	existing := map[string]*storage.PackageEntry{
		"Fable": {ID: "Fable", Patched: true, Added: 100},
	}
	s := NewScanner([]string{root, filepath.Join(root, "missing")}, existing)
	s.now = func() time.Time { return time.Unix(500, 0) }

	result := runScanner(t, s)
	if result.NewPackages != 1 {
		t.Errorf("new packages = %d, want 1", result.NewPackages)
	}
	if len(result.Errors) != 1 {
		t.Errorf("errors = %v, want one for the broken manifest", result.Errors)
	}

	packages := s.Packages()
	if len(packages) != 2 {
		t.Fatalf("found %d packages, want 2", len(packages))
	}
	halo := packages["Halo.MCC"]
	if halo.Added != 500 || halo.Dir != filepath.Join(root, "halo") {
		t.Errorf("halo = %+v", *halo)
	}
	fable := packages["Fable"]
	if !fable.Patched || fable.Added != 100 {
		t.Errorf("fable should keep its library state, got %+v", *fable)
	}
}

func TestScannerCancel(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "halo"), haloManifest)

	s := NewScanner([]string{root}, nil)
	s.Cancel()
	s.Cancel()
	if result := runScanner(t, s); !result.Cancelled {
		t.Error("result should be cancelled")
	}
}
