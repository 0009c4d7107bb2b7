package standalone

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

// Magic bytes for format detection
var (
	magicZIP = []byte{0x50, 0x4B, 0x03, 0x04}
	magic7z  = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicRAR = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// Manifests are small. Anything bigger is not one.
const maxManifestSize = 1 << 20

// ErrNoManifest is returned when an archive has no package manifest
var ErrNoManifest = errors.New("no manifest found in archive")

// ErrManifestTooLarge is returned when a manifest exceeds the size limit
var ErrManifestTooLarge = errors.New("manifest exceeds maximum size limit")

// archiveExtensions are the package archives looked into while scanning
var archiveExtensions = []string{".appx", ".msix", ".zip", ".7z", ".rar"}

// isPackageArchive reports whether name looks like a package archive
func isPackageArchive(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range archiveExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// isManifestEntry reports whether an archive entry is a package manifest.
// Only the top level of the archive or one directory down is considered.
func isManifestEntry(name string) bool {
	name = strings.ReplaceAll(name, "\\", "/")
	if !strings.EqualFold(path.Base(name), manifestName) {
		return false
	}
	return strings.Count(strings.Trim(name, "/"), "/") <= 1
}

// readArchiveManifest returns the manifest stored inside the archive at p.
// The format is detected from the file contents, not the extension.
func readArchiveManifest(p string) ([]byte, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	header := make([]byte, 8)
	n, _ := io.ReadFull(f, header)
	f.Close()
	header = header[:n]

	switch {
	case bytes.HasPrefix(header, magicZIP):
		return manifestFromZIP(p)
	case bytes.HasPrefix(header, magic7z):
		return manifestFrom7z(p)
	case bytes.HasPrefix(header, magicRAR):
		return manifestFromRAR(p)
	}
	return nil, fmt.Errorf("%s: unsupported archive format", filepath.Base(p))
}

func manifestFromZIP(p string) ([]byte, error) {
	r, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isManifestEntry(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		defer rc.Close()
		return limitedRead(rc)
	}
	return nil, ErrNoManifest
}

func manifestFrom7z(p string) ([]byte, error) {
	r, err := sevenzip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isManifestEntry(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		defer rc.Close()
		return limitedRead(rc)
	}
	return nil, ErrNoManifest
}

func manifestFromRAR(p string) ([]byte, error) {
	r, err := rardecode.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open rar: %w", err)
	}
	defer r.Close()

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read rar entry: %w", err)
		}
		if header.IsDir || !isManifestEntry(header.Name) {
			continue
		}
		return limitedRead(r)
	}
	return nil, ErrNoManifest
}

func limitedRead(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxManifestSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxManifestSize {
		return nil, ErrManifestTooLarge
	}
	return data, nil
}
