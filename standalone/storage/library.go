package storage

import (
	"sort"
	"strings"
	"time"
)

// migrateLibrary handles any necessary migrations from older library versions
func migrateLibrary(library *Library) *Library {
	if library.Version == 0 {
		library.Version = 1
	}

	return library
}

// AddPackage adds or replaces a package entry. Added is stamped when unset.
func (lib *Library) AddPackage(entry *PackageEntry) {
	if lib.Packages == nil {
		lib.Packages = make(map[string]*PackageEntry)
	}
	if entry.Added == 0 {
		entry.Added = time.Now().Unix()
	}
	lib.Packages[entry.ID] = entry
}

// GetPackage retrieves a package by id
func (lib *Library) GetPackage(id string) *PackageEntry {
	if lib.Packages == nil {
		return nil
	}
	return lib.Packages[id]
}

// RemovePackage removes a package from the library
func (lib *Library) RemovePackage(id string) {
	if lib.Packages != nil {
		delete(lib.Packages, id)
	}
}

// PackageCount returns the number of installed packages
func (lib *Library) PackageCount() int {
	return len(lib.Packages)
}

// SetPatched marks a package as patched. It reports whether the package exists.
func (lib *Library) SetPatched(id string, patched bool) bool {
	entry := lib.GetPackage(id)
	if entry == nil {
		return false
	}
	entry.Patched = patched
	return true
}

// PackagesSorted returns the packages ordered by name, publisher then id.
func (lib *Library) PackagesSorted() []*PackageEntry {
	if lib.Packages == nil {
		return nil
	}

	packages := make([]*PackageEntry, 0, len(lib.Packages))
	for _, entry := range lib.Packages {
		packages = append(packages, entry)
	}

	sort.Slice(packages, func(i, j int) bool {
		return comparePackagesForSort(packages[i], packages[j])
	})

	return packages
}

func comparePackagesForSort(a, b *PackageEntry) bool {
	aName := strings.ToLower(a.Name)
	bName := strings.ToLower(b.Name)
	if aName != bName {
		return aName < bName
	}

	aPub := strings.ToLower(a.Publisher)
	bPub := strings.ToLower(b.Publisher)
	if aPub != bPub {
		return aPub < bPub
	}

	// Map keys are unique
	return a.ID < b.ID
}
