package storage

import "fmt"

// SanitizeLibraryEntries silently corrects invalid package entry fields.
// This runs on load so invalid values never reach the UI.
func SanitizeLibraryEntries(lib *Library) {
	for id, entry := range lib.Packages {
		if entry == nil {
			delete(lib.Packages, id)
			continue
		}
		if entry.ID != id {
			entry.ID = id
		}
		if entry.Name == "" {
			entry.Name = id
		}
		if entry.Added < 0 {
			entry.Added = 0
		}
	}
}

// ValidateLibrary checks library-level fields against valid ranges and returns
// human-readable error descriptions. An empty slice means the library is valid.
func ValidateLibrary(lib *Library) []string {
	var errors []string

	if lib.Version != 1 {
		errors = append(errors, fmt.Sprintf("version: %d (valid: 1)", lib.Version))
	}

	return errors
}

// CorrectLibrary resets any invalid library-level fields to their defaults.
func CorrectLibrary(lib *Library) *Library {
	if lib.Version != 1 {
		lib.Version = 1
	}
	return lib
}
