package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// document is one JSON file in the data directory.
type document struct {
	name     string
	defaults func() any // written when the file is missing
}

var (
	configDoc  = document{name: configFile, defaults: func() any { return DefaultConfig() }}
	libraryDoc = document{name: libraryFile, defaults: func() any { return DefaultLibrary() }}
)

func (d document) path() (string, error) {
	return inBaseDir(d.name)
}

// read returns the raw file. found is false when the file does not exist.
func (d document) read() (data []byte, found bool, err error) {
	path, err := d.path()
	if err != nil {
		return nil, false, err
	}
	data, err = os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", d.name, err)
	}
	return data, true, nil
}

func (d document) save(v any) error {
	path, err := d.path()
	if err != nil {
		return err
	}
	return AtomicWriteJSON(path, v)
}

func (d document) createIfMissing() error {
	path, err := d.path()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return d.save(d.defaults())
	}
	return nil
}

// remove deletes the file. A file that is already gone is not an error.
func (d document) remove() error {
	path, err := d.path()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func decodeJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// LoadConfig loads config.json. A missing file yields DefaultConfig; a
// corrupt one is an error. Keys absent from the file get their defaults while
// explicit zero values are kept.
func LoadConfig() (*Config, error) {
	data, found, err := configDoc.read()
	if err != nil {
		return nil, err
	}
	if !found {
		return DefaultConfig(), nil
	}

	config := &Config{}
	if err := decodeJSON(data, config); err != nil {
		return nil, err
	}
	ApplyMissingDefaults(config, detectPresentKeys(data))
	return config, nil
}

// SaveConfig writes config.json atomically
func SaveConfig(config *Config) error { return configDoc.save(config) }

// CreateConfigIfMissing writes a default config.json when none exists
func CreateConfigIfMissing() error { return configDoc.createIfMissing() }

// DeleteConfig removes config.json
func DeleteConfig() error { return configDoc.remove() }

// LoadLibrary loads packages.json. A missing file yields an empty library; a
// corrupt one is an error. Invalid entry fields are fixed silently.
func LoadLibrary() (*Library, error) {
	data, found, err := libraryDoc.read()
	if err != nil {
		return nil, err
	}
	if !found {
		return DefaultLibrary(), nil
	}

	library := &Library{}
	if err := decodeJSON(data, library); err != nil {
		return nil, err
	}
	if library.Packages == nil {
		library.Packages = make(map[string]*PackageEntry)
	}
	library = migrateLibrary(library)
	SanitizeLibraryEntries(library)
	return library, nil
}

// SaveLibrary writes packages.json atomically
func SaveLibrary(library *Library) error { return libraryDoc.save(library) }

// CreateLibraryIfMissing writes an empty packages.json when none exists
func CreateLibraryIfMissing() error { return libraryDoc.createIfMissing() }

// DeleteLibrary removes packages.json
func DeleteLibrary() error { return libraryDoc.remove() }
