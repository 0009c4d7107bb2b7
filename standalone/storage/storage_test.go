package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// useTempDataDir points storage at a fresh directory for one test.
func useTempDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	SetDataDir(dir)
	t.Cleanup(func() { SetDataDir("") })
	return dir
}

func TestValidFontSize(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"exact preset 10", 10, 10},
		{"exact preset 14", 14, 14},
		{"exact preset 32", 32, 32},
		{"equidistant picks lower", 11, 10},
		{"between 14 and 16", 15, 14},
		{"between 20 and 24 closer to 24", 23, 24},
		{"below minimum", 1, 10},
		{"above maximum", 100, 32},
		{"negative", -5, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidFontSize(tc.input)
			if got != tc.expected {
				t.Errorf("ValidFontSize(%d) = %d, want %d", tc.input, got, tc.expected)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Version != 1 {
		t.Errorf("expected version 1, got %d", config.Version)
	}
	if config.Controller.Backend != "auto" {
		t.Errorf("expected backend auto, got %q", config.Controller.Backend)
	}
	if config.Controller.PollIntervalMs != 16 {
		t.Errorf("expected poll interval 16, got %d", config.Controller.PollIntervalMs)
	}
	if config.Window.Width != 900 || config.Window.Height != 650 {
		t.Errorf("expected window 900x650, got %dx%d", config.Window.Width, config.Window.Height)
	}
	if errors := ValidateConfig(config, []string{"Default"}); len(errors) != 0 {
		t.Errorf("default config invalid: %v", errors)
	}
}

func TestGetBaseDirOverride(t *testing.T) {
	dir := useTempDataDir(t)

	got, err := GetBaseDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("GetBaseDir() = %q, want %q", got, dir)
	}

	path, _ := GetLibraryPath()
	if path != filepath.Join(dir, "packages.json") {
		t.Errorf("GetLibraryPath() = %q", path)
	}
}

func TestGetBaseDirXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout only applies on linux")
	}
	Init("padnav-test")
	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)

	got, err := GetBaseDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(xdg, "padnav-test") {
		t.Errorf("GetBaseDir() = %q", got)
	}
}

func TestAtomicWriteJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "data.json")

	data := map[string]int{"a": 1}
	if err := AtomicWriteJSON(path, data); err != nil {
		t.Fatalf("AtomicWriteJSON: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not remain")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]int
	if err := decodeJSON(raw, &got); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	if got["a"] != 1 {
		t.Errorf("got %v", got)
	}
}

func TestDecodeJSONInvalid(t *testing.T) {
	var v map[string]any
	if err := decodeJSON([]byte("{bad"), &v); err == nil {
		t.Error("expected parse error")
	}
}

func TestDocumentLifecycle(t *testing.T) {
	useTempDataDir(t)
	doc := document{name: "state.json", defaults: func() any { return map[string]int{"v": 1} }}

	if _, found, err := doc.read(); found || err != nil {
		t.Fatalf("read missing file: found=%v err=%v", found, err)
	}

	if err := doc.createIfMissing(); err != nil {
		t.Fatal(err)
	}
	if err := doc.save(map[string]int{"v": 2}); err != nil {
		t.Fatal(err)
	}
	if err := doc.createIfMissing(); err != nil {
		t.Fatal(err)
	}

	data, found, err := doc.read()
	if err != nil || !found {
		t.Fatalf("read: found=%v err=%v", found, err)
	}
	var got map[string]int
	if err := decodeJSON(data, &got); err != nil || got["v"] != 2 {
		t.Errorf("got %v (%v), want the saved value kept", got, err)
	}

	if err := doc.remove(); err != nil {
		t.Fatal(err)
	}
	if err := doc.remove(); err != nil {
		t.Errorf("second remove: %v", err)
	}
	if _, found, _ := doc.read(); found {
		t.Error("file should be gone")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	useTempDataDir(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig on missing file: %v", err)
	}
	if config.Theme != "Default" {
		t.Errorf("missing file should yield defaults, got theme %q", config.Theme)
	}

	config.Theme = "Dark"
	config.ShowDevNotice = false
	config.Controller.ButtonMap = map[string]int{"Menu": 9}
	if err := SaveConfig(config); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Theme != "Dark" || loaded.ShowDevNotice {
		t.Errorf("loaded %+v", loaded)
	}
	if loaded.Controller.ButtonMap["Menu"] != 9 {
		t.Errorf("buttonMap: got %v", loaded.Controller.ButtonMap)
	}

	if err := DeleteConfig(); err != nil {
		t.Fatalf("DeleteConfig: %v", err)
	}
	if err := DeleteConfig(); err != nil {
		t.Errorf("second DeleteConfig: %v", err)
	}
}

func TestLoadConfigCorrupt(t *testing.T) {
	dir := useTempDataDir(t)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for corrupt config")
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	dir := useTempDataDir(t)
	body := `{"theme": "Retro", "controller": {"backend": "joystick"}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if config.Theme != "Retro" || config.Controller.Backend != "joystick" {
		t.Errorf("present keys lost: %+v", config)
	}
	if config.Version != 1 || config.Controller.Slots != 4 || !config.ShowDevNotice {
		t.Errorf("missing keys not defaulted: %+v", config)
	}
}

func TestCreateConfigIfMissing(t *testing.T) {
	useTempDataDir(t)

	if err := CreateConfigIfMissing(); err != nil {
		t.Fatal(err)
	}
	config, _ := LoadConfig()
	config.FontSize = 20
	SaveConfig(config)

	if err := CreateConfigIfMissing(); err != nil {
		t.Fatal(err)
	}
	again, _ := LoadConfig()
	if again.FontSize != 20 {
		t.Error("existing config was overwritten")
	}
}

func TestLibraryAddGetRemovePackage(t *testing.T) {
	lib := DefaultLibrary()
	lib.AddPackage(&PackageEntry{ID: "com.example.one", Name: "One"})

	entry := lib.GetPackage("com.example.one")
	if entry == nil {
		t.Fatal("package not found")
	}
	if entry.Added == 0 {
		t.Error("Added should be stamped")
	}
	if lib.PackageCount() != 1 {
		t.Errorf("count: got %d, want 1", lib.PackageCount())
	}

	lib.RemovePackage("com.example.one")
	if lib.GetPackage("com.example.one") != nil {
		t.Error("package should be removed")
	}
}

func TestLibraryNilPackagesMap(t *testing.T) {
	lib := &Library{}
	if lib.GetPackage("x") != nil || lib.PackageCount() != 0 || lib.PackagesSorted() != nil {
		t.Error("nil map should behave as empty")
	}
	lib.RemovePackage("x")
	lib.AddPackage(&PackageEntry{ID: "x", Added: 5})
	if lib.GetPackage("x").Added != 5 {
		t.Error("explicit Added should be kept")
	}
}

func TestLibrarySetPatched(t *testing.T) {
	lib := DefaultLibrary()
	lib.AddPackage(&PackageEntry{ID: "a", Name: "A"})

	if !lib.SetPatched("a", true) || !lib.GetPackage("a").Patched {
		t.Error("package a should be patched")
	}
	if lib.SetPatched("missing", true) {
		t.Error("SetPatched on a missing package should report false")
	}
}

func TestPackagesSorted(t *testing.T) {
	lib := DefaultLibrary()
	for _, p := range []*PackageEntry{
		{ID: "3", Name: "beta", Publisher: "Zed"},
		{ID: "2", Name: "Alpha", Publisher: "b"},
		{ID: "1", Name: "alpha", Publisher: "B"},
		{ID: "4", Name: "Beta", Publisher: "Acme"},
	} {
		lib.AddPackage(p)
	}

	var ids []string
	for _, p := range lib.PackagesSorted() {
		ids = append(ids, p.ID)
	}
	want := []string{"1", "2", "4", "3"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
}

func TestLibraryRoundTrip(t *testing.T) {
	dir := useTempDataDir(t)

	lib, err := LoadLibrary()
	if err != nil {
		t.Fatalf("LoadLibrary on missing file: %v", err)
	}
	lib.AddPackage(&PackageEntry{ID: "pkg", Name: "Pkg", Version: "1.0"})
	if err := SaveLibrary(lib); err != nil {
		t.Fatalf("SaveLibrary: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "packages.json")); err != nil {
		t.Fatalf("packages.json not written: %v", err)
	}

	loaded, err := LoadLibrary()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.GetPackage("pkg") == nil || loaded.GetPackage("pkg").Version != "1.0" {
		t.Errorf("loaded %+v", loaded.Packages)
	}

	if err := DeleteLibrary(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadLibraryMigratesAndSanitizes(t *testing.T) {
	dir := useTempDataDir(t)
	body := `{"packages": {"k": {"id": "wrong", "added": -3}}}`
	if err := os.WriteFile(filepath.Join(dir, "packages.json"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	lib, err := LoadLibrary()
	if err != nil {
		t.Fatal(err)
	}
	if lib.Version != 1 {
		t.Errorf("version: got %d, want 1", lib.Version)
	}
	entry := lib.GetPackage("k")
	if entry.ID != "k" || entry.Name != "k" || entry.Added != 0 {
		t.Errorf("entry not sanitized: %+v", entry)
	}
}

func TestCreateLibraryIfMissing(t *testing.T) {
	useTempDataDir(t)
	if err := CreateLibraryIfMissing(); err != nil {
		t.Fatal(err)
	}
	lib, err := LoadLibrary()
	if err != nil || lib.PackageCount() != 0 {
		t.Errorf("LoadLibrary = %+v, %v", lib, err)
	}
}
