package kv

import (
	"path/filepath"
	"testing"
)

// backends that can run without external services.
func localBackends(t *testing.T) map[string]Store {
	t.Helper()
	file, err := OpenFile(filepath.Join(t.TempDir(), "store"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	return map[string]Store{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": sqlite,
	}
}

func TestStore_GetSetDelete(t *testing.T) {
	for name, store := range localBackends(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			if _, ok, err := store.Get("transactions"); err != nil || ok {
				t.Fatalf("Get on empty store = (ok=%v, err=%v), want absent", ok, err)
			}

			if err := store.Set("transactions", `[{"id":"a"}]`); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, ok, err := store.Get("transactions")
			if err != nil || !ok {
				t.Fatalf("Get after Set = (ok=%v, err=%v), want present", ok, err)
			}
			if got != `[{"id":"a"}]` {
				t.Errorf("Get = %q, want the stored blob", got)
			}

			// overwrite
			if err := store.Set("transactions", `[]`); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			if got, _, _ := store.Get("transactions"); got != `[]` {
				t.Errorf("Get after overwrite = %q, want %q", got, `[]`)
			}

			if err := store.Delete("transactions"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, ok, _ := store.Get("transactions"); ok {
				t.Error("Get after Delete reports the key as present")
			}
			// deleting an absent key is not an error
			if err := store.Delete("transactions"); err != nil {
				t.Errorf("Delete absent key: %v", err)
			}
		})
	}
}

func TestStore_IndependentKeys(t *testing.T) {
	for name, store := range localBackends(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()
			if err := store.Set("settings", `{"categories":[]}`); err != nil {
				t.Fatalf("Set settings: %v", err)
			}
			if err := store.Set("budget-cap", "250"); err != nil {
				t.Fatalf("Set budget-cap: %v", err)
			}
			if got, _, _ := store.Get("settings"); got != `{"categories":[]}` {
				t.Errorf("settings = %q", got)
			}
			if got, _, _ := store.Get("budget-cap"); got != "250" {
				t.Errorf("budget-cap = %q", got)
			}
		})
	}
}

func TestFile_RejectsUnsafeKeys(t *testing.T) {
	store, err := OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := store.Set("../escape", "x"); err == nil {
		t.Error("Set with a path-traversal key succeeded, want error")
	}
	if _, _, err := store.Get("a/b"); err == nil {
		t.Error("Get with a slash key succeeded, want error")
	}
}
