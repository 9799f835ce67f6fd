package catalog

import "testing"

// TestBuiltInKeysUniqueAndSafe verifies built-in keys are unique and free of
// characters that would corrupt nested document paths.
func TestBuiltInKeysUniqueAndSafe(t *testing.T) {
	seen := map[string]bool{}
	for _, ex := range BuiltIn {
		if ex.Key == "" || ex.Name == "" {
			t.Errorf("entry %+v has empty key or name", ex)
		}
		if seen[ex.Key] {
			t.Errorf("duplicate built-in key %q", ex.Key)
		}
		seen[ex.Key] = true
		for _, r := range ex.Key {
			if r == '$' || r == '.' {
				t.Errorf("key %q contains unsafe character %q", ex.Key, r)
			}
		}
	}
}

// TestResolve_BuiltIn verifies lookup of a built-in entry.
func TestResolve_BuiltIn(t *testing.T) {
	c := New(nil)
	ex, ok := c.Resolve("bench_press")
	if !ok {
		t.Fatal("Resolve(bench_press): not found")
	}
	if ex.Name != "Bench Press" {
		t.Errorf("Name = %q, want Bench Press", ex.Name)
	}
}

// TestResolve_Unknown verifies unknown keys report ok=false.
func TestResolve_Unknown(t *testing.T) {
	c := New(nil)
	if _, ok := c.Resolve("underwater_basket_press"); ok {
		t.Error("Resolve returned ok for unknown key")
	}
}

// TestResolve_CustomShadowsBuiltIn verifies a custom entry with a built-in
// key takes precedence.
func TestResolve_CustomShadowsBuiltIn(t *testing.T) {
	c := New([]Exercise{{Key: "bench_press", Name: "Paused Bench Press"}})
	ex, ok := c.Resolve("bench_press")
	if !ok || ex.Name != "Paused Bench Press" {
		t.Errorf("Resolve = %+v/%v, want custom entry", ex, ok)
	}
}

// TestAll verifies All returns built-in entries followed by custom entries.
func TestAll(t *testing.T) {
	custom := []Exercise{{Key: "sled_push", Name: "Sled Push"}}
	c := New(custom)
	all := c.All()
	if len(all) != len(BuiltIn)+1 {
		t.Fatalf("All() = %d entries, want %d", len(all), len(BuiltIn)+1)
	}
	if all[len(all)-1].Key != "sled_push" {
		t.Errorf("last entry = %q, want sled_push", all[len(all)-1].Key)
	}
}
