package main

import (
	"testing"
)

func TestCacheCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"cache", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, "Geocode cache is empty")

	out, _, err = runCLI(t, []string{"cache", "set", "Peru, Lima", "-12.0464", "-77.0428"}, env.configPath)
	if err != nil {
		t.Fatalf("cache set: %v", err)
	}
	requireContains(t, out, "Cached Peru, Lima at -12.046400, -77.042800")

	if _, _, err := runCLI(t, []string{"cache", "set", "Nowhere", "91", "0"}, env.configPath); err == nil {
		t.Fatal("expected out of range latitude to fail")
	}

	out, _, err = runCLI(t, []string{"cache", "get", "Peru, Lima"}, env.configPath)
	if err != nil {
		t.Fatalf("cache get: %v", err)
	}
	requireContains(t, out, "-12.046400, -77.042800")

	_, _, err = runCLI(t, []string{"cache", "get", "Atlantis"}, env.configPath)
	requireErrorContains(t, err, "not cached")

	out, _, err = runCLI(t, []string{"cache", "count"}, env.configPath)
	if err != nil {
		t.Fatalf("cache count: %v", err)
	}
	if out != "1\n" {
		t.Fatalf("unexpected count output %q", out)
	}

	out, _, err = runCLI(t, []string{"cache", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("cache list --json: %v", err)
	}
	var entries []cacheEntry
	decodeJSON(t, out, &entries)
	if len(entries) != 1 || entries[0].Name != "Peru, Lima" || entries[0].Coordinates == nil {
		t.Fatalf("unexpected entries %+v", entries)
	}

	out, _, err = runCLI(t, []string{"cache", "remove", "Peru, Lima", "Atlantis"}, env.configPath)
	if err != nil {
		t.Fatalf("cache remove: %v", err)
	}
	requireContains(t, out, "Removed Peru, Lima")
	requireContains(t, out, "Atlantis was not cached")
}

func TestCacheClearKeepsOtherKeys(t *testing.T) {
	env := setupCLITestEnv(t)

	for _, name := range []string{"A", "B"} {
		if _, _, err := runCLI(t, []string{"cache", "set", name, "1", "2"}, env.configPath); err != nil {
			t.Fatalf("cache set %s: %v", name, err)
		}
	}
	out, _, err := runCLI(t, []string{"cache", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed 2 entries")

	out, _, err = runCLI(t, []string{"cache", "count"}, env.configPath)
	if err != nil {
		t.Fatalf("cache count: %v", err)
	}
	if out != "0\n" {
		t.Fatalf("unexpected count output %q", out)
	}
}
