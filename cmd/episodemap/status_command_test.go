package main

import (
	"os"
	"testing"
)

func TestStatusOffline(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status", "--offline"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	requireContains(t, out, "== Configuration ==")
	requireContains(t, out, "== Checks ==")
	requireContains(t, out, "[OK]")
	requireContains(t, out, "Geocoder email")
	requireNotContains(t, out, "[ERROR]")
}

func TestStatusReportsMissingSource(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(env.cfg.Source.File); err != nil {
		t.Fatalf("remove source: %v", err)
	}

	out, _, err := runCLI(t, []string{"status", "--offline"}, env.configPath)
	requireErrorContains(t, err, "failed")
	requireContains(t, out, "[ERROR]")
}
