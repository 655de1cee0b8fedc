package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"episodemap/internal/config"
	"episodemap/internal/testsupport"
)

const cliDocument = `=== Сезон 1 ===
{|
! № !! Место
|-
| '''1''' || {{Флаг|США}}[[Нью-Йорк]] || Доллар || — || 2011
|-
| '''2''' || [[Тестоград]]
|-
| '''3''' || [[Атлантида]]
|}
`

// nominatimStub answers /search from a fixed table and counts queries.
type nominatimStub struct {
	server  *httptest.Server
	places  map[string][2]string
	mu      sync.Mutex
	queries map[string]int
}

func newNominatimStub(t *testing.T, places map[string][2]string) *nominatimStub {
	t.Helper()
	stub := &nominatimStub{places: places, queries: make(map[string]int)}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":0}`))
			return
		}
		q := r.URL.Query().Get("q")
		stub.mu.Lock()
		stub.queries[q]++
		stub.mu.Unlock()

		matches := []map[string]string{}
		if pair, ok := stub.places[q]; ok {
			matches = append(matches, map[string]string{"lat": pair[0], "lon": pair[1], "display_name": q})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(matches)
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *nominatimStub) count(q string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[q]
}

type cliTestEnv struct {
	cfg        *config.Config
	geocoder   *nominatimStub
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	homeDir := filepath.Join(t.TempDir(), "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("EPISODEMAP_SOURCE_FILE", "")
	t.Setenv("NOMINATIM_EMAIL", "")
	t.Setenv("EPISODEMAP_CONFIG", "")

	stub := newNominatimStub(t, map[string][2]string{"Тестоград": {"55.5", "37.25"}})
	base := []testsupport.ConfigOption{
		testsupport.WithSourceFile(cliDocument),
		testsupport.WithGeocoderURL(stub.server.URL),
	}
	cfg := testsupport.NewConfig(t, append(base, opts...)...)
	cfg.Logging.Level = "error"

	return &cliTestEnv{
		cfg:        cfg,
		geocoder:   stub,
		configPath: testsupport.WriteConfigFile(t, cfg),
		baseDir:    testsupport.BaseDir(cfg),
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeJSON(t *testing.T, data string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(data), v); err != nil {
		t.Fatalf("decode output: %v\n%s", err, data)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}

func requireErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q", substr)
	}
	requireContains(t, fmt.Sprint(err), substr)
}
