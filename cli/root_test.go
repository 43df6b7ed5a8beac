package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yonasBSD/hacker-news/config"
	"github.com/yonasBSD/hacker-news/hn"
	"github.com/yonasBSD/hacker-news/output"
)

// isolate keeps tests from reading the developer's config file or HN_* vars.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"HN_CONFIG", "HN_SORT", "HN_COUNT", "HN_BASE_URL"} {
		t.Setenv(k, "")
	}
}

// fakeAPI serves a story list and items, and counts requests by kind.
type fakeAPI struct {
	mu         sync.Mutex
	ids        []int
	listStatus int
	missing    map[int]bool
	listCalls  int
	itemCalls  []int
}

func (a *fakeAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()

		switch r.URL.Path {
		case "/v0/topstories.json", "/v0/newstories.json":
			a.listCalls++
			if a.listStatus != 0 {
				w.WriteHeader(a.listStatus)
				return
			}
			json.NewEncoder(w).Encode(a.ids)
		default:
			var id int
			if _, err := fmt.Sscanf(r.URL.Path, "/v0/item/%d.json", &id); err != nil {
				t.Errorf("unexpected path: %s", r.URL.Path)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			a.itemCalls = append(a.itemCalls, id)
			if a.missing[id] {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			fmt.Fprintf(w, `{"id": %d, "title": "Story %d", "score": %d, "by": "user%d", "url": "https://example.com/%d"}`, id, id, id*10, id, id)
		}
	}
}

func startAPI(t *testing.T, api *fakeAPI) string {
	t.Helper()
	server := httptest.NewServer(api.handler(t))
	t.Cleanup(server.Close)
	return server.URL
}

func execute(t *testing.T, ctx context.Context, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Execute(ctx, args, Options{Stdout: &out, Stderr: &errOut})
	return code, out.String(), errOut.String()
}

func parse(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	cmd, f := newRootCommand(Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	require.NoError(t, cmd.ParseFlags(args))
	return resolveConfig(cmd, f)
}

func TestResolveConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, hn.Hottest, cfg.Sort)
	assert.Equal(t, 30, cfg.Count)
}

func TestResolveConfig_Overrides(t *testing.T) {
	isolate(t)

	for _, args := range [][]string{
		{"--count", "5", "--sort", "latest"},
		{"-c", "5", "-s", "latest"},
		{"--count=5", "--sort=LATEST"},
	} {
		cfg, err := parse(t, args...)
		require.NoError(t, err, "args %v", args)
		assert.Equal(t, hn.Latest, cfg.Sort, "args %v", args)
		assert.Equal(t, 5, cfg.Count, "args %v", args)
	}
}

func TestResolveConfig_FlagsBeatEnv(t *testing.T) {
	isolate(t)
	t.Setenv("HN_COUNT", "12")
	t.Setenv("HN_SORT", "latest")

	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Count)
	assert.Equal(t, hn.Latest, cfg.Sort)

	cfg, err = parse(t, "--count", "4", "--sort", "hottest")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Count)
	assert.Equal(t, hn.Hottest, cfg.Sort)
}

func TestResolveConfig_VerboseAndProgress(t *testing.T) {
	isolate(t)

	cfg, err := parse(t, "-v", "--no-progress", "--format", "table", "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Progress)
	assert.Equal(t, "table", cfg.Format)
	assert.Equal(t, "never", cfg.Color)
}

func TestResolveConfig_NegativeCount(t *testing.T) {
	isolate(t)

	_, err := parse(t, "--count=-1")

	var ce *config.ConfigurationError
	require.True(t, errors.As(err, &ce), "expected ConfigurationError, got %T", err)
	assert.Equal(t, "count", ce.Field)
}

func TestExecute_NegativeCountMakesNoRequests(t *testing.T) {
	isolate(t)
	api := &fakeAPI{ids: []int{1, 2, 3}}
	baseURL := startAPI(t, api)

	code, stdout, stderr := execute(t, context.Background(), "--base-url", baseURL, "--count=-1")

	assert.Equal(t, output.ExitConfigError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid configuration")
	assert.Zero(t, api.listCalls)
	assert.Empty(t, api.itemCalls)
}

func TestExecute_InvalidSortFlag(t *testing.T) {
	isolate(t)

	code, stdout, stderr := execute(t, context.Background(), "--sort", "best")

	assert.Equal(t, output.ExitConfigError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "best")
}

func TestExecute_Success(t *testing.T) {
	isolate(t)
	api := &fakeAPI{ids: []int{1, 2, 3, 4, 5}, missing: map[int]bool{2: true}}
	baseURL := startAPI(t, api)

	code, stdout, stderr := execute(t, context.Background(), "--base-url", baseURL, "--count", "3")

	require.Equal(t, output.ExitSuccess, code, "stderr: %s", stderr)
	assert.Equal(t, 1, api.listCalls)
	assert.Equal(t, []int{1, 2, 3}, api.itemCalls)

	assert.Contains(t, stdout, "Hacker News")
	assert.Contains(t, stdout, " 1. [ 10 ] Story 1")
	assert.Contains(t, stdout, " 2. [ 30 ] Story 3")
	assert.Contains(t, stdout, "https://example.com/3")
	assert.Contains(t, stdout, "by user3")
	assert.NotContains(t, stdout, "Story 2")
	assert.True(t, strings.HasSuffix(stdout, "Done!\n"), "stdout: %q", stdout)

	assert.Contains(t, stderr, "failed to fetch story")
	assert.Contains(t, stderr, "id=2")
}

func TestExecute_LatestUsesNewStories(t *testing.T) {
	isolate(t)
	var paths []string
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.Write([]byte("[]"))
	}))
	t.Cleanup(server.Close)

	code, _, _ := execute(t, context.Background(), "--base-url", server.URL, "--sort", "latest")

	assert.Equal(t, output.ExitSuccess, code)
	assert.Equal(t, []string{"/v0/newstories.json"}, paths)
}

func TestExecute_ZeroCount(t *testing.T) {
	isolate(t)
	api := &fakeAPI{ids: []int{1, 2, 3}}
	baseURL := startAPI(t, api)

	code, stdout, _ := execute(t, context.Background(), "--base-url", baseURL, "--count", "0")

	assert.Equal(t, output.ExitSuccess, code)
	assert.Empty(t, api.itemCalls)
	assert.Contains(t, stdout, "No stories.")
}

func TestExecute_ListFailureIsFatal(t *testing.T) {
	isolate(t)
	api := &fakeAPI{ids: []int{1, 2, 3}, listStatus: http.StatusServiceUnavailable}
	baseURL := startAPI(t, api)

	code, stdout, stderr := execute(t, context.Background(), "--base-url", baseURL)

	assert.Equal(t, output.ExitListError, code)
	assert.Empty(t, stdout, "nothing is printed when the list cannot be fetched")
	assert.Empty(t, api.itemCalls, "no story is fetched when the list fails")
	assert.Contains(t, stderr, "could not list stories")
	assert.Contains(t, stderr, "503")
}

func TestExecute_ListDecodeFailureIsFatal(t *testing.T) {
	isolate(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"}`))
	}))
	t.Cleanup(server.Close)

	code, stdout, stderr := execute(t, context.Background(), "--base-url", server.URL)

	assert.Equal(t, output.ExitListError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "unexpected payload")
}

func TestExecute_Unreachable(t *testing.T) {
	isolate(t)
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	code, stdout, _ := execute(t, context.Background(), "--base-url", baseURL)

	assert.Equal(t, output.ExitListError, code)
	assert.Empty(t, stdout)
}

func TestExecute_Cancelled(t *testing.T) {
	isolate(t)
	api := &fakeAPI{ids: []int{1, 2, 3}}
	baseURL := startAPI(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, stdout, _ := execute(t, ctx, "--base-url", baseURL)

	assert.Equal(t, output.ExitInterrupted, code)
	assert.Empty(t, stdout)
	assert.Empty(t, api.itemCalls)
}

func TestExecute_TableFormat(t *testing.T) {
	isolate(t)
	api := &fakeAPI{ids: []int{7}}
	baseURL := startAPI(t, api)

	code, stdout, _ := execute(t, context.Background(), "--base-url", baseURL, "--format", "table")

	assert.Equal(t, output.ExitSuccess, code)
	assert.Contains(t, strings.ToUpper(stdout), "AUTHOR")
	assert.Contains(t, stdout, "Story 7")
	assert.Contains(t, stdout, "user7")
}

func TestExecute_JSONLogs(t *testing.T) {
	isolate(t)
	api := &fakeAPI{ids: []int{1}, missing: map[int]bool{1: true}}
	baseURL := startAPI(t, api)

	code, _, stderr := execute(t, context.Background(), "--base-url", baseURL, "--log-format", "json")

	assert.Equal(t, output.ExitSuccess, code)
	line := strings.SplitN(strings.TrimSpace(stderr), "\n", 2)[0]
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry), "stderr: %s", stderr)
	assert.Equal(t, "ERROR", entry["level"])
	assert.EqualValues(t, 1, entry["id"])
}

func TestExecute_RejectsArgs(t *testing.T) {
	isolate(t)

	code, _, _ := execute(t, context.Background(), "extra")
	assert.Equal(t, output.ExitConfigError, code)
}

func TestExecute_ErrorsFollowColorFlag(t *testing.T) {
	isolate(t)

	code, _, stderr := execute(t, context.Background(), "--color", "always", "--count=-1")
	assert.Equal(t, output.ExitConfigError, code)
	assert.Contains(t, stderr, "\x1b[")

	code, _, stderr = execute(t, context.Background(), "--color", "never", "--count=-1")
	assert.Equal(t, output.ExitConfigError, code)
	assert.Contains(t, stderr, "[ERROR] invalid configuration")
	assert.NotContains(t, stderr, "\x1b[")
}

func TestExecute_ErrorsFollowConfiguredColor(t *testing.T) {
	isolate(t)
	api := &fakeAPI{listStatus: http.StatusServiceUnavailable}
	baseURL := startAPI(t, api)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color: always\n"), 0644))

	code, _, stderr := execute(t, context.Background(), "--config", path, "--base-url", baseURL)
	assert.Equal(t, output.ExitListError, code)
	assert.Contains(t, stderr, "\x1b[")
}

func TestExecute_VersionFlag(t *testing.T) {
	isolate(t)
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	code, stdout, _ := execute(t, context.Background(), "--version")
	assert.Equal(t, output.ExitSuccess, code)
	assert.Contains(t, stdout, "hn version 1.2.3")
}

func TestRun_RenderFailureIsGeneralError(t *testing.T) {
	isolate(t)
	api := &fakeAPI{ids: []int{1}}
	cfg := config.Defaults()
	cfg.BaseURL = startAPI(t, api)
	cfg.Format = "yaml"

	err := run(context.Background(), cfg, Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	var cliErr *output.CLIError
	require.True(t, errors.As(err, &cliErr), "expected CLIError, got %T", err)
	assert.Equal(t, output.ExitGeneral, cliErr.ExitCode)
}
