package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/cookbook/internal/config"
	"github.com/five82/cookbook/internal/recipes"
	"github.com/five82/cookbook/internal/testutil"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvAPIURL, config.EnvEmail, config.EnvPassword, config.EnvLogLevel} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestPrepare(t *testing.T) {
	clearEnv(t)
	fake := testutil.NewFakeAPI(t, nil, nil)
	dir := t.TempDir()
	logFile := filepath.Join(dir, "logs", "cookbook.log")
	cfgPath := writeConfig(t, dir, "api_url = \"http://unused.invalid\"\nlog_file = \""+logFile+"\"\nrequest_timeout_seconds = 3\n")
	prefsPath := filepath.Join(dir, "prefs.toml")
	if err := os.WriteFile(prefsPath, []byte("theme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("write prefs: %v", err)
	}

	opts, closer, err := prepare(context.Background(), Options{
		ConfigPath: cfgPath,
		PrefsPath:  prefsPath,
		APIURL:     fake.URL(),
		EnvFiles:   []string{filepath.Join(dir, "missing.env")},
	})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	defer func() { _ = closer.Close() }()

	if got := opts.Client.BaseURL(); got != fake.URL() {
		t.Fatalf("BaseURL = %q, want %q", got, fake.URL())
	}
	if opts.ThemeName != "Slate" {
		t.Fatalf("ThemeName = %q, want Slate", opts.ThemeName)
	}
	if opts.RequestTimeout.Seconds() != 3 {
		t.Fatalf("RequestTimeout = %s, want 3s", opts.RequestTimeout)
	}
	if opts.Notice != "" {
		t.Fatalf("Notice = %q, want none without credentials", opts.Notice)
	}
	if n := fake.CallCount(http.MethodPost, "/login"); n != 0 {
		t.Fatalf("login calls = %d, want 0", n)
	}
	if _, err := os.Stat(logFile); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}

func TestPrepareSignsIn(t *testing.T) {
	clearEnv(t)
	fake := testutil.NewFakeAPI(t, nil, nil)
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "log_file = \""+filepath.Join(dir, "c.log")+"\"\n")
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("COOKBOOK_EMAIL=cook@example.com\nCOOKBOOK_PASSWORD=secret\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Unsetenv(config.EnvEmail)
		_ = os.Unsetenv(config.EnvPassword)
	})

	opts, closer, err := prepare(context.Background(), Options{
		ConfigPath: cfgPath,
		PrefsPath:  filepath.Join(dir, "prefs.toml"),
		APIURL:     fake.URL(),
		EnvFiles:   []string{envFile},
	})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	defer func() { _ = closer.Close() }()

	if opts.Notice != "" {
		t.Fatalf("Notice = %q, want none after successful sign-in", opts.Notice)
	}
	calls := fake.Calls()
	if len(calls) != 1 || calls[0].Path != "/login" || calls[0].Body["email"] != "cook@example.com" {
		t.Fatalf("calls = %+v, want one login as cook@example.com", calls)
	}
}

func TestSignInFailureBecomesNotice(t *testing.T) {
	fake := testutil.NewFakeAPI(t, nil, nil)
	fake.FailNext(http.MethodPost, "/login", http.StatusUnauthorized, "Invalid credentials")
	client, err := recipes.NewClient(fake.URL())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	cfg := config.Config{Email: "cook@example.com", Password: "wrong", RequestTimeout: time.Second}

	got := signIn(context.Background(), client, cfg, slog.New(slog.DiscardHandler))
	if want := "Sign-in failed: Invalid credentials"; got != want {
		t.Fatalf("signIn = %q, want %q", got, want)
	}
}

func TestPrepareRejectsBadConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "api_url = [broken")

	if _, _, err := prepare(context.Background(), Options{ConfigPath: cfgPath, EnvFiles: []string{filepath.Join(dir, "none")}}); err == nil {
		t.Fatalf("prepare with invalid config succeeded")
	}
}
