package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/five82/cookbook/internal/config"
	"github.com/five82/cookbook/internal/logging"
	"github.com/five82/cookbook/internal/prefs"
	"github.com/five82/cookbook/internal/recipes"
	"github.com/five82/cookbook/internal/ui"
)

// Options configure the cookbook application.
type Options struct {
	ConfigPath string
	PrefsPath  string   // empty uses default ~/.config/cookbook/prefs.toml
	APIURL     string   // overrides the configured API address
	EnvFiles   []string // empty loads ./.env when present
}

// Run boots the cookbook TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	uiOpts, closer, err := prepare(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	err = ui.Run(uiOpts)
	if err != nil {
		uiOpts.Logger.Error("ui exited", "error", err)
	}
	return err
}

// prepare loads configuration and builds everything the UI needs.
func prepare(ctx context.Context, opts Options) (ui.Options, io.Closer, error) {
	if err := config.LoadDotEnv(opts.EnvFiles...); err != nil {
		return ui.Options{}, nil, fmt.Errorf("load env: %w", err)
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return ui.Options{}, nil, fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}

	logger, closer, err := logging.Configure(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return ui.Options{}, nil, fmt.Errorf("init logging: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load preferences failed, using defaults", "error", err)
	}

	client, err := recipes.NewClient(cfg.APIURL,
		recipes.WithTimeout(cfg.RequestTimeout),
		recipes.WithLogger(logger),
	)
	if err != nil {
		_ = closer.Close()
		return ui.Options{}, nil, fmt.Errorf("init recipe client: %w", err)
	}
	logger.Info("starting", "api", client.BaseURL(), "theme", userPrefs.Theme)

	return ui.Options{
		Context:        ctx,
		Client:         client,
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
		ThemeName:      userPrefs.Theme,
		PrefsPath:      opts.PrefsPath,
		Notice:         signIn(ctx, client, cfg, logger),
	}, closer, nil
}

// signIn logs in when credentials are configured so the session cookie is
// sent with later requests. Failure does not stop startup; the returned
// notice is shown in the footer instead.
func signIn(ctx context.Context, client *recipes.Client, cfg config.Config, logger *slog.Logger) string {
	if !cfg.HasCredentials() {
		return ""
	}
	reqCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	user, err := client.Login(reqCtx, recipes.Credentials{Email: cfg.Email, Password: cfg.Password})
	if err != nil {
		logger.Warn("sign-in failed", "email", cfg.Email, "error", err)
		return "Sign-in failed: " + recipes.UserMessage(err, "check your credentials.")
	}
	logger.Info("signed in", "user_id", user.ID)
	return ""
}
