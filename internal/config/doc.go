// Package config loads cookbook's startup settings.
//
// # Resolution order
//
//  1. Built-in defaults
//  2. ~/.config/cookbook/config.toml, or the path passed to Load
//  3. Environment variables, optionally seeded from a .env file with
//     LoadDotEnv
//
// A missing config file is not an error. Empty fields keep their defaults.
//
// # TOML format
//
//	api_url = "http://127.0.0.1:5555"
//	log_file = "~/.local/state/cookbook/cookbook.log"
//	log_level = "info"
//	request_timeout_seconds = 10
//	email = "cook@example.com"
//
// The password is never read from the file; set COOKBOOK_PASSWORD instead.
//
// # Environment
//
//   - COOKBOOK_API_URL overrides api_url
//   - COOKBOOK_EMAIL overrides email
//   - COOKBOOK_PASSWORD supplies the login password
//   - COOKBOOK_LOG_LEVEL overrides log_level
package config
