// Package app is the composition root of cookbook.
//
// Run loads the optional .env file and the TOML config, opens the log file,
// reads UI preferences, builds the recipe API client, signs in when
// credentials are configured and then hands control to the ui package
// until the user quits. A failed sign-in is reported in the footer rather
// than aborting startup; browsing does not require a session.
package app
