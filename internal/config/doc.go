// Package config loads jlcat's optional TOML configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/jlcat/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or blank, use defaults
//
// # TOML Format
//
//	skip_empty_lines = true
//	session_start = "Session started"
//	no_extras = false
//	color = "auto"        # auto, always or never
//	theme = "Nightfox"    # Default, Nightfox or Slate
//	log_level = "warn"    # jlcat's own diagnostics on stderr
//
// Every field is optional. Command-line flags that are set explicitly take
// precedence over the file; the merge happens in package app.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors and unknown color modes
//
// Missing config files are NOT an error. jlcat works out of the box.
package config
