// Package config loads tztail's optional TOML configuration file.
//
// # Configuration Discovery
//
// Load resolves the file in this order:
//
//  1. An explicit path (the --config flag)
//  2. The TZTAIL_CONFIG environment variable
//  3. ~/.config/tztail/config.toml
//
// A missing file is not an error: defaults are used instead, so tztail works
// without any configuration.
//
// # TOML Format
//
//	timezone = "Asia/Kolkata"
//	format = ""
//	formats_file = "~/.config/tztail/formats.yaml"
//	color = "auto"
//
// Every field is optional. Unknown fields are rejected so that typos do not
// go unnoticed. Command-line flags override values from the file.
package config
