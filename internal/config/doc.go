// Package config loads the tilekeys configuration.
//
// Configuration is read with viper from a TOML file found in
// $XDG_CONFIG_HOME/tilekeys or the working directory, overlaid with
// TILEKEYS_* environment variables, on top of defaults that reproduce the
// stock window-manager setup. A Manager can watch the file and notify
// callbacks after every successful reload caused by a file change.
//
// # Keys
//
//	modifier   base modifier of every generated binding ("mod4")
//	terminal   command line spawned by mod+Return
//	launcher   command line spawned by mod+shift+Return
//	autostart  script run once at startup
//	palette    palette file produced by the wallpaper color tool
//	script     optional Lua binding script
//	groups     ordered [[groups]] tables (name, layout)
//	scratchpads [[scratchpads]] with nested [[scratchpads.dropdowns]]
//	bindings   extra [[bindings]] tables (keys, action, description)
//	host       host.client argv prefix
//	logging    logging.level, logging.format
package config
