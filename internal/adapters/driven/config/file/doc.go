// Package file provides the TOML-backed configuration store. Settings
// such as data directories, chunking overrides, and search limits are
// stored in a single user-editable config.toml.
package file
