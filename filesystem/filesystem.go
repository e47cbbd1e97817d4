// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// Configuration, logs and the update-check cache go through afero so tests can
// run against an in-memory backend. mpv IPC sockets are the exception: mpv
// creates them itself on the real filesystem.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the native operating system backend.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to a volatile in-memory backend for tests.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}
