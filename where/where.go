// Package where resolves the directories fastvideo reads and writes.
package where

import (
	"os"
	"path/filepath"

	"github.com/fastvideo-cli/fastvideo/constant"
	"github.com/fastvideo-cli/fastvideo/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the config directory.
const EnvConfigPath = "FASTVIDEO_CONFIG_PATH"

// envRuntimeDir is the XDG runtime directory, preferred for sockets.
const envRuntimeDir = "XDG_RUNTIME_DIR"

func mkdir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config is the directory of fastvideo.toml. FASTVIDEO_CONFIG_PATH
// replaces it entirely.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return mkdir(custom)
	}

	return mkdir(filepath.Join(lo.Must(os.UserConfigDir()), constant.App))
}

// Cache holds the update check.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return mkdir(filepath.Join(base, constant.App))
}

// Logs holds one log file per day.
func Logs() string {
	return mkdir(filepath.Join(Config(), "logs"))
}

// Temp is scratch space. clear --temp empties it.
func Temp() string {
	return mkdir(filepath.Join(os.TempDir(), constant.App))
}

// Sockets holds the mpv IPC sockets of live surfaces. mpv creates the
// sockets itself, so this directory is always on the real filesystem.
func Sockets() string {
	base := filepath.Join(os.TempDir(), constant.App)
	if runtime, ok := os.LookupEnv(envRuntimeDir); ok && runtime != "" {
		base = filepath.Join(runtime, constant.App)
	}

	dir := filepath.Join(base, "ipc")
	lo.Must0(os.MkdirAll(dir, 0o700))
	return dir
}
