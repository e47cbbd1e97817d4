// Package config registers every setting with its default and loads
// overrides from fastvideo.toml and FASTVIDEO_* environment variables.
package config

import (
	"errors"
	"strings"

	"github.com/fastvideo-cli/fastvideo/constant"
	"github.com/fastvideo-cli/fastvideo/filesystem"
	"github.com/fastvideo-cli/fastvideo/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to environment variable suffixes.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads defaults, environment bindings and the config file into viper.
// A missing config file is not an error.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	bindEnv()
	setDefaults()

	err := viper.ReadInConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return nil
	}
	return err
}

func bindEnv() {
	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}
}

func setDefaults() {
	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}
}
