package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fastvideo-cli/fastvideo/color"
	"github.com/fastvideo-cli/fastvideo/config"
	"github.com/fastvideo-cli/fastvideo/constant"
	"github.com/fastvideo-cli/fastvideo/filesystem"
	"github.com/fastvideo-cli/fastvideo/icon"
	keyPkg "github.com/fastvideo-cli/fastvideo/key"
	"github.com/fastvideo-cli/fastvideo/style"
	"github.com/fastvideo-cli/fastvideo/watermark"
	"github.com/fastvideo-cli/fastvideo/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var hexColor = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

func closestKey(key string) string {
	return lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})
}

func errUnknownKey(key string) error {
	return fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(closestKey(key)),
	)
}

func lookupField(key string) config.Field {
	field, ok := config.Default[key]
	if !ok {
		handleErr(errUnknownKey(key))
	}

	return field
}

// configFile is where the toml config lives.
func configFile() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

// writeConfig saves viper's state, creating the file when missing.
func writeConfig() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfig()
	}

	return err
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

// keyArg takes the key from the first argument or the --key flag.
func keyArg(cmd *cobra.Command, args []string) string {
	if len(args) >= 1 {
		return args[0]
	}

	if k, _ := cmd.Flags().GetString("key"); k != "" {
		return k
	}

	handleErr(errors.New("key is required as an argument or --key flag"))
	return ""
}

// parseValue converts raw command line values to the type of field's default.
func parseValue(field config.Field, values []string) (any, error) {
	if len(values) == 0 {
		return nil, errors.New("value is required as an argument or --value flag")
	}

	raw := values[0]
	switch field.Value.(type) {
	case string:
		return raw, nil
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", raw)
		}
		return v, nil
	case float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number: %s", raw)
		}
		return v, nil
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", raw)
		}
		return v, nil
	case []string:
		return values, nil
	default:
		return nil, fmt.Errorf("unsupported type %T for %s", field.Value, field.Key)
	}
}

// validateValue rejects values the player would fail on at startup.
func validateValue(key string, value any) error {
	switch {
	case key == keyPkg.WatermarkPosition:
		_, err := watermark.ParsePosition(fmt.Sprint(value))
		return err
	case key == keyPkg.WatermarkColor:
		if !hexColor.MatchString(fmt.Sprint(value)) {
			return fmt.Errorf("%s must be RRGGBB", key)
		}
	case strings.HasPrefix(key, "overlay."):
		switch v := value.(type) {
		case int:
			if v < 0 {
				return fmt.Errorf("%s must not be negative", key)
			}
		case float64:
			if v < 0 {
				return fmt.Errorf("%s must not be negative", key)
			}
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configCmd serves as the parent command for managing application configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage player settings",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Specify the configuration keys to retrieve information for")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)

	configInfoCmd.SetOut(os.Stdout)
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe configuration fields",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			keys   = lo.Must(cmd.Flags().GetStringSlice("key"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			fields = lo.Values(config.Default)
		)

		if len(keys) > 0 {
			fields = lo.Map(keys, func(k string, _ int) config.Field {
				return lookupField(k)
			})
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if asJson {
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		for i, field := range fields {
			cmd.Print(field.Pretty())

			if i < len(fields)-1 {
				cmd.Print("\n\n")
			}
		}
		cmd.Println()
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().StringP("key", "k", "", "The configuration key to update")
	configSetCmd.Flags().StringSliceP("value", "v", []string{}, "The new value to assign to the configuration key")
	_ = configSetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configSetCmd = &cobra.Command{
	Use:               "set [key] [value]",
	Short:             "Update a configuration key",
	Example:           "  fastvideo config set watermark.position bottom-right",
	Args:              cobra.ArbitraryArgs,
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		key := keyArg(cmd, args)
		field := lookupField(key)

		values := lo.Must(cmd.Flags().GetStringSlice("value"))
		if len(args) >= 2 {
			values = args[1:]
		}

		v, err := parseValue(field, values)
		handleErr(err)
		handleErr(validateValue(key, v))

		viper.Set(key, v)
		handleErr(writeConfig())

		fmt.Printf(
			"%s set %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(key),
			style.Fg(color.Yellow)(fmt.Sprintf("%v", v)),
		)
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.Flags().StringP("key", "k", "", "The specific configuration key to retrieve")
	_ = configGetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the current value of a configuration key",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		key := keyArg(cmd, args)
		lookupField(key)
		fmt.Println(viper.Get(key))
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Forcefully overwrite the existing configuration file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current configuration to " + constant.App + ".toml",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			handleErr(filesystem.API().Remove(path))
		}

		handleErr(viper.SafeWriteConfig())
		fmt.Printf(
			"%s wrote config to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			path,
		)
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the configuration file",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configFile()))
		fmt.Printf(
			"%s deleted config\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
		)
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().StringP("key", "k", "", "The configuration key to restore to its default value")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore every key to its default")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	configResetCmd.MarkFlagsOneRequired("key", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore configuration keys to their defaults",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("all")) {
			for key, field := range config.Default {
				viper.Set(key, field.Value)
			}

			handleErr(writeConfig())
			fmt.Printf("%s reset all config values\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		key := lo.Must(cmd.Flags().GetString("key"))
		field := lookupField(key)
		viper.Set(key, field.Value)
		handleErr(writeConfig())

		fmt.Printf(
			"%s reset %s to default value %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(key),
			style.Fg(color.Yellow)(fmt.Sprintf("%v", field.Value)),
		)
	},
}
