package cmd

import (
	"os"

	"github.com/fastvideo-cli/fastvideo/color"
	"github.com/fastvideo-cli/fastvideo/config"
	"github.com/fastvideo-cli/fastvideo/style"
	"github.com/fastvideo-cli/fastvideo/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

// envVar pairs an environment variable with the config key it overrides.
type envVar struct {
	name string
	key  string
}

// envVars lists the config path override followed by every exposed key, sorted by name.
func envVars() []envVar {
	vars := lo.Map(config.EnvExposed, func(k string, _ int) envVar {
		field := config.Default[k]
		return envVar{name: field.Env(), key: k}
	})

	slices.SortFunc(vars, func(a, b envVar) int {
		switch {
		case a.name < b.name:
			return -1
		case a.name > b.name:
			return 1
		}
		return 0
	})

	return append([]envVar{{name: where.EnvConfigPath}}, vars...)
}

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only show variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only show variables that are not set")
	envCmd.Flags().BoolP("keys", "k", false, "Show the config key each variable overrides")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List environment variables that override the config",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
			showKeys  = lo.Must(cmd.Flags().GetBool("keys"))
		)

		for _, v := range envVars() {
			value, present := os.LookupEnv(v.name)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(v.name))
			cmd.Print("=")

			if present {
				cmd.Print(style.Fg(color.Green)(value))
			} else {
				cmd.Print(style.Fg(color.Red)("unset"))
			}

			if showKeys && v.key != "" {
				cmd.Print(style.Faint("  # " + v.key))
			}
			cmd.Println()
		}
	},
}
