package cmd

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
	"text/template"

	"github.com/fastvideo-cli/fastvideo/color"
	"github.com/fastvideo-cli/fastvideo/constant"
	"github.com/fastvideo-cli/fastvideo/style"
	"github.com/fastvideo-cli/fastvideo/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Only print the version")
}

var versionTemplate = template.Must(template.New("version").Funcs(map[string]any{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
}).Parse(`{{ magenta "▶" }} {{ magenta .App }}

  {{ faint "Version" }}     {{ bold .Version }}
  {{ faint "Commit" }}      {{ bold .Revision }}
  {{ faint "Built" }}       {{ bold .BuiltAt }} {{ faint "by" }} {{ bold .BuiltBy }}
  {{ faint "Platform" }}    {{ bold .OS }}/{{ bold .Arch }}
  {{ faint "Backend" }}     {{ bold .Backend }}
`))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version, build and backend information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify()

		backend := "mpv not found"
		if path, err := exec.LookPath(constant.MPV); err == nil {
			if v, err := mpvVersion(path); err == nil {
				backend = v
			}
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), map[string]string{
			"App":      constant.App,
			"Version":  constant.Version,
			"Revision": constant.Revision,
			"BuiltAt":  strings.TrimSpace(constant.BuiltAt),
			"BuiltBy":  constant.BuiltBy,
			"OS":       runtime.GOOS,
			"Arch":     runtime.GOARCH,
			"Backend":  backend,
		}))
	},
}
