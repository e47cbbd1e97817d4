package cmd

import (
	"encoding/json"
	"os"

	"github.com/fastvideo-cli/fastvideo/color"
	"github.com/fastvideo-cli/fastvideo/style"
	"github.com/fastvideo-cli/fastvideo/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// pathTarget is a directory the player owns. where prints it, clear may empty it.
type pathTarget struct {
	name      string
	long      string
	short     mo.Option[string]
	location  func() string
	hidden    bool
	clearable bool
}

func (t pathTarget) register(cmd *cobra.Command, usage string) {
	if short, ok := t.short.Get(); ok {
		cmd.Flags().BoolP(t.long, short, false, usage)
	} else {
		cmd.Flags().Bool(t.long, false, usage)
	}
}

var pathTargets = []pathTarget{
	{"Config", "config", mo.Some("c"), where.Config, false, false},
	{"Logs", "logs", mo.Some("l"), where.Logs, false, true},
	{"Sockets", "sockets", mo.Some("s"), where.Sockets, false, false},
	{"Cache", "cache", mo.None[string](), where.Cache, true, true},
	{"Temp", "temp", mo.None[string](), where.Temp, true, true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, t := range pathTargets {
		t.register(whereCmd, t.name+" path")
		if t.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(t.long))
		}
	}
	whereCmd.Flags().BoolP("json", "j", false, "Print every path as a JSON object")

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(pathTargets, func(t pathTarget, _ int) string {
		return t.long
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print the directories fastvideo reads and writes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range pathTargets {
			if lo.Must(cmd.Flags().GetBool(t.long)) {
				cmd.Println(t.location())
				return
			}
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			paths := lo.SliceToMap(pathTargets, func(t pathTarget) (string, string) {
				return t.long, t.location()
			})
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			handleErr(enc.Encode(paths))
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(pathTargets, func(t pathTarget, _ int) bool {
			return t.hidden
		})

		for i, t := range visible {
			cmd.Printf("%s %s\n", header(t.name+"?"), style.Fg(color.Yellow)("--"+t.long))
			cmd.Println(t.location())

			if i < len(visible)-1 {
				cmd.Println()
			}
		}
	},
}
