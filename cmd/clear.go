package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/fastvideo-cli/fastvideo/icon"
	"github.com/fastvideo-cli/fastvideo/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func clearable() []pathTarget {
	return lo.Filter(pathTargets, func(t pathTarget, _ int) bool {
		return t.clearable
	})
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, t := range clearable() {
		t.register(clearCmd, "clear the "+util.Capitalize(t.long)+" directory")
	}
	clearCmd.Flags().BoolP("all", "a", false, "clear every directory above")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove logs, cached and temporary files",
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))

		targets := lo.Filter(clearable(), func(t pathTarget, _ int) bool {
			return all || lo.Must(cmd.Flags().GetBool(t.long))
		})
		if len(targets) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, t := range targets {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), t.long))
			err := util.Delete(t.location())
			erase()

			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), t.name)
		}
	},
}
