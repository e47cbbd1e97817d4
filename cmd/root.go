// Package cmd implements the command-line interface for fastvideo.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fastvideo-cli/fastvideo/color"
	"github.com/fastvideo-cli/fastvideo/constant"
	"github.com/fastvideo-cli/fastvideo/icon"
	"github.com/fastvideo-cli/fastvideo/key"
	"github.com/fastvideo-cli/fastvideo/log"
	"github.com/fastvideo-cli/fastvideo/media"
	"github.com/fastvideo-cli/fastvideo/session"
	"github.com/fastvideo-cli/fastvideo/style"
	"github.com/fastvideo-cli/fastvideo/tui"
	"github.com/fastvideo-cli/fastvideo/version"
	"github.com/fastvideo-cli/fastvideo/watermark"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().StringP("title", "t", "", "Window title, defaults to the source")

	rootCmd.Flags().StringP("watermark", "w", "", "Watermark text drawn on both surfaces")
	lo.Must0(viper.BindPFlag(key.WatermarkText, rootCmd.Flags().Lookup("watermark")))

	rootCmd.Flags().StringP("position", "p", "", "Watermark position")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("position", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return watermark.Positions(), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.WatermarkPosition, rootCmd.Flags().Lookup("position")))

	rootCmd.Flags().StringP("decoration", "d", "", "Decoration line drawn in the top left corner")
	lo.Must0(viper.BindPFlag(key.OverlayDecoration, rootCmd.Flags().Lookup("decoration")))

	rootCmd.Flags().StringP("geometry", "g", "", "Inline window geometry, e.g. 640x360+0+0")
	lo.Must0(viper.BindPFlag(key.PlayerInlineGeometry, rootCmd.Flags().Lookup("geometry")))

	rootCmd.Flags().BoolP("muted", "m", false, "Start muted")
	lo.Must0(viper.BindPFlag(key.PlayerStartMuted, rootCmd.Flags().Lookup("muted")))

	rootCmd.Flags().Bool("resume-on-exit", false, "Resume playback when leaving fullscreen even if it was paused")
	lo.Must0(viper.BindPFlag(key.FullscreenResumeOnExit, rootCmd.Flags().Lookup("resume-on-exit")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd plays a video.
var rootCmd = &cobra.Command{
	Use:   constant.App + " [source]",
	Short: "A terminal video player with a tappable overlay",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal video player with a tappable overlay"),
	Args:    cobra.MaximumNArgs(1),
	Example: "  " + constant.App + " ~/Videos/clip.mp4 --watermark demo --position bottom-right",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		CheckDependencies()

		source, err := media.SanitizeSource(args[0])
		handleErr(err)

		cfg, err := session.FromViper(source)
		handleErr(err)

		if title := lo.Must(cmd.Flags().GetString("title")); title != "" {
			cfg.Title = title
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Infof("playing %s", source)
		handleErr(tui.Run(ctx, &tui.Options{Config: cfg}))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
