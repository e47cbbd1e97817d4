package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fastvideo-cli/fastvideo/color"
	"github.com/fastvideo-cli/fastvideo/constant"
	"github.com/fastvideo-cli/fastvideo/icon"
	"github.com/fastvideo-cli/fastvideo/style"
	"github.com/fastvideo-cli/fastvideo/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.SetOut(os.Stdout)
}

// checkCmd reports whether the media backend is usable.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that mpv is installed and report its version",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		path := lo.Must(exec.LookPath(constant.MPV))
		first, err := mpvVersion(path)
		handleErr(err)

		cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Bold(first))
		cmd.Println(style.Faint(path))
		cmd.Println(style.Faint("sockets in " + where.Sockets()))
	},
}

// mpvVersion returns the first line of `mpv --version`.
func mpvVersion(path string) (string, error) {
	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("mpv --version: %w", err)
	}

	first, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(first), nil
}

// CheckDependencies exits when mpv is not on the PATH.
func CheckDependencies() {
	_, err := exec.LookPath(constant.MPV)
	if err != nil {
		printMissingDependencyError(constant.MPV)
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install mpv"
	case constant.Linux:
		installCmd = "sudo apt install mpv"
	case constant.Windows:
		installCmd = "scoop install mpv"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
