//go:build !windows

package media

import (
	"os/exec"
	"syscall"
)

// sysProcAttr starts mpv in its own process group so terminal signals sent
// to the TUI do not reach it.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}

func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}

	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	return cmd.Process.Kill()
}
