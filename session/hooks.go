package session

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/fastvideo-cli/fastvideo/constant"
	"github.com/fastvideo-cli/fastvideo/log"
	"github.com/samber/mo"
)

// shellHook turns a configured shell command into a fullscreen hook.
// An empty command yields no hook.
func shellHook(name, command string) mo.Option[func()] {
	command = strings.TrimSpace(command)
	if command == "" {
		return mo.None[func()]()
	}

	return mo.Some(func() {
		var cmd *exec.Cmd
		if runtime.GOOS == constant.Windows {
			cmd = exec.Command("cmd", "/C", command)
		} else {
			cmd = exec.Command("sh", "-c", command)
		}

		entry := log.With(log.Fields{"hook": name})
		if err := cmd.Start(); err != nil {
			entry.Errorf("start: %s", err)
			return
		}

		go func() {
			if err := cmd.Wait(); err != nil {
				entry.Warnf("exited: %s", err)
			}
		}()
	})
}
