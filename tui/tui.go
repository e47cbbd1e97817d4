// Package tui is the terminal overlay of the player: it renders the control
// bar and transient icons and turns keys and mouse clicks into gestures.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fastvideo-cli/fastvideo/device"
	"github.com/fastvideo-cli/fastvideo/key"
	"github.com/fastvideo-cli/fastvideo/schedule"
	"github.com/fastvideo-cli/fastvideo/session"
	"github.com/fastvideo-cli/fastvideo/where"
	"github.com/spf13/viper"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Config session.Config
}

// Run starts both media surfaces and blocks until the user quits or a
// surface window is closed.
func Run(ctx context.Context, options *Options) error {
	var program *tea.Program

	// Timers fire on their own goroutines; their callbacks are handed to
	// the program so the overlay is only ever touched from Update.
	loop := schedule.NewLoop(func(fn func()) {
		program.Send(runMsg(fn))
	})

	s := session.New(options.Config, session.Deps{
		Orientation: &device.Noop{},
		Viewport:    device.NewTerminal(),
		Scheduler:   loop,
		SocketDir:   where.Sockets(),
	})

	bubble := newBubble(ctx, s)

	programOptions := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if viper.GetBool(key.TUIMouse) {
		programOptions = append(programOptions, tea.WithMouseCellMotion())
	}

	program = tea.NewProgram(bubble, programOptions...)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}

	loop.Close()
	return errors.Join(err, s.Close(), bubble.lastError)
}
