package media

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fastvideo-cli/fastvideo/constant"
	"github.com/fastvideo-cli/fastvideo/log"
	"github.com/fastvideo-cli/fastvideo/playback"
	"github.com/google/uuid"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// MPV is one mpv process acting as a playback surface.
// It implements playback.Handle and playback.Presenter.
type MPV struct {
	opts       Options
	id         uuid.UUID
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	mu         sync.Mutex // serializes socket exchanges
	entry      log.Entry
}

var (
	_ playback.Handle    = (*MPV)(nil)
	_ playback.Presenter = (*MPV)(nil)
)

// NewMPV prepares a surface. Nothing runs until Start.
func NewMPV(opts Options) *MPV {
	id := uuid.New()
	dir := opts.SocketDir
	if dir == "" {
		dir = os.TempDir()
	}

	return &MPV{
		opts:       opts,
		id:         id,
		socketPath: filepath.Join(dir, fmt.Sprintf("%s-%s-%s.sock", constant.App, opts.Surface, id)),
		exited:     make(chan struct{}),
		entry:      log.With(log.Fields{"surface": opts.Surface.String(), "socket": id.String()}),
	}
}

// args builds the mpv command line. mpv starts idle and paused without a
// window; the window appears on the first Load.
func (m *MPV) args() []string {
	title := sanitizeTitle(m.opts.Title)
	if title == "" {
		title = constant.App
	}

	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--title=%s", title),
		"--idle=yes",
		"--force-window=no",
		"--keep-open=yes",
		"--pause=yes",
		"--osc=no",
		"--input-default-bindings=no",
		"--osd-level=0",
	}

	if m.opts.Muted {
		args = append(args, "--mute=yes")
	}

	if m.opts.Cache {
		args = append(args, "--cache=yes")
	}

	switch m.opts.Surface {
	case playback.Fullscreen:
		args = append(args, "--fs=yes")
	default:
		if m.opts.Geometry != "" {
			args = append(args, fmt.Sprintf("--geometry=%s", m.opts.Geometry))
		}
	}

	return append(args, m.opts.ExtraArgs...)
}

// Start launches mpv and waits for its IPC socket. The process is killed when
// the socket never comes up or ctx ends first.
func (m *MPV) Start(ctx context.Context) error {
	m.cmd = exec.Command(m.opts.binary(), m.args()...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(ctx); err != nil {
		select {
		case <-m.exited:
		default:
			m.entry.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.entry.Infof("mpv started")
	return nil
}

func (m *MPV) waitForSocket(ctx context.Context) error {
	for i := 0; i < socketWaitRetries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}

	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Wait returns a channel closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// Surface returns the surface this process renders.
func (m *MPV) Surface() playback.Mode {
	return m.opts.Surface
}

// Load replaces the current file with source and leaves playback paused.
func (m *MPV) Load(source string) error {
	target, err := SanitizeSource(source)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if err := m.Set("pause", true); err != nil {
		return err
	}

	if _, err := m.sendCommand([]any{"loadfile", target, "replace"}); err != nil {
		return fmt.Errorf("loadfile: %w", err)
	}

	return nil
}

func (m *MPV) Pause() error {
	return m.Set("pause", true)
}

func (m *MPV) Resume() error {
	return m.Set("pause", false)
}

// Seek moves playback to an absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand([]any{"seek", seconds, "absolute"})
	return err
}

func (m *MPV) SetMute(muted bool) error {
	return m.Set("mute", muted)
}

// Present shows or minimizes the window. The fullscreen surface also leaves
// fullscreen while hidden so it does not cover the desktop.
func (m *MPV) Present(visible bool) error {
	if m.opts.Surface == playback.Fullscreen {
		if err := m.Set("fullscreen", visible); err != nil {
			return err
		}
	}

	return m.Set("window-minimized", !visible)
}

// Set writes an mpv property.
func (m *MPV) Set(property string, value any) error {
	if _, err := m.sendCommand([]any{"set_property", property, value}); err != nil {
		return fmt.Errorf("set %s: %w", property, err)
	}

	return nil
}

// Float reads a numeric mpv property.
func (m *MPV) Float(name string) (float64, error) {
	data, err := m.sendCommand([]any{"get_property", name})
	if err != nil {
		return 0, err
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// IsRunning reports whether mpv answers IPC commands.
func (m *MPV) IsRunning() bool {
	select {
	case <-m.exited:
		return false
	default:
	}

	if m.cmd == nil {
		return false
	}

	_, err := m.sendCommand([]any{"get_property", "pid"})
	return err == nil
}

// Close asks mpv to quit, kills it after a timeout and removes the socket.
func (m *MPV) Close() error {
	if m.cmd == nil {
		return nil
	}

	_, _ = m.sendCommand([]any{"quit"})

	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	m.entry.Debugf("mpv closed")
	return nil
}

// SanitizeSource rejects sources that mpv could read as flags and
// accepts http(s) URLs and local paths.
func SanitizeSource(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", errors.New("empty source")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("invalid control characters in source")
	}

	if strings.HasPrefix(l, "-") {
		return "", errors.New("source must not start with '-'")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}

		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
