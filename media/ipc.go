package media

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket. Command is either
// a positional list or a map of named arguments.
type ipcCommand struct {
	Command   any   `json:"command"`
	RequestID int64 `json:"request_id,omitempty"`
}

// ipcResponse is one line received from mpv's IPC socket. Replies carry
// Error and Data, asynchronous events carry Event.
type ipcResponse struct {
	Data      any    `json:"data"`
	Error     string `json:"error"`
	RequestID int64  `json:"request_id"`
	Event     string `json:"event"`
	Name      string `json:"name"`
	ID        int64  `json:"id"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = time.Second
)

// ErrIPC wraps every failure reported by mpv itself.
var ErrIPC = errors.New("mpv error")

// sendCommand sends one IPC command, retrying transient connection errors.
func (m *MPV) sendCommand(command any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := doSendCommand(m.socketPath, command)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, ErrIPC) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", maxRetries, lastErr)
}

// doSendCommand performs a single request/reply exchange on a fresh connection.
// Event lines that arrive before the reply are skipped.
func doSendCommand(socketPath string, command any) (any, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	payload, err := json.Marshal(ipcCommand{Command: command})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	if _, err = conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var resp ipcResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			return nil, fmt.Errorf("unmarshal: %w", err)
		}

		if resp.Event != "" {
			continue
		}

		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("%w: %s", ErrIPC, resp.Error)
		}

		return resp.Data, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return nil, errors.New("read: connection closed before reply")
}
