package media

import (
	"bufio"
	"encoding/json"
	"net"
	"path/filepath"
	"sync"
	"testing"
)

// fakeMPV speaks just enough of the mpv IPC protocol for tests: every
// command gets a success reply and is recorded.
type fakeMPV struct {
	path     string
	listener net.Listener

	mu       sync.Mutex
	commands []any
	conns    []net.Conn
	reply    func(command any) ipcResponse

	wg sync.WaitGroup
}

func newFakeMPV(t *testing.T) *fakeMPV {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mpv.sock")
	l, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	f := &fakeMPV{path: path, listener: l}
	f.wg.Add(1)
	go f.accept()
	return f
}

func (f *fakeMPV) accept() {
	defer f.wg.Done()
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}

		f.mu.Lock()
		f.conns = append(f.conns, conn)
		f.mu.Unlock()

		f.wg.Add(1)
		go f.serve(conn)
	}
}

func (f *fakeMPV) serve(conn net.Conn) {
	defer f.wg.Done()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var cmd ipcCommand
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			continue
		}

		f.mu.Lock()
		f.commands = append(f.commands, cmd.Command)
		reply := f.reply
		f.mu.Unlock()

		resp := ipcResponse{Error: "success"}
		if reply != nil {
			resp = reply(cmd.Command)
		}

		data, _ := json.Marshal(struct {
			Data  any    `json:"data"`
			Error string `json:"error"`
		}{resp.Data, resp.Error})
		if _, err := conn.Write(append(data, '\n')); err != nil {
			return
		}
	}
}

func (f *fakeMPV) respond(fn func(command any) ipcResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reply = fn
}

// push writes a raw line to every open connection.
func (f *fakeMPV) push(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.conns {
		_, _ = c.Write([]byte(line + "\n"))
	}
}

func (f *fakeMPV) recorded() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]any(nil), f.commands...)
}

func (f *fakeMPV) close() {
	_ = f.listener.Close()

	f.mu.Lock()
	for _, c := range f.conns {
		_ = c.Close()
	}
	f.mu.Unlock()

	f.wg.Wait()
}
