package media

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"sync"

	"github.com/fastvideo-cli/fastvideo/log"
	"github.com/fastvideo-cli/fastvideo/playback"
	"github.com/fastvideo-cli/fastvideo/watermark"
)

// progressStep is the smallest forward movement reported as progress.
const progressStep = 0.25

var observed = []string{
	"time-pos",
	"duration",
	"eof-reached",
	"dwidth",
	"dheight",
	"osd-dimensions",
}

// Poster receives translated events. It is playback.Controller.Post in production.
type Poster func(playback.Event) bool

// Listener turns mpv property changes into playback events. It keeps a
// persistent connection, since mpv scopes observe_property to the client
// that issued it.
type Listener struct {
	socketPath string
	origin     playback.Origin
	post       Poster

	mu        sync.Mutex
	conn      net.Conn
	listening bool
	wg        sync.WaitGroup

	// read goroutine only
	fileLoaded bool
	duration   float64
	natural    watermark.NaturalSize
	lastPos    float64
	sentLoad   bool
}

// NewListener creates a listener for the socket whose events are tagged
// with origin.
func NewListener(socketPath string, origin playback.Origin, post Poster) *Listener {
	return &Listener{
		socketPath: socketPath,
		origin:     origin,
		post:       post,
		lastPos:    -1,
	}
}

// Start connects, registers the observers and starts the read loop.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.listening {
		return nil
	}

	conn, err := net.Dial("unix", l.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	enc := json.NewEncoder(conn)
	for i, name := range observed {
		if err := enc.Encode(ipcCommand{Command: []any{"observe_property", i + 1, name}}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	l.conn = conn
	l.listening = true
	l.wg.Add(1)
	go l.readLoop(conn)

	log.With(log.Fields{"surface": l.origin.Mode.String()}).Infof("mpv event listener started on %s", l.socketPath)
	return nil
}

// Stop closes the connection and waits for the read loop to exit.
func (l *Listener) Stop() {
	l.mu.Lock()
	if !l.listening {
		l.mu.Unlock()
		return
	}
	l.listening = false
	_ = l.conn.Close()
	l.mu.Unlock()

	l.wg.Wait()
}

func (l *Listener) readLoop(conn net.Conn) {
	defer l.wg.Done()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var msg ipcResponse
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}
		l.process(msg)
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warnf("event listener read error: %v", err)
	}
}

func (l *Listener) process(msg ipcResponse) {
	switch msg.Event {
	case "":
		if msg.Error != "" && msg.Error != "success" {
			log.Warnf("mpv rejected observer: %s", msg.Error)
		}
	case "file-loaded":
		l.fileLoaded = true
		l.sentLoad = false
		l.lastPos = -1
		l.maybeLoad()
	case "property-change":
		l.property(msg.Name, msg.Data)
	}
}

func (l *Listener) property(name string, data any) {
	switch name {
	case "time-pos":
		pos, ok := data.(float64)
		if !ok || math.IsNaN(pos) {
			return
		}
		if l.lastPos >= 0 && pos >= l.lastPos && pos-l.lastPos < progressStep {
			return
		}
		l.lastPos = pos
		l.post(playback.ProgressEvent{Origin: l.origin, CurrentTime: pos})
	case "duration":
		if d, ok := data.(float64); ok && d != l.duration {
			l.duration = d
			l.sentLoad = false
			l.maybeLoad()
		}
	case "dwidth":
		if w, ok := data.(float64); ok && w != l.natural.Width {
			l.natural.Width = w
			l.sentLoad = false
			l.maybeLoad()
		}
	case "dheight":
		if h, ok := data.(float64); ok && h != l.natural.Height {
			l.natural.Height = h
			l.sentLoad = false
			l.maybeLoad()
		}
	case "eof-reached":
		if eof, ok := data.(bool); ok && eof {
			l.post(playback.EndEvent{Origin: l.origin})
		}
	case "osd-dimensions":
		if l.origin.Mode != playback.Fullscreen {
			return
		}
		dims, ok := data.(map[string]any)
		if !ok {
			return
		}
		w, _ := dims["w"].(float64)
		h, _ := dims["h"].(float64)
		if w > 0 && h > 0 {
			l.post(playback.ViewportEvent{Width: w, Height: h})
		}
	}
}

// maybeLoad posts a LoadEvent once the file is loaded and its natural size
// is known. A later duration or size change posts a fresh one.
func (l *Listener) maybeLoad() {
	if !l.fileLoaded || l.sentLoad || !l.natural.Known() {
		return
	}

	l.sentLoad = true
	l.post(playback.LoadEvent{
		Origin:   l.origin,
		Duration: l.duration,
		Natural:  l.natural,
	})
}
