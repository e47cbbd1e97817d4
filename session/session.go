// Package session composes the playback controller, one overlay engine per
// mounted surface and the watermark label into a running player.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fastvideo-cli/fastvideo/constant"
	"github.com/fastvideo-cli/fastvideo/log"
	"github.com/fastvideo-cli/fastvideo/media"
	"github.com/fastvideo-cli/fastvideo/overlay"
	"github.com/fastvideo-cli/fastvideo/playback"
	"github.com/fastvideo-cli/fastvideo/schedule"
	"github.com/fastvideo-cli/fastvideo/watermark"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/sync/errgroup"
)

// Surface is a media surface process.
type Surface interface {
	playback.Handle
	Start(ctx context.Context) error
	Wait() <-chan struct{}
	Socket() string
	ShowLabel(id int, l media.Label, width, height float64) error
	ClearOverlay(id int) error
	Close() error
}

// Listener forwards surface events to the controller.
type Listener interface {
	Start() error
	Stop()
}

// Deps are the collaborators of a Session. Zero fields get the mpv-backed
// defaults.
type Deps struct {
	NewSurface  func(media.Options) Surface
	NewListener func(socket string, origin playback.Origin, post media.Poster) Listener
	Orientation playback.Orientation
	Viewport    playback.Viewport
	Scheduler   schedule.Scheduler
	SocketDir   string
}

// Session is a running player. Launch, Wait and Close are safe from any
// goroutine. Every other method, Start and Attach included, must be called
// from the event loop the scheduler posts to.
type Session struct {
	cfg  Config
	deps Deps

	controller *playback.Controller
	surfaces   [2]Surface
	listeners  []Listener
	engines    [2]*overlay.Engine

	// mu guards surfaces and closed between Launch and Close.
	mu     sync.Mutex
	closed bool

	exited    chan struct{}
	closeOnce sync.Once
}

// New prepares a session. Nothing starts until Start.
func New(cfg Config, deps Deps) *Session {
	if deps.NewSurface == nil {
		deps.NewSurface = func(opts media.Options) Surface { return media.NewMPV(opts) }
	}

	if deps.NewListener == nil {
		deps.NewListener = func(socket string, origin playback.Origin, post media.Poster) Listener {
			return media.NewListener(socket, origin, post)
		}
	}

	s := &Session{
		cfg:    cfg,
		deps:   deps,
		exited: make(chan struct{}),
	}

	s.controller = playback.New(playback.Options{
		Source:            cfg.Source,
		ResumeOnExit:      cfg.ResumeOnExit,
		AutoRotate:        cfg.AutoRotate,
		Muted:             cfg.Muted,
		Orientation:       deps.Orientation,
		Viewport:          deps.Viewport,
		OnEnterFullscreen: shellHook("on_enter", cfg.OnEnter),
		OnExitFullscreen:  shellHook("on_exit", cfg.OnExit),
	})

	return s
}

// Controller returns the playback controller.
func (s *Session) Controller() *playback.Controller {
	return s.controller
}

// Engine returns the overlay engine of the active surface.
func (s *Session) Engine() *overlay.Engine {
	return s.engines[s.controller.Mode()]
}

// EngineFor returns the overlay engine of a surface, nil when it has none.
func (s *Session) EngineFor(mode playback.Mode) *overlay.Engine {
	return s.engines[mode]
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

func (s *Session) surfaceOptions(mode playback.Mode) media.Options {
	return media.Options{
		Surface:   mode,
		Title:     fmt.Sprintf("%s - %s", constant.App, s.cfg.Title),
		Geometry:  s.cfg.Geometry,
		Cache:     s.cfg.Cache,
		Muted:     s.cfg.Muted,
		ExtraArgs: s.cfg.ExtraArgs,
		SocketDir: s.deps.SocketDir,
	}
}

// Start launches both surfaces and attaches them. It is Launch followed by
// Attach for callers that own no separate event loop.
func (s *Session) Start(ctx context.Context) error {
	if err := s.Launch(ctx); err != nil {
		return err
	}

	return s.Attach()
}

// Launch starts both surface processes concurrently and waits for their IPC
// sockets. It may run off the event loop: it touches nothing but the
// surfaces.
func (s *Session) Launch(ctx context.Context) error {
	var surfaces [2]Surface
	for _, mode := range []playback.Mode{playback.Inline, playback.Fullscreen} {
		surfaces[mode] = s.deps.NewSurface(s.surfaceOptions(mode))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, surface := range surfaces {
		g.Go(func() error {
			return surface.Start(gctx)
		})
	}

	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err != nil:
		err = fmt.Errorf("start surfaces: %w", err)
	case s.closed:
		err = playback.ErrClosed
	default:
		s.surfaces = surfaces
		return nil
	}

	for _, surface := range surfaces {
		_ = surface.Close()
	}
	return err
}

// Attach mounts the launched surfaces on the controller, starts their
// listeners and wires the inline overlay engine and the watermark. It must
// run on the event loop.
func (s *Session) Attach() error {
	for mode, surface := range s.surfaces {
		if surface == nil {
			return fmt.Errorf("attach %s surface: %w", playback.Mode(mode), playback.ErrNotReady)
		}
	}

	s.controller.Subscribe(s.onStateChange)
	s.controller.SubscribeMode(s.onModeChange)
	s.controller.SubscribeLayout(func(playback.Layout) { s.refreshLabels() })

	for _, mode := range []playback.Mode{playback.Inline, playback.Fullscreen} {
		surface := s.surfaces[mode]
		id := s.controller.Mount(mode, surface)

		l := s.deps.NewListener(surface.Socket(), playback.Origin{Mode: mode, Handle: id}, s.controller.Post)
		if err := l.Start(); err != nil {
			s.Close()
			return fmt.Errorf("listen to %s surface: %w", mode, err)
		}
		s.listeners = append(s.listeners, l)
	}

	s.engines[playback.Inline] = s.newEngine(playback.Inline)

	waits := lo.Map(s.surfaces[:], func(surface Surface, _ int) <-chan struct{} {
		return surface.Wait()
	})
	go s.watchExit(waits[0], waits[1])

	s.refreshLabels()
	return nil
}

func (s *Session) newEngine(mode playback.Mode) *overlay.Engine {
	return overlay.New(mode, s.controller, s.deps.Scheduler, s.cfg.Timing)
}

// watchExit closes exited once either surface process exits.
func (s *Session) watchExit(inline, fullscreen <-chan struct{}) {
	select {
	case <-inline:
	case <-fullscreen:
	}

	s.closeOnce.Do(func() { close(s.exited) })
}

// Wait returns a channel closed when a surface window is gone.
func (s *Session) Wait() <-chan struct{} {
	return s.exited
}

func (s *Session) onStateChange(prev, next playback.State) {
	for _, e := range s.engines {
		if e != nil {
			e.OnPlaybackChange(prev, next)
		}
	}
}

// onModeChange creates the fullscreen engine on enter and disposes it on exit.
func (s *Session) onModeChange(_, to playback.Mode) {
	switch to {
	case playback.Fullscreen:
		if s.engines[playback.Fullscreen] == nil {
			s.engines[playback.Fullscreen] = s.newEngine(playback.Fullscreen)
		}
	case playback.Inline:
		if e := s.engines[playback.Fullscreen]; e != nil {
			e.Dispose()
			s.engines[playback.Fullscreen] = nil
		}
	}

	s.refreshLabels()
}

// Anchor resolves the watermark for a surface with the current layout.
func (s *Session) Anchor(mode playback.Mode) watermark.Anchor {
	layout := s.controller.Layout()
	return watermark.Resolve(watermark.Input{
		Position:        s.cfg.Watermark.Position,
		Offsets:         s.cfg.Watermark.Offsets,
		Fullscreen:      mode == playback.Fullscreen,
		Landscape:       layout.Landscape,
		ViewportHeight:  layout.ViewportHeight,
		LetterboxHeight: layout.Letterbox.Height,
	})
}

// SurfaceSize is the OSD coordinate space of a surface.
func (s *Session) SurfaceSize(mode playback.Mode) (float64, float64) {
	if mode == playback.Fullscreen {
		layout := s.controller.Layout()
		if layout.ViewportWidth > 0 && layout.ViewportHeight > 0 {
			return layout.ViewportWidth, layout.ViewportHeight
		}
	}

	if w, h, ok := ParseGeometry(s.cfg.Geometry); ok {
		return w, h
	}

	return 640, 360
}

// Label returns the watermark label of a surface, if any.
func (s *Session) Label(mode playback.Mode) mo.Option[media.Label] {
	if s.cfg.Watermark.Text == "" {
		return mo.None[media.Label]()
	}

	return mo.Some(media.Label{
		Text:     s.cfg.Watermark.Text,
		Anchor:   s.Anchor(mode),
		Color:    s.cfg.Watermark.Color,
		FontSize: s.cfg.Watermark.FontSize,
	})
}

func (s *Session) decoration() mo.Option[media.Label] {
	if s.cfg.Decoration == "" {
		return mo.None[media.Label]()
	}

	return mo.Some(media.Label{
		Text:     s.cfg.Decoration,
		Anchor:   watermark.Anchor{Vertical: watermark.EdgeTop, Horizontal: watermark.EdgeLeft},
		Color:    s.cfg.Watermark.Color,
		FontSize: s.cfg.Watermark.FontSize,
	})
}

// refreshLabels re-resolves the watermark and redraws it with the
// decoration on every mounted surface.
func (s *Session) refreshLabels() {
	for _, mode := range []playback.Mode{playback.Inline, playback.Fullscreen} {
		surface := s.surfaces[mode]
		if surface == nil {
			continue
		}

		w, h := s.SurfaceSize(mode)
		entry := log.With(log.Fields{"surface": mode.String()})

		if label, ok := s.Label(mode).Get(); ok {
			if err := surface.ShowLabel(constant.OsdWatermarkID, label, w, h); err != nil {
				entry.Warnf("draw watermark: %s", err)
			}
		}

		if deco, ok := s.decoration().Get(); ok {
			if err := surface.ShowLabel(constant.OsdDecorationID, deco, w, h); err != nil {
				entry.Warnf("draw decoration: %s", err)
			}
		}
	}
}

// Close disposes the engines, closes the controller and stops every
// surface. The exit hook fires if fullscreen was active.
func (s *Session) Close() error {
	for i, e := range s.engines {
		if e != nil {
			e.Dispose()
			s.engines[i] = nil
		}
	}

	s.controller.Close()

	for _, l := range s.listeners {
		l.Stop()
	}
	s.listeners = nil

	err := s.closeSurfaces()
	s.closeOnce.Do(func() { close(s.exited) })
	return err
}

func (s *Session) closeSurfaces() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	var errs []error
	for i, surface := range s.surfaces {
		if surface == nil {
			continue
		}
		if err := surface.Close(); err != nil {
			errs = append(errs, err)
		}
		s.surfaces[i] = nil
	}

	return errors.Join(errs...)
}
