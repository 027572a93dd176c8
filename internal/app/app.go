// Package app wires the editing engine to a terminal: it owns the tcell
// screen, translates key and mouse events into engine operations, and
// drives scroll animation and caret blink from timers.
package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inkstone/internal/config"
	"github.com/dshills/inkstone/internal/engine"
	"github.com/dshills/inkstone/internal/engine/document"
	"github.com/dshills/inkstone/internal/fontmetrics"
)

// frameInterval is how often scroll animation advances.
const frameInterval = 16 * time.Millisecond

// Options configures the application at startup.
type Options struct {
	// ConfigPath overrides the default configuration file location.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// ReadOnly opens the document without editing.
	ReadOnly bool

	// FilePath is the document to open; empty starts a blank document.
	FilePath string
}

// App is the running editor application.
type App struct {
	cfg     config.Config
	log     *Logger
	opts    Options
	eng     *engine.Engine
	screen  tcell.Screen
	watcher *config.Watcher

	width, height int
	dragging      bool
	quit          bool
}

// New loads configuration and the document and builds the application.
// The terminal is not touched until Run.
func New(opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	level := ParseLogLevel(cfg.Logging.Level)
	if opts.LogLevel != "" {
		level = ParseLogLevel(opts.LogLevel)
	}
	log, err := NewFileLogger(cfg.Logging.File, level)
	if err != nil {
		return nil, err
	}

	var content string
	if opts.FilePath != "" {
		data, err := os.ReadFile(opts.FilePath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", opts.FilePath, err)
		}
		content = string(data)
	}

	engOpts := []engine.Option{
		engine.WithContent(content),
		engine.WithMetrics(fontmetrics.NewMono()),
		engine.WithBlinkInterval(cfg.BlinkInterval()),
		engine.WithOverscan(cfg.Scroll.Overscan),
		engine.WithEstimatedCharsPerLine(cfg.Editor.EstimatedCharsPerLine),
		engine.WithScrollDuration(cfg.ScrollDuration()),
	}
	if opts.ReadOnly || cfg.Editor.ReadOnly {
		engOpts = append(engOpts, engine.WithReadOnly())
	}

	a := &App{
		cfg:  cfg,
		log:  log,
		opts: opts,
		eng:  engine.New(engOpts...),
	}

	if w, err := config.NewWatcher(path); err == nil {
		a.watcher = w
	}

	log.Info("application initialized, document %s", a.eng.Document().ID())
	return a, nil
}

// Engine returns the editing engine, mainly for tests.
func (a *App) Engine() *engine.Engine {
	return a.eng
}

// Run enters the terminal event loop and blocks until quit. A normal
// user-requested exit returns ErrQuit.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoScreen, err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("%w: %v", ErrNoScreen, err)
	}
	a.screen = screen
	screen.EnableMouse()
	defer a.Shutdown()

	a.resize()

	if a.watcher != nil {
		a.watcher.OnReload(func(cfg config.Config) {
			// Hop onto the event loop; the engine is single-threaded.
			_ = screen.PostEvent(tcell.NewEventInterrupt(cfg))
		})
		if err := a.watcher.Start(); err != nil {
			a.log.Warn("config watcher failed to start: %v", err)
		}
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	frames := time.NewTicker(frameInterval)
	defer frames.Stop()

	blinkEvery := a.eng.Cursor().BlinkInterval()
	var blinkC <-chan time.Time
	if blinkEvery > 0 {
		blink := time.NewTicker(blinkEvery)
		defer blink.Stop()
		blinkC = blink.C
	}

	a.render()
	for !a.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := a.handleEvent(ev); err != nil {
				return err
			}
			a.render()
		case <-frames.C:
			if a.eng.Tick(frameInterval) {
				a.render()
			}
		case <-blinkC:
			a.eng.Cursor().ToggleBlink()
			a.render()
		}
	}
	return ErrQuit
}

// Shutdown releases the terminal and stops background work. Safe to call
// more than once.
func (a *App) Shutdown() {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
}

func (a *App) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resize()
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventInterrupt:
		if cfg, ok := ev.Data().(config.Config); ok {
			a.applyConfig(cfg)
		}
	}
	return nil
}

func (a *App) resize() {
	w, h := a.screen.Size()
	a.width, a.height = w, h
	wrap := w - a.cfg.Editor.WrapMargin
	if wrap < 1 {
		wrap = 1
	}
	a.eng.Resize(float64(wrap), float64(h))
	a.log.Debug("resize to %dx%d", w, h)
}

// applyConfig adopts a live-reloaded configuration.
func (a *App) applyConfig(cfg config.Config) {
	a.cfg = cfg
	a.log.SetLevel(ParseLogLevel(cfg.Logging.Level))
	a.eng.Cursor().SetBlinkInterval(cfg.BlinkInterval())
	a.eng.Window().SetOverscan(cfg.Scroll.Overscan)
	a.eng.Layout().SetEstimatedCharsPerLine(cfg.Editor.EstimatedCharsPerLine)
	a.resize()
	a.log.Info("configuration reloaded")
}

func (a *App) handleKey(ev *tcell.EventKey) error {
	shift := ev.Modifiers()&tcell.ModShift != 0
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		a.quit = true
		return nil
	case tcell.KeyLeft:
		a.move(pick(ctrl, engine.MotionWordLeft, engine.MotionLeft), shift)
	case tcell.KeyRight:
		a.move(pick(ctrl, engine.MotionWordRight, engine.MotionRight), shift)
	case tcell.KeyUp:
		a.move(engine.MotionUp, shift)
	case tcell.KeyDown:
		a.move(engine.MotionDown, shift)
	case tcell.KeyHome:
		a.move(pick(ctrl, engine.MotionDocStart, engine.MotionLineStart), shift)
	case tcell.KeyEnd:
		a.move(pick(ctrl, engine.MotionDocEnd, engine.MotionLineEnd), shift)
	case tcell.KeyPgUp:
		a.move(engine.MotionPageUp, shift)
	case tcell.KeyPgDn:
		a.move(engine.MotionPageDown, shift)
	case tcell.KeyEnter:
		a.edit(a.eng.InsertParagraphBreak())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.edit(a.eng.DeleteBackward())
	case tcell.KeyDelete:
		a.edit(a.eng.DeleteForward())
	case tcell.KeyTab:
		a.edit(a.eng.InsertText("\t"))
	case tcell.KeyCtrlA:
		a.eng.SelectAll()
	case tcell.KeyCtrlC:
		a.copySelection()
	case tcell.KeyCtrlX:
		a.copySelection()
		a.edit(a.eng.DeleteSelection())
	case tcell.KeyCtrlV:
		a.paste()
	case tcell.KeyRune:
		a.edit(a.eng.InsertText(string(ev.Rune())))
	}
	return nil
}

func (a *App) move(motion engine.Motion, extend bool) {
	if extend {
		a.eng.ExtendSelection(motion)
	} else {
		a.eng.Move(motion)
	}
}

// edit logs failed edits; range errors here mean a bug upstream, not bad
// user input.
func (a *App) edit(err error) {
	if err != nil {
		a.log.Warn("edit rejected: %v", err)
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		a.eng.ScrollBy(-float64(a.cfg.Scroll.WheelLines))
	case ev.Buttons()&tcell.WheelDown != 0:
		a.eng.ScrollBy(float64(a.cfg.Scroll.WheelLines))
	case ev.Buttons()&tcell.Button1 != 0:
		pos := a.eng.PositionAtPoint(float64(x), float64(y))
		if a.dragging {
			a.eng.Selection().ExtendTo(pos)
		} else {
			a.eng.ClearSelection()
			a.eng.Cursor().Set(pos)
			a.dragging = true
		}
	default:
		a.dragging = false
	}
}

// copySelection puts the selected text on the system clipboard with
// paragraph separators as newlines.
func (a *App) copySelection() {
	text := a.eng.SelectedText()
	if text == "" {
		return
	}
	text = strings.ReplaceAll(text, string(document.ParagraphSeparator), "\n")
	if err := clipboard.WriteAll(text); err != nil {
		a.log.Warn("clipboard write failed: %v", err)
	}
}

func (a *App) paste() {
	text, err := clipboard.ReadAll()
	if err != nil {
		a.log.Warn("clipboard read failed: %v", err)
		return
	}
	a.edit(a.eng.InsertText(text))
}

func pick(cond bool, yes, no engine.Motion) engine.Motion {
	if cond {
		return yes
	}
	return no
}
