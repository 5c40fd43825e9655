// Package editor runs one modal editing session over a file: it reads input
// bytes, applies them to the document according to the current mode, and
// redraws the screen after every key.
package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JackWReid/svim/internal/buffer"
	"github.com/JackWReid/svim/internal/render"
	"github.com/JackWReid/svim/internal/terminal"
	"github.com/JackWReid/svim/internal/vfs"
)

// ErrNoTransport is returned by NewSession when Options.Transport is nil.
var ErrNoTransport = errors.New("editor: no transport")

// Options configures a Session.
type Options struct {
	Path      string
	Transport terminal.Transport
	FS        vfs.FS           // defaults to the host file system
	Allocator buffer.Allocator // defaults to buffer.Unbounded

	LoadCapacity    int // bytes staged by Load; defaults to buffer.DefaultLoadCapacity
	CommandCapacity int // bytes collected after ':'; defaults to DefaultCommandCapacity

	Logger *slog.Logger
}

// Session is the live editing state for one file. It is driven from a
// single goroutine.
type Session struct {
	path      string
	fs        vfs.FS
	transport terminal.Transport
	alloc     buffer.Allocator

	store     *buffer.LineStore
	cursor    Cursor
	mode      Mode
	statusBar *StatusBar
	renderer  *render.Renderer
	logger    *slog.Logger
	done      bool
}

// NewSession loads opts.Path and returns a session in normal mode with the
// cursor at the start of the document.
func NewSession(opts Options) (*Session, error) {
	if opts.Transport == nil {
		return nil, ErrNoTransport
	}
	if opts.FS == nil {
		opts.FS = vfs.NewOSFS()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	logger = logger.With("session", uuid.NewString(), "path", opts.Path)

	store, info, err := buffer.Load(opts.FS, opts.Path, opts.LoadCapacity, opts.Allocator)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", opts.Path, err)
	}
	logger.Info("session started", "lines", store.LineCount(), "bytes", info.Bytes, "new", info.New)
	if info.Truncated {
		logger.Warn("file larger than load capacity, content truncated", "capacity", info.Bytes)
	}

	return &Session{
		path:      opts.Path,
		fs:        opts.FS,
		transport: opts.Transport,
		alloc:     opts.Allocator,
		store:     store,
		mode:      ModeNormal,
		statusBar: NewStatusBar(opts.CommandCapacity),
		renderer:  render.NewRenderer(),
		logger:    logger,
	}, nil
}

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Cursor returns the current cursor.
func (s *Session) Cursor() Cursor { return s.cursor }

// Lines returns a snapshot of the document.
func (s *Session) Lines() []string { return s.store.Lines() }

// Done reports whether the session has ended.
func (s *Session) Done() bool { return s.done }

// Run redraws, reads a byte, and dispatches it until the quit command.
// It returns nil on quit and an error if the transport fails.
func (s *Session) Run() error {
	for !s.done {
		if err := s.render(); err != nil {
			s.end()
			return fmt.Errorf("render: %w", err)
		}
		b, err := s.transport.GetByte()
		if err != nil {
			s.end()
			return fmt.Errorf("read input: %w", err)
		}
		s.Dispatch(b)
	}
	return nil
}

// Dispatch applies one input byte. It reports false once the session has
// ended.
func (s *Session) Dispatch(b byte) bool {
	if s.done {
		return false
	}
	s.cursor = s.cursor.Clamp(s.store)

	// Clear any temporary status message on input.
	s.statusBar.ClearMessage()

	key := terminal.Classify(b)
	if key.Type == terminal.KeyEscape {
		s.statusBar.ClearPrompt()
		s.mode = ModeNormal
		return true
	}

	switch s.mode {
	case ModeNormal:
		s.handleNormalKey(key)
	case ModeInsert:
		s.handleInsertKey(key)
	case ModeCommand:
		s.handleCommandKey(key)
	}

	if s.done {
		return false
	}
	s.cursor = s.cursor.Clamp(s.store)
	return true
}

func (s *Session) handleNormalKey(key terminal.Key) {
	if key.Type != terminal.KeyRune {
		return
	}
	switch key.Byte {
	case 'i':
		s.mode = ModeInsert
	case 'h', 'j', 'k', 'l':
		s.moveCursor(key.Byte)
	case 'x':
		s.store.DeleteCharForward(s.cursor.Row, s.cursor.Col)
	case ':':
		s.statusBar.StartPrompt()
		s.mode = ModeCommand
	}
}

func (s *Session) handleInsertKey(key terminal.Key) {
	switch key.Type {
	case terminal.KeyEnter:
		if row, col, ok := s.store.SplitLine(s.cursor.Row, s.cursor.Col); ok {
			s.cursor = Cursor{Row: row, Col: col}
		}
	case terminal.KeyBackspace:
		if row, col, ok := s.store.Backspace(s.cursor.Row, s.cursor.Col); ok {
			s.cursor = Cursor{Row: row, Col: col}
		}
	case terminal.KeyRune:
		if s.store.InsertChar(s.cursor.Row, s.cursor.Col, key.Byte) {
			s.cursor.Col++
		}
	}
}

func (s *Session) handleCommandKey(key terminal.Key) {
	switch key.Type {
	case terminal.KeyEnter:
		s.mode = ModeNormal
		s.executeCommand(s.statusBar.SubmitPrompt())
	case terminal.KeyBackspace:
		s.statusBar.BackspacePrompt()
	case terminal.KeyRune:
		s.statusBar.AppendPrompt(key.Byte)
	}
}

// moveCursor moves the cursor one cell, clamping to valid positions.
// It never wraps across lines.
func (s *Session) moveCursor(dir byte) {
	switch dir {
	case 'h':
		if s.cursor.Col > 0 {
			s.cursor.Col--
		}
	case 'l':
		if s.cursor.Col < s.store.LineLen(s.cursor.Row) {
			s.cursor.Col++
		}
	case 'j':
		if s.cursor.Row < s.store.LineCount()-1 {
			s.cursor.Row++
		}
	case 'k':
		if s.cursor.Row > 0 {
			s.cursor.Row--
		}
	}
}

// executeCommand resolves a command line. Unknown commands are ignored.
func (s *Session) executeCommand(cmd string) {
	switch cmd {
	case "w":
		s.save()
	case "q":
		s.quit()
	case "wq":
		if s.save() {
			s.quit()
		}
	}
}

// save writes the document to the session path. A failure leaves the
// document as it was and is reported on the status row.
func (s *Session) save() bool {
	if err := buffer.Save(s.fs, s.store, s.path); err != nil {
		attrs := []any{"err", err}
		if h, ok := s.alloc.(*buffer.Heap); ok && errors.Is(err, buffer.ErrNoMemory) {
			attrs = append(attrs, "heap_used", h.Used(), "heap_available", h.Available())
		}
		s.logger.Warn("write failed", attrs...)
		s.statusBar.SetMessage("write failed: %v", err)
		return false
	}
	s.logger.Info("written", "lines", s.store.LineCount())
	s.statusBar.SetMessage("%q written", s.path)
	return true
}

// quit blanks the screen and ends the session.
func (s *Session) quit() {
	if err := s.renderer.Draw(s.transport, render.View{Lines: []string{""}}); err != nil {
		s.logger.Debug("final frame not drawn", "err", err)
	} else if _, err := s.transport.Write([]byte("\r\n")); err != nil {
		s.logger.Debug("final line break not written", "err", err)
	}
	s.end()
	s.logger.Info("session ended")
}

// end releases the document. Nothing may touch the store afterwards.
func (s *Session) end() {
	if s.done {
		return
	}
	s.store.Release()
	s.done = true
}

func (s *Session) render() error {
	s.cursor = s.cursor.Clamp(s.store)
	return s.renderer.Draw(s.transport, s.view())
}

func (s *Session) view() render.View {
	return render.View{
		Lines:   s.store.Lines(),
		Row:     s.cursor.Row,
		Col:     s.cursor.Col,
		Insert:  s.mode == ModeInsert,
		Prompt:  s.mode == ModeCommand,
		Command: s.statusBar.PromptText(),
		Message: s.statusBar.StatusMessage,
	}
}
