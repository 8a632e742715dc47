// Package viewer pages through an analysed recording one window at a time.
//
// A [Session] owns the [Cursor], turns navigation [Event]s into window
// starts, asks the analysis for each window and hands the resulting
// [Frame] to its [Renderer]s. Per-window analysis errors are logged and
// never end the session.
package viewer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cwbudde/algo-ppg/measure/ppg"
)

// Analyzer is the part of *ppg.Analyzer the session needs.
type Analyzer interface {
	Analyze(lower int) (ppg.Result, error)
	MaxLower() int
	Config() ppg.Config
}

// Frame is one rendered window.
type Frame struct {
	Cursor Cursor
	Result ppg.Result
	Err    error // per-window error; Result holds what was computed
}

// Renderer displays frames.
type Renderer interface {
	Render(f Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame) error

func (fn RendererFunc) Render(f Frame) error { return fn(f) }

// Session is the interactive state of one viewer run.
type Session struct {
	analyzer  Analyzer
	cursor    Cursor
	renderers []Renderer
	log       *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithRenderers appends renderers, called in order for every frame.
func WithRenderers(r ...Renderer) SessionOption {
	return func(s *Session) {
		for _, x := range r {
			if x != nil {
				s.renderers = append(s.renderers, x)
			}
		}
	}
}

// WithLogger sets the session logger. The default is slog.Default().
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSession starts a session at the first window.
func NewSession(a Analyzer, opts ...SessionOption) *Session {
	s := &Session{
		analyzer: a,
		cursor:   NewCursor(a.MaxLower(), a.Config().WindowHop),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Cursor returns the current cursor.
func (s *Session) Cursor() Cursor { return s.cursor }

// Show analyses and renders the current window.
func (s *Session) Show() Frame {
	f := s.analyze(s.cursor)
	s.render(f)
	return f
}

// Handle applies a navigation event and renders the new window. A window
// that cannot be extracted is skipped and the cursor stays where it was.
// EventNone and EventQuit render nothing and return the current cursor.
func (s *Session) Handle(ev Event) Frame {
	var (
		next    Cursor
		clamped bool
	)
	switch ev {
	case EventAdvance:
		next, clamped = s.cursor.Advance()
	case EventRetreat:
		next, clamped = s.cursor.Retreat()
	case EventFirst:
		next, clamped = s.cursor.Seek(0)
	case EventLast:
		next, clamped = s.cursor.Seek(s.cursor.Max)
	default:
		return Frame{Cursor: s.cursor}
	}
	if clamped {
		s.log.Info("navigation clamped",
			slog.String("event", ev.String()),
			slog.Int("from", s.cursor.Lower),
			slog.Int("lower", next.Lower),
			slog.Int("max", next.Max))
	}

	f := s.analyze(next)
	if errors.Is(f.Err, ppg.ErrOutOfRange) {
		s.log.Warn("window skipped, cursor kept", slog.Int("lower", s.cursor.Lower))
		f.Cursor = s.cursor
		return f
	}

	s.cursor = next
	s.render(f)
	return f
}

// Run shows the first window, then reads one event per line from in until
// quit, end of input or ctx is done. Lines are read on a separate
// goroutine; when ctx ends first, that goroutine stays blocked in in until
// the next line or EOF arrives.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	s.Show()

	lines, readErr := readLines(ctx, in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			return <-readErr
		}

		ev, err := ParseEvent(line)
		if err != nil {
			s.log.Warn("ignoring input", slog.String("err", err.Error()))
			continue
		}
		if ev == EventQuit {
			s.log.Info("session ended", slog.Int("lower", s.cursor.Lower))
			return nil
		}
		s.Handle(ev)
	}
}

// readLines scans in until EOF or ctx is done. The line channel is closed
// after the scan error, if any, has been sent on the error channel.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)

		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- sc.Err()
	}()

	return lines, errc
}

func (s *Session) analyze(c Cursor) Frame {
	res, err := s.analyzer.Analyze(c.Lower)
	f := Frame{Cursor: c, Result: res, Err: err}
	if err != nil {
		attrs := append([]any{slog.Int("lower", c.Lower), slog.String("err", err.Error())}, errorAttrs(c.Lower, err)...)
		if len(res.Peaks) > 0 {
			attrs = append(attrs, slog.Any("peaks", offset(res.Peaks, c.Lower)))
		}
		s.log.Error("window analysis failed", attrs...)
		return f
	}

	s.log.Debug("window analysed",
		slog.Int("lower", c.Lower),
		slog.Int("peaks", len(res.Peaks)),
		slog.Bool("features", !res.Features.Empty()))
	if res.SpectralErr != nil {
		s.log.Warn("spectral rate unavailable",
			slog.Int("lower", c.Lower),
			slog.String("err", res.SpectralErr.Error()))
	}
	return f
}

func (s *Session) render(f Frame) {
	for _, r := range s.renderers {
		if err := r.Render(f); err != nil {
			s.log.Error("render failed",
				slog.String("renderer", fmt.Sprintf("%T", r)),
				slog.Int("lower", f.Cursor.Lower),
				slog.String("err", err.Error()))
		}
	}
}

// errorAttrs names the recording indices an analysis error refers to.
func errorAttrs(lower int, err error) []any {
	var (
		rangeErr *ppg.RangeError
		notchErr *ppg.NotchError
	)
	switch {
	case errors.As(err, &rangeErr):
		return []any{
			slog.Int("upper", rangeErr.Upper),
			slog.Int("length", rangeErr.Length),
		}
	case errors.As(err, &notchErr):
		return []any{
			slog.Int("systolic", lower+notchErr.Systolic),
			slog.Int("diastolic", lower+notchErr.Diastolic),
		}
	}
	return nil
}

func offset(idx []int, by int) []int {
	out := make([]int, len(idx))
	for i, v := range idx {
		out[i] = v + by
	}
	return out
}
