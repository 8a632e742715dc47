package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-ppg/measure/ppg"
)

func TestSession_Navigation(t *testing.T) {
	a := newFakeAnalyzer(1000, 360)
	rec := &recorder{}
	logger, logs := bufferLogger()
	s := NewSession(a, WithRenderers(rec), WithLogger(logger))

	s.Show()
	for _, ev := range []Event{EventAdvance, EventAdvance, EventAdvance, EventRetreat, EventFirst, EventLast} {
		s.Handle(ev)
	}

	assert.Equal(t, []int{0, 360, 720, 1000, 640, 0, 1000}, rec.lowers())
	assert.Equal(t, []int{0, 360, 720, 1000, 640, 0, 1000}, a.calls)
	assert.Equal(t, 1000, s.Cursor().Lower)
	assert.Contains(t, logs.String(), `"msg":"navigation clamped"`)
	assert.Contains(t, logs.String(), `"from":720`)
}

func TestSession_RetreatAtStartClamps(t *testing.T) {
	a := newFakeAnalyzer(1000, 360)
	logger, logs := bufferLogger()
	s := NewSession(a, WithLogger(logger))

	f := s.Handle(EventRetreat)
	assert.Equal(t, 0, f.Cursor.Lower)
	assert.Equal(t, 0, s.Cursor().Lower)
	assert.Contains(t, logs.String(), `"from":0`)
}

func TestSession_NoneDoesNothing(t *testing.T) {
	a := newFakeAnalyzer(1000, 360)
	rec := &recorder{}
	s := NewSession(a, WithRenderers(rec))

	s.Handle(EventNone)
	s.Handle(EventQuit)
	assert.Empty(t, a.calls)
	assert.Empty(t, rec.frames)
}

func TestSession_WindowErrorKeepsNavigating(t *testing.T) {
	a := newFakeAnalyzer(1000, 360)
	a.errs[360] = &ppg.NotchError{Systolic: 2, Diastolic: 3}
	rec := &recorder{}
	logger, logs := bufferLogger()
	s := NewSession(a, WithRenderers(rec), WithLogger(logger))

	f := s.Handle(EventAdvance)
	require.ErrorIs(t, f.Err, ppg.ErrEmptyNotchRange)
	assert.Equal(t, 360, s.Cursor().Lower, "the failing window is shown")
	require.Len(t, rec.frames, 1)
	assert.True(t, rec.frames[0].Result.Features.Empty())

	out := logs.String()
	assert.Contains(t, out, `"msg":"window analysis failed"`)
	assert.Contains(t, out, `"systolic":362`)
	assert.Contains(t, out, `"diastolic":363`)
	assert.Contains(t, out, `"peaks":[362,363]`)

	s.Handle(EventAdvance)
	assert.Equal(t, 720, s.Cursor().Lower)
}

func TestSession_OutOfRangeKeepsCursor(t *testing.T) {
	a := newFakeAnalyzer(1000, 360)
	a.errs[360] = &ppg.RangeError{Lower: 360, Upper: 370, Length: 365}
	rec := &recorder{}
	logger, logs := bufferLogger()
	s := NewSession(a, WithRenderers(rec), WithLogger(logger))

	f := s.Handle(EventAdvance)
	require.ErrorIs(t, f.Err, ppg.ErrOutOfRange)
	assert.Equal(t, 0, f.Cursor.Lower)
	assert.Equal(t, 0, s.Cursor().Lower)
	assert.Empty(t, rec.frames, "skipped windows are not rendered")
	assert.Contains(t, logs.String(), `"length":365`)
	assert.Contains(t, logs.String(), "window skipped")
}

func TestSession_DivisionByZeroLogsPeaks(t *testing.T) {
	a := newFakeAnalyzer(1000, 360)
	a.errs[720] = fmt.Errorf("%w: peaks [2 3]", ppg.ErrDivisionByZero)
	logger, logs := bufferLogger()
	s := NewSession(a, WithLogger(logger))

	s.Handle(EventAdvance)
	f := s.Handle(EventAdvance)
	require.ErrorIs(t, f.Err, ppg.ErrDivisionByZero)
	assert.Contains(t, logs.String(), `"peaks":[722,723]`)
}

func TestSession_RenderErrorIsLogged(t *testing.T) {
	a := newFakeAnalyzer(1000, 360)
	failing := RendererFunc(func(Frame) error { return errors.New("disk full") })
	rec := &recorder{}
	logger, logs := bufferLogger()
	s := NewSession(a, WithRenderers(failing, rec), WithLogger(logger))

	s.Show()
	assert.Len(t, rec.frames, 1, "later renderers still run")
	assert.Contains(t, logs.String(), `"msg":"render failed"`)
	assert.Contains(t, logs.String(), "disk full")
}

func TestSession_Run(t *testing.T) {
	a := newFakeAnalyzer(1000, 360)
	rec := &recorder{}
	logger, logs := bufferLogger()
	s := NewSession(a, WithRenderers(rec), WithLogger(logger))

	in := strings.NewReader("n\n\nright\njump\np\nq\nn\n")
	require.NoError(t, s.Run(context.Background(), in))

	assert.Equal(t, []int{0, 360, 720, 360}, rec.lowers())
	assert.Equal(t, 360, s.Cursor().Lower)
	assert.Contains(t, logs.String(), "ignoring input")
	assert.Contains(t, logs.String(), `"msg":"session ended"`)
}

func TestSession_RunEndOfInput(t *testing.T) {
	a := newFakeAnalyzer(1000, 360)
	s := NewSession(a, WithLogger(discardLogger()))

	require.NoError(t, s.Run(context.Background(), strings.NewReader("advance\n")))
	assert.Equal(t, 360, s.Cursor().Lower)
}

func TestSession_RunCancelled(t *testing.T) {
	a := newFakeAnalyzer(1000, 360)
	s := NewSession(a, WithLogger(discardLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, strings.NewReader("n\nn\n"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{0}, a.calls, "only the initial window is analysed")
}

func TestSession_RunCancelledWhileIdle(t *testing.T) {
	a := newFakeAnalyzer(1000, 360)
	s := NewSession(a, WithLogger(discardLogger()))

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, pr) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel while waiting for input")
	}
	assert.Equal(t, []int{0}, a.calls)
}

func TestSession_RunReadError(t *testing.T) {
	a := newFakeAnalyzer(1000, 360)
	s := NewSession(a, WithLogger(discardLogger()))

	pr, pw := io.Pipe()
	go func() {
		_, _ = pw.Write([]byte("n\n"))
		pw.CloseWithError(errors.New("terminal gone"))
	}()

	err := s.Run(context.Background(), pr)
	require.EqualError(t, err, "terminal gone")
	assert.Equal(t, []int{0, 360}, a.calls)
}

func TestSession_RealAnalyzer(t *testing.T) {
	a := analyzedRecording(t)
	rec := &recorder{}
	s := NewSession(a, WithRenderers(rec), WithLogger(discardLogger()))

	require.NoError(t, s.Run(context.Background(), strings.NewReader("end\nn\nhome\n")))

	require.Len(t, rec.frames, 4)
	for _, f := range rec.frames {
		require.NoError(t, f.Err)
		assert.Equal(t, 1800, f.Result.Window.Len())
		assert.False(t, f.Result.Features.Empty(), "lower=%d", f.Cursor.Lower)
	}
	assert.Equal(t, a.MaxLower(), rec.frames[1].Cursor.Lower)
	assert.Equal(t, a.MaxLower(), rec.frames[2].Cursor.Lower)
	assert.Equal(t, 0, s.Cursor().Lower)
}
