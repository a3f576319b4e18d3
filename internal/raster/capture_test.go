package raster

import (
	"context"
	"errors"
	"maps"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// fakeSurface models a tree of elements whose inline styles Prepare
// overrides and Restore puts back.
type fakeSurface struct {
	id     string
	img    []byte
	styles map[string]string

	mu    sync.Mutex
	saved map[Token]map[string]string

	prepareErr error
	captureErr error
	restoreErr error
	onPrepare  func()
	captureFor time.Duration

	active     atomic.Int32
	maxActive  atomic.Int32
	prepares   atomic.Int32
	restores   atomic.Int32
	restoreCtx error
}

func newFakeSurface(id string) *fakeSurface {
	return &fakeSurface{
		id:  id,
		img: []byte("png"),
		styles: map[string]string{
			"header":     "opacity: 0; transform: translateY(20px)",
			"experience": "",
			"skills":     "opacity: 0",
		},
		saved: map[Token]map[string]string{},
	}
}

func (f *fakeSurface) ID() string { return f.id }

func (f *fakeSurface) Prepare(context.Context) (Token, error) {
	f.prepares.Add(1)
	if f.prepareErr != nil {
		return "", f.prepareErr
	}
	n := f.active.Add(1)
	for {
		m := f.maxActive.Load()
		if n <= m || f.maxActive.CompareAndSwap(m, n) {
			break
		}
	}

	f.mu.Lock()
	token := NewToken()
	f.saved[token] = maps.Clone(f.styles)
	for el, style := range f.styles {
		if style != "" {
			f.styles[el] = "opacity: 1 !important; transform: none !important"
		}
	}
	f.mu.Unlock()

	if f.onPrepare != nil {
		f.onPrepare()
	}
	return token, nil
}

func (f *fakeSurface) Capture(ctx context.Context, _ Token) ([]byte, error) {
	if f.captureFor > 0 {
		select {
		case <-time.After(f.captureFor):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return f.img, nil
}

func (f *fakeSurface) Restore(ctx context.Context, token Token) error {
	f.restores.Add(1)
	f.restoreCtx = ctx.Err()
	f.mu.Lock()
	if orig, ok := f.saved[token]; ok {
		f.styles = orig
		delete(f.saved, token)
	}
	f.mu.Unlock()
	f.active.Add(-1)
	return f.restoreErr
}

func (f *fakeSurface) snapshot() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.styles)
}

func TestCapture_RestoresAfterSuccess(t *testing.T) {
	s := newFakeSurface(t.Name())
	before := s.snapshot()

	img, err := (&Capturer{}).Capture(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), img)
	assert.Equal(t, before, s.snapshot())
	assert.Empty(t, s.saved)
	assert.EqualValues(t, 1, s.restores.Load())
}

func TestCapture_RestoresAfterCaptureFailure(t *testing.T) {
	s := newFakeSurface(t.Name())
	s.captureErr = errors.New("screenshot failed")
	before := s.snapshot()

	img, err := (&Capturer{}).Capture(context.Background(), s)
	assert.Nil(t, img)
	var ce *CaptureError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, t.Name(), ce.Surface)
	assert.Equal(t, before, s.snapshot())
}

func TestCapture_EmptySnapshot(t *testing.T) {
	s := newFakeSurface(t.Name())
	s.img = nil

	_, err := (&Capturer{}).Capture(context.Background(), s)
	var ce *CaptureError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "empty snapshot", ce.Message)
	assert.EqualValues(t, 1, s.restores.Load())
}

func TestCapture_RestoresAfterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newFakeSurface(t.Name())
	s.onPrepare = cancel
	before := s.snapshot()

	_, err := (&Capturer{Settle: time.Hour}).Capture(ctx, s)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before, s.snapshot())
	assert.NoError(t, s.restoreCtx, "restore must not see the caller's cancellation")
}

func TestCapture_PrepareFailureSkipsRestore(t *testing.T) {
	s := newFakeSurface(t.Name())
	s.prepareErr = &CaptureError{Surface: s.id, Message: "element not found"}

	_, err := (&Capturer{}).Capture(context.Background(), s)
	var ce *CaptureError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "element not found", ce.Message)
	assert.Zero(t, s.restores.Load())
}

func TestCapture_RestoreFailureFailsCapture(t *testing.T) {
	s := newFakeSurface(t.Name())
	s.restoreErr = errors.New("tab closed")

	img, err := (&Capturer{}).Capture(context.Background(), s)
	assert.Nil(t, img)
	assert.ErrorContains(t, err, "restore failed")
}

func TestCapture_SerializesSameSurface(t *testing.T) {
	s := newFakeSurface(t.Name())
	s.captureFor = 5 * time.Millisecond
	c := &Capturer{Settle: time.Millisecond}

	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			_, err := c.Capture(context.Background(), s)
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.EqualValues(t, 1, s.maxActive.Load())
	assert.EqualValues(t, 8, s.restores.Load())
	assert.Empty(t, s.saved)
}

func TestCapture_WaitForLockHonorsContext(t *testing.T) {
	s := newFakeSurface(t.Name())
	sem := lockFor(s.ID())
	require.NoError(t, sem.Acquire(context.Background(), 1))
	defer sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := (&Capturer{}).Capture(ctx, s)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, s.prepares.Load())
}

func TestNewToken_Unique(t *testing.T) {
	seen := map[Token]bool{}
	for range 100 {
		tok := NewToken()
		assert.False(t, seen[tok])
		seen[tok] = true
	}
}
