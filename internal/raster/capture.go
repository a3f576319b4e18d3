// Package raster snapshots a rendered resume surface and slices the bitmap
// into fixed-height document pages.
package raster

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// restoreTimeout bounds Restore once the caller's context is gone.
const restoreTimeout = 10 * time.Second

// Token identifies the style state recorded by one Prepare call.
type Token string

// NewToken returns a fresh random token.
func NewToken() Token {
	return Token(uuid.NewString())
}

// Surface is a rendered tree that can be snapshotted. Prepare forces
// animated content into its final visible state and records what it
// changed under the returned token; Restore puts it back. A failed Prepare
// must leave the surface untouched.
type Surface interface {
	ID() string
	Prepare(ctx context.Context) (Token, error)
	Capture(ctx context.Context, token Token) ([]byte, error)
	Restore(ctx context.Context, token Token) error
}

var locks = struct {
	sync.Mutex
	m map[string]*semaphore.Weighted
}{m: make(map[string]*semaphore.Weighted)}

func lockFor(id string) *semaphore.Weighted {
	locks.Lock()
	defer locks.Unlock()
	sem, ok := locks.m[id]
	if !ok {
		sem = semaphore.NewWeighted(1)
		locks.m[id] = sem
	}
	return sem
}

// Capturer runs the prepare, settle, capture, restore sequence.
type Capturer struct {
	// Settle is how long to wait after Prepare before capturing, so forced
	// styles are painted.
	Settle  time.Duration
	Verbose bool
}

// Capture returns a PNG snapshot of s. Captures of the same surface ID are
// serialized. Once Prepare succeeds, Restore runs on every path, including
// cancellation of ctx.
func (c *Capturer) Capture(ctx context.Context, s Surface) (img []byte, err error) {
	id := s.ID()
	sem := lockFor(id)
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, &CaptureError{Surface: id, Message: "waiting for surface", Cause: err}
	}
	defer sem.Release(1)

	token, err := s.Prepare(ctx)
	if err != nil {
		return nil, asCaptureError(id, "prepare", err)
	}
	if c.Verbose {
		log.Printf("[CAPTURE] %s prepared (token %s)", id, token)
	}

	defer func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), restoreTimeout)
		defer cancel()
		rerr := s.Restore(rctx, token)
		if c.Verbose {
			log.Printf("[CAPTURE] %s restored (token %s)", id, token)
		}
		if rerr != nil && err == nil {
			img = nil
			err = asCaptureError(id, "restore", rerr)
		}
	}()

	if c.Settle > 0 {
		t := time.NewTimer(c.Settle)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, &CaptureError{Surface: id, Message: "settling", Cause: ctx.Err()}
		case <-t.C:
		}
	}

	img, err = s.Capture(ctx, token)
	if err != nil {
		return nil, asCaptureError(id, "snapshot", err)
	}
	if len(img) == 0 {
		return nil, &CaptureError{Surface: id, Message: "empty snapshot"}
	}
	if c.Verbose {
		log.Printf("[CAPTURE] %s snapshot: %d bytes", id, len(img))
	}
	return img, nil
}

func asCaptureError(id, step string, err error) error {
	var ce *CaptureError
	if errors.As(err, &ce) {
		return err
	}
	return &CaptureError{Surface: id, Message: step + " failed", Cause: err}
}
