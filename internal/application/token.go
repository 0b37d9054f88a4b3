package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/termdemo/internal/ports"
)

// Token is a one-shot cancellation signal. Aborting it releases every wait
// racing on it without reporting an error.
type Token struct {
	once sync.Once
	done chan struct{}
}

func NewToken() *Token {
	return &Token{done: make(chan struct{})}
}

func (t *Token) Abort() bool {
	fired := false
	t.once.Do(func() {
		close(t.done)
		fired = true
	})
	return fired
}

func (t *Token) Aborted() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

func (t *Token) Done() <-chan struct{} {
	return t.done
}

type WaitResult int

const (
	WaitElapsed WaitResult = iota
	WaitFastForwarded
	WaitReset
)

func (r WaitResult) String() string {
	switch r {
	case WaitElapsed:
		return "elapsed"
	case WaitFastForwarded:
		return "fast-forwarded"
	case WaitReset:
		return "reset"
	default:
		return "unknown"
	}
}

type Tokens struct {
	Fast  *Token
	Reset *Token
}

func NewTokens() Tokens {
	return Tokens{Fast: NewToken(), Reset: NewToken()}
}

// Sleep waits for d and reports what ended the wait. Reset takes precedence
// over fast-forward, and a cancelled ctx counts as a reset.
func (t Tokens) Sleep(ctx context.Context, clock ports.Clock, d time.Duration) WaitResult {
	if t.Reset.Aborted() || ctx.Err() != nil {
		return WaitReset
	}
	if t.Fast.Aborted() {
		return WaitFastForwarded
	}
	if d <= 0 {
		return WaitElapsed
	}

	select {
	case <-t.Reset.Done():
		return WaitReset
	case <-ctx.Done():
		return WaitReset
	case <-t.Fast.Done():
		if t.Reset.Aborted() {
			return WaitReset
		}
		return WaitFastForwarded
	case <-clock.After(d):
		if t.Reset.Aborted() {
			return WaitReset
		}
		return WaitElapsed
	}
}
