package interps

import (
	"bytes"
	"io"
	"sync"
)

// Tee is the single mutator of the engine's output channel. Outside a
// capture it forwards writes to the real destination; during Capture it
// forwards to both the real destination and a per-call buffer, and the
// previous destination is restored on every exit path.
type Tee struct {
	mu  sync.Mutex
	dst io.Writer
}

func NewTee(out io.Writer) *Tee {
	if out == nil {
		out = io.Discard
	}
	return &Tee{
		dst: out,
	}
}

var _ io.Writer = new(Tee)

func (t *Tee) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dst.Write(data)
}

// Capture runs fn with the destination swapped to tee into buf. The swap
// is undone by defer, so a fault or panic inside fn cannot leave the
// channel redirected, and output flushed before the fault stays in the
// returned text.
func (t *Tee) Capture(fn func() error) (string, error) {
	buf := new(bytes.Buffer)

	t.mu.Lock()
	prev := t.dst
	t.dst = io.MultiWriter(prev, buf)
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.dst = prev
		t.mu.Unlock()
	}()

	err := fn()
	return buf.String(), err
}
