package host

import "sync"

// Cursor exposes an Addressable host through the PathEvaluator interface by
// keeping an explicit current frame.
//
// Cursor serializes its own state, but a sequence of SetFrame/Snapshot calls
// is only meaningful when a single caller drives it.
type Cursor struct {
	mu     sync.Mutex
	src    Addressable
	frame  int
	moves  int
	parked bool
}

// NewCursor wraps src. The cursor starts unparked; the first Snapshot before
// any SetFrame reads frame 0.
func NewCursor(src Addressable) *Cursor {
	return &Cursor{src: src}
}

// SetFrame moves the evaluation point.
func (c *Cursor) SetFrame(frame int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.parked || c.frame != frame {
		c.moves++
	}
	c.frame = frame
	c.parked = true
}

// Snapshot reads the source at the current evaluation point.
func (c *Cursor) Snapshot() (PathSnapshot, error) {
	c.mu.Lock()
	frame := c.frame
	c.mu.Unlock()
	return c.src.SnapshotAt(frame)
}

// Frame returns the current evaluation point.
func (c *Cursor) Frame() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// Moves returns how many times SetFrame changed the evaluation point.
func (c *Cursor) Moves() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moves
}

// SnapshotAt forwards to the wrapped source, so a Cursor can still be used
// by the table-driven build path.
func (c *Cursor) SnapshotAt(frame int) (PathSnapshot, error) {
	return c.src.SnapshotAt(frame)
}
