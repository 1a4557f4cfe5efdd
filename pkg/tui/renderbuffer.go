// ABOUTME: Pooled byte buffer that coalesces one screen refresh into a single write
// ABOUTME: Appends beyond the frame limit are dropped; recycled via sync.Pool after Release

package tui

import (
	"io"
	"strconv"
	"sync"
)

// DefaultLimit caps the bytes a single frame may accumulate.
const DefaultLimit = 16 << 20

// maxPooledCap keeps unusually large frames from pinning memory in the pool.
const maxPooledCap = 1 << 20

var bufferPool = sync.Pool{
	New: func() any {
		return &RenderBuffer{
			b: make([]byte, 0, 4096),
		}
	},
}

// AcquireBuffer gets an empty RenderBuffer from the pool.
func AcquireBuffer() *RenderBuffer {
	buf := bufferPool.Get().(*RenderBuffer)
	buf.b = buf.b[:0]
	buf.limit = DefaultLimit
	buf.released = false
	return buf
}

// RenderBuffer accumulates escape sequences and text for one frame.
// Append order is preserved exactly; nothing is written until Flush.
type RenderBuffer struct {
	b        []byte
	limit    int
	released bool
}

// SetLimit changes the frame limit. n <= 0 restores DefaultLimit.
func (b *RenderBuffer) SetLimit(n int) {
	if n <= 0 {
		n = DefaultLimit
	}
	b.limit = n
}

// fits reports whether n more bytes can be appended.
func (b *RenderBuffer) fits(n int) bool {
	if b.released {
		return false
	}
	limit := b.limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return len(b.b)+n <= limit
}

// Append copies p to the end of the buffer. If the frame limit would be
// exceeded the append is dropped and the buffer is left unchanged.
func (b *RenderBuffer) Append(p []byte) {
	if !b.fits(len(p)) {
		return
	}
	b.b = append(b.b, p...)
}

// AppendString is Append for strings.
func (b *RenderBuffer) AppendString(s string) {
	if !b.fits(len(s)) {
		return
	}
	b.b = append(b.b, s...)
}

// AppendRepeat appends c n times as one append.
func (b *RenderBuffer) AppendRepeat(c byte, n int) {
	if n <= 0 || !b.fits(n) {
		return
	}
	for range n {
		b.b = append(b.b, c)
	}
}

// AppendCursorPos appends ESC[row;colH. Coordinates are 1-indexed.
func (b *RenderBuffer) AppendCursorPos(row, col int) {
	var seq [32]byte
	s := append(seq[:0], SeqCSI...)
	s = strconv.AppendInt(s, int64(row), 10)
	s = append(s, ';')
	s = strconv.AppendInt(s, int64(col), 10)
	s = append(s, 'H')
	b.Append(s)
}

// Len returns the number of buffered bytes.
func (b *RenderBuffer) Len() int {
	return len(b.b)
}

// Bytes returns the buffered frame. The slice is only valid until Release.
func (b *RenderBuffer) Bytes() []byte {
	return b.b
}

// Flush writes the whole frame to w in a single Write call.
func (b *RenderBuffer) Flush(w io.Writer) error {
	if len(b.b) == 0 {
		return nil
	}
	n, err := w.Write(b.b)
	if err != nil {
		return err
	}
	if n != len(b.b) {
		return io.ErrShortWrite
	}
	return nil
}

// Release empties the buffer and returns it to the pool. The buffer must
// not be used again; further appends are dropped.
func (b *RenderBuffer) Release() {
	if b == nil || b.released {
		return
	}
	b.released = true
	if cap(b.b) > maxPooledCap {
		b.b = nil
	} else {
		b.b = b.b[:0]
	}
	bufferPool.Put(b)
}
