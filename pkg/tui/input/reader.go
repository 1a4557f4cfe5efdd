// ABOUTME: Reader pulls bytes from a raw-mode terminal and assembles them into key events.
// ABOUTME: Escape sequences and multi-byte UTF-8 runes are read to completion before parsing.

package input

import (
	"io"
	"unicode/utf8"

	"github.com/mauromedda/kirby/pkg/tui/key"
)

// maxSeqLen bounds a CSI sequence; anything longer is reported as unknown.
const maxSeqLen = 16

// Reader decodes key events from a byte stream whose reads may time out
// with (0, nil), as a VMIN=0 terminal does.
type Reader struct {
	r   io.Reader
	one [1]byte
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadKey returns the next key event. A read timeout with no pending input
// yields a KeyNone key and a nil error.
func (rd *Reader) ReadKey() (key.Key, error) {
	b, ok, err := rd.readByte()
	if err != nil {
		return key.Key{}, err
	}
	if !ok {
		return key.Key{Type: key.KeyNone}, nil
	}

	switch {
	case b == 0x1b:
		return rd.readEscape()
	case b >= 0xc0:
		return rd.readRune(b)
	}
	return key.ParseKey(string(b)), nil
}

// readByte reports ok=false when the read timed out without data.
func (rd *Reader) readByte() (byte, bool, error) {
	n, err := rd.r.Read(rd.one[:])
	if n == 1 {
		return rd.one[0], true, nil
	}
	return 0, false, err
}

// readEscape gathers the rest of a sequence that began with ESC. A lone
// ESC followed by a timeout is the Escape key.
func (rd *Reader) readEscape() (key.Key, error) {
	b, ok, err := rd.readByte()
	if err != nil || !ok {
		return key.Key{Type: key.KeyEscape}, err
	}

	seq := []byte{0x1b, b}
	switch b {
	case '[':
		for len(seq) < maxSeqLen {
			c, ok, err := rd.readByte()
			if err != nil {
				return key.Key{Type: key.KeyUnknown}, err
			}
			if !ok {
				return key.Key{Type: key.KeyUnknown}, nil
			}
			seq = append(seq, c)
			if c >= 0x40 && c <= 0x7e {
				return key.ParseKey(string(seq)), nil
			}
		}
		return key.Key{Type: key.KeyUnknown}, nil
	case 'O':
		c, ok, err := rd.readByte()
		if err != nil || !ok {
			return key.Key{Type: key.KeyUnknown}, err
		}
		seq = append(seq, c)
	}
	return key.ParseKey(string(seq)), nil
}

// readRune reads the continuation bytes of a UTF-8 sequence led by lead.
func (rd *Reader) readRune(lead byte) (key.Key, error) {
	var need int
	switch {
	case lead >= 0xf0:
		need = 3
	case lead >= 0xe0:
		need = 2
	default:
		need = 1
	}

	buf := make([]byte, 1, utf8.UTFMax)
	buf[0] = lead
	for range need {
		c, ok, err := rd.readByte()
		if err != nil {
			return key.Key{Type: key.KeyUnknown}, err
		}
		if !ok {
			break
		}
		buf = append(buf, c)
	}
	return key.ParseKey(string(buf)), nil
}
