// ABOUTME: Frame composition: rows, welcome banner, and cursor placement.
// ABOUTME: Each refresh builds one buffer and flushes it with a single write.

package editor

import "github.com/mauromedda/kirby/pkg/tui"

const (
	emptyMarker = '~'
	bannerText  = "Kirby editor -- version " + Version
)

// RefreshScreen redraws the whole viewport in one write. The cursor is
// hidden while the frame is painted and shown at the logical cursor cell.
func (e *Editor) RefreshScreen() error {
	buf := tui.AcquireBuffer()
	defer buf.Release()

	buf.Append(tui.SeqHideCursor)
	buf.Append(tui.SeqCursorHome)
	e.drawRows(buf)

	buf.AppendCursorPos(
		clamp(e.cursor.Y+1, 1, e.geom.Rows),
		clamp(e.cursor.X+1, 1, e.geom.Cols),
	)
	buf.Append(tui.SeqShowCursor)
	return buf.Flush(e.term)
}

func (e *Editor) drawRows(buf *tui.RenderBuffer) {
	rows, cols := e.geom.Rows, e.geom.Cols
	for y := range rows {
		if y < e.store.Len() {
			line := e.store.Line(y).Bytes()
			buf.Append(line[:min(len(line), cols)])
		} else if e.store.Len() == 0 && y == rows/3 {
			drawBanner(buf, cols)
		} else {
			buf.AppendRepeat(emptyMarker, 1)
		}

		buf.Append(tui.SeqEraseLine)
		if y < rows-1 {
			buf.Append(tui.SeqLineBreak)
		}
	}
}

// drawBanner centres the banner in cols. The first padding column holds
// the empty-line marker.
func drawBanner(buf *tui.RenderBuffer, cols int) {
	text := bannerText[:min(len(bannerText), cols)]
	padding := (cols - len(text)) / 2
	if padding > 0 {
		buf.AppendRepeat(emptyMarker, 1)
		padding--
	}
	buf.AppendRepeat(' ', padding)
	buf.AppendString(text)
}
