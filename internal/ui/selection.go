package ui

import (
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
	"github.com/zhubert/threadchat/internal/clipboard"
	"github.com/zhubert/threadchat/internal/logger"
)

// SelectionFlashTickMsg is sent to animate the selection copy flash
type SelectionFlashTickMsg time.Time

// ClipboardErrorMsg is sent when the native clipboard write fails
type ClipboardErrorMsg struct {
	Error error
}

const (
	doubleClickThreshold = 500 * time.Millisecond
	clickTolerance       = 2
)

// TextSelection holds a selection in viewport-relative coordinates.
type TextSelection struct {
	StartCol  int
	StartLine int
	EndCol    int
	EndLine   int
	Active    bool // true while dragging

	lastClickTime time.Time
	lastClickX    int
	lastClickY    int
	clickCount    int

	FlashFrame int // -1 when not flashing
}

func newTextSelection() TextSelection {
	return TextSelection{StartCol: -1, StartLine: -1, EndCol: -1, EndLine: -1, FlashFrame: -1}
}

// SelectionFlashTick returns a command that sends a selection flash tick
func SelectionFlashTick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return SelectionFlashTickMsg(t)
	})
}

// StartSelection begins a text selection at the given coordinates
func (c *Chat) StartSelection(col, line int) {
	c.selection.StartCol = col
	c.selection.StartLine = line
	c.selection.EndCol = col
	c.selection.EndLine = line
	c.selection.Active = true
}

// EndSelection updates the end position of the selection during drag
func (c *Chat) EndSelection(col, line int) {
	if !c.selection.Active {
		return
	}
	c.selection.EndCol = col
	c.selection.EndLine = line
}

// SelectionStop ends the drag but keeps the selection visible
func (c *Chat) SelectionStop() {
	c.selection.Active = false
}

// SelectionClear clears the selection entirely
func (c *Chat) SelectionClear() {
	flash := c.selection.FlashFrame
	c.selection.StartCol = -1
	c.selection.StartLine = -1
	c.selection.EndCol = -1
	c.selection.EndLine = -1
	c.selection.Active = false
	c.selection.FlashFrame = flash
}

// HasTextSelection returns true if there is an active or completed selection
func (c *Chat) HasTextSelection() bool {
	s := c.selection
	return s.StartCol >= 0 && s.StartLine >= 0 &&
		(s.EndCol != s.StartCol || s.EndLine != s.StartLine)
}

// handleMouseClick starts a selection, or selects a word on double click.
func (c *Chat) handleMouseClick(x, y int) tea.Cmd {
	now := time.Now()
	s := &c.selection

	if now.Sub(s.lastClickTime) <= doubleClickThreshold &&
		abs(x-s.lastClickX) <= clickTolerance &&
		abs(y-s.lastClickY) <= clickTolerance {
		s.clickCount++
	} else {
		s.clickCount = 1
	}
	s.lastClickTime = now
	s.lastClickX = x
	s.lastClickY = y

	if s.clickCount >= 2 {
		s.clickCount = 0
		c.SelectWord(x, y)
		return c.CopySelectedText()
	}
	c.StartSelection(x, y)
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// viewLines returns the visible viewport lines with ANSI codes stripped.
func (c *Chat) viewLines() []string {
	lines := strings.Split(c.viewport.View(), "\n")
	for i := range lines {
		lines[i] = ansi.Strip(lines[i])
	}
	return lines
}

// SelectWord selects the word at the given position using grapheme word
// boundaries.
func (c *Chat) SelectWord(col, line int) {
	lines := c.viewLines()
	if line < 0 || line >= len(lines) {
		return
	}
	current := lines[line]
	if col < 0 || col >= ansi.StringWidth(current) {
		return
	}

	// Walk word segments, in cells, until the one containing col.
	startCol, endCol := col, col+1
	rest := current
	pos := 0
	state := -1
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		width := ansi.StringWidth(word)
		if col < pos+width {
			startCol, endCol = pos, pos+width
			break
		}
		pos += width
	}

	c.selection.StartCol = startCol
	c.selection.StartLine = line
	c.selection.EndCol = endCol
	c.selection.EndLine = line
	c.selection.Active = false
}

// selectionArea returns the selection normalized to reading order.
func (c *Chat) selectionArea() (startCol, startLine, endCol, endLine int) {
	s := c.selection
	startCol, startLine, endCol, endLine = s.StartCol, s.StartLine, s.EndCol, s.EndLine
	if startLine > endLine || (startLine == endLine && startCol > endCol) {
		startCol, endCol = endCol, startCol
		startLine, endLine = endLine, startLine
	}
	return
}

// GetSelectedText returns the currently selected text without ANSI codes.
func (c *Chat) GetSelectedText() string {
	if !c.HasTextSelection() {
		return ""
	}

	lines := c.viewLines()
	startCol, startLine, endCol, endLine := c.selectionArea()

	var result strings.Builder
	for y := startLine; y <= endLine && y < len(lines); y++ {
		line := lines[y]
		width := ansi.StringWidth(line)

		lineStart, lineEnd := 0, width
		if y == startLine {
			lineStart = startCol
		}
		if y == endLine {
			lineEnd = endCol
		}
		if lineStart < 0 {
			lineStart = 0
		}
		if lineEnd > width {
			lineEnd = width
		}
		if lineStart > lineEnd {
			lineStart = lineEnd
		}

		// Columns are cells, so wide and multi-byte runes are cut whole.
		result.WriteString(strings.TrimRight(ansi.Cut(line, lineStart, lineEnd), " "))
		if y < endLine {
			result.WriteString("\n")
		}
	}

	return strings.TrimSpace(result.String())
}

// CopySelectedText copies the selection and starts the flash animation.
func (c *Chat) CopySelectedText() tea.Cmd {
	text := c.GetSelectedText()
	if text == "" {
		return nil
	}
	c.selection.FlashFrame = 0
	return tea.Batch(CopyToClipboard(text), SelectionFlashTick())
}

// CopyToClipboard writes text with OSC 52 and to the native clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return tea.Batch(
		tea.SetClipboard(text),
		func() tea.Msg {
			if err := clipboard.WriteText(text); err != nil {
				logger.WithComponent("ui").Warn("Native clipboard write failed", "error", err)
				return ClipboardErrorMsg{Error: err}
			}
			return nil
		},
	)
}

func (c *Chat) handleSelectionFlashTick() tea.Cmd {
	if c.selection.FlashFrame < 0 {
		return nil
	}
	c.selection.FlashFrame++
	if c.selection.FlashFrame >= 2 {
		c.selection.FlashFrame = -1
		c.SelectionClear()
		return nil
	}
	return SelectionFlashTick()
}

// selectionView paints the selection over the rendered view using an
// ultraviolet screen buffer.
func (c *Chat) selectionView(view string) string {
	if !c.HasTextSelection() {
		return view
	}

	width := c.viewport.Width()
	height := c.viewport.Height()
	if width <= 0 || height <= 0 {
		return view
	}

	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)

	startCol, startLine, endCol, endLine := c.selectionArea()

	var selBg, selFg color.Color
	if c.selection.FlashFrame == 0 {
		selBg = TextSelectionFlashStyle.GetBackground()
		selFg = TextSelectionFlashStyle.GetForeground()
	} else {
		selBg = TextSelectionStyle.GetBackground()
		selFg = TextSelectionStyle.GetForeground()
	}

	for y := startLine; y <= endLine && y < height; y++ {
		xStart, xEnd := 0, width
		if y == startLine {
			xStart = startCol
		}
		if y == endLine {
			xEnd = endCol
		}

		for x := xStart; x < xEnd && x < width; x++ {
			cell := scr.CellAt(x, y)
			if cell == nil {
				continue
			}
			cell = cell.Clone()
			cell.Style.Bg = selBg
			cell.Style.Fg = selFg
			scr.SetCell(x, y, cell)
		}
	}

	return scr.Render()
}
