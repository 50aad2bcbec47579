package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Canvas is a fixed grid of terminal rows that styled blocks are drawn onto.
// Later draws cover earlier ones.
type Canvas struct {
	width, height int
	rows          []string
}

// NewCanvas returns a blank canvas.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	rows := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range rows {
		rows[i] = blank
	}
	return &Canvas{width: width, height: height, rows: rows}
}

// Draw places a multi-line block with its top-left corner at (x, y). Parts
// outside the canvas are clipped. Escape sequences in block are kept.
func (c *Canvas) Draw(x, y int, block string) {
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= c.height {
			continue
		}
		c.drawLine(x, row, line)
	}
}

func (c *Canvas) drawLine(x, row int, line string) {
	w := ansi.StringWidth(line)
	if x < 0 {
		line = ansi.TruncateLeft(line, -x, "")
		w += x
		x = 0
	}
	if x+w > c.width {
		line = ansi.Truncate(line, c.width-x, "")
		w = c.width - x
	}
	if w <= 0 {
		return
	}
	cur := c.rows[row]
	c.rows[row] = ansi.Truncate(cur, x, "") + line + ansi.TruncateLeft(cur, x+w, "")
}

// Rows returns the canvas rows.
func (c *Canvas) Rows() []string { return c.rows }

func (c *Canvas) String() string {
	return strings.Join(c.rows, "\n")
}
