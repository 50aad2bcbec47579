package layout_test

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/tabdock/internal/ui/layout"
)

func TestCanvas_Draw(t *testing.T) {
	c := layout.NewCanvas(10, 3)

	c.Draw(2, 1, "ab\ncd")
	c.Draw(-1, 0, "xyz")
	c.Draw(8, 2, "1234")
	c.Draw(0, 5, "zz")

	assert.Equal(t, []string{
		"yz        ",
		"  ab      ",
		"  cd    12",
	}, c.Rows())
	assert.Equal(t, "yz        \n  ab      \n  cd    12", c.String())
}

func TestCanvas_KeepsWidthWithStyledBlocks(t *testing.T) {
	c := layout.NewCanvas(12, 1)

	c.Draw(3, 0, "\x1b[1mbold\x1b[0m")

	assert.Equal(t, 12, ansi.StringWidth(c.Rows()[0]))
	assert.Equal(t, "   bold     ", ansi.Strip(c.Rows()[0]))
}

func TestCanvas_LaterDrawsCover(t *testing.T) {
	c := layout.NewCanvas(6, 1)

	c.Draw(0, 0, "aaaaaa")
	c.Draw(2, 0, "bb")

	assert.Equal(t, "aabbaa", c.Rows()[0])
}
