package render

import (
	"strings"
	"testing"

	"github.com/gogpu/inkwell"
)

func TestBackgroundPatternSVG(t *testing.T) {
	bg := DefaultBackground()
	bounds := inkwell.NewAABB(inkwell.Pt(0, 0), inkwell.Pt(100, 100))

	grid := bg.GenSVG(bounds)
	if !strings.Contains(grid.Data, "<line") {
		t.Error("grid pattern has no lines")
	}

	bg.Pattern = PatternDots
	dots := bg.GenSVG(bounds)
	if !strings.Contains(dots.Data, "<circle") {
		t.Error("dots pattern has no circles")
	}

	bg.Pattern = PatternNone
	plain := bg.GenSVG(bounds)
	if strings.Contains(plain.Data, "<line") || strings.Contains(plain.Data, "<circle") {
		t.Error("plain background carries pattern markup")
	}
	if !strings.Contains(plain.Data, "<rect") {
		t.Error("plain background missing base rect")
	}
}
