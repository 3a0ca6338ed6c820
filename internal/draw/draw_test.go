package draw

import (
	"bytes"
	"strings"
	"testing"
)

func newPlayfieldCanvas() *Canvas {
	// 80x30 cells = 80x60 sub-pixels, one pixel per 10 logical units
	return NewScaledCanvas(80, 30, 800, 600)
}

func TestFillRect(t *testing.T) {
	c := newPlayfieldCanvas()
	c.FillRect(400, 300, 30, 30)

	for _, p := range [][2]int{{37, 27}, {40, 30}, {42, 32}} {
		if !c.Pixel(p[0], p[1]) {
			t.Fatalf("pixel %v should be set", p)
		}
	}
	for _, p := range [][2]int{{36, 30}, {43, 30}, {40, 26}, {40, 33}} {
		if c.Pixel(p[0], p[1]) {
			t.Fatalf("pixel %v should be clear", p)
		}
	}
}

func TestFillRectTinyBoxCoversOnePixel(t *testing.T) {
	c := newPlayfieldCanvas()
	c.FillRect(405, 305, 1, 1)
	if !c.Pixel(40, 30) {
		t.Fatalf("a sub-pixel box should still be visible")
	}
}

func TestStrokeRectLeavesInteriorEmpty(t *testing.T) {
	c := newPlayfieldCanvas()
	c.StrokeRect(400, 300, 30, 30)

	if !c.Pixel(37, 27) || !c.Pixel(42, 32) {
		t.Fatalf("corners should be set")
	}
	if c.Pixel(40, 30) {
		t.Fatalf("interior should be empty")
	}
}

func TestClipping(t *testing.T) {
	c := newPlayfieldCanvas()
	c.FillRect(0, 0, 50, 50)
	c.FillRect(800, 600, 50, 50)
	if !c.Pixel(0, 0) || !c.Pixel(79, 59) {
		t.Fatalf("edge boxes should be drawn up to the border")
	}
	if c.Pixel(-1, 0) || c.Pixel(80, 0) {
		t.Fatalf("out of range pixels must report clear")
	}
}

func TestRenderUsesHalfBlocks(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetFloat(0, 0) // top half of cell (1,1)
	c.SetFloat(1, 0)
	c.SetFloat(1, 1) // full cell (2,1)
	c.SetFloat(2, 3) // bottom half of cell (3,2)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()

	for _, want := range []string{
		"\033[1;1H" + string(BlockUpperHalf),
		"\033[1;2H" + string(BlockFull),
		"\033[2;3H" + string(BlockLowerHalf),
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("render output %q missing %q", out, want)
		}
	}

	// The first render after Clear blanks the old cells, the second is silent
	c.Clear()
	buf.Reset()
	c.Render(&buf)
	if !strings.Contains(buf.String(), "\033[1;2H ") {
		t.Fatalf("stale cell not blanked: %q", buf.String())
	}
	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("empty canvas rendered %q", buf.String())
	}
}

func TestMarkTextDirty(t *testing.T) {
	c := NewCanvas(10, 2)
	c.MarkTextDirty(3, 2, 2)

	var buf bytes.Buffer
	c.Render(&buf)
	if buf.String() != "\033[2;3H \033[2;4H " {
		t.Fatalf("render = %q", buf.String())
	}

	c.MarkTextDirty(1, 1, 1)
	c.ForceRedraw()
	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("ForceRedraw should forget dirty cells, got %q", buf.String())
	}
}

func TestRenderHonorsOffset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetOffset(10, 5)
	c.SetFloat(0, 0)

	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.HasPrefix(buf.String(), "\033[6;11H") {
		t.Fatalf("offset not applied: %q", buf.String())
	}
}

func TestFilledPolygon(t *testing.T) {
	c := newPlayfieldCanvas()
	pts := c.BorrowPoints(3)
	pts[0] = Point{X: 400, Y: 200}
	pts[1] = Point{X: 300, Y: 400}
	pts[2] = Point{X: 500, Y: 400}
	c.DrawPolygon(pts, true)

	if !c.Pixel(40, 30) {
		t.Fatalf("triangle interior should be filled")
	}
	if c.Pixel(31, 21) {
		t.Fatalf("pixel outside the triangle should be clear")
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "hi")
	cw.WriteString(strings.Repeat("x", 3*maxChunkSize))
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "\033[4;3Hhi") {
		t.Fatalf("cursor offset not applied: %q", got[:12])
	}
	if len(got) != len("\033[4;3Hhi")+3*maxChunkSize {
		t.Fatalf("flushed %d bytes", len(got))
	}

	out.Reset()
	if err := cw.Flush(); err != nil || out.Len() != 0 {
		t.Fatalf("second flush wrote %d bytes, err %v", out.Len(), err)
	}
}

func TestFitTerminal(t *testing.T) {
	w, h, oc, or := FitTerminal(200, 70, 160, 60)
	if w != 160 || h != 60 || oc != 20 || or != 5 {
		t.Fatalf("FitTerminal = %d %d %d %d", w, h, oc, or)
	}
	w, h, oc, or = FitTerminal(100, 40, 160, 60)
	if w != 100 || h != 40 || oc != 0 || or != 0 {
		t.Fatalf("small terminal changed: %d %d %d %d", w, h, oc, or)
	}
}

func TestShadeLevel(t *testing.T) {
	if ShadeLevel(-1) != ' ' || ShadeLevel(0) != ' ' {
		t.Fatalf("empty intensity should be blank")
	}
	if ShadeLevel(1) != BlockFull || ShadeLevel(2) != BlockFull {
		t.Fatalf("full intensity should be a full block")
	}
	if ShadeLevel(0.5) != BlockMedium {
		t.Fatalf("ShadeLevel(0.5) = %q", ShadeLevel(0.5))
	}
}
