package physics

import (
	"sort"
	"testing"
)

func TestRectsOverlap(t *testing.T) {
	cases := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"same center", Rect{0, 0, 5, 5}, Rect{0, 0, 1, 1}, true},
		{"overlap x and y", Rect{0, 0, 5, 5}, Rect{8, 3, 4, 4}, true},
		{"touching edge", Rect{0, 0, 5, 5}, Rect{10, 0, 5, 5}, false},
		{"apart on y", Rect{0, 0, 5, 5}, Rect{0, 20, 5, 5}, false},
		{"apart on x only", Rect{0, 0, 5, 5}, Rect{11, 0, 5, 5}, false},
	}
	for _, tc := range cases {
		if got := RectsOverlap(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: RectsOverlap = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPointInCircle(t *testing.T) {
	cases := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"center", 10, 10, true},
		{"inside", 12, 13, true},
		{"on the circle", 13, 14, false},
		{"on the x axis edge", 15, 10, false},
		{"outside", 20, 20, false},
	}
	for _, tc := range cases {
		if got := PointInCircle(tc.px, tc.py, 10, 10, 5); got != tc.want {
			t.Errorf("%s: PointInCircle = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestColliderModes(t *testing.T) {
	a := Rect{CX: 0, CY: 0, HalfW: 1, HalfH: 1}
	b := Rect{CX: 100, CY: 0, HalfW: 1, HalfH: 1}

	box := Collider{Mode: ModeAABB}
	if box.Collides(a, b) {
		t.Fatalf("aabb: small boxes 100 apart should not collide")
	}

	radius := Collider{Mode: ModeRadius, Threshold: 150}
	if !radius.Collides(a, b) {
		t.Fatalf("radius: centers 100 apart should collide under threshold 150")
	}
	radius.Threshold = 100
	if radius.Collides(a, b) {
		t.Fatalf("radius: distance equal to threshold must not collide")
	}
}

func TestParseCollisionMode(t *testing.T) {
	for in, want := range map[string]CollisionMode{"": ModeAABB, "aabb": ModeAABB, "radius": ModeRadius} {
		got, err := ParseCollisionMode(in)
		if err != nil || got != want {
			t.Errorf("ParseCollisionMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseCollisionMode("hexagon"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(800, 600, 100)
	g.Insert(50, 50, 0)
	g.Insert(150, 50, 1)
	g.Insert(450, 450, 2)
	g.Insert(-20, 900, 3) // clamped into the bottom-left cell

	var got []int
	g.QueryAround(60, 60, func(i int) bool {
		got = append(got, i)
		return false
	})
	sort.Ints(got)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("query near origin = %v, want [0 1]", got)
	}

	got = got[:0]
	g.QueryAround(10, 590, func(i int) bool {
		got = append(got, i)
		return false
	})
	if len(got) != 1 || got[0] != 3 {
		t.Fatalf("query bottom-left = %v, want [3]", got)
	}

	g.Clear()
	count := 0
	g.QueryAround(450, 450, func(int) bool { count++; return false })
	if count != 0 {
		t.Fatalf("expected empty grid after Clear, got %d items", count)
	}
}

func TestSpatialGridStopsEarly(t *testing.T) {
	g := NewSpatialGrid(100, 100, 50)
	for i := 0; i < 5; i++ {
		g.Insert(10, 10, i)
	}
	calls := 0
	g.QueryAround(10, 10, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Fatalf("expected iteration to stop after first item, got %d calls", calls)
	}
}
