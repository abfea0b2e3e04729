package puzzle

import "testing"

func TestDirectionOpposite(t *testing.T) {
	cases := []struct {
		d    Direction
		want Direction
	}{
		{Right, Left},
		{Down, Up},
		{Left, Right},
		{Up, Down},
	}
	for _, c := range cases {
		if got := c.d.Opposite(); got != c.want {
			t.Errorf("%v.Opposite() = %v, want %v", c.d, got, c.want)
		}
		if c.d.Opposite().Opposite() != c.d {
			t.Errorf("Opposite is not involutive for %v", c.d)
		}
	}
}

func TestDirectionString(t *testing.T) {
	want := []string{"Right", "Down", "Left", "Up"}
	for i, w := range want {
		if got := Direction(i).String(); got != w {
			t.Errorf("Direction(%d).String() = %q, want %q", i, got, w)
		}
	}
}

func TestDirectionIsVertical(t *testing.T) {
	for d := Direction(0); d < directionCount; d++ {
		want := d == Down || d == Up
		if got := d.isVertical(); got != want {
			t.Errorf("%v.isVertical() = %v, want %v", d, got, want)
		}
	}
}
