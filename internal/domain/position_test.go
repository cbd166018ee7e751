package domain

import (
	"testing"
)

func TestNewPosition(t *testing.T) {
	t.Run("creates position", func(t *testing.T) {
		pos := NewPosition(100.5, 200.5)

		if pos.X != 100.5 {
			t.Errorf("expected X=100.5, got %f", pos.X)
		}
		if pos.Y != 200.5 {
			t.Errorf("expected Y=200.5, got %f", pos.Y)
		}
	})

	t.Run("creates position with negative coordinates", func(t *testing.T) {
		pos := NewPosition(-50.5, -100.5)

		if pos.X != -50.5 {
			t.Errorf("expected X=-50.5, got %f", pos.X)
		}
		if pos.Y != -100.5 {
			t.Errorf("expected Y=-100.5, got %f", pos.Y)
		}
	})
}

func TestPositionCenter(t *testing.T) {
	t.Run("offsets by half the node box", func(t *testing.T) {
		c := NewPosition(50, 50).Center()
		if c.X != 100 || c.Y != 75 {
			t.Errorf("expected center (100,75), got (%v,%v)", c.X, c.Y)
		}
	})

	t.Run("origin", func(t *testing.T) {
		c := NewPosition(0, 0).Center()
		if c.X != 50 || c.Y != 25 {
			t.Errorf("expected center (50,25), got (%v,%v)", c.X, c.Y)
		}
	})
}

func TestPositionContains(t *testing.T) {
	pos := NewPosition(10, 20)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"inside", 60, 45, true},
		{"left of box", 9, 45, false},
		{"below box", 60, 71, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pos.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
