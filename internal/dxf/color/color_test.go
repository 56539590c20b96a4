package color

import "testing"

func TestRGBPrimaries(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    Color
	}{
		{"red", 255, 0, 0, Red},
		{"yellow", 255, 255, 0, Yellow},
		{"green", 0, 255, 0, Green},
		{"cyan", 0, 255, 255, Cyan},
		{"blue", 0, 0, 255, Blue},
		{"magenta", 255, 0, 255, Magenta},
		{"white", 255, 255, 255, Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGB(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("RGB(%d, %d, %d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestRGBInRange(t *testing.T) {
	for _, c := range [][3]uint8{{10, 145, 230}, {0, 100, 0}, {12, 12, 12}, {200, 120, 40}} {
		got := RGB(c[0], c[1], c[2])
		if got < 1 || got > 255 {
			t.Errorf("RGB(%v) = %d, want 1..255", c, got)
		}
	}
}

func TestHex(t *testing.T) {
	got, err := Hex("#f00")
	if err != nil {
		t.Fatalf("Hex() error = %v", err)
	}
	if got != Red {
		t.Errorf("Hex(#f00) = %d, want %d", got, Red)
	}

	if _, err := Hex("red"); err == nil {
		t.Error("Hex(red) expected error")
	}
}

func TestHidden(t *testing.T) {
	if Hidden(Blue) != -Blue {
		t.Errorf("Hidden(Blue) = %d", Hidden(Blue))
	}
	if Hidden(-Blue) != -Blue {
		t.Errorf("Hidden(-Blue) = %d", Hidden(-Blue))
	}
	if Hidden(Blue).Visible() {
		t.Error("hidden color reported visible")
	}
}
