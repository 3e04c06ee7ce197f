package layout

import (
	"testing"

	"charm.land/lipgloss/v2"
)

func TestFrameHeights(t *testing.T) {
	if h := lipgloss.Height(RenderHeader("Home", 120, 3, 100)); h != HeaderHeight {
		t.Errorf("header height = %d, want %d", h, HeaderHeight)
	}
	hints := []KeyHint{{Key: "enter", Description: "Select"}}
	if h := lipgloss.Height(RenderFooter(hints, 100)); h != FooterHeight {
		t.Errorf("footer height = %d, want %d", h, FooterHeight)
	}
}

func TestCompactThresholds(t *testing.T) {
	tests := []struct {
		width, height      int
		compactW, tooSmall bool
	}{
		{120, 40, false, false},
		{90, 40, true, false},
		{70, 40, true, true},
		{120, 20, false, true},
	}
	for _, tt := range tests {
		if got := IsCompactWidth(tt.width); got != tt.compactW {
			t.Errorf("IsCompactWidth(%d) = %v, want %v", tt.width, got, tt.compactW)
		}
		if got := IsTooSmall(tt.width, tt.height); got != tt.tooSmall {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.width, tt.height, got, tt.tooSmall)
		}
	}
}
