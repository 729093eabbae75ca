package tui

import (
	"testing"
	"time"
)

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		tickRate int
		want     time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / 60},
		{-5, time.Second / 60},
	}

	for _, tt := range tests {
		if got := frameInterval(tt.tickRate); got != tt.want {
			t.Errorf("frameInterval(%d) = %v, expected %v", tt.tickRate, got, tt.want)
		}
	}
}
