package dsp

import (
	"math"
	"testing"
)

func TestOnePoleAlphaRange(t *testing.T) {
	cases := []struct {
		cutoff float32
		rate   float32
	}{
		{20, 48000},
		{1500, 48000},
		{1500, 44100},
		{8000, 96000},
	}
	for _, tc := range cases {
		a := OnePoleAlpha(tc.cutoff, 1.0/tc.rate)
		if a <= 0 || a >= 1 {
			t.Fatalf("alpha out of (0,1) for cutoff=%v rate=%v: %v", tc.cutoff, tc.rate, a)
		}
	}
	lo := OnePoleAlpha(200, 1.0/48000.0)
	hi := OnePoleAlpha(4000, 1.0/48000.0)
	if hi <= lo {
		t.Fatalf("expected higher cutoff to track faster: %v vs %v", hi, lo)
	}
}

func TestOnePoleConvergesToDC(t *testing.T) {
	alpha := OnePoleAlpha(1500, 1.0/48000.0)
	var h float32
	for i := 0; i < 48000; i++ {
		h = OnePole(h, alpha, 1.0)
	}
	if math.Abs(float64(h)-1.0) > 1e-4 {
		t.Fatalf("expected filter history to converge to DC input, got %v", h)
	}
}

func TestSoftClipStaysStrictlyInsideUnitRange(t *testing.T) {
	for i := -100000; i <= 100000; i++ {
		x := float32(i) * 0.01
		y := SoftClip(x)
		if y <= -1.0 || y >= 1.0 {
			t.Fatalf("SoftClip(%v) escaped (-1,1): %v", x, y)
		}
	}
}

func TestSoftClipIsOddAndZeroAtZero(t *testing.T) {
	if y := SoftClip(0); y != 0 {
		t.Fatalf("expected exact zero at zero input, got %v", y)
	}
	for _, x := range []float32{0.001, 0.1, 0.5, 1, 2, 5, 20} {
		if SoftClip(-x) != -SoftClip(x) {
			t.Fatalf("expected odd symmetry at %v: %v vs %v", x, SoftClip(-x), SoftClip(x))
		}
	}
}

func TestSoftClipTracksTanh(t *testing.T) {
	for _, x := range []float64{-4, -2, -1, -0.5, -0.1, 0.1, 0.5, 1, 2, 4} {
		got := float64(SoftClip(float32(x)))
		want := math.Tanh(x)
		if math.Abs(got-want) > 0.02 {
			t.Fatalf("SoftClip(%v)=%v too far from tanh=%v", x, got, want)
		}
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-38); got != 0 {
		t.Fatalf("expected denormal range flushed to zero, got %v", got)
	}
	if got := FlushDenormals(0.5); got != 0.5 {
		t.Fatalf("expected normal value untouched, got %v", got)
	}
	if got := FlushDenormals(-0.5); got != -0.5 {
		t.Fatalf("expected negative normal value untouched, got %v", got)
	}
}
