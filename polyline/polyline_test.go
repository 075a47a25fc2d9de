package polyline

import (
	"math"
	"testing"
)

// Reference vector from the polyline format documentation.
func TestDecodeReferenceVector(t *testing.T) {
	got := Decode("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	want := [][2]float64{
		{38.5, -120.2},
		{40.7, -120.95},
		{43.252, -126.453},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i][0]-want[i][0]) > 1e-9 || math.Abs(got[i][1]-want[i][1]) > 1e-9 {
			t.Fatalf("point %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestDecodeEmpty(t *testing.T) {
	if pts := Decode(""); pts != nil {
		t.Fatalf("expected nil for empty string, got %v", pts)
	}
}
