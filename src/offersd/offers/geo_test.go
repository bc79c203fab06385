package offers

import (
	"math"
	"testing"
)

func TestBoundingBox(t *testing.T) {
	latDiff, lonDiff := boundingBox(0, 111.0)
	if math.Abs(latDiff-1.0) > 1e-9 {
		t.Errorf("latDiff at equator = %f, want 1.0", latDiff)
	}
	if math.Abs(lonDiff-1.0) > 1e-9 {
		t.Errorf("lonDiff at equator = %f, want 1.0", lonDiff)
	}

	// At 60°N a longitude degree is half as wide, so the box must be twice
	// as many degrees across.
	_, lonDiff = boundingBox(60, 111.0)
	if math.Abs(lonDiff-2.0) > 1e-6 {
		t.Errorf("lonDiff at 60N = %f, want 2.0", lonDiff)
	}

	latDiff, _ = boundingBox(52.0, 55.5)
	if math.Abs(latDiff-0.5) > 1e-9 {
		t.Errorf("latDiff for 55.5km = %f, want 0.5", latDiff)
	}
}

func TestDistanceKM(t *testing.T) {
	if d := DistanceKM(52.2297, 21.0122, 52.2297, 21.0122); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}

	// Warsaw to Krakow, roughly 252 km.
	d := DistanceKM(52.2297, 21.0122, 50.0647, 19.9450)
	if math.Abs(d-252) > 2 {
		t.Errorf("Warsaw-Krakow = %f, want ~252", d)
	}

	// One degree of latitude on a 6371 km sphere.
	d = DistanceKM(52.0, 21.0, 53.0, 21.0)
	want := 6371.0 * math.Pi / 180
	if math.Abs(d-want) > 0.01 {
		t.Errorf("one degree lat = %f, want %f", d, want)
	}
}

func TestGeoPredicate(t *testing.T) {
	p := geoPredicate(52.2297, 21.0122, 10)
	if len(p.Args) != 9 {
		t.Fatalf("args = %d, want 9", len(p.Args))
	}

	latDiff, lonDiff := boundingBox(52.2297, 10)
	wantBox := []float64{
		52.2297 - latDiff, 52.2297 + latDiff,
		21.0122 - lonDiff, 21.0122 + lonDiff,
	}
	for i, want := range wantBox {
		got, ok := p.Args[i].(float64)
		if !ok || math.Abs(got-want) > 1e-9 {
			t.Errorf("arg %d = %v, want %f", i, p.Args[i], want)
		}
	}
	if got := p.Args[7].(float64); got != earthRadiusKM {
		t.Errorf("radius arg = %f, want %f", got, earthRadiusKM)
	}
	if got := p.Args[8].(float64); got != 10 {
		t.Errorf("distance arg = %f, want 10", got)
	}
}
