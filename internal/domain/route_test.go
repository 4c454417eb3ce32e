package domain

import "testing"

func TestBestEstimate(t *testing.T) {
	candidates := []RouteEstimate{
		{Mode: ModeDriving, DurationSeconds: 1200, DurationText: "20 mins"},
		{Mode: ModeDriving, DurationSeconds: 900, DurationText: "15 mins"},
		{Mode: ModeDriving, DurationSeconds: 1500, DurationText: "25 mins"},
	}

	best, ok := BestEstimate(candidates)
	if !ok {
		t.Fatal("expected a best estimate")
	}
	if best.DurationSeconds != 900 {
		t.Fatalf("duration = %d, want 900", best.DurationSeconds)
	}

	for _, c := range candidates {
		if best.DurationSeconds > c.DurationSeconds {
			t.Fatalf("retained estimate slower than candidate: %d > %d", best.DurationSeconds, c.DurationSeconds)
		}
	}

	if _, ok := BestEstimate(nil); ok {
		t.Fatal("expected no estimate for empty candidates")
	}
}

func TestParseCoordinates(t *testing.T) {
	c, err := ParseCoordinates("45.4972,-73.5790")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lat != 45.4972 || c.Lon != -73.5790 {
		t.Fatalf("got %+v", c)
	}

	if _, err := ParseCoordinates("not-a-pair"); err == nil {
		t.Fatal("expected error for malformed pair")
	}
	if _, err := ParseCoordinates("120.0,-73.5"); err == nil {
		t.Fatal("expected error for out-of-range latitude")
	}
}

func TestDistanceToIsSymmetricAndPositive(t *testing.T) {
	sgw := Coordinates{Lat: 45.4972, Lon: -73.5790}
	loy := Coordinates{Lat: 45.4582, Lon: -73.6405}

	d1 := sgw.DistanceTo(loy)
	d2 := loy.DistanceTo(sgw)

	if d1 <= 0 {
		t.Fatalf("distance = %f, want > 0", d1)
	}
	if diff := d1 - d2; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("asymmetric distances: %f vs %f", d1, d2)
	}
	// The two campuses are roughly 6.5 km apart.
	if d1 < 6000 || d1 > 7500 {
		t.Fatalf("SGW-LOY distance = %f m, want ~6500 m", d1)
	}
}
