package geo

import (
	"math"
	"testing"

	"mapsnap/pkg/staticmap"
)

func TestBoundsOf(t *testing.T) {
	tests := []struct {
		name   string
		points []staticmap.Location
		want   Bounds
		wantOK bool
	}{
		{
			name:   "empty",
			points: nil,
			wantOK: false,
		},
		{
			name:   "single point is a degenerate box",
			points: []staticmap.Location{{Latitude: 10, Longitude: 20}},
			want:   Bounds{MinLat: 10, MaxLat: 10, MinLon: 20, MaxLon: 20},
			wantOK: true,
		},
		{
			name: "mixed points",
			points: []staticmap.Location{
				{Latitude: 59.3325, Longitude: 18.0649},
				{Latitude: 55.6761, Longitude: 12.5683},
				{Latitude: 60.1699, Longitude: 24.9384},
			},
			want:   Bounds{MinLat: 55.6761, MaxLat: 60.1699, MinLon: 12.5683, MaxLon: 24.9384},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BoundsOf(tt.points)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("BoundsOf = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBoundsCenter(t *testing.T) {
	b := Bounds{MinLat: 10, MaxLat: 20, MinLon: -40, MaxLon: -20}
	got := b.Center()
	if got.Latitude != 15 || got.Longitude != -30 {
		t.Errorf("Center = %+v, want 15,-30", got)
	}
}

func TestFitZoom(t *testing.T) {
	scandinavia := Bounds{MinLat: 55.6761, MaxLat: 60.1699, MinLon: 12.5683, MaxLon: 24.9384}

	z := FitZoom(scandinavia, 600, 400)
	if z <= MinZoom || z >= MaxZoom {
		t.Fatalf("FitZoom = %d, expected an intermediate zoom", z)
	}

	// the box must actually fit at the chosen zoom and overflow one level in
	w, h := pixelSpan(scandinavia, z)
	if int(math.Ceil(w)) > 600 || int(math.Ceil(h)) > 400 {
		t.Errorf("box does not fit at zoom %d: %fx%f", z, w, h)
	}
	w, h = pixelSpan(scandinavia, z+1)
	if int(math.Ceil(w)) <= 600 && int(math.Ceil(h)) <= 400 {
		t.Errorf("zoom %d is not maximal, %d also fits", z, z+1)
	}

	t.Run("single point yields max zoom", func(t *testing.T) {
		b, _ := BoundsOf([]staticmap.Location{{Latitude: 1, Longitude: 2}})
		if z := FitZoom(b, 600, 400); z != MaxZoom {
			t.Errorf("FitZoom(point) = %d, want %d", z, MaxZoom)
		}
	})

	t.Run("whole world yields a low zoom", func(t *testing.T) {
		world := Bounds{MinLat: -85, MaxLat: 85, MinLon: -180, MaxLon: 180}
		if z := FitZoom(world, 600, 400); z > 1 {
			t.Errorf("FitZoom(world) = %d, want <= 1", z)
		}
	})
}

func TestHaversine(t *testing.T) {
	paris := staticmap.Location{Latitude: 48.8566, Longitude: 2.3522}
	london := staticmap.Location{Latitude: 51.5074, Longitude: -0.1278}

	got := Haversine(paris, london)
	// roughly 344 km between the two city centers
	if got < 330000 || got > 360000 {
		t.Errorf("Haversine(Paris, London) = %f m, want ~344 km", got)
	}

	if d := Haversine(paris, paris); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestPathLength(t *testing.T) {
	a := staticmap.Location{Latitude: 0, Longitude: 0}
	b := staticmap.Location{Latitude: 0, Longitude: 1}
	c := staticmap.Location{Latitude: 0, Longitude: 2}

	ab := Haversine(a, b)
	total := PathLength([]staticmap.Location{a, b, c})
	if math.Abs(total-2*ab) > 1 {
		t.Errorf("PathLength = %f, want %f", total, 2*ab)
	}

	if got := PathLength([]staticmap.Location{a}); got != 0 {
		t.Errorf("single point path length = %f, want 0", got)
	}
}
