package excel

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func newPointsSheet(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	if _, err := f.NewSheet("Points"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow("Points", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	return f
}

func TestReadPoints(t *testing.T) {
	f := newPointsSheet(t, [][]interface{}{
		{"Label", "Lat", "Lon"},
		{"Stockholm", "59.3325", "18.0649"},
		{"Copenhagen", "55,6761", "12,5683"}, // decimal commas
		{"bad row", "not-a-number", "12.0"},
		{"short"},
		{"Helsinki", "60.1699", "24.9384"},
	})

	points, err := ReadPoints(f, "Points")
	if err != nil {
		t.Fatalf("ReadPoints: %v", err)
	}

	wantLabels := []string{"Stockholm", "Copenhagen", "Helsinki"}
	if len(points) != len(wantLabels) {
		t.Fatalf("got %d points, want %d (%+v)", len(points), len(wantLabels), points)
	}
	for i, label := range wantLabels {
		if points[i].Label != label {
			t.Errorf("point %d label = %q, want %q", i, points[i].Label, label)
		}
	}
	if points[1].Location.Latitude != 55.6761 || points[1].Location.Longitude != 12.5683 {
		t.Errorf("decimal commas not normalized: %+v", points[1].Location)
	}
}

func TestReadPoints_MissingSheet(t *testing.T) {
	f := excelize.NewFile()
	if _, err := ReadPoints(f, "Nope"); err == nil {
		t.Fatal("expected error for missing sheet")
	}
}
