package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"mapsnap/pkg/staticmap"
)

// Point is one row of a coordinate sheet: an optional label plus a location.
type Point struct {
	Label    string
	Location staticmap.Location
}

func parseCoord(val string) (float64, error) {
	// tolerate decimal commas from locale-formatted sheets
	val = strings.TrimSpace(strings.ReplaceAll(val, ",", "."))
	if val == "" {
		return 0, fmt.Errorf("empty")
	}
	return strconv.ParseFloat(val, 64)
}

// OpenFile opens an .xlsx workbook.
func OpenFile(filename string) (*excelize.File, error) {
	return excelize.OpenFile(filename)
}

// ReadPoints reads a sheet laid out as label (A), latitude (B), longitude (C)
// with a header in row 1. Rows with missing columns or unparseable
// coordinates are skipped.
func ReadPoints(f *excelize.File, sheetName string) ([]Point, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var points []Point
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 3 {
			continue
		}

		lat, err1 := parseCoord(row[1])
		lng, err2 := parseCoord(row[2])
		if err1 != nil || err2 != nil {
			continue
		}

		points = append(points, Point{
			Label:    strings.TrimSpace(row[0]),
			Location: staticmap.Location{Latitude: lat, Longitude: lng},
		})
	}
	return points, nil
}
