// Command batch reads a coordinate sheet from an .xlsx workbook and emits one
// static-map URL per row, a single pin map of every row, or a single polyline
// track. With -out it also downloads the images.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"mapsnap/internal/env"
	"mapsnap/internal/excel"
	"mapsnap/pkg/fetch"
	"mapsnap/pkg/geo"
	"mapsnap/pkg/graceful"
	"mapsnap/pkg/staticmap"
)

func main() {
	var (
		inFile = flag.String("in", "", "input .xlsx workbook (required)")
		sheet  = flag.String("sheet", "Points", "sheet holding label/lat/lng columns")
		mode   = flag.String("mode", "each", "each: one URL per row, markers: one pin map, track: one polyline")
		zoom   = flag.Int("zoom", staticmap.DefaultZoom, "zoom level for -mode each")
		width  = flag.Int("width", staticmap.DefaultWidth, "image width in pixels")
		height = flag.Int("height", staticmap.DefaultHeight, "image height in pixels")
		style  = flag.String("maptype", "roadmap", "map style: roadmap, satellite, hybrid, terrain")
		color  = flag.String("color", "", "track color, #RRGGBB or #AARRGGBB")
		outDir = flag.String("out", "", "download images into this directory")
	)
	flag.Parse()
	if *inFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	env.Load()
	provider := staticmap.NewProvider(env.MustGet("MAPS_API_KEY"))
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	f, err := excel.OpenFile(*inFile)
	if err != nil {
		log.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	points, err := excel.ReadPoints(f, *sheet)
	if err != nil {
		log.Fatalf("Failed to read sheet %q: %v", *sheet, err)
	}
	if len(points) == 0 {
		log.Fatalf("Sheet %q contains no usable rows", *sheet)
	}
	log.Printf("Read %d points from %s[%s]", len(points), *inFile, *sheet)

	shared := staticmap.Options{
		Width:  staticmap.Int(*width),
		Height: staticmap.Int(*height),
		Style:  staticmap.Style(staticmap.ParseStyle(*style)),
	}

	type output struct {
		name string
		url  string
	}
	var outputs []output

	switch *mode {
	case "markers":
		opts := shared
		for _, p := range points {
			opts.Markers = append(opts.Markers, staticmap.Marker{Location: p.Location})
		}
		outputs = append(outputs, output{name: "markers", url: provider.URL(opts)})
	case "track":
		locs := make([]staticmap.Location, len(points))
		for i, p := range points {
			locs[i] = p.Location
		}
		opts := shared
		opts.Polylines = []staticmap.Polyline{{Points: locs, Color: *color}}
		outputs = append(outputs, output{name: "track", url: provider.URL(opts)})
		log.Printf("Track length: %.1f km", geo.PathLength(locs)/1000)
	case "each":
		opts := shared
		opts.Zoom = staticmap.Int(*zoom)
		for i, p := range points {
			loc := p.Location
			opts.Center = &loc
			name := p.Label
			if name == "" {
				name = fmt.Sprintf("point-%03d", i+1)
			}
			outputs = append(outputs, output{name: name, url: provider.URL(opts)})
		}
	default:
		log.Fatalf("Unknown mode %q", *mode)
	}

	for _, o := range outputs {
		fmt.Printf("%s\t%s\n", o.name, o.url)
	}
	if *outDir == "" {
		return
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	fetcher := fetch.New(2, 2, 30*time.Second)
	bar := progressbar.Default(int64(len(outputs)), "downloading")

	failed := 0
	for _, o := range outputs {
		body, _, err := fetcher.Get(ctx, o.url)
		if err != nil {
			log.Printf("Failed to fetch %s: %v", o.name, err)
			failed++
			_ = bar.Add(1)
			continue
		}
		target := filepath.Join(*outDir, o.name+".png")
		if err := os.WriteFile(target, body, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", target, err)
		}
		_ = bar.Add(1)
	}
	if failed > 0 {
		log.Printf("Finished with %d of %d downloads failed", failed, len(outputs))
		os.Exit(1)
	}
}
