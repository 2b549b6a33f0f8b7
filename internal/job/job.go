// Package job runs one mask generation: load the rings and the area, derive
// the grid, rasterize and write the mask file.
package job

import (
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"shapemask/internal/geom"
	"shapemask/internal/grid"
	"shapemask/internal/logx"
	"shapemask/internal/mask"
	"shapemask/internal/mskfile"
)

// ErrArea wraps every failure to load the area descriptor.
var ErrArea = errors.New("area file")

// Options describes one run. Zero AreaPath and Output are derived from Input.
type Options struct {
	Input      string
	AreaPath   string
	Output     string
	Resolution int
	Water      bool
	Reporter   mask.Reporter
	Version    string

	// Now stamps the header; time.Now when nil.
	Now func() time.Time
}

// Result summarises a finished run.
type Result struct {
	Output   string
	Geometry grid.Geometry
	Rings    int
	Land     int
	Elapsed  time.Duration
}

// WithDefaults fills AreaPath and Output from Input using the given
// extensions.
func (o Options) WithDefaults(areaExt, outputExt string) Options {
	if o.AreaPath == "" {
		o.AreaPath = geom.ReplaceExt(o.Input, areaExt)
	}
	if o.Output == "" {
		o.Output = geom.ReplaceExt(o.Input, outputExt)
	}
	return o
}

// Run executes the whole pipeline. The output file is written only after
// rasterization succeeds.
func Run(o Options) (Result, error) {
	start := time.Now()
	o = o.WithDefaults(".are", ".msk")
	if o.Resolution < 1 {
		return Result{}, fmt.Errorf("resolution %d: %w", o.Resolution, grid.ErrInvalidResolution)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	log := logx.Logger()

	var (
		env   orb.Bound
		store *geom.RingStore
		g     errgroup.Group
	)
	g.Go(func() error {
		b, err := geom.LoadArea(o.AreaPath)
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrArea, o.AreaPath, err)
		}
		env = b
		return nil
	})
	g.Go(func() error {
		s, err := geom.LoadRings(o.Input)
		if err != nil {
			return fmt.Errorf("read %s: %w", o.Input, err)
		}
		store = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	log.Info("inputs loaded", "rings", store.Len(), "vertices", store.Vertices(), "area", env)

	lonStep, latStep, err := grid.Steps(env.Center(), float64(o.Resolution))
	if err != nil {
		return Result{}, err
	}
	geo, err := grid.New(env, lonStep, latStep)
	if err != nil {
		return Result{}, err
	}
	log.Info("grid computed",
		"width", geo.Width, "height", geo.Height,
		"lon_res", geo.LonResolution, "lat_res", geo.LatResolution)

	raster, err := mask.NewEngine(geo, store, o.Water, o.Reporter).Run()
	if err != nil {
		return Result{}, err
	}

	h := mskfile.Header{
		Version:       o.Version,
		Created:       o.Now().UTC(),
		StartLat:      geo.OriginLat,
		StartLon:      geo.OriginLon,
		LatResolution: geo.LatResolution,
		LonResolution: geo.LonResolution,
		Height:        geo.Height,
		Width:         geo.Width,
		BinSize:       o.Resolution,
		NSDifference:  grid.NorthSouthDifference(geo),
	}
	if err := mskfile.Write(o.Output, h, raster.Cells); err != nil {
		return Result{}, err
	}

	return Result{
		Output:   o.Output,
		Geometry: geo,
		Rings:    store.Len(),
		Land:     raster.LandCells(),
		Elapsed:  time.Since(start),
	}, nil
}
