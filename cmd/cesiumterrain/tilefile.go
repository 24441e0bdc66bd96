package main

import (
	"math"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/cesiumgo/terrain/quantizedmesh"
)

// mapFile mmaps path read-only, mirroring the way PE files are mapped
// before parsing rather than read into a single owned buffer.
func mapFile(path string) (mmap.MMap, func() error, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	closeFn := func() error {
		if uerr := data.Unmap(); uerr != nil {
			f.Close()
			return uerr
		}
		return f.Close()
	}
	return data, closeFn, nil
}

// rectangleFlags holds the CLI representation, in degrees, of a tile's
// geographic rectangle; toRadians converts it to the radian form every
// quantizedmesh/upsample function expects.
type rectangleFlags struct {
	West, South, East, North float64
}

func (r rectangleFlags) toRadians() quantizedmesh.GlobeRectangle {
	return quantizedmesh.GlobeRectangle{
		West:  r.West * math.Pi / 180,
		South: r.South * math.Pi / 180,
		East:  r.East * math.Pi / 180,
		North: r.North * math.Pi / 180,
	}
}
