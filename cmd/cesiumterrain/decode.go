package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cesiumgo/terrain/internal/logger"
	"github.com/cesiumgo/terrain/quantizedmesh"
)

type decodeSummary struct {
	Path              string   `json:"path"`
	VertexCount       int      `json:"vertexCount"`
	TriangleCount     int      `json:"triangleCount"`
	WaterMaskAllWater bool     `json:"waterMaskAllWater"`
	WaterMaskAllLand  bool     `json:"waterMaskAllLand"`
	AvailableLevels   int      `json:"availableLevels"`
	Warnings          []string `json:"warnings,omitempty"`
}

func summarize(path string, result *quantizedmesh.Result) decodeSummary {

	s := decodeSummary{
		Path:              path,
		WaterMaskAllWater: result.WaterMaskAllWater,
		WaterMaskAllLand:  result.WaterMaskAllLand,
		AvailableLevels:   len(result.Available),
	}
	for _, prim := range result.Mesh.Primitives {
		if posIdx, ok := prim.Attributes["POSITION"]; ok {
			s.VertexCount += result.Mesh.Accessor(posIdx).Count
		}
		if prim.HasIndices {
			s.TriangleCount += result.Mesh.Accessor(prim.Indices).Count / 3
		}
	}
	for _, w := range result.Errors.Warnings {
		s.Warnings = append(s.Warnings, w.Message)
	}
	return s
}

func newDecodeCmd() *cobra.Command {

	var rect rectangleFlags
	var level uint32

	cmd := &cobra.Command{
		Use:   "decode <tile-file>",
		Short: "Decode a quantized-mesh terrain tile and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			path := args[0]
			data, closeFn, err := mapFile(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer closeFn()

			logger.Default.Debug("decoding %s at level %d", path, level)
			result, err := quantizedmesh.Decode(data, rect.toRadians(), level, quantizedmesh.WGS84)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", path, err)
			}

			out, err := json.MarshalIndent(summarize(path, result), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().Float64Var(&rect.West, "west", -180, "tile west bound, degrees")
	cmd.Flags().Float64Var(&rect.South, "south", -90, "tile south bound, degrees")
	cmd.Flags().Float64Var(&rect.East, "east", 180, "tile east bound, degrees")
	cmd.Flags().Float64Var(&rect.North, "north", 90, "tile north bound, degrees")
	cmd.Flags().Uint32Var(&level, "level", 0, "quadtree level of the tile")
	return cmd
}
