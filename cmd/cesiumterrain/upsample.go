package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cesiumgo/terrain/internal/logger"
	"github.com/cesiumgo/terrain/quantizedmesh"
	"github.com/cesiumgo/terrain/upsample"
)

type upsampleSummary struct {
	ParentPath    string `json:"parentPath"`
	ChildLevel    uint32 `json:"childLevel"`
	ChildX        uint32 `json:"childX"`
	ChildY        uint32 `json:"childY"`
	VertexCount   int    `json:"vertexCount"`
	TriangleCount int    `json:"triangleCount"`
}

func newUpsampleCmd() *cobra.Command {

	var rect rectangleFlags
	var parentLevel uint32
	var childX, childY uint32

	cmd := &cobra.Command{
		Use:   "upsample <parent-tile-file>",
		Short: "Upsample a decoded parent tile into one quadrant child",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			path := args[0]
			data, closeFn, err := mapFile(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer closeFn()

			parentRect := rect.toRadians()
			parent, err := quantizedmesh.Decode(data, parentRect, parentLevel, quantizedmesh.WGS84)
			if err != nil {
				return fmt.Errorf("decoding parent %s: %w", path, err)
			}

			childLevel := parentLevel + 1
			logger.Default.Debug("upsampling %s to child (%d,%d,%d)", path, childLevel, childX, childY)
			child, err := upsample.Upsample(parent.Mesh, quantizedmesh.WGS84, parentRect, childLevel, childX, childY, upsample.Options{})
			if err != nil {
				return fmt.Errorf("upsampling %s: %w", path, err)
			}

			summary := upsampleSummary{ParentPath: path, ChildLevel: childLevel, ChildX: childX, ChildY: childY}
			for _, prim := range child.Primitives {
				if posIdx, ok := prim.Attributes["POSITION"]; ok {
					summary.VertexCount += child.Accessor(posIdx).Count
				}
				if prim.HasIndices {
					summary.TriangleCount += child.Accessor(prim.Indices).Count / 3
				}
			}

			out, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().Float64Var(&rect.West, "west", -180, "parent tile west bound, degrees")
	cmd.Flags().Float64Var(&rect.South, "south", -90, "parent tile south bound, degrees")
	cmd.Flags().Float64Var(&rect.East, "east", 180, "parent tile east bound, degrees")
	cmd.Flags().Float64Var(&rect.North, "north", 90, "parent tile north bound, degrees")
	cmd.Flags().Uint32Var(&parentLevel, "parent-level", 0, "quadtree level of the parent tile")
	cmd.Flags().Uint32Var(&childX, "child-x", 0, "child tile x index within the 2x2 quadrant (0 or 1)")
	cmd.Flags().Uint32Var(&childY, "child-y", 0, "child tile y index within the 2x2 quadrant (0 or 1)")
	return cmd
}
