// Command cesiumterrain decodes, upsamples and inspects Cesium 3D Tiles
// terrain and metadata, and reports the shared asset depot's cache
// statistics — a thin cobra front end over the terrain package (§1).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cesiumgo/terrain/internal/logger"
)

var verbose bool

func main() {

	root := &cobra.Command{
		Use:   "cesiumterrain",
		Short: "Decode, upsample and inspect Cesium 3D Tiles terrain data",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cobra.OnInitialize(func() {
		if verbose {
			logger.Default.SetLevel(logger.DEBUG)
		}
	})

	root.AddCommand(newDecodeCmd())
	root.AddCommand(newUpsampleCmd())
	root.AddCommand(newPropertiesCmd())
	root.AddCommand(newDepotStatsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
