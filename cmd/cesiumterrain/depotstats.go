package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru"
	"github.com/spf13/cobra"

	"github.com/cesiumgo/terrain/config"
	"github.com/cesiumgo/terrain/depot"
	"github.com/cesiumgo/terrain/internal/logger"
	"github.com/cesiumgo/terrain/quantizedmesh"
)

// recentPaths is a bounded, non-refcounted record of which tile paths
// were served this run, mapped to their reported sizes. depot-stats only
// adds to it; nothing reads it back before going to the depot. The depot
// itself owns the decoded tiles and their refcounted lifetime (§5), and
// this cache never holds a strong reference to a *depot.Asset.
var recentPaths *lru.Cache

func decodeTileFactory(rect quantizedmesh.GlobeRectangle, level uint32) depot.Factory {
	return func(key depot.Key) (interface{}, int64, error) {
		path := key.(string)
		data, closeFn, err := mapFile(path)
		if err != nil {
			return nil, 0, err
		}
		defer closeFn()

		result, err := quantizedmesh.Decode(data, rect, level, quantizedmesh.WGS84)
		if err != nil {
			return nil, 0, err
		}
		return result, int64(len(data)), nil
	}
}

func newDepotStatsCmd() *cobra.Command {

	var rect rectangleFlags
	var level uint32
	var configPath string

	cmd := &cobra.Command{
		Use:   "depot-stats <tile-dir>",
		Short: "Load every tile under a directory through the asset depot and report cache stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			conf := config.Default()
			if configPath != "" {
				loaded, err := config.Read(configPath)
				if err != nil {
					return fmt.Errorf("reading config %s: %w", configPath, err)
				}
				conf = loaded
			}

			cache, err := lru.New(conf.DecodedTileCacheEntries)
			if err != nil {
				return fmt.Errorf("creating decoded-tile cache: %w", err)
			}
			recentPaths = cache

			d := depot.New(decodeTileFactory(rect.toRadians(), level), conf.InactiveAssetSizeLimitBytes)

			err = filepath.WalkDir(args[0], func(path string, entry os.DirEntry, err error) error {
				if err != nil || entry.IsDir() {
					return err
				}
				asset, err := d.GetOrCreate(path)
				if err != nil {
					logger.Default.Warn("skipping %s: %v", path, err)
					return nil
				}
				recentPaths.Add(path, asset.SizeBytes())
				asset.Release()
				return nil
			})
			if err != nil {
				return fmt.Errorf("walking %s: %w", args[0], err)
			}

			out, err := json.MarshalIndent(d.Stats(), "", "  ")
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
	cmd.Flags().Uint32Var(&level, "level", 0, "quadtree level shared by every tile under the directory")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a cesiumterrain.toml config file (defaults to built-in defaults)")
	return cmd
}
