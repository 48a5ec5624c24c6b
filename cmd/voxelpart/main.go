// Package main provides the voxelpart command line tool, which partitions and
// downsamples point cloud files with a voxel grid.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/voxelgrid/partition/pointcloud"
	"github.com/voxelgrid/partition/segmentation"
)

func main() {
	logger := golog.NewDevelopmentLogger("voxelpart")
	app := &cli.App{
		Name:  "voxelpart",
		Usage: "partition and downsample point cloud files (.pcd, .pcd.gz, .las) with a voxel grid",
		Commands: []*cli.Command{
			partitionCommand(logger),
			downsampleCommand(logger),
		},
	}
	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func gridFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:  "leaf",
			Usage: "voxel edge length applied to all axes",
			Value: 1.0,
		},
		&cli.Float64Flag{
			Name:  "leaf-x",
			Usage: "voxel edge length on x, overrides --leaf",
		},
		&cli.Float64Flag{
			Name:  "leaf-y",
			Usage: "voxel edge length on y, overrides --leaf",
		},
		&cli.Float64Flag{
			Name:  "leaf-z",
			Usage: "voxel edge length on z, overrides --leaf",
		},
		&cli.IntFlag{
			Name:  "min-points",
			Usage: "minimum points for a voxel to survive",
			Value: 1,
		},
		&cli.StringFlag{
			Name:  "filter-field",
			Usage: "point field to pre-filter on (x, y, z, value, intensity)",
		},
		&cli.Float64Flag{
			Name:  "filter-min",
			Usage: "lower filter limit",
		},
		&cli.Float64Flag{
			Name:  "filter-max",
			Usage: "upper filter limit",
		},
		&cli.BoolFlag{
			Name:  "filter-negative",
			Usage: "drop points strictly inside the filter limits instead of keeping them",
		},
	}
}

func gridConfig(c *cli.Context) segmentation.VoxelGridConfig {
	leaf := c.Float64("leaf")
	size := r3.Vector{X: leaf, Y: leaf, Z: leaf}
	if v := c.Float64("leaf-x"); v > 0 {
		size.X = v
	}
	if v := c.Float64("leaf-y"); v > 0 {
		size.Y = v
	}
	if v := c.Float64("leaf-z"); v > 0 {
		size.Z = v
	}
	cfg := segmentation.VoxelGridConfig{
		LeafSize:          size,
		MinPointsPerVoxel: c.Int("min-points"),
	}
	if field := c.String("filter-field"); field != "" {
		cfg.Filter = &pointcloud.FieldFilter{
			Field:    field,
			Min:      c.Float64("filter-min"),
			Max:      c.Float64("filter-max"),
			Negative: c.Bool("filter-negative"),
		}
	}
	return cfg
}

func partitionCommand(logger golog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "partition",
		Usage:     "split a point cloud into one file per occupied voxel",
		ArgsUsage: "<input file>",
		Flags: append(gridFlags(),
			&cli.StringFlag{
				Name:  "out",
				Usage: "directory for the per-cluster output files",
				Value: ".",
			},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("expected exactly one input file")
			}
			cloud, err := pointcloud.NewFromFile(c.Args().First(), logger)
			if err != nil {
				return err
			}

			layout := segmentation.NewLeafLayout()
			clusters, err := segmentation.VoxelGridPartition(cloud, gridConfig(c), layout, logger)
			if err != nil {
				return err
			}
			logger.Infof("%d points -> %d clusters over %d grid cells", cloud.Size(), len(clusters), layout.Len())

			outDir := c.String("out")
			if err := os.MkdirAll(outDir, 0o750); err != nil {
				return err
			}
			for i, cluster := range clusters {
				fn := filepath.Join(outDir, fmt.Sprintf("cluster_%04d.pcd", i))
				if err := pointcloud.WriteToFile(cluster, fn); err != nil {
					return err
				}
				stats := segmentation.CalculateClusterStats(cluster)
				logger.Debugf("wrote %s: %d points, centroid %v", fn, stats.Size, stats.Centroid)
			}
			return nil
		},
	}
}

func downsampleCommand(logger golog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "downsample",
		Usage:     "reduce a point cloud to one centroid per occupied voxel",
		ArgsUsage: "<input file>",
		Flags: append(gridFlags(),
			&cli.StringFlag{
				Name:     "out",
				Usage:    "output file",
				Required: true,
			},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("expected exactly one input file")
			}
			cloud, err := pointcloud.NewFromFile(c.Args().First(), logger)
			if err != nil {
				return err
			}

			down, err := segmentation.VoxelDownsample(cloud, gridConfig(c), logger)
			if err != nil {
				return err
			}
			logger.Infof("%d points -> %d points", cloud.Size(), down.Size())
			return pointcloud.WriteToFile(down, c.String("out"))
		},
	}
}
