package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stadt-karlsruhe/geo-assigner/internal/assign"
	"github.com/stadt-karlsruhe/geo-assigner/internal/feature"
)

var (
	assignStrategy     string
	assignSpatialIndex bool
	assignQuiet        bool
)

var assignCmd = &cobra.Command{
	Use:   "assign SOURCE TARGET PROPERTY OUTPUT",
	Short: "Assign a property from source features to intersecting targets",
	Long: "Reads the source and target feature collections, copies PROPERTY from every source feature onto the target features it intersects, and writes " +
		"the mutated target collection to OUTPUT. SOURCE may be a GeoJSON file or a shapefile (.shp).",
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssign(args[0], args[1], args[2], args[3])
	},
}

func init() {
	assignCmd.Flags().StringVarP(&assignStrategy, "strategy", "s", "",
		`conflict resolution strategy for multiple matches: "last" keeps the value of the last match, "list" collects all values (default from config)`)
	assignCmd.Flags().BoolVar(&assignSpatialIndex, "spatial-index", false,
		"prefilter candidate sources with a bounding-box index (results are identical)")
	assignCmd.Flags().BoolVar(&assignQuiet, "quiet", false, "suppress progress output")
	rootCmd.AddCommand(assignCmd)
}

func runAssign(sourcePath, targetPath, property, outputPath string) error {
	name := assignStrategy
	if name == "" {
		name = cfg.Assign.Strategy
	}

	// Resolve the strategy before touching any file.
	strategy, err := assign.NewStrategy(name, property)
	if err != nil {
		return err
	}

	source, err := loadCollection(sourcePath)
	if err != nil {
		return err
	}
	target, err := feature.Load(targetPath)
	if err != nil {
		return err
	}

	var opts []assign.Option
	showProgress := cfg.Assign.Progress && !assignQuiet
	if showProgress {
		opts = append(opts, assign.WithProgress(func(done, total int) {
			fmt.Fprint(os.Stderr, ".")
		}))
	}
	if assignSpatialIndex || cfg.Assign.SpatialIndex {
		opts = append(opts, assign.WithSpatialIndex())
	}

	start := time.Now()
	if err := assign.Assign(source, target, strategy, opts...); err != nil {
		if showProgress {
			fmt.Fprintln(os.Stderr)
		}
		return eris.Wrap(err, "assign")
	}
	if showProgress {
		fmt.Fprintln(os.Stderr)
	}

	if err := feature.Save(target, outputPath); err != nil {
		return eris.Wrap(err, "assign: write output")
	}

	zap.L().Info("assignment complete",
		zap.String("strategy", name),
		zap.String("property", property),
		zap.Int("sources", len(source.Features)),
		zap.Int("targets", len(target.Features)),
		zap.String("output", outputPath),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// loadCollection reads a feature collection from a GeoJSON file, or from a
// shapefile when the path ends in .shp.
func loadCollection(path string) (*feature.Collection, error) {
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		return feature.LoadShapefile(path)
	}
	return feature.Load(path)
}
