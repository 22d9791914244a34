package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geoequal/internal/geom"
)

type compareFlags struct {
	ignoreDirection bool
	precision       int
	rounding        string
	inline          bool
}

func newCompareCmd() *cobra.Command {
	var f compareFlags
	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Report whether two geometries are equal",
		Long: "Loads two geometries from files (.wkt, .geojson, .json, .csv, .kml) or, with --wkt, " +
			"from inline WKT, and prints \"equal\" (exit 0) or \"not equal\" (exit 1).",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, f)
		},
	}
	cmd.Flags().BoolVarP(&f.ignoreDirection, "ignore-direction", "d", false, "treat reversed lines and rings as equal")
	cmd.Flags().IntVarP(&f.precision, "precision", "p", -1, "decimal digits compared; -1 compares exactly")
	cmd.Flags().StringVar(&f.rounding, "rounding", geom.Truncate.String(), "how extra digits are dropped (truncate, half-away-from-zero, half-even)")
	cmd.Flags().BoolVar(&f.inline, "wkt", false, "read operands as WKT text instead of file paths")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string, f compareFlags) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	mode, err := geom.ParseRoundingMode(f.rounding)
	if err != nil {
		return err
	}
	opts := []geom.EqualOption{geom.WithRounding(mode)}
	if f.ignoreDirection {
		opts = append(opts, geom.IgnoreDirection())
	}
	if f.precision != -1 {
		opts = append(opts, geom.WithPrecision(f.precision))
	}

	a, err := loadOperand(args[0], f.inline)
	if err != nil {
		return err
	}
	b, err := loadOperand(args[1], f.inline)
	if err != nil {
		return err
	}
	log.Debug("comparing geometries",
		zap.Stringer("a", a.Kind()),
		zap.Int("aCoords", a.NumCoords()),
		zap.Stringer("b", b.Kind()),
		zap.Int("bCoords", b.NumCoords()),
		zap.Bool("ignoreDirection", f.ignoreDirection),
		zap.Int("precision", f.precision),
		zap.Stringer("rounding", mode))

	eq, err := geom.Equal(a, b, opts...)
	if err != nil {
		return err
	}
	log.Info("compared geometries", zap.Bool("equal", eq))
	if eq {
		fmt.Fprintln(cmd.OutOrStdout(), "equal")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "not equal")
	return exitCode(exitNotEqual)
}

func loadOperand(arg string, inline bool) (geom.Geometry, error) {
	if inline {
		g, err := geom.ParseWKT(arg)
		return g, errors.Wrapf(err, "parse %q", arg)
	}
	g, err := geom.Load(arg)
	return g, errors.Wrapf(err, "load %s", arg)
}
