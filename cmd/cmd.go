/*
	Timelinize
	Copyright (c) 2013 Matthew Holt

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package lhcmd facilitates the command line interface (CLI)
// and implements the main().
package lhcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/timelinize/lhconv/formats/jsonjs"
	"github.com/timelinize/lhconv/history"
	"go.uber.org/zap"
)

// Main runs the program with the process arguments and exits.
func Main() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// Run converts a location history export as directed by args (not
// including the program name) and returns the process exit status.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := history.NewConsoleLogger(stderr)

	opt, err := parseArgs(args, stdout)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return exitStatus(err)
	}

	opt.Log = logger
	_, err = history.Convert(ctx, opt)
	if errors.Is(err, history.ErrNoData) {
		fmt.Fprintln(stdout, "No data found in json")
		return 0
	}
	if err != nil {
		logger.Debug("conversion failed", zap.Error(err))
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return exitStatus(err)
	}

	return 0
}

// exitStatus maps an error to a process exit status; usage errors get
// 2 like most command line tools.
func exitStatus(err error) int {
	if errors.Is(err, history.ArgumentError) {
		return 2 //nolint:mnd
	}
	return 1
}

// parseArgs reads the flags and positional arguments into conversion
// options. Everything is validated here, before any input or output
// file is touched.
func parseArgs(args []string, out io.Writer) (history.Options, error) {
	flags := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	flags.SetOutput(out)
	flags.StringP("output", "o", "", "Output file (will be overwritten!); defaults to the input with the format as extension")
	flags.StringP("format", "f", "kml", "Format of the output: "+strings.Join(history.FormatNames(), ", "))
	flags.StringP("variable", "v", jsonjs.DefaultVariable, "Variable name to be used for js output")
	flags.StringP("startdate", "s", "", "The start date - format YYYY-MM-DD (0h00)")
	flags.StringP("enddate", "e", "", "The end date - format YYYY-MM-DD (0h00)")
	flags.BoolP("chronological", "c", false, "Sort items in chronological order")
	flags.StringArrayP("polygon", "p", nil, "Points (lat,lon) of a polygon, after -p or the input; give 2 points (bottom left, top right) for a rectangle")
	flags.Lookup("polygon").NoOptDefVal = noPolygonPoint
	flags.String("timezone", "local", `Time zone of dates and local times: "local", "auto" (per point), or an IANA name`)
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("config", "", "Optional config file with default values for the flags above")
	flags.Usage = func() {
		fmt.Fprintf(out, "Usage: %s [flags] input [lat,lon ...]\n\nConverts a Google Location History export to another format.\n\nFlags:\n%s", programName, flags.FlagUsages())
	}

	if err := flags.Parse(polygonArgs(args)); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return history.Options{}, err
		}
		return history.Options{}, history.Error{Kind: history.ArgumentError, Err: err}
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return history.Options{}, err
	}

	if err := history.SetLogLevel(cfg.GetString("log-level")); err != nil {
		return history.Options{}, err
	}

	// bare lat,lon tokens that polygonArgs left alone (after "--")
	// also belong to the polygon
	var polygonTokens []string
	flagTokens, _ := flags.GetStringArray("polygon")
	for _, tkn := range flagTokens {
		if tkn != noPolygonPoint && tkn != "" {
			polygonTokens = append(polygonTokens, tkn)
		}
	}
	var input string
	for _, arg := range flags.Args() {
		if flags.Changed("polygon") {
			if _, err := history.ParseLatLon(arg); err == nil {
				polygonTokens = append(polygonTokens, arg)
				continue
			}
		}
		if input != "" {
			return history.Options{}, history.Argumentf("unexpected argument: %s", arg)
		}
		input = arg
	}
	if input == "" {
		return history.Options{}, history.Argumentf("missing input file")
	}

	format, err := history.GetFormat(cfg.GetString("format"))
	if err != nil {
		return history.Options{}, err
	}

	opt := history.Options{
		Input:         input,
		Output:        cfg.GetString("output"),
		Format:        format.Name,
		Chronological: cfg.GetBool("chronological"),
		RenderOptions: history.RenderOptions{
			Variable: cfg.GetString("variable"),
		},
	}
	if opt.Output == "" {
		opt.Output = history.DefaultOutput(opt.Input, format.Name)
	}
	if history.SamePath(opt.Input, opt.Output) {
		return history.Options{}, history.Argumentf("input and output have to be different files")
	}
	if format.Name == "js" && !jsonjs.ValidVariable(opt.Variable) {
		return history.Options{}, history.Argumentf("not a valid variable name: '%s'", opt.Variable)
	}

	if start := cfg.GetString("startdate"); start != "" {
		d, err := history.ParseDate(start)
		if err != nil {
			return history.Options{}, err
		}
		opt.Dates.Start = &d
	}
	if end := cfg.GetString("enddate"); end != "" {
		d, err := history.ParseDate(end)
		if err != nil {
			return history.Options{}, err
		}
		opt.Dates.End = &d
	}

	// a -p without any points means no polygon filter
	if len(polygonTokens) > 0 {
		points := make([]history.LatLon, 0, len(polygonTokens))
		for _, tkn := range polygonTokens {
			pt, err := history.ParseLatLon(tkn)
			if err != nil {
				return history.Options{}, err
			}
			points = append(points, pt)
		}
		opt.Polygon, err = history.NewPolygon(points)
		if err != nil {
			return history.Options{}, err
		}
	}

	opt.TimeZone, err = history.ParseTimeZone(cfg.GetString("timezone"))
	if err != nil {
		return history.Options{}, err
	}

	return opt, nil
}

// polygonArgs rewrites every lat,lon token into a --polygon=lat,lon
// flag if the polygon flag is used at all. This lets the points follow
// -p or the input freely, and keeps negative coordinates from being
// taken for shorthand flags.
func polygonArgs(args []string) []string {
	var hasPolygon bool
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "-p" || arg == "--polygon" ||
			strings.HasPrefix(arg, "-p=") || strings.HasPrefix(arg, "--polygon=") {
			hasPolygon = true
			break
		}
	}
	if !hasPolygon {
		return args
	}

	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if i > 0 && flagsWithValue[args[i-1]] {
			out = append(out, arg)
			continue
		}
		if _, err := history.ParseLatLon(arg); err == nil {
			out = append(out, "--polygon="+arg)
			continue
		}
		out = append(out, arg)
	}
	return out
}

// flags that consume the next argument as their value
var flagsWithValue = map[string]bool{
	"-o": true, "--output": true,
	"-f": true, "--format": true,
	"-v": true, "--variable": true,
	"-s": true, "--startdate": true,
	"-e": true, "--enddate": true,
	"--timezone":  true,
	"--log-level": true,
	"--config":    true,
}

// loadConfig layers the flags over environment variables (LHCONV_FORMAT,
// LHCONV_LOG_LEVEL, ...) and an optional config file. The polygon is
// not included because viper splits array values on commas.
func loadConfig(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, name := range []string{
		"output",
		"format",
		"variable",
		"startdate",
		"enddate",
		"chronological",
		"timezone",
		"log-level",
	} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", name, err)
		}
	}

	if cfgFile, _ := flags.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, history.Error{Kind: history.ArgumentError, Err: err, Log: "reading config file " + cfgFile}
		}
	}

	return v, nil
}

const (
	programName = "lhconv"
	envPrefix   = "LHCONV"

	// value of a -p that was given without a point
	noPolygonPoint = "-"
)
