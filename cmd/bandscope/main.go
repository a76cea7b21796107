package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/soniclens/bandscope/analysis"
	"github.com/soniclens/bandscope/logging"
	"github.com/soniclens/bandscope/transcode"
)

var (
	errNoInput        = errors.New("expected at least one audio file")
	errTooManyInputs  = fmt.Errorf("at most %d files can be compared", analysis.MaxCompareFiles)
	errTimelineMulti  = errors.New("--time and --weighted apply to a single file only")
	errIntervalNoTime = errors.New("--interval requires --time")
	errBadInterval    = errors.New("--interval must be at least 1 second")
)

func main() {
	cmd := &cli.Command{
		Name:      "bandscope",
		Usage:     "Frequency band power analysis for audio files",
		ArgsUsage: "<file> [file...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "time",
				Aliases: []string{"t"},
				Usage:   "Show band distribution over time in fixed intervals",
			},
			&cli.IntFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Timeline interval length in seconds",
				Value:   analysis.DefaultIntervalSeconds,
			},
			&cli.BoolFlag{
				Name:    "weighted",
				Aliases: []string{"w"},
				Usage:   "Show the K-weighted view in timeline rows",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress log output",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored log output",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "bandscope: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("quiet") {
		logging.SetLevel(logging.ErrorLevel)
	}
	if cmd.Bool("no-color") {
		logging.DisableColors()
	}

	files := cmd.Args().Slice()
	if err := validateArgs(cmd, files); err != nil {
		return err
	}

	decoder := transcode.NewDecoder(nil)
	streams := make([]analysis.NamedStream, 0, len(files))
	var decodeErrs []error
	for _, f := range files {
		stream, err := decoder.DecodeFile(ctx, f)
		if err != nil {
			if len(files) == 1 {
				return err
			}
			logging.Error(err, "skipping input", logging.Fields{"file": f})
			decodeErrs = append(decodeErrs, err)
			continue
		}
		streams = append(streams, analysis.NamedStream{Name: f, Stream: stream})
	}
	if len(streams) == 0 {
		return errors.Join(decodeErrs...)
	}

	analyzer, err := analysis.NewAnalyzer(analysis.DefaultConfig())
	if err != nil {
		return err
	}

	switch {
	case cmd.Bool("time"):
		opts := analysis.TimelineOptions{
			IntervalSeconds: cmd.Int("interval"),
			Weighted:        cmd.Bool("weighted"),
		}
		result, err := analyzer.AnalyzeTimeline(streams[0].Stream, streams[0].Name, opts)
		if err != nil {
			return err
		}
		renderTimeline(os.Stdout, result, opts.IntervalSeconds)

	case len(streams) == 1:
		result, err := analyzer.Analyze(streams[0].Stream, streams[0].Name)
		if err != nil {
			return err
		}
		renderSingle(os.Stdout, result)

	default:
		set, errs, err := analyzer.CompareStreams(streams)
		if err != nil {
			return err
		}
		for _, e := range errs {
			if e != nil {
				logging.Error(e, "input failed during comparison")
			}
		}
		renderComparison(os.Stdout, set)
	}

	return nil
}

func validateArgs(cmd *cli.Command, files []string) error {
	if len(files) == 0 {
		return errNoInput
	}
	if len(files) > analysis.MaxCompareFiles {
		return errTooManyInputs
	}
	if len(files) > 1 && (cmd.Bool("time") || cmd.Bool("weighted")) {
		return errTimelineMulti
	}
	if cmd.IsSet("interval") && !cmd.Bool("time") {
		return errIntervalNoTime
	}
	if cmd.Int("interval") < 1 {
		return errBadInterval
	}
	return nil
}
