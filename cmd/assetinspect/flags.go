package main

import "github.com/urfave/cli/v3"

var (
	logLevel     string
	logFormat    string
	debug        bool
	maxSize      int64
	versionsFile string
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
		&cli.Int64Flag{
			Name:        "max-size",
			Usage:       "refuse input files larger than this many bytes (0 = no limit)",
			Value:       1 << 30,
			Destination: &maxSize,
		},
		&cli.StringFlag{
			Name:        "versions",
			Usage:       "YAML file with extra formats and a custom version table",
			Destination: &versionsFile,
		},
	}
}

// inputFlags are shared by the decode commands.
type inputFlags struct {
	file        string
	offset      int64
	tableOffset int64
	indent      bool
}

func (in *inputFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "path to the asset file",
			Destination: &in.file,
			Required:    true,
		},
		&cli.Int64Flag{
			Name:        "offset",
			Usage:       "byte offset of the asset body",
			Destination: &in.offset,
		},
		&cli.Int64Flag{
			Name:        "table-offset",
			Usage:       "byte offset of a serialized custom version table in the same file (-1 = none)",
			Value:       -1,
			Destination: &in.tableOffset,
		},
		&cli.BoolFlag{
			Name:        "indent",
			Usage:       "indent JSON output",
			Value:       true,
			Destination: &in.indent,
		},
	}
}
