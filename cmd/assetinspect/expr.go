package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/assetcodec/internal/archive"
	"github.com/samcharles93/assetcodec/internal/curveexpr"
	"github.com/samcharles93/assetcodec/internal/logger"
)

func exprCmd() *cli.Command {
	var (
		in        inputFlags
		namesFile string
		mode      string
	)

	return &cli.Command{
		Name:  "expr",
		Usage: "Decode curve expression bytecode",
		Flags: append(in.flags(),
			&cli.StringFlag{
				Name:        "names",
				Usage:       "YAML list of names indexed by the stream's name handles",
				Destination: &namesFile,
			},
			&cli.StringFlag{
				Name:        "mode",
				Usage:       "what the offset points at (asset, map, expression)",
				Value:       "asset",
				Destination: &mode,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx).With("command", "expr")

			names, err := loadNames(namesFile)
			if err != nil {
				return err
			}
			src, c, reg, table, err := openInput(&in, log)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			rep := report{File: in.file, Offset: in.offset}
			switch mode {
			case "asset":
				d := curveexpr.Decoder{Log: log, Registry: reg}
				asset, warnings, err := d.DecodeAsset(c, names, table)
				if err != nil {
					return err
				}
				rep.Result, rep.Warnings = asset, warnings
			case "map":
				m, err := curveexpr.DecodeExpressionMap(c, names)
				if err != nil {
					return err
				}
				rep.Result = m
			case "expression":
				e, err := curveexpr.DecodeExpression(c, names)
				if err != nil {
					return err
				}
				log.Info("decoded expression", "program", e.String())
				rep.Result = e
			default:
				return fmt.Errorf("unknown mode %q", mode)
			}
			log.Debug("decode finished", "end", c.Position())
			return writeJSON(cmd.Root().Writer, rep, in.indent)
		},
	}
}

// loadNames reads a YAML sequence of strings. An empty path leaves names
// unresolved.
func loadNames(path string) (archive.NameTable, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return archive.NameMap(names), nil
}
