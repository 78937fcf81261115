package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/assetcodec/internal/dna"
	"github.com/samcharles93/assetcodec/internal/logger"
)

func dnaCmd() *cli.Command {
	var (
		in    inputFlags
		asset bool
	)

	return &cli.Command{
		Name:  "dna",
		Usage: "Decode a DNA rig blob",
		Flags: append(in.flags(),
			&cli.BoolFlag{
				Name:        "asset",
				Usage:       "gate decoding on the DNAAsset custom version",
				Destination: &asset,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx).With("command", "dna")

			src, c, reg, table, err := openInput(&in, log)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			d := dna.Decoder{Log: log, Registry: reg}
			rep := report{File: in.file, Offset: in.offset}
			if asset {
				a, warnings, err := d.DecodeAsset(c, table)
				if err != nil {
					return err
				}
				rep.Result, rep.Warnings = a, warnings
			} else {
				f, warnings, err := d.Decode(c)
				if err != nil {
					return err
				}
				if f == nil {
					log.Warn("no DNA signature at offset", "offset", in.offset)
				}
				rep.Result, rep.Warnings = f, warnings
			}
			return writeJSON(cmd.Root().Writer, rep, in.indent)
		},
	}
}
