package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/assetcodec/internal/customversion"
)

type formatReport struct {
	Name       string                   `json:"name"`
	GUID       customversion.GUID       `json:"guid"`
	Latest     int32                    `json:"latest"`
	Default    int32                    `json:"default"`
	Resolution customversion.Resolution `json:"resolution"`
}

func versionsCmd() *cli.Command {
	var indent bool

	return &cli.Command{
		Name:  "versions",
		Usage: "List registered formats and how the version table resolves them",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "indent", Usage: "indent JSON output", Value: true, Destination: &indent},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg, table, err := loadVersions()
			if err != nil {
				return err
			}
			return writeJSON(cmd.Root().Writer, describeFormats(reg, table), indent)
		},
	}
}

func describeFormats(reg *customversion.Registry, table customversion.Table) []formatReport {
	formats := reg.Formats()
	out := make([]formatReport, 0, len(formats))
	for _, f := range formats {
		out = append(out, formatReport{
			Name:       f.Name,
			GUID:       f.GUID,
			Latest:     f.Latest,
			Default:    f.Default,
			Resolution: reg.Resolve(table, f.GUID),
		})
	}
	return out
}
