package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/samcharles93/assetcodec/internal/archive"
	"github.com/samcharles93/assetcodec/internal/customversion"
	"github.com/samcharles93/assetcodec/internal/logger"
	"github.com/samcharles93/assetcodec/internal/source"
)

// loadVersions returns the registry and version table named by --versions,
// or the built-in registry and an empty table.
func loadVersions() (*customversion.Registry, customversion.Table, error) {
	if versionsFile == "" {
		return customversion.DefaultRegistry(), customversion.Table{}, nil
	}
	return customversion.LoadFile(versionsFile, nil)
}

// openInput maps the input file and positions a cursor at the asset body.
// Entries of a serialized table at --table-offset override the YAML table.
func openInput(in *inputFlags, log logger.Logger) (*source.Source, *archive.Cursor, *customversion.Registry, customversion.Table, error) {
	reg, table, err := loadVersions()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	src, err := source.Open(in.file, maxSize)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	log.Debug("opened input", "file", in.file, "bytes", src.Len(), "mapped", src.Mapped())

	if in.tableOffset >= 0 {
		tc := src.Cursor()
		if err := tc.Seek(in.tableOffset); err != nil {
			_ = src.Close()
			return nil, nil, nil, nil, fmt.Errorf("table offset: %w", err)
		}
		stored, err := customversion.ReadTable(tc)
		if err != nil {
			_ = src.Close()
			return nil, nil, nil, nil, err
		}
		for g, v := range stored {
			table[g] = v
		}
		log.Debug("read custom version table", "offset", in.tableOffset, "entries", len(stored))
	}

	c := src.Cursor()
	if err := c.Seek(in.offset); err != nil {
		_ = src.Close()
		return nil, nil, nil, nil, fmt.Errorf("offset: %w", err)
	}
	return src, c, reg, table, nil
}

// report is the JSON document printed by the decode commands.
type report struct {
	File     string            `json:"file"`
	Offset   int64             `json:"offset"`
	Result   any               `json:"result"`
	Warnings []archive.Warning `json:"warnings,omitempty"`
}

func writeJSON(w io.Writer, v any, indent bool) error {
	var (
		out []byte
		err error
	)
	if indent {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
