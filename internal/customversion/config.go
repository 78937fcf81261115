package customversion

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML document that extends a registry and supplies a version
// table:
//
//	formats:
//	  - name: DNAAsset
//	    guid: 9F41E1E5-4B0A-7C1D-8E6F-2A9351C4D2B7
//	    latest: 0
//	versions:
//	  CurveExpression: 2
//	  A26D36AE-2693-5388-A8C5-CB962B95B4AF: 1
//
// Version keys are format names or GUIDs.
type File struct {
	Formats  []FormatSpec     `yaml:"formats"`
	Versions map[string]int32 `yaml:"versions"`
}

type FormatSpec struct {
	Name   string `yaml:"name"`
	GUID   string `yaml:"guid"`
	Latest int32  `yaml:"latest"`
	// Default is optional; nil means Latest.
	Default *int32 `yaml:"default"`
}

// LoadFile reads a registry file from disk. See Parse.
func LoadFile(path string, base *Registry) (*Registry, Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	reg, table, err := Parse(data, base)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, table, nil
}

// Parse applies the formats in data on top of base and resolves the version
// keys against the result. A nil base starts from DefaultRegistry.
func Parse(data []byte, base *Registry) (*Registry, Table, error) {
	if base == nil {
		base = DefaultRegistry()
	}
	var doc File
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse registry: %w", err)
	}

	formats := make([]Format, 0, len(doc.Formats))
	for i, ff := range doc.Formats {
		f, err := ff.format()
		if err != nil {
			return nil, nil, fmt.Errorf("format %d: %w", i, err)
		}
		formats = append(formats, f)
	}
	reg, err := base.With(formats...)
	if err != nil {
		return nil, nil, err
	}

	table := make(Table, len(doc.Versions))
	for key, v := range doc.Versions {
		if f, ok := reg.Lookup(key); ok {
			table[f.GUID] = v
			continue
		}
		g, err := ParseGUID(key)
		if err != nil {
			return nil, nil, fmt.Errorf("version key %q is neither a registered format nor a guid", key)
		}
		table[g] = v
	}
	return reg, table, nil
}

func (s FormatSpec) format() (Format, error) {
	if s.Name == "" {
		return Format{}, fmt.Errorf("missing name")
	}
	g, err := ParseGUID(s.GUID)
	if err != nil {
		return Format{}, err
	}
	f := Format{Name: s.Name, GUID: g, Latest: s.Latest, Default: s.Latest}
	if s.Default != nil {
		f.Default = *s.Default
	}
	return f, nil
}
