package customversion

// Built-in formats. Ordinals are never renumbered; new ones are appended.
var (
	// CurveExpression gates the curve expression data asset layout:
	// 0 before custom versioning, 1 serialized expressions,
	// 2 expression data moved into the shared asset object.
	CurveExpression = Format{
		Name:    "CurveExpression",
		GUID:    GUID{A: 0xA26D36AE, B: 0x26935388, C: 0xA8C5CB96, D: 0x2B95B4AF},
		Latest:  2,
		Default: 2,
	}

	// DNAAsset gates the rig asset wrapper around an embedded DNA blob.
	// Only ordinal 0 exists. The GUID is local to this module; hosts that key
	// the format differently override it from a registry file.
	DNAAsset = Format{
		Name:    "DNAAsset",
		GUID:    GUID{A: 0x9F41E1E5, B: 0x4B0A7C1D, C: 0x8E6F2A93, D: 0x51C4D2B7},
		Latest:  0,
		Default: 0,
	}
)

// DefaultRegistry returns a registry holding the built-in formats.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(CurveExpression, DNAAsset)
	if err != nil {
		panic(err)
	}
	return r
}
