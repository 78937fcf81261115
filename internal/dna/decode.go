package dna

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/samcharles93/assetcodec/internal/archive"
	"github.com/samcharles93/assetcodec/internal/customversion"
	"github.com/samcharles93/assetcodec/internal/logger"
)

// geometrySkip is the number of bytes consumed at the geometry offset before
// the footer.
const geometrySkip = 4

// Decoder decodes DNA blobs. The zero value is ready to use.
type Decoder struct {
	Log      logger.Logger
	Registry *customversion.Registry
}

func (d *Decoder) log() logger.Logger {
	if d.Log == nil {
		return logger.Nop()
	}
	return d.Log
}

func (d *Decoder) format() customversion.Format {
	if d.Registry != nil {
		if f, ok := d.Registry.Lookup(customversion.DNAAsset.Name); ok {
			return f
		}
	}
	return customversion.DNAAsset
}

// Decode reads a DNA blob starting at r's position. r is read big-endian
// whatever its own byte order.
//
// A missing signature is not an error: Decode restores the position and
// returns a nil File with no warnings. A bad footer or an unknown file
// version is reported as a warning next to the decoded File. Any other
// problem fails the whole decode and no File is returned.
func (d *Decoder) Decode(r archive.Reader) (*File, []archive.Warning, error) {
	be := archive.NewBigEndian(r)
	log := d.log()

	start := be.Position()
	magic, err := be.ReadBytes(len(signature))
	if err != nil || !bytes.Equal(magic, signature[:]) {
		if err := be.Seek(start); err != nil {
			return nil, nil, err
		}
		log.Debug("dna signature absent", "offset", start)
		return nil, nil, nil
	}

	var (
		f        File
		warnings []archive.Warning
	)

	versionAt := be.Position()
	if f.Version.Generation, err = be.ReadUint16(); err != nil {
		return nil, nil, sectionError(sectionHeader, fmt.Errorf("generation: %w", err))
	}
	if f.Version.Version, err = be.ReadUint16(); err != nil {
		return nil, nil, sectionError(sectionHeader, fmt.Errorf("version: %w", err))
	}
	f.FileVersion = f.Version.File()
	if !f.FileVersion.Known() {
		w := archive.Warning{
			Kind:    archive.WarnUnsupportedVersion,
			Offset:  versionAt,
			Message: fmt.Sprintf("dna file version %s is not known; decoding with %s layout", f.FileVersion, LatestVersion),
		}
		log.Warn("unknown dna file version", "version", f.FileVersion.String(), "offset", versionAt)
		warnings = append(warnings, w)
	}

	if f.Sections, err = readSectionTable(be, start); err != nil {
		return nil, nil, sectionError(sectionHeader, fmt.Errorf("section table: %w", err))
	}
	log.Debug("dna header", "version", f.FileVersion.String(), "base", start)

	s := sectionReader{r: be, table: f.Sections, log: log}

	if err := s.seek(SectionDescriptor); err != nil {
		return nil, nil, err
	}
	if f.Descriptor, err = readDescriptor(be); err != nil {
		return nil, nil, sectionError(SectionDescriptor, err)
	}

	if err := s.seek(SectionDefinition); err != nil {
		return nil, nil, err
	}
	if f.Definition, err = readDefinition(be); err != nil {
		return nil, nil, sectionError(SectionDefinition, err)
	}

	if f.Behavior, err = s.readBehavior(); err != nil {
		return nil, nil, err
	}

	if err := s.seek(SectionGeometry); err != nil {
		return nil, nil, err
	}
	if err := be.Skip(geometrySkip); err != nil {
		return nil, nil, sectionError(SectionGeometry, err)
	}

	footerAt := be.Position()
	tail, err := be.ReadBytes(len(footer))
	switch {
	case err != nil:
		log.Warn("dna footer truncated", "offset", footerAt)
		warnings = append(warnings, archive.Warning{
			Kind:    archive.WarnIntegrity,
			Offset:  footerAt,
			Message: fmt.Sprintf("dna footer truncated: %d of %d bytes", archive.Remaining(be), len(footer)),
		})
	case !bytes.Equal(tail, footer[:]):
		log.Warn("dna footer mismatch", "offset", footerAt, "got", string(tail))
		warnings = append(warnings, archive.Warning{
			Kind:    archive.WarnIntegrity,
			Offset:  footerAt,
			Message: fmt.Sprintf("dna footer mismatch: got %q, want %q", tail, footer[:]),
		})
	}
	return &f, warnings, nil
}

// Asset is a DNA asset body: the resolved custom version and the embedded
// blob. DNA is nil when the blob has no signature.
type Asset struct {
	Version customversion.Resolution `json:"version"`
	DNA     *File                    `json:"dna"`
}

// DecodeAsset resolves the DNAAsset custom version from versions and decodes
// the embedded blob when the asset is new enough to carry one.
func (d *Decoder) DecodeAsset(r archive.Reader, versions customversion.Table) (*Asset, []archive.Warning, error) {
	res := d.format().Resolve(versions)
	asset := &Asset{Version: res}

	var warnings []archive.Warning
	if w, ok := res.Warning(r.Position()); ok {
		d.log().Warn("newer custom version than supported", "format", res.Format, "custom_version", res.Ordinal, "latest", res.Latest)
		warnings = append(warnings, w)
	}
	if !res.AtLeast(0) {
		return asset, warnings, nil
	}

	f, ws, err := d.Decode(r)
	if err != nil {
		return nil, nil, err
	}
	asset.DNA = f
	return asset, append(warnings, ws...), nil
}

// Decode decodes with a zero Decoder.
func Decode(r archive.Reader) (*File, []archive.Warning, error) {
	var d Decoder
	return d.Decode(r)
}

// DecodeAsset decodes with a zero Decoder.
func DecodeAsset(r archive.Reader, versions customversion.Table) (*Asset, []archive.Warning, error) {
	var d Decoder
	return d.DecodeAsset(r, versions)
}

// sectionError names the section in err. A *FormatError without a section
// gets this one; anything else is wrapped.
func sectionError(section string, err error) error {
	var fe *archive.FormatError
	if errors.As(err, &fe) && fe.Section == "" {
		fe.Section = section
	}
	return fmt.Errorf("dna %s: %w", section, err)
}

type sectionReader struct {
	r     archive.Reader
	table SectionTable
	log   logger.Logger
}

// seek moves to a section. An offset outside the source is a *FormatError
// carrying the section and the absolute offset.
func (s *sectionReader) seek(section string) error {
	off, _ := s.table.Offset(section)
	if err := s.r.Seek(off); err != nil {
		return &archive.FormatError{
			Offset:  off,
			Section: section,
			Reason:  "section offset outside source",
			Err:     err,
		}
	}
	s.log.Debug("dna section", "section", section, "offset", off)
	return nil
}

// readBehavior seeks each behavior block to its own table entry. The behavior
// entry itself must still point inside the source.
func (s *sectionReader) readBehavior() (Behavior, error) {
	var (
		b   Behavior
		err error
	)
	if err := s.seek(SectionBehavior); err != nil {
		return b, err
	}

	if err := s.seek(SectionControls); err != nil {
		return b, err
	}
	if b.Controls, err = readControls(s.r); err != nil {
		return b, sectionError(SectionControls, err)
	}

	if err := s.seek(SectionJoints); err != nil {
		return b, err
	}
	if b.Joints, err = readJoints(s.r); err != nil {
		return b, sectionError(SectionJoints, err)
	}

	if err := s.seek(SectionBlendShapeChannels); err != nil {
		return b, err
	}
	if b.BlendShapeChannels, err = readBlendShapeChannels(s.r); err != nil {
		return b, sectionError(SectionBlendShapeChannels, err)
	}

	if err := s.seek(SectionAnimatedMaps); err != nil {
		return b, err
	}
	if b.AnimatedMaps, err = readAnimatedMaps(s.r); err != nil {
		return b, sectionError(SectionAnimatedMaps, err)
	}
	return b, nil
}
