// Package dna decodes DNA rig blobs: a big-endian container with a fixed
// section table locating a descriptor, a definition, a behavior and a
// geometry section.
//
// Geometry is not decoded. The decoder skips the 4 bytes at its offset and
// checks the footer that follows.
package dna

import "fmt"

var (
	signature = [3]byte{'D', 'N', 'A'}
	footer    = [3]byte{'A', 'N', 'D'}
)

// FileVersion is generation<<16 + version.
type FileVersion uint32

const (
	VersionUnknown FileVersion = 0
	V21            FileVersion = 2<<16 + 1
	V22            FileVersion = 2<<16 + 2
	V23            FileVersion = 2<<16 + 3

	LatestVersion = V23
)

func (v FileVersion) Generation() uint16 { return uint16(v >> 16) }
func (v FileVersion) Revision() uint16   { return uint16(v) }

// Known reports whether v is one of the versions this package has layouts for.
func (v FileVersion) Known() bool {
	switch v {
	case V21, V22, V23:
		return true
	}
	return false
}

func (v FileVersion) String() string {
	if v.Known() {
		return fmt.Sprintf("v%d%d", v.Generation(), v.Revision())
	}
	return fmt.Sprintf("unknown(%d.%d)", v.Generation(), v.Revision())
}

func (v FileVersion) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Version holds the two raw header fields.
type Version struct {
	Generation uint16 `json:"generation"`
	Version    uint16 `json:"version"`
}

func (v Version) File() FileVersion {
	return FileVersion(uint32(v.Generation)<<16 + uint32(v.Version))
}

// Section names used in errors and logs.
const (
	SectionDescriptor         = "descriptor"
	SectionDefinition         = "definition"
	SectionBehavior           = "behavior"
	SectionControls           = "controls"
	SectionJoints             = "joints"
	SectionBlendShapeChannels = "blendShapeChannels"
	SectionAnimatedMaps       = "animatedMaps"
	SectionGeometry           = "geometry"
	sectionHeader             = "header"
)

// SectionTable locates each section relative to Base, the absolute position
// of the signature.
type SectionTable struct {
	Base               int64  `json:"base"`
	Descriptor         uint32 `json:"descriptor"`
	Definition         uint32 `json:"definition"`
	Behavior           uint32 `json:"behavior"`
	Controls           uint32 `json:"controls"`
	Joints             uint32 `json:"joints"`
	BlendShapeChannels uint32 `json:"blendShapeChannels"`
	AnimatedMaps       uint32 `json:"animatedMaps"`
	Geometry           uint32 `json:"geometry"`
}

// Offset returns the absolute position of a named section, or false for an
// unknown name.
func (t SectionTable) Offset(section string) (int64, bool) {
	var rel uint32
	switch section {
	case SectionDescriptor:
		rel = t.Descriptor
	case SectionDefinition:
		rel = t.Definition
	case SectionBehavior:
		rel = t.Behavior
	case SectionControls:
		rel = t.Controls
	case SectionJoints:
		rel = t.Joints
	case SectionBlendShapeChannels:
		rel = t.BlendShapeChannels
	case SectionAnimatedMaps:
		rel = t.AnimatedMaps
	case SectionGeometry:
		rel = t.Geometry
	default:
		return 0, false
	}
	return t.Base + int64(rel), true
}

type CoordinateSystem struct {
	XAxis uint16 `json:"xAxis"`
	YAxis uint16 `json:"yAxis"`
	ZAxis uint16 `json:"zAxis"`
}

type MetadataPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Descriptor struct {
	Name             string           `json:"name"`
	Archetype        uint16           `json:"archetype"`
	Gender           uint16           `json:"gender"`
	Age              uint16           `json:"age"`
	Metadata         []MetadataPair   `json:"metadata"`
	TranslationUnit  uint16           `json:"translationUnit"`
	RotationUnit     uint16           `json:"rotationUnit"`
	CoordinateSystem CoordinateSystem `json:"coordinateSystem"`
	LODCount         uint16           `json:"lodCount"`
	MaxLOD           uint16           `json:"maxLOD"`
	Complexity       string           `json:"complexity"`
	DBName           string           `json:"dbName"`
}

// LODMapping maps each LOD to a list of element indices. Indices has one
// inner slice per entry of LODs.
type LODMapping struct {
	LODs    []uint16   `json:"lods"`
	Indices [][]uint16 `json:"indices"`
}

// Vector3Vector stores points as structure-of-arrays.
type Vector3Vector struct {
	Xs []float32 `json:"xs"`
	Ys []float32 `json:"ys"`
	Zs []float32 `json:"zs"`
}

// Len is the number of complete points.
func (v Vector3Vector) Len() int {
	return min(len(v.Xs), len(v.Ys), len(v.Zs))
}

// At returns point i.
func (v Vector3Vector) At(i int) [3]float32 {
	return [3]float32{v.Xs[i], v.Ys[i], v.Zs[i]}
}

// SurjectiveMapping relates From[i] to To[i]. Neither side is checked for
// uniqueness or coverage.
type SurjectiveMapping struct {
	From []uint16 `json:"from"`
	To   []uint16 `json:"to"`
}

type Definition struct {
	LODJointMapping              LODMapping        `json:"lodJointMapping"`
	LODBlendShapeMapping         LODMapping        `json:"lodBlendShapeMapping"`
	LODAnimatedMapMapping        LODMapping        `json:"lodAnimatedMapMapping"`
	LODMeshMapping               LODMapping        `json:"lodMeshMapping"`
	GUIControlNames              []string          `json:"guiControlNames"`
	RawControlNames              []string          `json:"rawControlNames"`
	JointNames                   []string          `json:"jointNames"`
	BlendShapeChannelNames       []string          `json:"blendShapeChannelNames"`
	AnimatedMapNames             []string          `json:"animatedMapNames"`
	MeshNames                    []string          `json:"meshNames"`
	MeshBlendShapeChannelMapping SurjectiveMapping `json:"meshBlendShapeChannelMapping"`
	// JointHierarchy holds the parent index of each joint.
	JointHierarchy           []uint16      `json:"jointHierarchy"`
	NeutralJointTranslations Vector3Vector `json:"neutralJointTranslations"`
	NeutralJointRotations    Vector3Vector `json:"neutralJointRotations"`
}

// ConditionalTable is a piecewise-linear mapping from inputs to outputs.
type ConditionalTable struct {
	InputIndices  []uint16  `json:"inputIndices"`
	OutputIndices []uint16  `json:"outputIndices"`
	FromValues    []float32 `json:"fromValues"`
	ToValues      []float32 `json:"toValues"`
	SlopeValues   []float32 `json:"slopeValues"`
	CutValues     []float32 `json:"cutValues"`
}

// PSDMatrix is a sparse matrix in coordinate form.
type PSDMatrix struct {
	Rows    []uint16  `json:"rows"`
	Columns []uint16  `json:"columns"`
	Values  []float32 `json:"values"`
}

type Controls struct {
	PSDCount     uint16           `json:"psdCount"`
	Conditionals ConditionalTable `json:"conditionals"`
	PSDs         PSDMatrix        `json:"psds"`
}

type JointGroup struct {
	LODs          []uint16  `json:"lods"`
	InputIndices  []uint16  `json:"inputIndices"`
	OutputIndices []uint16  `json:"outputIndices"`
	Values        []float32 `json:"values"`
	JointIndices  []uint16  `json:"jointIndices"`
}

type Joints struct {
	RowCount    uint16       `json:"rowCount"`
	ColCount    uint16       `json:"colCount"`
	JointGroups []JointGroup `json:"jointGroups"`
}

type BlendShapeChannels struct {
	LODs          []uint16 `json:"lods"`
	InputIndices  []uint16 `json:"inputIndices"`
	OutputIndices []uint16 `json:"outputIndices"`
}

type AnimatedMaps struct {
	LODs         []uint16         `json:"lods"`
	Conditionals ConditionalTable `json:"conditionals"`
}

type Behavior struct {
	Controls           Controls           `json:"controls"`
	Joints             Joints             `json:"joints"`
	BlendShapeChannels BlendShapeChannels `json:"blendShapeChannels"`
	AnimatedMaps       AnimatedMaps       `json:"animatedMaps"`
}

// File is a decoded DNA blob.
type File struct {
	Version     Version      `json:"version"`
	FileVersion FileVersion  `json:"fileVersion"`
	Sections    SectionTable `json:"sections"`
	Descriptor  Descriptor   `json:"descriptor"`
	Definition  Definition   `json:"definition"`
	Behavior    Behavior     `json:"behavior"`
}
