package dna

import (
	"fmt"

	"github.com/samcharles93/assetcodec/internal/archive"
)

// All readers below expect a big-endian archive.Reader.

var (
	u16s = archive.ReadSlice[uint16]
	f32s = archive.ReadSlice[float32]
)

func readSectionTable(r archive.Reader, base int64) (SectionTable, error) {
	t := SectionTable{Base: base}
	for _, dst := range []*uint32{
		&t.Descriptor,
		&t.Definition,
		&t.Behavior,
		&t.Controls,
		&t.Joints,
		&t.BlendShapeChannels,
		&t.AnimatedMaps,
		&t.Geometry,
	} {
		v, err := r.ReadUint32()
		if err != nil {
			return SectionTable{}, err
		}
		*dst = v
	}
	return t, nil
}

type u16Field struct {
	name string
	dst  *uint16
}

// readUint16Fields fills each field in order, naming the failed one.
func readUint16Fields(r archive.Reader, fields ...u16Field) error {
	for _, f := range fields {
		v, err := r.ReadUint16()
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}
	return nil
}

func readMetadataPair(r archive.Reader) (MetadataPair, error) {
	k, err := archive.ReadString(r)
	if err != nil {
		return MetadataPair{}, fmt.Errorf("key: %w", err)
	}
	v, err := archive.ReadString(r)
	if err != nil {
		return MetadataPair{}, fmt.Errorf("value: %w", err)
	}
	return MetadataPair{Key: k, Value: v}, nil
}

func readDescriptor(r archive.Reader) (Descriptor, error) {
	var (
		d   Descriptor
		err error
	)
	if d.Name, err = archive.ReadString(r); err != nil {
		return d, fmt.Errorf("name: %w", err)
	}
	if err := readUint16Fields(r,
		u16Field{"archetype", &d.Archetype},
		u16Field{"gender", &d.Gender},
		u16Field{"age", &d.Age},
	); err != nil {
		return d, err
	}
	if d.Metadata, err = archive.ReadArray(r, readMetadataPair); err != nil {
		return d, fmt.Errorf("metadata: %w", err)
	}
	if err := readUint16Fields(r,
		u16Field{"translationUnit", &d.TranslationUnit},
		u16Field{"rotationUnit", &d.RotationUnit},
		u16Field{"coordinateSystem.xAxis", &d.CoordinateSystem.XAxis},
		u16Field{"coordinateSystem.yAxis", &d.CoordinateSystem.YAxis},
		u16Field{"coordinateSystem.zAxis", &d.CoordinateSystem.ZAxis},
		u16Field{"lodCount", &d.LODCount},
		u16Field{"maxLOD", &d.MaxLOD},
	); err != nil {
		return d, err
	}
	if d.Complexity, err = archive.ReadString(r); err != nil {
		return d, fmt.Errorf("complexity: %w", err)
	}
	if d.DBName, err = archive.ReadString(r); err != nil {
		return d, fmt.Errorf("dbName: %w", err)
	}
	return d, nil
}

func readLODMapping(r archive.Reader) (LODMapping, error) {
	lods, err := u16s(r)
	if err != nil {
		return LODMapping{}, fmt.Errorf("lods: %w", err)
	}
	indices, err := archive.ReadArray(r, u16s)
	if err != nil {
		return LODMapping{}, fmt.Errorf("indices: %w", err)
	}
	return LODMapping{LODs: lods, Indices: indices}, nil
}

func readVector3Vector(r archive.Reader) (Vector3Vector, error) {
	var (
		v   Vector3Vector
		err error
	)
	if v.Xs, err = f32s(r); err != nil {
		return v, fmt.Errorf("xs: %w", err)
	}
	if v.Ys, err = f32s(r); err != nil {
		return v, fmt.Errorf("ys: %w", err)
	}
	if v.Zs, err = f32s(r); err != nil {
		return v, fmt.Errorf("zs: %w", err)
	}
	return v, nil
}

func readDefinition(r archive.Reader) (Definition, error) {
	var (
		d   Definition
		err error
	)
	for _, m := range []struct {
		name string
		dst  *LODMapping
	}{
		{"lodJointMapping", &d.LODJointMapping},
		{"lodBlendShapeMapping", &d.LODBlendShapeMapping},
		{"lodAnimatedMapMapping", &d.LODAnimatedMapMapping},
		{"lodMeshMapping", &d.LODMeshMapping},
	} {
		if *m.dst, err = readLODMapping(r); err != nil {
			return d, fmt.Errorf("%s: %w", m.name, err)
		}
	}
	for _, names := range []struct {
		name string
		dst  *[]string
	}{
		{"guiControlNames", &d.GUIControlNames},
		{"rawControlNames", &d.RawControlNames},
		{"jointNames", &d.JointNames},
		{"blendShapeChannelNames", &d.BlendShapeChannelNames},
		{"animatedMapNames", &d.AnimatedMapNames},
		{"meshNames", &d.MeshNames},
	} {
		if *names.dst, err = archive.ReadStrings(r); err != nil {
			return d, fmt.Errorf("%s: %w", names.name, err)
		}
	}
	if d.MeshBlendShapeChannelMapping.From, err = u16s(r); err != nil {
		return d, fmt.Errorf("meshBlendShapeChannelMapping.from: %w", err)
	}
	if d.MeshBlendShapeChannelMapping.To, err = u16s(r); err != nil {
		return d, fmt.Errorf("meshBlendShapeChannelMapping.to: %w", err)
	}
	if d.JointHierarchy, err = u16s(r); err != nil {
		return d, fmt.Errorf("jointHierarchy: %w", err)
	}
	if d.NeutralJointTranslations, err = readVector3Vector(r); err != nil {
		return d, fmt.Errorf("neutralJointTranslations: %w", err)
	}
	if d.NeutralJointRotations, err = readVector3Vector(r); err != nil {
		return d, fmt.Errorf("neutralJointRotations: %w", err)
	}
	return d, nil
}

func readConditionalTable(r archive.Reader) (ConditionalTable, error) {
	var (
		c   ConditionalTable
		err error
	)
	if c.InputIndices, err = u16s(r); err != nil {
		return c, fmt.Errorf("inputIndices: %w", err)
	}
	if c.OutputIndices, err = u16s(r); err != nil {
		return c, fmt.Errorf("outputIndices: %w", err)
	}
	if c.FromValues, err = f32s(r); err != nil {
		return c, fmt.Errorf("fromValues: %w", err)
	}
	if c.ToValues, err = f32s(r); err != nil {
		return c, fmt.Errorf("toValues: %w", err)
	}
	if c.SlopeValues, err = f32s(r); err != nil {
		return c, fmt.Errorf("slopeValues: %w", err)
	}
	if c.CutValues, err = f32s(r); err != nil {
		return c, fmt.Errorf("cutValues: %w", err)
	}
	return c, nil
}

func readPSDMatrix(r archive.Reader) (PSDMatrix, error) {
	var (
		m   PSDMatrix
		err error
	)
	if m.Rows, err = u16s(r); err != nil {
		return m, fmt.Errorf("rows: %w", err)
	}
	if m.Columns, err = u16s(r); err != nil {
		return m, fmt.Errorf("columns: %w", err)
	}
	if m.Values, err = f32s(r); err != nil {
		return m, fmt.Errorf("values: %w", err)
	}
	return m, nil
}

func readControls(r archive.Reader) (Controls, error) {
	var (
		c   Controls
		err error
	)
	if c.PSDCount, err = r.ReadUint16(); err != nil {
		return c, fmt.Errorf("psdCount: %w", err)
	}
	if c.Conditionals, err = readConditionalTable(r); err != nil {
		return c, fmt.Errorf("conditionals: %w", err)
	}
	if c.PSDs, err = readPSDMatrix(r); err != nil {
		return c, fmt.Errorf("psds: %w", err)
	}
	return c, nil
}

func readJointGroup(r archive.Reader) (JointGroup, error) {
	var (
		g   JointGroup
		err error
	)
	if g.LODs, err = u16s(r); err != nil {
		return g, fmt.Errorf("lods: %w", err)
	}
	if g.InputIndices, err = u16s(r); err != nil {
		return g, fmt.Errorf("inputIndices: %w", err)
	}
	if g.OutputIndices, err = u16s(r); err != nil {
		return g, fmt.Errorf("outputIndices: %w", err)
	}
	if g.Values, err = f32s(r); err != nil {
		return g, fmt.Errorf("values: %w", err)
	}
	if g.JointIndices, err = u16s(r); err != nil {
		return g, fmt.Errorf("jointIndices: %w", err)
	}
	return g, nil
}

func readJoints(r archive.Reader) (Joints, error) {
	var (
		j   Joints
		err error
	)
	if err := readUint16Fields(r, u16Field{"rowCount", &j.RowCount}, u16Field{"colCount", &j.ColCount}); err != nil {
		return j, err
	}
	if j.JointGroups, err = archive.ReadArray(r, readJointGroup); err != nil {
		return j, fmt.Errorf("jointGroups: %w", err)
	}
	return j, nil
}

func readBlendShapeChannels(r archive.Reader) (BlendShapeChannels, error) {
	var (
		b   BlendShapeChannels
		err error
	)
	if b.LODs, err = u16s(r); err != nil {
		return b, fmt.Errorf("lods: %w", err)
	}
	if b.InputIndices, err = u16s(r); err != nil {
		return b, fmt.Errorf("inputIndices: %w", err)
	}
	if b.OutputIndices, err = u16s(r); err != nil {
		return b, fmt.Errorf("outputIndices: %w", err)
	}
	return b, nil
}

func readAnimatedMaps(r archive.Reader) (AnimatedMaps, error) {
	var (
		a   AnimatedMaps
		err error
	)
	if a.LODs, err = u16s(r); err != nil {
		return a, fmt.Errorf("lods: %w", err)
	}
	if a.Conditionals, err = readConditionalTable(r); err != nil {
		return a, fmt.Errorf("conditionals: %w", err)
	}
	return a, nil
}
