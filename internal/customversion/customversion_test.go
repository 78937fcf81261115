package customversion

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/samcharles93/assetcodec/internal/archive"
)

func TestParseGUIDForms(t *testing.T) {
	t.Parallel()

	want := CurveExpression.GUID
	for _, s := range []string{
		"A26D36AE-2693-5388-A8C5-CB962B95B4AF",
		"a26d36ae-2693-5388-a8c5-cb962b95b4af",
		"{a26d36ae-2693-5388-a8c5-cb962b95b4af}",
		"urn:uuid:a26d36ae-2693-5388-a8c5-cb962b95b4af",
		"A26D36AE26935388A8C5CB962B95B4AF",
	} {
		got, err := ParseGUID(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if got != want {
			t.Fatalf("parse %q: got %+v want %+v", s, got, want)
		}
	}
	if want.String() != "A26D36AE-2693-5388-A8C5-CB962B95B4AF" {
		t.Fatalf("unexpected text form %s", want)
	}
	if _, err := ParseGUID("not-a-guid"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolveMissingEntryUsesDefault(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	for _, f := range reg.Formats() {
		res := reg.Resolve(nil, f.GUID)
		if res.Ordinal != f.Default || res.FromTable || res.Ahead {
			t.Fatalf("%s: unexpected resolution %+v", f.Name, res)
		}
		res = reg.Resolve(Table{}, f.GUID)
		if res.Ordinal != f.Default {
			t.Fatalf("%s: empty table resolved to %d", f.Name, res.Ordinal)
		}
	}

	unknown := GUID{A: 1, B: 2, C: 3, D: 4}
	res := reg.Resolve(Table{CurveExpression.GUID: 1}, unknown)
	if res.Ordinal != 0 || res.FromTable {
		t.Fatalf("unregistered guid: %+v", res)
	}
}

func TestResolvePresentEntryIsVerbatim(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	tests := []struct {
		ordinal int32
		ahead   bool
	}{
		{ordinal: 0},
		{ordinal: 1},
		{ordinal: 2},
		{ordinal: 3, ahead: true},
		{ordinal: 1000, ahead: true},
	}
	for _, tc := range tests {
		res := reg.Resolve(Table{CurveExpression.GUID: tc.ordinal}, CurveExpression.GUID)
		if res.Ordinal != tc.ordinal || !res.FromTable || res.Ahead != tc.ahead {
			t.Fatalf("ordinal %d: got %+v", tc.ordinal, res)
		}
		w, ok := res.Warning(12)
		if ok != tc.ahead {
			t.Fatalf("ordinal %d: warning presence %v", tc.ordinal, ok)
		}
		if ok && (w.Kind != archive.WarnUnsupportedVersion || w.Offset != 12) {
			t.Fatalf("ordinal %d: unexpected warning %+v", tc.ordinal, w)
		}
		if !res.AtLeast(0) {
			t.Fatalf("ordinal %d: AtLeast(0) false", tc.ordinal)
		}
	}

	unknown := GUID{A: 9}
	res := reg.Resolve(Table{unknown: 7}, unknown)
	if res.Ordinal != 7 || !res.FromTable || res.Ahead {
		t.Fatalf("unregistered entry: %+v", res)
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(CurveExpression, Format{Name: "Other", GUID: CurveExpression.GUID})
	if !errors.Is(err, ErrDuplicateFormat) {
		t.Fatalf("duplicate guid: got %v", err)
	}
	_, err = NewRegistry(CurveExpression, Format{Name: CurveExpression.Name, GUID: GUID{A: 1}})
	if !errors.Is(err, ErrDuplicateFormat) {
		t.Fatalf("duplicate name: got %v", err)
	}
}

func TestReadTable(t *testing.T) {
	t.Parallel()

	put := func(b []byte, g GUID, v int32) []byte {
		b = binary.LittleEndian.AppendUint32(b, g.A)
		b = binary.LittleEndian.AppendUint32(b, g.B)
		b = binary.LittleEndian.AppendUint32(b, g.C)
		b = binary.LittleEndian.AppendUint32(b, g.D)
		return binary.LittleEndian.AppendUint32(b, uint32(v))
	}
	buf := binary.LittleEndian.AppendUint32(nil, 3)
	buf = put(buf, CurveExpression.GUID, 1)
	buf = put(buf, DNAAsset.GUID, 0)
	buf = put(buf, CurveExpression.GUID, 2)

	table, err := ReadTable(archive.NewCursor(buf))
	if err != nil {
		t.Fatal(err)
	}
	want := Table{CurveExpression.GUID: 2, DNAAsset.GUID: 0}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}

	_, err = ReadTable(archive.NewCursor(buf[:30]))
	if !errors.Is(err, archive.ErrEndOfStream) {
		t.Fatalf("truncated table: got %v", err)
	}
}

func TestParseRegistryFile(t *testing.T) {
	t.Parallel()

	doc := []byte(`
formats:
  - name: DNAAsset
    guid: 00000000-0000-0000-0000-0000000000AA
    latest: 1
  - name: MorphTargets
    guid: 11111111-2222-3333-4444-555555555555
    latest: 4
    default: 0
versions:
  CurveExpression: 1
  MorphTargets: 9
  99999999-0000-0000-0000-000000000000: 5
`)
	reg, table, err := Parse(doc, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	dnaFmt, ok := reg.Lookup("DNAAsset")
	if !ok || dnaFmt.GUID != (GUID{D: 0xAA}) || dnaFmt.Default != 1 {
		t.Fatalf("override not applied: %+v", dnaFmt)
	}
	morph, ok := reg.Lookup("MorphTargets")
	if !ok || morph.Default != 0 || morph.Latest != 4 {
		t.Fatalf("new format: %+v", morph)
	}
	if len(reg.Formats()) != 3 {
		t.Fatalf("expected 3 formats, got %d", len(reg.Formats()))
	}

	if res := reg.Resolve(table, CurveExpression.GUID); res.Ordinal != 1 || !res.FromTable {
		t.Fatalf("curve expression: %+v", res)
	}
	if res := reg.Resolve(table, morph.GUID); res.Ordinal != 9 || !res.Ahead {
		t.Fatalf("morph targets: %+v", res)
	}
	if res := reg.Resolve(table, GUID{A: 0x99999999}); res.Ordinal != 5 {
		t.Fatalf("raw guid entry: %+v", res)
	}

	// The base registry is untouched.
	if f, _ := DefaultRegistry().Lookup("DNAAsset"); f.GUID != DNAAsset.GUID {
		t.Fatalf("default registry mutated: %+v", f)
	}
}

func TestParseRegistryFileErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"bad yaml":    "formats: [",
		"bad guid":    "formats:\n  - name: X\n    guid: nope\n",
		"no name":     "formats:\n  - guid: 11111111-2222-3333-4444-555555555555\n",
		"unknown key": "versions:\n  NoSuchFormat: 1\n",
		"dup guid":    "formats:\n  - name: X\n    guid: A26D36AE-2693-5388-A8C5-CB962B95B4AF\n",
	}
	for name, doc := range tests {
		if _, _, err := Parse([]byte(doc), nil); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
