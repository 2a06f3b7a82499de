// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smithylang/smithy-go/pkg/model/node"
)

func mustJSON(t *testing.T, n node.Node) string {
	b, err := n.MarshalJSON()
	require.NoError(t, err)
	return string(b)
}

func simpleString(id string) *SimpleShape {
	return &SimpleShape{ShapeBase: ShapeBase{Id: MustParseShapeID(id)}, Kind: StringType}
}

func TestSerializeEmptyModel(t *testing.T) {
	t.Parallel()

	out, err := NewSerializer().Serialize(NewModel())
	require.NoError(t, err)
	assert.Equal(t, `{"smithy":"2.0","shapes":{}}`, mustJSON(t, out))
}

func TestSerializeVersion(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.Version = "1.0"
	out, err := NewSerializer().Serialize(m)
	require.NoError(t, err)
	smithy, _ := out.Get("smithy")
	assert.Equal(t, node.String("1.0"), smithy)

	m.Version = "not-a-version"
	_, err = NewSerializer().Serialize(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid model version")
}

func TestSerializeSortsShapesByID(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.AddShape(simpleString("zeta.ns#Thing"))
	m.AddShape(simpleString("alpha.ns#Thing"))
	m.AddShape(simpleString("alpha.ns#Apple"))

	out, err := NewSerializer().Serialize(m)
	require.NoError(t, err)

	shapes, _ := out.Get("shapes")
	assert.Equal(t,
		[]string{"alpha.ns#Apple", "alpha.ns#Thing", "zeta.ns#Thing"},
		shapes.(*node.Object).Keys())
}

func TestSerializeDeterministic(t *testing.T) {
	t.Parallel()

	build := func(order []string) *Model {
		m := NewModel()
		for _, id := range order {
			m.AddShape(simpleString(id))
		}
		m.Metadata["zed"] = node.NewObject().Set("b", node.Number(1)).Set("a", node.Number(2))
		m.Metadata["abc"] = node.String("x")
		return m
	}

	first := build([]string{"a.ns#A", "b.ns#B", "c.ns#C"})
	second := build([]string{"c.ns#C", "a.ns#A", "b.ns#B"})

	s := NewSerializer()
	outFirst, err := s.Serialize(first)
	require.NoError(t, err)
	outSecond, err := s.Serialize(second)
	require.NoError(t, err)

	assert.Equal(t, mustJSON(t, outFirst), mustJSON(t, outSecond))
}

func TestSerializeMetadataDeepSorted(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.Metadata["outer"] = node.NewObject().
		Set("zebra", node.Number(1)).
		Set("apple", node.Number(2))

	out, err := NewSerializer().Serialize(m)
	require.NoError(t, err)
	assert.Equal(t,
		`{"smithy":"2.0","metadata":{"outer":{"apple":2,"zebra":1}},"shapes":{}}`,
		mustJSON(t, out))
}

func TestSerializeMetadataFilterCollapsesToNothing(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.Metadata["secret"] = node.String("hidden")

	s := NewSerializer(WithMetadataFilter(func(key string) bool { return key != "secret" }))
	out, err := s.Serialize(m)
	require.NoError(t, err)

	// No metadata key at all, rather than an empty object.
	_, has := out.Get("metadata")
	assert.False(t, has)
}

func TestSerializeStructureMembers(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.AddShape(&StructureShape{
		ShapeBase: ShapeBase{Id: MustParseShapeID("smithy.example#City")},
		Members: []*MemberShape{
			{
				ShapeBase: ShapeBase{Id: MustParseShapeID("smithy.example#City$name")},
				Target:    MustParseShapeID("smithy.api#String"),
			},
			{
				ShapeBase: ShapeBase{
					Id: MustParseShapeID("smithy.example#City$population"),
					ShapeTraits: []Trait{
						{ID: MustParseShapeID("smithy.api#documentation"), Value: node.String("people")},
					},
				},
				Target: MustParseShapeID("smithy.api#Integer"),
			},
		},
	})

	out, err := NewSerializer().Serialize(m)
	require.NoError(t, err)

	// Members stay in declaration order; member shapes never appear at the top level.
	assert.Equal(t,
		`{"smithy":"2.0","shapes":{"smithy.example#City":{"type":"structure",`+
			`"members":{"name":{"target":"smithy.api#String"},`+
			`"population":{"target":"smithy.api#Integer",`+
			`"traits":{"smithy.api#documentation":"people"}}}}}}`,
		mustJSON(t, out))
}

func TestSerializeMixinMemberDeferredToApply(t *testing.T) {
	t.Parallel()

	mixinID := MustParseShapeID("smithy.example#M")
	m := NewModel()
	m.AddShape(&StructureShape{
		ShapeBase: ShapeBase{
			Id: mixinID,
			ShapeTraits: []Trait{
				{ID: MustParseShapeID("smithy.api#mixin")},
			},
		},
		Members: []*MemberShape{
			{
				ShapeBase: ShapeBase{Id: mixinID.WithMember("name")},
				Target:    MustParseShapeID("smithy.api#String"),
			},
		},
	})
	m.AddShape(&StructureShape{
		ShapeBase: ShapeBase{
			Id:          MustParseShapeID("smithy.example#A"),
			ShapeMixins: []ShapeID{mixinID},
		},
		Members: []*MemberShape{
			{
				ShapeBase: ShapeBase{
					Id:          MustParseShapeID("smithy.example#A$name"),
					ShapeMixins: []ShapeID{mixinID.WithMember("name")},
					ShapeTraits: []Trait{
						{ID: MustParseShapeID("smithy.api#documentation"), Value: node.String("hi")},
					},
				},
				Target: MustParseShapeID("smithy.api#String"),
			},
		},
	})

	out, err := NewSerializer().Serialize(m)
	require.NoError(t, err)

	// The inherited member is not redefined under its container; its added traits surface as an apply
	// statement, sorted in with every other shape ID.
	assert.Equal(t,
		`{"smithy":"2.0","shapes":{`+
			`"smithy.example#A":{"type":"structure","mixins":[{"target":"smithy.example#M"}],"members":{}},`+
			`"smithy.example#A$name":{"type":"apply","traits":{"smithy.api#documentation":"hi"}},`+
			`"smithy.example#M":{"type":"structure","members":{"name":{"target":"smithy.api#String"}},`+
			`"traits":{"smithy.api#mixin":{}}}}}`,
		mustJSON(t, out))
}

func TestSerializeMixinMemberWithoutTraitsOmitted(t *testing.T) {
	t.Parallel()

	mixinID := MustParseShapeID("smithy.example#M")
	m := NewModel()
	m.AddShape(&StructureShape{
		ShapeBase: ShapeBase{Id: mixinID},
		Members: []*MemberShape{
			{
				ShapeBase: ShapeBase{Id: mixinID.WithMember("name")},
				Target:    MustParseShapeID("smithy.api#String"),
			},
		},
	})
	m.AddShape(&StructureShape{
		ShapeBase: ShapeBase{
			Id:          MustParseShapeID("smithy.example#A"),
			ShapeMixins: []ShapeID{mixinID},
		},
		Members: []*MemberShape{
			{
				ShapeBase: ShapeBase{
					Id:          MustParseShapeID("smithy.example#A$name"),
					ShapeMixins: []ShapeID{mixinID.WithMember("name")},
				},
				Target: MustParseShapeID("smithy.api#String"),
			},
		},
	})

	out, err := NewSerializer().Serialize(m)
	require.NoError(t, err)

	shapes, _ := out.Get("shapes")
	// No apply statement and no inlined member.
	assert.Equal(t, []string{"smithy.example#A", "smithy.example#M"}, shapes.(*node.Object).Keys())
	a, _ := shapes.(*node.Object).Get("smithy.example#A")
	members, _ := a.(*node.Object).Get("members")
	assert.Equal(t, 0, members.(*node.Object).Len())
}

func TestSerializeDanglingMixinRejected(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.AddShape(&StructureShape{
		ShapeBase: ShapeBase{
			Id:          MustParseShapeID("smithy.example#A"),
			ShapeMixins: []ShapeID{MustParseShapeID("smithy.example#Missing")},
		},
	})

	_, err := NewSerializer().Serialize(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dangling mixin reference")

	// A prelude mixin is assumed resolvable even though the prelude is not loaded into the model.
	m = NewModel()
	m.AddShape(&StructureShape{
		ShapeBase: ShapeBase{
			Id:          MustParseShapeID("smithy.example#A"),
			ShapeMixins: []ShapeID{MustParseShapeID("smithy.api#M")},
		},
	})
	_, err = NewSerializer().Serialize(m)
	assert.NoError(t, err)
}

func TestSerializePreludeExcludedByDefault(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.AddShape(simpleString("smithy.api#String"))
	m.AddShape(simpleString("smithy.example#Name"))

	out, err := NewSerializer().Serialize(m)
	require.NoError(t, err)
	shapes, _ := out.Get("shapes")
	assert.Equal(t, []string{"smithy.example#Name"}, shapes.(*node.Object).Keys())

	out, err = NewSerializer(WithPrelude(true)).Serialize(m)
	require.NoError(t, err)
	shapes, _ = out.Get("shapes")
	assert.Equal(t, []string{"smithy.api#String", "smithy.example#Name"}, shapes.(*node.Object).Keys())
}

func TestSerializeShapeFilter(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.AddShape(simpleString("smithy.example#Keep"))
	m.AddShape(simpleString("smithy.example#Drop"))

	s := NewSerializer(WithShapeFilter(func(shape Shape) bool {
		return shape.ID().Name != "Drop"
	}))
	out, err := s.Serialize(m)
	require.NoError(t, err)
	shapes, _ := out.Get("shapes")
	assert.Equal(t, []string{"smithy.example#Keep"}, shapes.(*node.Object).Keys())
}

func TestSerializeTraitFiltersAndSorting(t *testing.T) {
	t.Parallel()

	shape := simpleString("smithy.example#Name")
	shape.ShapeTraits = []Trait{
		{ID: MustParseShapeID("smithy.api#tags"), Value: node.NewArray(node.String("a"))},
		{ID: MustParseShapeID("smithy.api#deprecated")}, // annotation trait without a value.
		{ID: MustParseShapeID("smithy.example#internalOnly"), Synthetic: true},
	}
	m := NewModel()
	m.AddShape(shape)

	out, err := NewSerializer().Serialize(m)
	require.NoError(t, err)

	// Synthetic traits never serialize; the rest sort by trait ID; a nil value becomes an empty object.
	assert.Equal(t,
		`{"smithy":"2.0","shapes":{"smithy.example#Name":{"type":"string",`+
			`"traits":{"smithy.api#deprecated":{},"smithy.api#tags":["a"]}}}}`,
		mustJSON(t, out))

	// Filtering every trait away drops the traits key entirely.
	s := NewSerializer(WithTraitFilter(func(Trait) bool { return false }))
	out, err = s.Serialize(m)
	require.NoError(t, err)
	assert.False(t, strings.Contains(mustJSON(t, out), "traits"))
}

func TestSerializeListAndMap(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.AddShape(&ListShape{
		ShapeBase: ShapeBase{Id: MustParseShapeID("smithy.example#Names")},
		Member: &MemberShape{
			ShapeBase: ShapeBase{Id: MustParseShapeID("smithy.example#Names$member")},
			Target:    MustParseShapeID("smithy.api#String"),
		},
	})
	m.AddShape(&MapShape{
		ShapeBase: ShapeBase{Id: MustParseShapeID("smithy.example#Ages")},
		Key: &MemberShape{
			ShapeBase: ShapeBase{Id: MustParseShapeID("smithy.example#Ages$key")},
			Target:    MustParseShapeID("smithy.api#String"),
		},
		Value: &MemberShape{
			ShapeBase: ShapeBase{Id: MustParseShapeID("smithy.example#Ages$value")},
			Target:    MustParseShapeID("smithy.api#Integer"),
		},
	})

	out, err := NewSerializer().Serialize(m)
	require.NoError(t, err)
	assert.Equal(t,
		`{"smithy":"2.0","shapes":{`+
			`"smithy.example#Ages":{"type":"map","key":{"target":"smithy.api#String"},`+
			`"value":{"target":"smithy.api#Integer"}},`+
			`"smithy.example#Names":{"type":"list","member":{"target":"smithy.api#String"}}}}`,
		mustJSON(t, out))
}

func TestSerializeOperation(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.AddShape(&OperationShape{
		ShapeBase: ShapeBase{Id: MustParseShapeID("smithy.example#GetCity")},
		Input:     MustParseShapeID("smithy.example#GetCityInput"),
		Output:    MustParseShapeID("smithy.example#GetCityOutput"),
		Errors: []ShapeID{
			MustParseShapeID("smithy.example#ZError"),
			MustParseShapeID("smithy.example#AError"),
		},
	})

	out, err := NewSerializer().Serialize(m)
	require.NoError(t, err)
	assert.Equal(t,
		`{"smithy":"2.0","shapes":{"smithy.example#GetCity":{"type":"operation",`+
			`"input":{"target":"smithy.example#GetCityInput"},`+
			`"output":{"target":"smithy.example#GetCityOutput"},`+
			`"errors":[{"target":"smithy.example#AError"},{"target":"smithy.example#ZError"}]}}}`,
		mustJSON(t, out))
}

func TestSerializeService(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.AddShape(&ServiceShape{
		ShapeBase: ShapeBase{Id: MustParseShapeID("smithy.example#Weather")},
		Version:   "2006-03-01",
		Operations: []ShapeID{
			MustParseShapeID("smithy.example#GetForecast"),
			MustParseShapeID("smithy.example#GetCurrentTime"),
		},
		Renames: []Rename{
			{From: MustParseShapeID("other.ns#Z"), To: "RenamedZ"},
			{From: MustParseShapeID("other.ns#A"), To: "RenamedA"},
		},
	})

	out, err := NewSerializer().Serialize(m)
	require.NoError(t, err)

	// Operations sort by ID; renames keep their declaration order.
	assert.Equal(t,
		`{"smithy":"2.0","shapes":{"smithy.example#Weather":{"type":"service",`+
			`"version":"2006-03-01",`+
			`"operations":[{"target":"smithy.example#GetCurrentTime"},{"target":"smithy.example#GetForecast"}],`+
			`"rename":{"other.ns#Z":"RenamedZ","other.ns#A":"RenamedA"}}}}`,
		mustJSON(t, out))
}

func TestSerializeServiceBlankVersionOmitted(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.AddShape(&ServiceShape{
		ShapeBase: ShapeBase{Id: MustParseShapeID("smithy.example#Weather")},
		Version:   "   ",
	})

	out, err := NewSerializer().Serialize(m)
	require.NoError(t, err)
	assert.Equal(t,
		`{"smithy":"2.0","shapes":{"smithy.example#Weather":{"type":"service"}}}`,
		mustJSON(t, out))
}

func TestSerializeResource(t *testing.T) {
	t.Parallel()

	readID := MustParseShapeID("smithy.example#GetCity")
	m := NewModel()
	m.AddShape(&ResourceShape{
		ShapeBase: ShapeBase{Id: MustParseShapeID("smithy.example#City")},
		Identifiers: []ResourceIdentifier{
			{Name: "cityId", Target: MustParseShapeID("smithy.example#CityId")},
		},
		Read: &readID,
	})

	out, err := NewSerializer().Serialize(m)
	require.NoError(t, err)
	assert.Equal(t,
		`{"smithy":"2.0","shapes":{"smithy.example#City":{"type":"resource",`+
			`"identifiers":{"cityId":{"target":"smithy.example#CityId"}},`+
			`"read":{"target":"smithy.example#GetCity"}}}}`,
		mustJSON(t, out))
}
