// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddShapeIndexesMembers(t *testing.T) {
	t.Parallel()

	m := NewModel()
	str := &StructureShape{
		ShapeBase: ShapeBase{Id: MustParseShapeID("smithy.example#City")},
		Members: []*MemberShape{
			{
				ShapeBase: ShapeBase{Id: MustParseShapeID("smithy.example#City$name")},
				Target:    MustParseShapeID("smithy.api#String"),
			},
		},
	}
	m.AddShape(str)

	assert.Equal(t, 2, m.Len())

	found, has := m.Shape(MustParseShapeID("smithy.example#City"))
	require.True(t, has)
	assert.Same(t, Shape(str), found)

	member, has := m.Shape(MustParseShapeID("smithy.example#City$name"))
	require.True(t, has)
	assert.Equal(t, MemberType, member.Type())

	_, has = m.Shape(MustParseShapeID("smithy.example#Missing"))
	assert.False(t, has)
}

func TestAddShapeReplaces(t *testing.T) {
	t.Parallel()

	m := NewModel()
	id := MustParseShapeID("smithy.example#Thing")
	m.AddShape(&SimpleShape{ShapeBase: ShapeBase{Id: id}, Kind: StringType})
	m.AddShape(&SimpleShape{ShapeBase: ShapeBase{Id: id}, Kind: IntegerType})

	assert.Equal(t, 1, m.Len())
	s, _ := m.Shape(id)
	assert.Equal(t, IntegerType, s.Type())
}

func TestMemberShapeAccessors(t *testing.T) {
	t.Parallel()

	member := &MemberShape{
		ShapeBase: ShapeBase{Id: MustParseShapeID("smithy.example#City$name")},
		Target:    MustParseShapeID("smithy.api#String"),
	}
	assert.Equal(t, "name", member.MemberName())
	assert.Equal(t, MustParseShapeID("smithy.example#City"), member.Container())
}

func TestValidateVersion(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateVersion("2.0"))
	assert.NoError(t, ValidateVersion("1.0"))
	assert.NoError(t, ValidateVersion("2.0.0"))
	assert.Error(t, ValidateVersion("not-a-version"))
}

func TestIsPreludeShape(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPreludeShape(MustParseShapeID("smithy.api#String")))
	assert.False(t, IsPreludeShape(MustParseShapeID("smithy.example#String")))
}
