// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package model

import (
	"github.com/smithylang/smithy-go/pkg/model/node"
)

// ShapeType is the type tag discriminating the closed set of shape variants.
type ShapeType string

// The complete set of shape types.
const (
	BlobType       ShapeType = "blob"
	BooleanType    ShapeType = "boolean"
	StringType     ShapeType = "string"
	ByteType       ShapeType = "byte"
	ShortType      ShapeType = "short"
	IntegerType    ShapeType = "integer"
	LongType       ShapeType = "long"
	FloatType      ShapeType = "float"
	DoubleType     ShapeType = "double"
	BigIntegerType ShapeType = "bigInteger"
	BigDecimalType ShapeType = "bigDecimal"
	TimestampType  ShapeType = "timestamp"
	DocumentType   ShapeType = "document"
	ListType       ShapeType = "list"
	SetType        ShapeType = "set"
	MapType        ShapeType = "map"
	StructureType  ShapeType = "structure"
	UnionType      ShapeType = "union"
	MemberType     ShapeType = "member"
	OperationType  ShapeType = "operation"
	ResourceType   ShapeType = "resource"
	ServiceType    ShapeType = "service"
)

// Trait is a named, valued annotation attached to a shape.  Synthetic traits are injected by the framework
// rather than authored in source and are never serialized.
type Trait struct {
	ID        ShapeID
	Value     node.Node
	Synthetic bool
}

// Shape is a typed node in the modeled data schema.  The set of implementations is closed: consumers dispatch
// over the concrete variants with an exhaustive type switch.
type Shape interface {
	shape()
	// ID returns the shape's fully qualified identity.
	ID() ShapeID
	// Type returns the shape's type tag.
	Type() ShapeType
	// Mixins returns the IDs of the shapes this shape structurally inherits from, in declaration order.
	Mixins() []ShapeID
	// IntroducedTraits returns the traits defined directly on this shape (not inherited through mixins), in
	// declaration order.
	IntroducedTraits() []Trait
}

// ShapeBase carries the identity, mixin list, and introduced traits common to every shape variant.  It is
// embedded in each concrete shape; construct shapes with struct literals and fill it in.
type ShapeBase struct {
	Id          ShapeID
	ShapeMixins []ShapeID
	ShapeTraits []Trait
}

func (b *ShapeBase) shape()                    {}
func (b *ShapeBase) ID() ShapeID               { return b.Id }
func (b *ShapeBase) Mixins() []ShapeID         { return b.ShapeMixins }
func (b *ShapeBase) IntroducedTraits() []Trait { return b.ShapeTraits }

// SimpleShape is a scalar or document shape: any variant that carries no members or references of its own.
type SimpleShape struct {
	ShapeBase
	Kind ShapeType
}

func (s *SimpleShape) Type() ShapeType { return s.Kind }

// MemberShape is a member of a containing shape, referring to a target shape.  A member whose own mixin list is
// non-empty was inherited from a mixin; if such a member also introduces traits, the serializer emits it as a
// top-level apply statement instead of inlining it under its container.
type MemberShape struct {
	ShapeBase
	Target ShapeID
}

func (s *MemberShape) Type() ShapeType { return MemberType }

// MemberName returns this member's name within its container.
func (s *MemberShape) MemberName() string { return s.Id.Member }

// Container returns the ID of the shape this member belongs to.
func (s *MemberShape) Container() ShapeID { return s.Id.WithoutMember() }

// ListShape is an ordered collection with a single "member" target.
type ListShape struct {
	ShapeBase
	Member *MemberShape
}

func (s *ListShape) Type() ShapeType { return ListType }

// SetShape is a unique-element collection with a single "member" target.
type SetShape struct {
	ShapeBase
	Member *MemberShape
}

func (s *SetShape) Type() ShapeType { return SetType }

// MapShape maps a "key" member to a "value" member.
type MapShape struct {
	ShapeBase
	Key   *MemberShape
	Value *MemberShape
}

func (s *MapShape) Type() ShapeType { return MapType }

// StructureShape is a record with named members in declaration order.
type StructureShape struct {
	ShapeBase
	Members []*MemberShape
}

func (s *StructureShape) Type() ShapeType { return StructureType }

// UnionShape is a tagged union with named members in declaration order.
type UnionShape struct {
	ShapeBase
	Members []*MemberShape
}

func (s *UnionShape) Type() ShapeType { return UnionType }

// OperationShape describes a single service operation.
type OperationShape struct {
	ShapeBase
	Input  ShapeID
	Output ShapeID
	Errors []ShapeID // errors introduced directly on the operation.
}

func (s *OperationShape) Type() ShapeType { return OperationType }

// ResourceIdentifier names one identifier of a resource and the shape it targets.
type ResourceIdentifier struct {
	Name   string
	Target ShapeID
}

// ResourceShape describes an entity with identifiers and lifecycle operations.
type ResourceShape struct {
	ShapeBase
	Identifiers          []ResourceIdentifier // in declaration order.
	Put                  *ShapeID
	Create               *ShapeID
	Read                 *ShapeID
	Update               *ShapeID
	Delete               *ShapeID
	List                 *ShapeID
	Operations           []ShapeID // operations introduced directly on the resource.
	CollectionOperations []ShapeID
	Resources            []ShapeID // sub-resources introduced directly on the resource.
}

func (s *ResourceShape) Type() ShapeType { return ResourceType }

// Rename aliases a shape ID to a different name within a service closure.
type Rename struct {
	From ShapeID
	To   string
}

// ServiceShape is the entry point of a model: a versioned closure of operations and resources.
type ServiceShape struct {
	ShapeBase
	Version    string
	Operations []ShapeID // operations introduced directly on the service.
	Resources  []ShapeID
	Errors     []ShapeID // common errors introduced directly on the service.
	Renames    []Rename  // in declaration order; serialization preserves it.
}

func (s *ServiceShape) Type() ShapeType { return ServiceType }
