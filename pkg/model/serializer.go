// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package model

import (
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/smithylang/smithy-go/pkg/model/node"
	"github.com/smithylang/smithy-go/pkg/util/contract"
)

// Serializer converts a model into an ordered value tree whose map keys are fully sorted, so that two equal
// models always serialize byte-for-byte identically regardless of internal iteration order.  The produced tree
// can then be rendered as JSON, YAML, or any other format by the encoding package.
//
// A Serializer is immutable and safe to reuse across calls; each Serialize call keeps its own accumulator state.
type Serializer struct {
	metadataFilter func(key string) bool
	shapeFilter    func(Shape) bool
	traitFilter    func(Trait) bool
	includePrelude bool
}

// SerializerOption configures a Serializer.
type SerializerOption func(*Serializer)

// WithMetadataFilter sets a predicate that decides whether a metadata key is serialized.
func WithMetadataFilter(filter func(key string) bool) SerializerOption {
	return func(s *Serializer) { s.metadataFilter = filter }
}

// WithShapeFilter sets a predicate that decides whether a shape is serialized.
func WithShapeFilter(filter func(Shape) bool) SerializerOption {
	return func(s *Serializer) { s.shapeFilter = filter }
}

// WithTraitFilter sets a predicate that decides whether a trait instance appears on serialized shapes.
func WithTraitFilter(filter func(Trait) bool) SerializerOption {
	return func(s *Serializer) { s.traitFilter = filter }
}

// WithPrelude enables or disables serializing prelude shapes.  By default the prelude is excluded, since it is
// inherently part of every model.
func WithPrelude(include bool) SerializerOption {
	return func(s *Serializer) { s.includePrelude = include }
}

// NewSerializer creates a serializer; with no options it serializes every shape, trait, and metadata entry
// except the prelude and synthetic traits.
func NewSerializer(opts ...SerializerOption) *Serializer {
	s := &Serializer{
		metadataFilter: func(string) bool { return true },
		shapeFilter:    func(Shape) bool { return true },
		traitFilter:    func(Trait) bool { return true },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serialize walks the model and produces its canonical tree.  It either fully succeeds or fully fails: a
// structural inconsistency such as a dangling mixin reference is a hard error with no partial output.
func (s *Serializer) Serialize(m *Model) (*node.Object, error) {
	contract.Require(m != nil, "m")
	glog.V(3).Infof("Serializing model with %v shapes", m.Len())

	version := m.Version
	if version == "" {
		version = SmithyVersion
	} else if err := ValidateVersion(version); err != nil {
		return nil, err
	}

	// The serializer does not validate models, but a mixin reference that resolves to nothing would produce a
	// tree that silently drops the relationship, so it is rejected outright.
	for _, shape := range m.Shapes() {
		for _, mixin := range shape.Mixins() {
			if _, has := m.Shape(mixin); !has && !IsPreludeShape(mixin) {
				return nil, errors.Errorf("dangling mixin reference %v on shape %v", mixin, shape.ID())
			}
		}
	}

	shapeFilter := s.shapeFilter
	if !s.includePrelude {
		shapeFilter = func(shape Shape) bool {
			return !IsPreludeShape(shape.ID()) && s.shapeFilter(shape)
		}
	}
	// Never serialize synthetic traits.
	traitFilter := func(t Trait) bool {
		return !t.Synthetic && s.traitFilter(t)
	}

	walker := &shapeWalker{traitFilter: traitFilter}
	shapes := make(map[string]node.Node)
	for _, shape := range m.Shapes() {
		// Members are serialized inside of other shapes, so filter them out.
		if shape.Type() == MemberType || !shapeFilter(shape) {
			continue
		}
		shapes[shape.ID().String()] = walker.serializeShape(shape)
		// Emit apply statements for inherited mixin members that added traits.  Apply statements are used
		// instead of redefining the members on their containers because they are more resilient to change in
		// the shapes the inherited members target.  Flushing after each shape lets the final sort interleave
		// them with every other shape ID.
		for _, member := range walker.takeDeferred() {
			apply := node.NewObject().Set("type", node.String("apply"))
			walker.serializeTraits(apply, member.IntroducedTraits())
			shapes[member.ID().String()] = apply
		}
	}

	root := node.NewObject().Set("smithy", node.String(version))
	if metadata := s.createMetadata(m); metadata != nil {
		root.Set("metadata", metadata.WithDeepSortedKeys())
	}

	// Sort shapes by ID.
	ids := make([]string, 0, len(shapes))
	for id := range shapes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	shapesNode := node.NewObject()
	for _, id := range ids {
		shapesNode.Set(id, shapes[id])
	}
	root.Set("shapes", shapesNode)

	return root, nil
}

// createMetadata filters the model's metadata by key; it returns nil when nothing survives, so the output has
// no metadata key at all rather than an empty object.
func (s *Serializer) createMetadata(m *Model) *node.Object {
	metadata := node.NewObject()
	for key, value := range m.Metadata {
		if s.metadataFilter(key) {
			metadata.Set(key, value)
		}
	}
	if metadata.Len() == 0 {
		return nil
	}
	return metadata
}

// shapeWalker holds the per-call state of one Serialize pass: the effective trait filter and the set of mixin
// members whose traits must be re-emitted as apply statements.
type shapeWalker struct {
	traitFilter  func(Trait) bool
	deferred     []*MemberShape
	deferredSeen map[ShapeID]bool
}

// serializeShape dispatches over the closed set of shape variants.
func (w *shapeWalker) serializeShape(shape Shape) node.Node {
	switch t := shape.(type) {
	case *SimpleShape:
		return w.serializeTraits(w.typedBuilder(t), t.IntroducedTraits())
	case *ListShape:
		return w.collectionShape(t, t.Member)
	case *SetShape:
		return w.collectionShape(t, t.Member)
	case *MapShape:
		result := w.typedBuilder(t)
		w.mixinMember(result, t.Key, "key")
		w.mixinMember(result, t.Value, "value")
		return w.serializeTraits(result, t.IntroducedTraits())
	case *StructureShape:
		return w.structureAndUnion(t, t.Members)
	case *UnionShape:
		return w.structureAndUnion(t, t.Members)
	case *OperationShape:
		result := w.typedBuilder(t).
			Set("input", w.reference(t.Input)).
			Set("output", w.reference(t.Output)).
			SetOptional("errors", w.optionalIDList(t.Errors))
		return w.serializeTraits(result, t.IntroducedTraits())
	case *ResourceShape:
		result := w.typedBuilder(t)
		if len(t.Identifiers) > 0 {
			identifiers := node.NewObject()
			for _, id := range t.Identifiers {
				identifiers.Set(id.Name, w.reference(id.Target))
			}
			result.Set("identifiers", identifiers)
		}
		result.
			SetOptional("put", w.optionalReference(t.Put)).
			SetOptional("create", w.optionalReference(t.Create)).
			SetOptional("read", w.optionalReference(t.Read)).
			SetOptional("update", w.optionalReference(t.Update)).
			SetOptional("delete", w.optionalReference(t.Delete)).
			SetOptional("list", w.optionalReference(t.List)).
			SetOptional("operations", w.optionalIDList(t.Operations)).
			SetOptional("collectionOperations", w.optionalIDList(t.CollectionOperations)).
			SetOptional("resources", w.optionalIDList(t.Resources))
		return w.serializeTraits(result, t.IntroducedTraits())
	case *ServiceShape:
		result := w.typedBuilder(t)
		if strings.TrimSpace(t.Version) != "" {
			result.Set("version", node.String(t.Version))
		}
		result.
			SetOptional("operations", w.optionalIDList(t.Operations)).
			SetOptional("resources", w.optionalIDList(t.Resources)).
			SetOptional("errors", w.optionalIDList(t.Errors))
		if len(t.Renames) > 0 {
			// Rename order preserves source declaration order; it is deliberately not sorted.
			rename := node.NewObject()
			for _, r := range t.Renames {
				rename.Set(r.From.String(), node.String(r.To))
			}
			result.Set("rename", rename)
		}
		// Traits come last, after all named fields.
		return w.serializeTraits(result, t.IntroducedTraits())
	case *MemberShape:
		// Only traits introduced by the member itself are serialized.
		result := node.NewObject().Set("target", node.String(t.Target.String()))
		return w.serializeTraits(result, t.IntroducedTraits())
	default:
		contract.Failf("unexpected shape variant %T (%v)", shape, shape.ID())
		return nil
	}
}

func (w *shapeWalker) collectionShape(shape Shape, member *MemberShape) node.Node {
	result := w.typedBuilder(shape)
	w.mixinMember(result, member, "member")
	return w.serializeTraits(result, shape.IntroducedTraits())
}

func (w *shapeWalker) structureAndUnion(shape Shape, members []*MemberShape) node.Node {
	result := w.typedBuilder(shape)
	membersNode := node.NewObject()
	for _, member := range members {
		w.mixinMember(membersNode, member, member.MemberName())
	}
	result.Set("members", membersNode)
	return w.serializeTraits(result, shape.IntroducedTraits())
}

// mixinMember inlines a member under its container unless the member was inherited from a mixin.  An inherited
// member that introduces traits of its own cannot be inlined (that would redefine it); it is deferred and later
// emitted as a top-level apply statement.  An inherited member without introduced traits is omitted entirely.
func (w *shapeWalker) mixinMember(obj *node.Object, member *MemberShape, key string) {
	contract.Assertf(member != nil, "container is missing its %v member", key)
	if len(member.Mixins()) == 0 {
		obj.Set(key, w.serializeShape(member))
	} else if len(member.IntroducedTraits()) > 0 {
		w.deferMember(member)
	}
}

func (w *shapeWalker) deferMember(member *MemberShape) {
	if w.deferredSeen == nil {
		w.deferredSeen = make(map[ShapeID]bool)
	}
	if !w.deferredSeen[member.ID()] {
		w.deferredSeen[member.ID()] = true
		w.deferred = append(w.deferred, member)
	}
}

// takeDeferred returns the deferred mixin members sorted by shape ID and resets the accumulator.
func (w *shapeWalker) takeDeferred() []*MemberShape {
	members := w.deferred
	w.deferred, w.deferredSeen = nil, nil
	sort.Slice(members, func(i, j int) bool { return members[i].ID().Less(members[j].ID()) })
	return members
}

// typedBuilder starts a shape object with its type tag and, when present, its mixin references.
func (w *shapeWalker) typedBuilder(shape Shape) *node.Object {
	result := node.NewObject().Set("type", node.String(string(shape.Type())))
	if mixins := shape.Mixins(); len(mixins) > 0 {
		arr := node.NewArray()
		for _, mixin := range mixins {
			arr.Append(w.reference(mixin))
		}
		result.Set("mixins", arr)
	}
	return result
}

// serializeTraits appends a traits object, sorted by trait ID, omitting the key entirely when no trait survives
// the filter.
func (w *shapeWalker) serializeTraits(obj *node.Object, traits []Trait) *node.Object {
	kept := make([]Trait, 0, len(traits))
	for _, trait := range traits {
		if w.traitFilter(trait) {
			kept = append(kept, trait)
		}
	}
	if len(kept) == 0 {
		return obj
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].ID.Less(kept[j].ID) })
	traitsNode := node.NewObject()
	for _, trait := range kept {
		value := trait.Value
		if value == nil {
			// An annotation trait with no value serializes as an empty object.
			value = node.NewObject()
		}
		traitsNode.Set(trait.ID.String(), value)
	}
	obj.Set("traits", traitsNode)
	return obj
}

// optionalReference builds a {target: id} reference, or nil when the ID is absent.
func (w *shapeWalker) optionalReference(id *ShapeID) node.Node {
	if id == nil {
		return nil
	}
	return w.reference(*id)
}

func (w *shapeWalker) reference(id ShapeID) *node.Object {
	return node.NewObject().Set("target", node.String(id.String()))
}

// optionalIDList builds a sorted array of references, or nil when the list is empty.
func (w *shapeWalker) optionalIDList(ids []ShapeID) node.Node {
	if len(ids) == 0 {
		return nil
	}
	sorted := make([]ShapeID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	arr := node.NewArray()
	for _, id := range sorted {
		arr.Append(w.reference(id))
	}
	return arr
}
