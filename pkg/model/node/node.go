// Copyright 2024, the Smithy Go Authors.  All rights reserved.

// Package node defines the generic ordered value tree produced by the canonical serializer.  It is not tied to
// any single wire format: objects preserve the key order their producer chose (sorted or insertion order),
// arrays preserve element order, and downstream encoders render the tree as JSON, YAML, or a binary form.
package node

import (
	"bytes"
	"encoding/json"
	"sort"

	yaml "gopkg.in/yaml.v2"

	"github.com/smithylang/smithy-go/pkg/util/contract"
)

// Node is a value in the tree: an object, an array, or a scalar leaf.  The set of implementations is closed.
type Node interface {
	node()

	json.Marshaler
	// MarshalYAML implements yaml.v2's Marshaler so trees render with their key order intact.
	MarshalYAML() (interface{}, error)
}

// String is a scalar string leaf.
type String string

// Number is a scalar numeric leaf.
type Number float64

// Bool is a scalar boolean leaf.
type Bool bool

// Null is the null leaf.
type Null struct{}

func (String) node() {}
func (Number) node() {}
func (Bool) node()   {}
func (Null) node()   {}

func (s String) MarshalJSON() ([]byte, error) { return json.Marshal(string(s)) }
func (n Number) MarshalJSON() ([]byte, error) { return json.Marshal(float64(n)) }
func (b Bool) MarshalJSON() ([]byte, error)   { return json.Marshal(bool(b)) }
func (Null) MarshalJSON() ([]byte, error)     { return []byte("null"), nil }

func (s String) MarshalYAML() (interface{}, error) { return string(s), nil }
func (n Number) MarshalYAML() (interface{}, error) { return float64(n), nil }
func (b Bool) MarshalYAML() (interface{}, error)   { return bool(b), nil }
func (Null) MarshalYAML() (interface{}, error)     { return nil, nil }

// Array is an ordered sequence of nodes.
type Array struct {
	elements []Node
}

// NewArray creates an array from the given elements.
func NewArray(elements ...Node) *Array {
	return &Array{elements: elements}
}

func (*Array) node() {}

// Append adds an element to the end of the array.
func (a *Array) Append(n Node) {
	contract.Require(n != nil, "n")
	a.elements = append(a.elements, n)
}

// Elements returns the array's elements in order.  The slice is owned by the array.
func (a *Array) Elements() []Node { return a.elements }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.elements) }

func (a *Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, e := range a.elements {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := e.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (a *Array) MarshalYAML() (interface{}, error) {
	out := make([]interface{}, len(a.elements))
	for i, e := range a.elements {
		out[i] = e
	}
	return out, nil
}

// Object is a string-keyed mapping whose key order is exactly the order keys were set (or re-sorted via
// SortKeys).  Setting an existing key replaces its value in place without disturbing the order.
type Object struct {
	keys   []string
	values map[string]Node
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]Node)}
}

func (*Object) node() {}

// Set associates a key with a value, appending the key if new.
func (o *Object) Set(key string, value Node) *Object {
	contract.Require(value != nil, "value")
	if _, has := o.values[key]; !has {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
	return o
}

// SetOptional associates a key with a value only when the value is non-nil.
func (o *Object) SetOptional(key string, value Node) *Object {
	if value != nil {
		o.Set(key, value)
	}
	return o
}

// Get fetches the value for a key.
func (o *Object) Get(key string) (Node, bool) {
	v, has := o.values[key]
	return v, has
}

// Keys returns the object's keys in order.  The slice is owned by the object.
func (o *Object) Keys() []string { return o.keys }

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// SortKeys re-orders this object's keys lexicographically, without descending into values.
func (o *Object) SortKeys() *Object {
	sort.Strings(o.keys)
	return o
}

// WithDeepSortedKeys returns a copy of this object with the keys of it and of every nested object sorted
// lexicographically.  Arrays keep their element order.
func (o *Object) WithDeepSortedKeys() *Object {
	return deepSort(o).(*Object)
}

func deepSort(n Node) Node {
	switch t := n.(type) {
	case *Object:
		sorted := NewObject()
		for _, key := range t.keys {
			sorted.Set(key, deepSort(t.values[key]))
		}
		sorted.SortKeys()
		return sorted
	case *Array:
		out := NewArray()
		for _, e := range t.elements {
			out.Append(deepSort(e))
		}
		return out
	default:
		return n
	}
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := o.values[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *Object) MarshalYAML() (interface{}, error) {
	// yaml.MapSlice is the only ordered mapping representation yaml.v2 offers.
	out := make(yaml.MapSlice, len(o.keys))
	for i, key := range o.keys {
		out[i] = yaml.MapItem{Key: key, Value: o.values[key]}
	}
	return out, nil
}
