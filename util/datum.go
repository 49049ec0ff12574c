/*
	Copyright 2025 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Datum is one node of a response tree: a property map keyed by string-table
// index, and ordered children.
type Datum struct {
	Properties map[int64]*V
	Children   []*Datum
}

// PrettyPrint renders the receiver deterministically, properties sorted by
// key name.  Only for use in tests.
func (d *Datum) PrettyPrint(indent string, st []string) string {
	keys := make([]int64, 0, len(d.Properties))
	for k := range d.Properties {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		return st[keys[a]] < st[keys[b]]
	})
	lines := []string{}
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%sProp '%s': %s", indent, st[k], d.Properties[k].PrettyPrint(st)))
	}
	for _, child := range d.Children {
		lines = append(lines, indent+"Child:", child.PrettyPrint(indent+"  ", st))
	}
	return strings.Join(lines, "\n")
}

// MarshalJSON encodes a Datum as [[[key, V]...], [Datum...]], properties in
// increasing key order.
func (d *Datum) MarshalJSON() ([]byte, error) {
	keys := make([]int64, 0, len(d.Properties))
	for k := range d.Properties {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })
	props := make([]any, len(keys))
	for i, k := range keys {
		props[i] = []any{k, d.Properties[k]}
	}
	children := make([]any, len(d.Children))
	for i, child := range d.Children {
		children[i] = child
	}
	return json.Marshal([]any{props, children})
}

// UnmarshalJSON decodes a Datum from its MarshalJSON encoding.
func (d *Datum) UnmarshalJSON(data []byte) error {
	var raw []any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	return d.fromAny(raw)
}

func (d *Datum) fromAny(raw []any) error {
	if len(raw) != 2 {
		return fmt.Errorf("datum must be a [properties, children] pair")
	}
	props, ok := raw[0].([]any)
	if !ok {
		return fmt.Errorf("datum properties must be a list")
	}
	children, ok := raw[1].([]any)
	if !ok {
		return fmt.Errorf("datum children must be a list")
	}
	d.Properties = make(map[int64]*V, len(props))
	d.Children = make([]*Datum, len(children))
	for _, prop := range props {
		kv, ok := prop.([]any)
		if !ok || len(kv) != 2 {
			return fmt.Errorf("datum property must be a [key, value] pair")
		}
		k, err := asInt(kv[0])
		if err != nil {
			return err
		}
		rawV, ok := kv[1].([]any)
		if !ok {
			return fmt.Errorf("property %d has a malformed value", k)
		}
		v := &V{}
		if err := v.fromAny(rawV); err != nil {
			return err
		}
		d.Properties[k] = v
	}
	for i, child := range children {
		rawChild, ok := child.([]any)
		if !ok {
			return fmt.Errorf("datum child %d is malformed", i)
		}
		d.Children[i] = &Datum{}
		if err := d.Children[i].fromAny(rawChild); err != nil {
			return err
		}
	}
	return nil
}

// PropertyUpdate mutates the Datum under construction.  A nil PropertyUpdate
// does nothing.
type PropertyUpdate func(db *datumBuilder) error

// EmptyUpdate is a PropertyUpdate that does nothing.
var EmptyUpdate PropertyUpdate = nil

// DataBuilder is implemented by types that can assemble response trees.
type DataBuilder interface {
	With(updates ...PropertyUpdate) DataBuilder
	Child() DataBuilder
}

type datumBuilder struct {
	errs *errors
	st   *stringTable
	d    *Datum
}

func newDatumBuilder(errs *errors, st *stringTable) *datumBuilder {
	return &datumBuilder{
		errs: errs,
		st:   st,
		d: &Datum{
			Properties: map[int64]*V{},
			Children:   []*Datum{},
		},
	}
}

// With applies updates in order.  The first failing update records its
// error in the response and skips the rest.
func (db *datumBuilder) With(updates ...PropertyUpdate) DataBuilder {
	if db.errs.failed() {
		return db
	}
	for _, update := range updates {
		if update == nil {
			continue
		}
		if err := update(db); err != nil {
			db.errs.add(err)
			break
		}
	}
	return db
}

// Child appends a new child Datum and returns its builder.
func (db *datumBuilder) Child() DataBuilder {
	child := newDatumBuilder(db.errs, db.st)
	db.d.Children = append(db.d.Children, child.d)
	return child
}

func (db *datumBuilder) set(key string, v *V) {
	db.d.Properties[db.st.index(key)] = v
}

func (db *datumBuilder) strIdxs(values []string) []int64 {
	idxs := make([]int64, len(values))
	for i, val := range values {
		idxs[i] = db.st.index(val)
	}
	return idxs
}

// If applies update only when predicate holds.
func If(predicate bool, update PropertyUpdate) PropertyUpdate {
	if predicate {
		return update
	}
	return EmptyUpdate
}

// Chain applies updates in order as a single PropertyUpdate.
func Chain(updates ...PropertyUpdate) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.With(updates...)
		return nil
	}
}

// ErrorProperty fails the response under construction with err.
func ErrorProperty(err error) PropertyUpdate {
	return func(db *datumBuilder) error {
		return err
	}
}

// StringProperty sets key to a string value.
func StringProperty(key, value string) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, StringIndexValue(db.st.index(value)))
		return nil
	}
}

// StringsProperty sets key to a string list value.
func StringsProperty(key string, values ...string) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, StringIndicesValue(db.strIdxs(values)...))
		return nil
	}
}

// IntegerProperty sets key to an integer value.
func IntegerProperty(key string, value int64) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, IntegerValue(value))
		return nil
	}
}

// DoubleProperty sets key to a double value.
func DoubleProperty(key string, value float64) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, DoubleValue(value))
		return nil
	}
}
