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

// Package util defines the property model used to hand touch results to
// renderers and remote clients:
//
// V, a typed value, with {type}Value constructors and Expect{type}Value
// accessors that fail on type mismatch;
//
// PropertyUpdate, a deferred mutation of a Datum's properties, composable with
// Chain and If;
//
// DataBuilder and DataResponseBuilder, for assembling Data responses whose
// property keys and string values are interned into a shared string table.
package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type valueType int

// Enumerated value types.
const (
	unsetValue valueType = iota
	StringValueType
	StringIndexValueType
	StringsValueType
	StringIndicesValueType
	IntegerValueType
	IntegersValueType
	DoubleValueType
)

// V is a single typed value in a request or response.
type V struct {
	V any
	T valueType
}

// PrettyPrint renders the receiver deterministically, resolving string
// indices through st.  Only for use in tests.
func (v *V) PrettyPrint(st []string) string {
	join := func(strs []string) string {
		return "[ '" + strings.Join(strs, "', '") + "' ]"
	}
	switch v.T {
	case unsetValue:
		return "unset"
	case StringValueType:
		return "'" + v.V.(string) + "'"
	case StringIndexValueType:
		return "'" + st[v.V.(int64)] + "'"
	case StringsValueType:
		return join(v.V.([]string))
	case StringIndicesValueType:
		idxs := v.V.([]int64)
		strs := make([]string, len(idxs))
		for i, idx := range idxs {
			strs[i] = st[idx]
		}
		return join(strs)
	case IntegerValueType:
		return strconv.FormatInt(v.V.(int64), 10)
	case IntegersValueType:
		ints := v.V.([]int64)
		strs := make([]string, len(ints))
		for i, n := range ints {
			strs[i] = strconv.FormatInt(n, 10)
		}
		return "[ " + strings.Join(strs, ", ") + " ]"
	case DoubleValueType:
		return fmt.Sprintf("%.6f", v.V.(float64))
	}
	return fmt.Sprintf("error: unknown value type %d", v.T)
}

// MarshalJSON encodes a V as the two-element array [type, value].
func (v *V) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{v.T, v.V})
}

// UnmarshalJSON decodes a V from its [type, value] encoding.
func (v *V) UnmarshalJSON(data []byte) error {
	var raw []any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	return v.fromAny(raw)
}

func (v *V) fromAny(raw []any) error {
	if len(raw) != 2 {
		return fmt.Errorf("value must be a [type, value] pair, got %d elements", len(raw))
	}
	num, ok := raw[0].(json.Number)
	if !ok {
		return fmt.Errorf("value type must be a number")
	}
	t, err := num.Int64()
	if err != nil {
		return err
	}
	v.T = valueType(t)
	switch v.T {
	case StringValueType:
		str, ok := raw[1].(string)
		if !ok {
			return fmt.Errorf("expected a string payload")
		}
		v.V = str
	case StringIndexValueType, IntegerValueType:
		n, err := asInt(raw[1])
		if err != nil {
			return err
		}
		v.V = n
	case StringsValueType:
		elems, ok := raw[1].([]any)
		if !ok {
			return fmt.Errorf("expected a string list payload")
		}
		strs := make([]string, len(elems))
		for i, elem := range elems {
			str, ok := elem.(string)
			if !ok {
				return fmt.Errorf("expected a string at position %d", i)
			}
			strs[i] = str
		}
		v.V = strs
	case StringIndicesValueType, IntegersValueType:
		elems, ok := raw[1].([]any)
		if !ok {
			return fmt.Errorf("expected an integer list payload")
		}
		ints := make([]int64, len(elems))
		for i, elem := range elems {
			if ints[i], err = asInt(elem); err != nil {
				return err
			}
		}
		v.V = ints
	case DoubleValueType:
		num, ok := raw[1].(json.Number)
		if !ok {
			return fmt.Errorf("expected a numeric payload")
		}
		if v.V, err = num.Float64(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported value type %d", t)
	}
	return nil
}

func asInt(raw any) (int64, error) {
	num, ok := raw.(json.Number)
	if !ok {
		return 0, fmt.Errorf("expected an integer payload")
	}
	return num.Int64()
}

// StringValue returns a V wrapping str.
func StringValue(str string) *V {
	return &V{V: str, T: StringValueType}
}

// StringIndexValue returns a V wrapping a string-table index.
func StringIndexValue(idx int64) *V {
	return &V{V: idx, T: StringIndexValueType}
}

// StringIndicesValue returns a V wrapping string-table indices.
func StringIndicesValue(idxs ...int64) *V {
	return &V{V: idxs, T: StringIndicesValueType}
}

// IntegerValue returns a V wrapping i.
func IntegerValue(i int64) *V {
	return &V{V: i, T: IntegerValueType}
}

// DoubleValue returns a V wrapping f.
func DoubleValue(f float64) *V {
	return &V{V: f, T: DoubleValueType}
}

// ExpectStringValue returns the string held by val, URL-unescaped, or an
// error if val is not a string.
func ExpectStringValue(val *V) (string, error) {
	if val == nil || val.T != StringValueType {
		return "", fmt.Errorf("expected value type 'str'")
	}
	return url.QueryUnescape(val.V.(string))
}

// ExpectDoubleValue returns the float held by val, or an error if val is not
// a double.  Integers are widened, since clients often send whole-pixel
// coordinates as integers.
func ExpectDoubleValue(val *V) (float64, error) {
	if val != nil && val.T == IntegerValueType {
		return float64(val.V.(int64)), nil
	}
	if val == nil || val.T != DoubleValueType {
		return 0, fmt.Errorf("expected value type 'dbl'")
	}
	return val.V.(float64), nil
}
