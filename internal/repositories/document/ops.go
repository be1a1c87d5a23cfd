package document

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// OpKind identifies a field-path update
type OpKind string

const (
	OpSet         OpKind = "set"
	OpDelete      OpKind = "delete"
	OpIncrement   OpKind = "increment"
	OpArrayUnion  OpKind = "array_union"
	OpArrayRemove OpKind = "array_remove"
)

// Op is a single field-path update
type Op struct {
	Kind  OpKind
	Path  string
	Value any
}

// SetField sets path to value
func SetField(path string, value any) Op {
	return Op{Kind: OpSet, Path: path, Value: value}
}

// DeleteField removes path
func DeleteField(path string) Op {
	return Op{Kind: OpDelete, Path: path}
}

// Increment adds n to the integer at path, treating a missing field as 0
func Increment(path string, n int64) Op {
	return Op{Kind: OpIncrement, Path: path, Value: n}
}

// ArrayUnion appends value to the array at path unless already present
func ArrayUnion(path string, value any) Op {
	return Op{Kind: OpArrayUnion, Path: path, Value: value}
}

// ArrayRemove removes every element equal to value from the array at path
func ArrayRemove(path string, value any) Op {
	return Op{Kind: OpArrayRemove, Path: path, Value: value}
}

// Apply runs ops against body in order
func Apply(body []byte, ops []Op) ([]byte, error) {
	var err error
	for _, op := range ops {
		if op.Path == "" {
			return nil, ErrInvalidPath
		}
		body, err = apply(body, op)
		if err != nil {
			return nil, fmt.Errorf("apply %s %s: %w", op.Kind, op.Path, err)
		}
	}
	return body, nil
}

func apply(body []byte, op Op) ([]byte, error) {
	switch op.Kind {
	case OpSet:
		return sjson.SetBytes(body, op.Path, op.Value)
	case OpDelete:
		return sjson.DeleteBytes(body, op.Path)
	case OpIncrement:
		n, ok := op.Value.(int64)
		if !ok {
			return nil, fmt.Errorf("increment value must be int64, got %T", op.Value)
		}
		current := gjson.GetBytes(body, op.Path)
		if current.Exists() && current.Type != gjson.Number {
			return nil, ErrNotNumber
		}
		return sjson.SetBytes(body, op.Path, current.Int()+n)
	case OpArrayUnion:
		raw, err := json.Marshal(op.Value)
		if err != nil {
			return nil, err
		}
		current := gjson.GetBytes(body, op.Path)
		if !current.Exists() || current.Type == gjson.Null {
			return sjson.SetRawBytes(body, op.Path, []byte("["+string(raw)+"]"))
		}
		if !current.IsArray() {
			return nil, ErrNotArray
		}
		for _, el := range current.Array() {
			if sameValue(el, raw) {
				return body, nil
			}
		}
		return sjson.SetRawBytes(body, op.Path+".-1", raw)
	case OpArrayRemove:
		raw, err := json.Marshal(op.Value)
		if err != nil {
			return nil, err
		}
		current := gjson.GetBytes(body, op.Path)
		if !current.Exists() || current.Type == gjson.Null {
			return body, nil
		}
		if !current.IsArray() {
			return nil, ErrNotArray
		}
		kept := make([]string, 0, len(current.Array()))
		for _, el := range current.Array() {
			if !sameValue(el, raw) {
				kept = append(kept, el.Raw)
			}
		}
		return sjson.SetRawBytes(body, op.Path, []byte("["+strings.Join(kept, ",")+"]"))
	default:
		return nil, fmt.Errorf("unknown op kind %q", op.Kind)
	}
}

func sameValue(el gjson.Result, raw []byte) bool {
	other := gjson.ParseBytes(raw)
	if el.Type != other.Type {
		return false
	}
	switch el.Type {
	case gjson.String:
		return el.Str == other.Str
	case gjson.Number:
		return el.Num == other.Num
	default:
		return el.Raw == other.Raw
	}
}

// normalize turns a filter value into the shape gjson reports for stored values
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return gjson.ParseBytes(raw).Value(), nil
}
