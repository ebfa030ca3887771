package rpc

import (
	"fmt"
	"reflect"
	"sort"

	structpb "github.com/golang/protobuf/ptypes/struct"
)

// toValue converts a decoded JSON value or an argument value into a
// protobuf Value.
func toValue(v interface{}) (*structpb.Value, error) {
	switch t := v.(type) {
	case nil:
		return &structpb.Value{Kind: &structpb.Value_NullValue{NullValue: structpb.NullValue_NULL_VALUE}}, nil
	case string:
		return &structpb.Value{Kind: &structpb.Value_StringValue{StringValue: t}}, nil
	case bool:
		return &structpb.Value{Kind: &structpb.Value_BoolValue{BoolValue: t}}, nil
	case float64:
		return &structpb.Value{Kind: &structpb.Value_NumberValue{NumberValue: t}}, nil
	case int:
		return &structpb.Value{Kind: &structpb.Value_NumberValue{NumberValue: float64(t)}}, nil
	case int64:
		return &structpb.Value{Kind: &structpb.Value_NumberValue{NumberValue: float64(t)}}, nil
	case []string:
		list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(t))}
		for _, s := range t {
			list.Values = append(list.Values, &structpb.Value{Kind: &structpb.Value_StringValue{StringValue: s}})
		}
		return &structpb.Value{Kind: &structpb.Value_ListValue{ListValue: list}}, nil
	case []interface{}:
		list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(t))}
		for _, item := range t {
			pv, err := toValue(item)
			if err != nil {
				return nil, err
			}
			list.Values = append(list.Values, pv)
		}
		return &structpb.Value{Kind: &structpb.Value_ListValue{ListValue: list}}, nil
	case map[string]interface{}:
		s, err := toStruct(t)
		if err != nil {
			return nil, err
		}
		return &structpb.Value{Kind: &structpb.Value_StructValue{StructValue: s}}, nil
	}
	return nil, fmt.Errorf("unsupported value type %s", reflect.TypeOf(v))
}

func toStruct(m map[string]interface{}) (*structpb.Struct, error) {
	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(m))}
	for k, v := range m {
		pv, err := toValue(v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %v", k, err)
		}
		s.Fields[k] = pv
	}
	return s, nil
}

// fromValue is the inverse of toValue, yielding encoding/json shaped values.
func fromValue(v *structpb.Value) interface{} {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_BoolValue:
		return k.BoolValue
	case *structpb.Value_NumberValue:
		return k.NumberValue
	case *structpb.Value_StructValue:
		return fromStruct(k.StructValue)
	case *structpb.Value_ListValue:
		out := make([]interface{}, 0, len(k.ListValue.GetValues()))
		for _, item := range k.ListValue.GetValues() {
			out = append(out, fromValue(item))
		}
		return out
	}
	return nil
}

func fromStruct(s *structpb.Struct) map[string]interface{} {
	out := make(map[string]interface{}, len(s.GetFields()))
	for k, v := range s.GetFields() {
		out[k] = fromValue(v)
	}
	return out
}

// argValue narrows a decoded value to what the template engine accepts:
// lists of strings become []string.
func argValue(v interface{}) interface{} {
	list, ok := v.([]interface{})
	if !ok {
		return v
	}
	strs := make([]string, 0, len(list))
	for _, item := range list {
		strs = append(strs, fmt.Sprint(item))
	}
	return strs
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
