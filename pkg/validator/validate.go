package validator

import (
	"math"
	"strconv"
	"strings"

	"github.com/lumenpulse/apikit/pkg/payload"
)

// RootProperty names the error node reported when the payload itself is not
// an object.
const RootProperty = "body"

var (
	violationRequired  = Violation{Rule: "isDefined", Message: "is required"}
	violationWhitelist = Violation{Rule: "whitelistValidation", Message: "unexpected property"}
	violationString    = Violation{Rule: "isString", Message: "must be a string"}
	violationNumber    = Violation{Rule: "isNumber", Message: "must be a number"}
	violationInteger   = Violation{Rule: "isInt", Message: "must be an integer number"}
	violationBoolean   = Violation{Rule: "isBoolean", Message: "must be a boolean value"}
	violationObject    = Violation{Rule: "isObject", Message: "must be an object"}
	violationArray     = Violation{Rule: "isArray", Message: "must be an array"}
)

// Validate checks raw against s and returns a coerced copy that contains only
// the declared fields. A null payload is treated as an empty object.
//
// On failure the returned error is a *ValidationError holding every problem
// found; the returned value is then the zero Value.
func Validate(raw payload.Value, s Schema) (payload.Value, error) {
	if raw.IsNull() {
		raw = payload.Object()
	}
	if raw.Kind() != payload.KindObject {
		return payload.Value{}, &ValidationError{Nodes: []ErrorNode{{
			Property:    RootProperty,
			Constraints: []Violation{violationObject},
		}}}
	}

	out, nodes := validateObject(raw, s)
	if len(nodes) > 0 {
		return payload.Value{}, &ValidationError{Nodes: nodes}
	}
	return out, nil
}

func validateObject(obj payload.Value, s Schema) (payload.Value, []ErrorNode) {
	var nodes []ErrorNode
	members := make([]payload.Member, 0, len(s.Fields))

	for _, f := range s.Fields {
		v, present := obj.Get(f.Name)
		if !present || v.IsNull() {
			if f.Required {
				nodes = append(nodes, ErrorNode{Property: f.Name, Constraints: []Violation{violationRequired}})
			} else if present {
				members = append(members, payload.Field(f.Name, payload.Null()))
			}
			continue
		}

		out, node := validateField(f.Name, f, v)
		if node != nil {
			nodes = append(nodes, *node)
			continue
		}
		members = append(members, payload.Field(f.Name, out))
	}

	for _, key := range obj.Keys() {
		if _, declared := s.Field(key); !declared {
			nodes = append(nodes, ErrorNode{Property: key, Constraints: []Violation{violationWhitelist}})
		}
	}

	return payload.Object(members...), nodes
}

// validateField returns a non-nil node when v fails f.
func validateField(property string, f Field, v payload.Value) (payload.Value, *ErrorNode) {
	coerced, ok := coerce(f, v)
	if !ok {
		return payload.Value{}, &ErrorNode{Property: property, Constraints: []Violation{typeViolation(f.Type)}}
	}

	node := ErrorNode{Property: property}
	switch f.Type {
	case TypeObject:
		var schema Schema
		if f.Schema != nil {
			schema = *f.Schema
		}
		coerced, node.Children = validateObject(coerced, schema)
	case TypeArray:
		if f.Items != nil {
			coerced, node.Children = validateItems(coerced, *f.Items)
		}
	}

	for _, c := range f.Constraints {
		if !c.Check(coerced) {
			node.Constraints = append(node.Constraints, Violation{Rule: c.Name, Message: c.Message})
		}
	}

	if len(node.Constraints) > 0 || len(node.Children) > 0 {
		return payload.Value{}, &node
	}
	return coerced, nil
}

func validateItems(list payload.Value, items Field) (payload.Value, []ErrorNode) {
	var nodes []ErrorNode
	elems := list.Items()
	out := make([]payload.Value, 0, len(elems))
	for i, elem := range elems {
		v, node := validateField(strconv.Itoa(i), items, elem)
		if node != nil {
			nodes = append(nodes, *node)
			v = elem
		}
		out = append(out, v)
	}
	return payload.List(out...), nodes
}

func coerce(f Field, v payload.Value) (payload.Value, bool) {
	switch f.Type {
	case TypeString:
		var s string
		switch v.Kind() {
		case payload.KindString:
			s, _ = v.Str()
		case payload.KindNumber, payload.KindBool:
			s = v.Text()
		default:
			return payload.Value{}, false
		}
		if f.Transform != nil {
			s = f.Transform(s)
		}
		return payload.String(s), true

	case TypeNumber, TypeInteger:
		n, ok := toNumber(v)
		if !ok {
			return payload.Value{}, false
		}
		out := payload.Number(n)
		if f.Type == TypeInteger && !out.IsInteger() {
			return payload.Value{}, false
		}
		return out, true

	case TypeBoolean:
		return toBool(v)

	case TypeObject:
		return v, v.Kind() == payload.KindObject

	case TypeArray:
		switch v.Kind() {
		case payload.KindList:
			return v, true
		case payload.KindString, payload.KindNumber, payload.KindBool:
			// A single query parameter arrives as a scalar.
			return payload.List(v), true
		}
		return payload.Value{}, false
	}

	if s, ok := v.Str(); ok && f.Transform != nil {
		return payload.String(f.Transform(s)), true
	}
	return v, true
}

func toNumber(v payload.Value) (float64, bool) {
	switch v.Kind() {
	case payload.KindNumber:
		n, _ := v.Num()
		return n, true
	case payload.KindString:
		s := strings.TrimSpace(v.Text())
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func toBool(v payload.Value) (payload.Value, bool) {
	switch v.Kind() {
	case payload.KindBool:
		return v, true
	case payload.KindString:
		s, _ := v.Str()
		switch strings.TrimSpace(s) {
		case "true", "1":
			return payload.Bool(true), true
		case "false", "0":
			return payload.Bool(false), true
		}
	case payload.KindNumber:
		n, _ := v.Num()
		switch n {
		case 1:
			return payload.Bool(true), true
		case 0:
			return payload.Bool(false), true
		}
	}
	return payload.Value{}, false
}

func typeViolation(t Type) Violation {
	switch t {
	case TypeString:
		return violationString
	case TypeNumber:
		return violationNumber
	case TypeInteger:
		return violationInteger
	case TypeBoolean:
		return violationBoolean
	case TypeObject:
		return violationObject
	case TypeArray:
		return violationArray
	}
	return Violation{Rule: "isType", Message: "has an unsupported type"}
}
