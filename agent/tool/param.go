package tool

import (
	"github.com/cloudwego/eino/schema"
)

type ParamType string

const (
	String  ParamType = "string"
	Number  ParamType = "number"
	Integer ParamType = "integer"
	Boolean ParamType = "boolean"
	Object  ParamType = "object"
	Array   ParamType = "array"
)

// Param describes one argument of a tool. It renders both to JSON Schema
// (validation) and to eino parameter info (model binding).
type Param struct {
	Name     string
	Type     ParamType
	Desc     string
	Required bool
	Minimum  *float64
	Maximum  *float64
	Default  any
	Enum     []string
	// Items is the element type of an Array.
	Items ParamType
	// Values is the value type of an Object used as a free-form map.
	Values ParamType
}

func Float(v float64) *float64 {
	return &v
}

func (p Param) jsonSchema() map[string]any {
	prop := map[string]any{"type": string(p.Type)}
	if p.Desc != "" {
		prop["description"] = p.Desc
	}
	if p.Minimum != nil {
		prop["minimum"] = *p.Minimum
	}
	if p.Maximum != nil {
		prop["maximum"] = *p.Maximum
	}
	if p.Default != nil {
		prop["default"] = p.Default
	}
	if len(p.Enum) > 0 {
		enum := make([]any, 0, len(p.Enum))
		for _, v := range p.Enum {
			enum = append(enum, v)
		}
		prop["enum"] = enum
	}
	if p.Type == String && p.Required {
		prop["minLength"] = 1
	}
	if p.Type == Array && p.Items != "" {
		prop["items"] = map[string]any{"type": string(p.Items)}
	}
	if p.Type == Object && p.Values != "" {
		prop["additionalProperties"] = map[string]any{"type": string(p.Values)}
		prop["propertyNames"] = map[string]any{"minLength": 1}
	}
	return prop
}

func (p Param) einoInfo() *schema.ParameterInfo {
	info := &schema.ParameterInfo{
		Type:     einoType(p.Type),
		Desc:     p.Desc,
		Required: p.Required,
		Enum:     append([]string(nil), p.Enum...),
	}
	if p.Type == Array && p.Items != "" {
		info.ElemInfo = &schema.ParameterInfo{Type: einoType(p.Items)}
	}
	return info
}

func einoType(t ParamType) schema.DataType {
	switch t {
	case Number:
		return schema.Number
	case Integer:
		return schema.Integer
	case Boolean:
		return schema.Boolean
	case Object:
		return schema.Object
	case Array:
		return schema.Array
	default:
		return schema.String
	}
}

func objectSchema(params []Param) map[string]any {
	props := make(map[string]any, len(params))
	required := make([]any, 0, len(params))
	for _, p := range params {
		props[p.Name] = p.jsonSchema()
		if p.Required {
			required = append(required, p.Name)
		}
	}
	doc := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}
