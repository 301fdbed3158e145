package cfn

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is a built template: every value is plain JSON data and every
// section keeps declaration order.
type Document struct {
	FormatVersion string
	Description   string
	Parameters    []NamedValue
	Resources     []ResourceDef
	Outputs       []NamedValue
}

// NamedValue is a parameter or output definition under its logical name.
type NamedValue struct {
	Name  string
	Value map[string]any
}

// ResourceDef is a single normalized resource.
type ResourceDef struct {
	Name       string
	Type       string
	DependsOn  []string
	Properties map[string]any
}

// Resource returns the resource with the logical name.
func (d *Document) Resource(name string) (ResourceDef, bool) {
	for _, r := range d.Resources {
		if r.Name == name {
			return r, true
		}
	}
	return ResourceDef{}, false
}

// ResourcesOfType returns resources of a CloudFormation type in declaration order.
func (d *Document) ResourcesOfType(resourceType string) []ResourceDef {
	var out []ResourceDef
	for _, r := range d.Resources {
		if r.Type == resourceType {
			out = append(out, r)
		}
	}
	return out
}

// Parameter returns the parameter definition with the logical name.
func (d *Document) Parameter(name string) (map[string]any, bool) {
	return lookup(d.Parameters, name)
}

// Output returns the output definition with the logical name.
func (d *Document) Output(name string) (map[string]any, bool) {
	return lookup(d.Outputs, name)
}

func lookup(values []NamedValue, name string) (map[string]any, bool) {
	for _, v := range values {
		if v.Name == name {
			return v.Value, true
		}
	}
	return nil, false
}

// JSON encodes the document as two-space indented JSON.
func (d *Document) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(d.ordered(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding template as JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// YAML encodes the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.ordered()); err != nil {
		return nil, fmt.Errorf("encoding template as YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding template as YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *Document) ordered() orderedMap {
	top := orderedMap{{Key: "AWSTemplateFormatVersion", Value: d.FormatVersion}}
	if d.Description != "" {
		top = append(top, mapItem{Key: "Description", Value: d.Description})
	}
	if len(d.Parameters) > 0 {
		top = append(top, mapItem{Key: "Parameters", Value: namedSection(d.Parameters)})
	}

	resources := make(orderedMap, 0, len(d.Resources))
	for _, r := range d.Resources {
		entry := orderedMap{{Key: "Type", Value: r.Type}}
		switch len(r.DependsOn) {
		case 0:
		case 1:
			entry = append(entry, mapItem{Key: "DependsOn", Value: r.DependsOn[0]})
		default:
			entry = append(entry, mapItem{Key: "DependsOn", Value: r.DependsOn})
		}
		if len(r.Properties) > 0 {
			entry = append(entry, mapItem{Key: "Properties", Value: r.Properties})
		}
		resources = append(resources, mapItem{Key: r.Name, Value: entry})
	}
	top = append(top, mapItem{Key: "Resources", Value: resources})

	if len(d.Outputs) > 0 {
		top = append(top, mapItem{Key: "Outputs", Value: namedSection(d.Outputs)})
	}
	return top
}

func namedSection(values []NamedValue) orderedMap {
	section := make(orderedMap, 0, len(values))
	for _, v := range values {
		section = append(section, mapItem{Key: v.Name, Value: v.Value})
	}
	return section
}

type mapItem struct {
	Key   string
	Value any
}

// orderedMap encodes as a JSON object or YAML mapping with keys in slice order.
type orderedMap []mapItem

func (m orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(item.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(item.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", item.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m orderedMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, item := range m {
		var key, val yaml.Node
		if err := key.Encode(item.Key); err != nil {
			return nil, err
		}
		if err := val.Encode(item.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", item.Key, err)
		}
		node.Content = append(node.Content, &key, &val)
	}
	return node, nil
}
