// Package cfn assembles CloudFormation templates from typed resource declarations
// and serializes them to JSON and YAML with their declaration order preserved.
package cfn

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// FormatVersion is the only template format version CloudFormation accepts.
const FormatVersion = "2010-09-09"

var (
	// ErrDuplicateLogicalName is returned when a logical name is added twice to the same section.
	ErrDuplicateLogicalName = errors.New("duplicate logical name")

	// ErrDefaultNotAllowed is returned when a parameter default is not one of its allowed values.
	ErrDefaultNotAllowed = errors.New("default is not an allowed value")
)

// Resource is implemented by every typed resource declaration.
type Resource interface {
	// ResourceType returns the CloudFormation type, e.g. "AWS::SNS::Topic".
	ResourceType() string
}

// Parameter is a template parameter declaration.
type Parameter struct {
	Type          string   `json:"Type"`
	Description   string   `json:"Description,omitempty"`
	Default       any      `json:"Default,omitempty"`
	AllowedValues []string `json:"AllowedValues,omitempty"`
	// NoEcho masks the value in the console, API responses and stack events.
	NoEcho bool `json:"NoEcho,omitempty"`
}

// Validate checks that Default is a member of AllowedValues when both are set.
func (p Parameter) Validate() error {
	if p.Type == "" {
		return errors.New("parameter type is required")
	}
	if p.Default == nil || len(p.AllowedValues) == 0 {
		return nil
	}
	def := fmt.Sprint(p.Default)
	if !slices.Contains(p.AllowedValues, def) {
		return fmt.Errorf("%w: %q not in %v", ErrDefaultNotAllowed, def, p.AllowedValues)
	}
	return nil
}

// Output is a stack output declaration.
type Output struct {
	Description string  `json:"Description,omitempty"`
	Value       any     `json:"Value"`
	Export      *Export `json:"Export,omitempty"`
}

// Export names an output for cross-stack Fn::ImportValue.
type Export struct {
	Name any `json:"Name"`
}

type namedParameter struct {
	name  string
	param Parameter
}

type namedResource struct {
	name      string
	res       Resource
	dependsOn []string
}

type namedOutput struct {
	name   string
	output Output
}

// Template is an ordered aggregate of parameters, resources and outputs.
// Entries are serialized in the order they were added.
type Template struct {
	Description string

	parameters []namedParameter
	resources  []namedResource
	outputs    []namedOutput
}

// New returns an empty template with the given description.
func New(description string) *Template {
	return &Template{Description: description}
}

// AddParameter declares a parameter under a logical name.
func (t *Template) AddParameter(name string, p Parameter) error {
	if t.HasParameter(name) {
		return fmt.Errorf("parameter %s: %w", name, ErrDuplicateLogicalName)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("parameter %s: %w", name, err)
	}
	t.parameters = append(t.parameters, namedParameter{name: name, param: p})
	return nil
}

// AddResource declares a resource under a logical name. dependsOn lists logical
// names that CloudFormation must create first.
func (t *Template) AddResource(name string, r Resource, dependsOn ...string) error {
	if r == nil {
		return fmt.Errorf("resource %s: nil resource", name)
	}
	if t.HasResource(name) {
		return fmt.Errorf("resource %s: %w", name, ErrDuplicateLogicalName)
	}
	t.resources = append(t.resources, namedResource{name: name, res: r, dependsOn: dependsOn})
	return nil
}

// AddOutput declares a stack output under a logical name.
func (t *Template) AddOutput(name string, o Output) error {
	for _, existing := range t.outputs {
		if existing.name == name {
			return fmt.Errorf("output %s: %w", name, ErrDuplicateLogicalName)
		}
	}
	t.outputs = append(t.outputs, namedOutput{name: name, output: o})
	return nil
}

// HasParameter reports whether a parameter with the logical name exists.
func (t *Template) HasParameter(name string) bool {
	for _, p := range t.parameters {
		if p.name == name {
			return true
		}
	}
	return false
}

// HasResource reports whether a resource with the logical name exists.
func (t *Template) HasResource(name string) bool {
	for _, r := range t.resources {
		if r.name == name {
			return true
		}
	}
	return false
}

// ParameterNames returns parameter logical names in declaration order.
func (t *Template) ParameterNames() []string {
	names := make([]string, len(t.parameters))
	for i, p := range t.parameters {
		names[i] = p.name
	}
	return names
}

// Build normalizes the template into a Document. Property values are passed
// through encoding/json so intrinsic functions and typed structs become plain
// maps and slices, which is what makes the JSON and YAML encodings agree.
func (t *Template) Build() (*Document, error) {
	doc := &Document{
		FormatVersion: FormatVersion,
		Description:   t.Description,
	}

	for _, p := range t.parameters {
		def, err := normalizeMap(p.param)
		if err != nil {
			return nil, fmt.Errorf("serializing parameter %s: %w", p.name, err)
		}
		doc.Parameters = append(doc.Parameters, NamedValue{Name: p.name, Value: def})
	}

	for _, r := range t.resources {
		props, err := normalizeMap(r.res)
		if err != nil {
			return nil, fmt.Errorf("serializing resource %s: %w", r.name, err)
		}
		doc.Resources = append(doc.Resources, ResourceDef{
			Name:       r.name,
			Type:       r.res.ResourceType(),
			DependsOn:  slices.Clone(r.dependsOn),
			Properties: props,
		})
	}

	for _, o := range t.outputs {
		def, err := normalizeMap(o.output)
		if err != nil {
			return nil, fmt.Errorf("serializing output %s: %w", o.name, err)
		}
		doc.Outputs = append(doc.Outputs, NamedValue{Name: o.name, Value: def})
	}

	return doc, nil
}

// JSON builds the template and encodes it as indented JSON.
func (t *Template) JSON() ([]byte, error) {
	doc, err := t.Build()
	if err != nil {
		return nil, err
	}
	return doc.JSON()
}

// YAML builds the template and encodes it as YAML.
func (t *Template) YAML() ([]byte, error) {
	doc, err := t.Build()
	if err != nil {
		return nil, err
	}
	return doc.YAML()
}

func normalizeMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
