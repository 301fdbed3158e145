package cfn

import (
	"maps"
	"slices"
	"strings"
)

// Reference is an intrinsic reference from one resource to another logical name.
type Reference struct {
	Target string
	// Attribute is set for Fn::GetAtt references and empty for Ref.
	Attribute string
}

// References returns the logical names referenced from the resource properties
// through Ref or Fn::GetAtt, in first-seen order with object keys visited
// alphabetically. Pseudo parameters (AWS::*) are skipped.
func (r ResourceDef) References() []Reference {
	var refs []Reference
	seen := make(map[Reference]bool)
	collectRefs(r.Properties, func(ref Reference) {
		if !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	})
	return refs
}

// Dependencies returns every logical name the resource needs, explicit
// DependsOn entries first, each name once.
func (r ResourceDef) Dependencies() []string {
	var deps []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			deps = append(deps, name)
		}
	}
	for _, d := range r.DependsOn {
		add(d)
	}
	for _, ref := range r.References() {
		add(ref.Target)
	}
	return deps
}

func collectRefs(v any, visit func(Reference)) {
	switch val := v.(type) {
	case map[string]any:
		if target, ok := val["Ref"].(string); ok && len(val) == 1 {
			if !strings.HasPrefix(target, "AWS::") {
				visit(Reference{Target: target})
			}
			return
		}
		if getAtt, ok := val["Fn::GetAtt"]; ok && len(val) == 1 {
			if ref, ok := parseGetAtt(getAtt); ok {
				visit(ref)
			}
			return
		}
		for _, key := range slices.Sorted(maps.Keys(val)) {
			collectRefs(val[key], visit)
		}
	case []any:
		for _, child := range val {
			collectRefs(child, visit)
		}
	}
}

func parseGetAtt(v any) (Reference, bool) {
	switch val := v.(type) {
	case []any:
		if len(val) != 2 {
			return Reference{}, false
		}
		target, ok1 := val[0].(string)
		attr, ok2 := val[1].(string)
		if !ok1 || !ok2 {
			return Reference{}, false
		}
		return Reference{Target: target, Attribute: attr}, true
	case string:
		target, attr, ok := strings.Cut(val, ".")
		if !ok {
			return Reference{}, false
		}
		return Reference{Target: target, Attribute: attr}, true
	}
	return Reference{}, false
}
