// Package graph renders the resource dependency graph of a built template in
// DOT or Mermaid format.
package graph

import (
	"io"
	"strings"

	"github.com/emicklei/dot"
	"github.com/jrzesz33/civ6_notif/internal/cfn"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// EdgeKind tells how one template entry depends on another.
type EdgeKind string

const (
	// EdgeDependsOn is an explicit DependsOn entry.
	EdgeDependsOn EdgeKind = "DependsOn"
	// EdgeRef is a Ref to a resource or parameter.
	EdgeRef EdgeKind = "Ref"
	// EdgeGetAtt is an Fn::GetAtt on a resource attribute.
	EdgeGetAtt EdgeKind = "GetAtt"
)

// Edge points from a resource to an entry it needs.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
}

// Generator creates dependency graphs from template documents.
type Generator struct {
	// IncludeParameters adds parameter nodes and the references to them.
	IncludeParameters bool

	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByType groups resources by AWS service.
	ClusterByType bool
}

// Generate writes the dependency graph of doc to w.
func (g *Generator) Generate(doc *cfn.Document, w io.Writer) error {
	graph := g.buildGraph(doc)

	var output string
	if g.Format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := io.WriteString(w, output)
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(doc *cfn.Document) (string, error) {
	var sb strings.Builder
	if err := g.Generate(doc, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Edges returns the graph edges in resource declaration order. An explicit
// DependsOn wins over a Ref or GetAtt to the same target.
func (g *Generator) Edges(doc *cfn.Document) []Edge {
	known := make(map[string]bool, len(doc.Resources))
	for _, r := range doc.Resources {
		known[r.Name] = true
	}
	if g.IncludeParameters {
		for _, p := range doc.Parameters {
			known[p.Name] = true
		}
	}

	var edges []Edge
	for _, r := range doc.Resources {
		seen := make(map[string]bool)
		for _, dep := range r.DependsOn {
			if known[dep] && !seen[dep] {
				seen[dep] = true
				edges = append(edges, Edge{From: r.Name, To: dep, Kind: EdgeDependsOn})
			}
		}
		for _, ref := range r.References() {
			if !known[ref.Target] || seen[ref.Target] {
				continue
			}
			seen[ref.Target] = true
			kind := EdgeRef
			if ref.Attribute != "" {
				kind = EdgeGetAtt
			}
			edges = append(edges, Edge{From: r.Name, To: ref.Target, Kind: kind})
		}
	}
	return edges
}

func (g *Generator) buildGraph(doc *cfn.Document) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	if g.ClusterByType {
		g.addClusteredNodes(graph, doc.Resources)
	} else {
		for _, r := range doc.Resources {
			addResourceNode(graph, r)
		}
	}

	if g.IncludeParameters {
		for _, p := range doc.Parameters {
			n := graph.Node(p.Name)
			n.Attr("shape", "ellipse")
			n.Attr("style", "dashed")
			n.Label(p.Name)
		}
	}

	for _, edge := range g.Edges(doc) {
		e := graph.Edge(graph.Node(edge.From), graph.Node(edge.To))
		switch edge.Kind {
		case EdgeGetAtt:
			e.Attr("color", "blue")
		case EdgeDependsOn:
			e.Attr("style", "dashed")
		}
	}

	return graph
}

// addClusteredNodes groups resources of services with more than one resource.
func (g *Generator) addClusteredNodes(graph *dot.Graph, resources []cfn.ResourceDef) {
	var services []string
	byService := make(map[string][]cfn.ResourceDef)
	for _, r := range resources {
		service := serviceOf(r.Type)
		if _, ok := byService[service]; !ok {
			services = append(services, service)
		}
		byService[service] = append(byService[service], r)
	}

	for _, service := range services {
		members := byService[service]
		if len(members) == 1 {
			addResourceNode(graph, members[0])
			continue
		}
		cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
		cluster.Attr("label", service)
		cluster.Attr("style", "rounded")
		cluster.Attr("bgcolor", "lightyellow")
		for _, r := range members {
			addResourceNode(cluster, r)
		}
	}
}

func addResourceNode(graph *dot.Graph, r cfn.ResourceDef) {
	graph.Node(r.Name).Label(r.Name + "\\n[" + r.Type + "]")
}

// serviceOf extracts the service from a resource type.
// e.g., "AWS::ApiGateway::Method" -> "ApiGateway"
func serviceOf(resourceType string) string {
	parts := strings.Split(resourceType, "::")
	if len(parts) == 3 {
		return parts[1]
	}
	return "Other"
}
