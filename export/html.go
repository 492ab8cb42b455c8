package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/c360studio/semshape/graph"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { border-bottom: 1px solid #ccc; padding-bottom: 0.3em; }
h2 { margin-top: 1.5em; }
table { border-collapse: collapse; width: 100%; }
td, th { border: 1px solid #ddd; padding: 0.4em 0.6em; text-align: left; vertical-align: top; }
th { background: #f5f5f5; }
code { background: #f0f0f0; padding: 0.1em 0.3em; }
.comment { color: #555; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Comment}}<p class="comment">{{.Comment}}</p>{{end}}

{{if .Classes}}
<h2>Classes</h2>
<table>
<tr><th>Class</th><th>Description</th><th>Subclass of</th></tr>
{{range .Classes}}
<tr><td><code>{{.IRI}}</code><br>{{.Label}}</td><td>{{.Comment}}</td><td>{{range .SuperClasses}}<code>{{.}}</code><br>{{end}}</td></tr>
{{end}}
</table>
{{end}}

{{if .Properties}}
<h2>Properties</h2>
<table>
<tr><th>Property</th><th>Description</th><th>Domain</th><th>Range</th></tr>
{{range .Properties}}
<tr><td><code>{{.IRI}}</code><br>{{.Label}}</td><td>{{.Comment}}</td><td><code>{{.Domain}}</code></td><td><code>{{.Range}}</code></td></tr>
{{end}}
</table>
{{end}}

{{if .Shapes}}
<h2>Shapes</h2>
<table>
<tr><th>Shape</th><th>Target class</th><th>Constrained paths</th></tr>
{{range .Shapes}}
<tr><td><code>{{.IRI}}</code><br>{{.Label}}</td><td><code>{{.TargetClass}}</code></td><td>{{range .Paths}}<code>{{.}}</code><br>{{end}}</td></tr>
{{end}}
</table>
{{end}}

{{if .Statements}}
<h2>Statements</h2>
<table>
<tr><th>Predicate</th><th>Value</th></tr>
{{range .Statements}}
<tr><td><code>{{.Predicate}}</code></td><td>{{.Value}}</td></tr>
{{end}}
</table>
{{end}}
</body>
</html>
`

// HTMLRenderer renders human-readable pages for documents and elements.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the page template once.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tmpl: template.Must(template.New("page").Parse(pageTemplate))}
}

type shapeRow struct {
	IRI         string
	Label       string
	TargetClass string
	Paths       []string
}

type statementRow struct {
	Predicate string
	Value     string
}

type pageData struct {
	Title      string
	Comment    string
	Classes    []graph.Class
	Properties []graph.Property
	Shapes     []shapeRow
	Statements []statementRow
}

// RenderDocument writes the overview page for one schema document: its
// classes, properties, and shapes.
func (r *HTMLRenderer) RenderDocument(w io.Writer, path string, g *graph.Graph) error {
	data := pageData{
		Title:      path,
		Classes:    graph.ClassViews(g),
		Properties: graph.PropertyViews(g),
	}
	for _, sh := range graph.ShapeViews(g) {
		row := shapeRow{IRI: sh.IRI, Label: sh.Label, TargetClass: sh.TargetClass}
		for _, ref := range sh.Properties {
			row.Paths = append(row.Paths, graph.LocalName(ref.Node))
		}
		data.Shapes = append(data.Shapes, row)
	}
	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render document page: %w", err)
	}
	return nil
}

// RenderElement writes the detail page for one subject: every statement the
// graph holds about it.
func (r *HTMLRenderer) RenderElement(w io.Writer, subject string, g *graph.Graph) error {
	data := pageData{
		Title:   graph.LabelOf(g, subject),
		Comment: graph.CommentOf(g, subject),
	}
	for _, pred := range g.Predicates(subject) {
		for _, o := range g.Objects(subject, pred) {
			data.Statements = append(data.Statements, statementRow{
				Predicate: graph.LocalName(pred),
				Value:     o.String(),
			})
		}
	}
	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render element page: %w", err)
	}
	return nil
}
