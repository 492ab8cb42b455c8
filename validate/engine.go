// Package validate evaluates instance graphs against compiled shapes and
// collects constraint violations into conformance reports.
package validate

import (
	"fmt"
	"log/slog"
	"regexp"
	"unicode/utf8"

	"github.com/c360studio/semshape/graph"
	"github.com/c360studio/semshape/shape"
)

// Violation is one failed constraint check on one subject.
type Violation struct {
	Subject    string `json:"subject"`
	Path       string `json:"path"`
	Constraint string `json:"constraint"`
	Value      string `json:"value,omitempty"`
	Message    string `json:"message"`
}

// Report is the outcome of validating an instance graph. Non-conformance is
// a normal result, not an error.
type Report struct {
	Conforms   bool        `json:"conforms"`
	Class      string      `json:"class"`
	Shapes     []string    `json:"shapes"`
	Subjects   int         `json:"subjects"`
	Violations []Violation `json:"violations"`
}

// ShapeReport pairs one shape of a conflicted class with its independent
// report.
type ShapeReport struct {
	Shape  string  `json:"shape"`
	Report *Report `json:"report"`
}

// Engine runs constraint checks. It is stateless apart from its logger and
// safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// NewEngine returns a validation engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Validate checks every subject of the compiled class in the instance graph
// against the merged constraints. All violations are collected; validation
// never stops at the first failure.
func (e *Engine) Validate(instance *graph.Graph, cs *shape.CompiledShape) *Report {
	report := &Report{
		Conforms: true,
		Class:    cs.Class,
		Shapes:   cs.ShapeSet,
	}

	subjects := instance.SubjectsOfType(cs.Class)
	report.Subjects = len(subjects)

	for _, subject := range subjects {
		for _, path := range cs.Paths() {
			report.Violations = append(report.Violations,
				checkConstraint(instance, subject, cs.Properties[path])...)
		}
	}

	report.Conforms = len(report.Violations) == 0
	return report
}

// ValidateEachShape validates the instance graph against every shape of the
// effective set independently. Used when the merged compile carries
// conflicts and no single authoritative constraint set exists.
func (e *Engine) ValidateEachShape(instance, schemas *graph.Graph, cs *shape.CompiledShape) ([]ShapeReport, error) {
	reports := make([]ShapeReport, 0, len(cs.ShapeSet))
	for _, shapeIRI := range cs.ShapeSet {
		single, err := shape.CompileSingle(schemas, shapeIRI, cs.Class)
		if err != nil {
			return nil, fmt.Errorf("compile shape %s: %w", shapeIRI, err)
		}
		reports = append(reports, ShapeReport{
			Shape:  shapeIRI,
			Report: e.Validate(instance, single),
		})
	}
	return reports, nil
}

func checkConstraint(g *graph.Graph, subject string, pc *shape.PropertyConstraint) []Violation {
	var violations []Violation
	add := func(constraint, value, defaultMsg string) {
		msg := pc.Message
		if msg == "" {
			msg = defaultMsg
		}
		violations = append(violations, Violation{
			Subject:    subject,
			Path:       pc.Path,
			Constraint: constraint,
			Value:      value,
			Message:    msg,
		})
	}

	values := g.Objects(subject, pc.Path)

	if pc.MinCount != nil && len(values) < *pc.MinCount {
		add("minCount", "",
			fmt.Sprintf("expected at least %d values for %s, found %d", *pc.MinCount, pc.Path, len(values)))
	}
	if pc.MaxCount != nil && len(values) > *pc.MaxCount {
		add("maxCount", "",
			fmt.Sprintf("expected at most %d values for %s, found %d", *pc.MaxCount, pc.Path, len(values)))
	}

	var pattern *regexp.Regexp
	if pc.Pattern != "" {
		if re, err := regexp.Compile(pc.Pattern); err == nil {
			pattern = re
		} else {
			add("pattern", pc.Pattern, fmt.Sprintf("invalid pattern %q: %v", pc.Pattern, err))
		}
	}

	for _, o := range values {
		if pc.Class != "" {
			if !o.IsIRI {
				add("class", o.Value,
					fmt.Sprintf("expected a resource of class %s, found literal %q", pc.Class, o.Value))
			} else if len(g.Types(o.Value)) > 0 && !g.HasType(o.Value, pc.Class) {
				add("class", o.Value,
					fmt.Sprintf("%s is not typed as %s", o.Value, pc.Class))
			}
			continue
		}

		if o.IsIRI {
			add("datatype", o.Value,
				fmt.Sprintf("expected a literal for %s, found resource %s", pc.Path, o.Value))
			continue
		}

		if pc.Datatype != "" {
			if err := checkLexical(o, pc.Datatype); err != nil {
				add("datatype", o.Value, err.Error())
			}
		}
		if pattern != nil && !pattern.MatchString(o.Value) {
			add("pattern", o.Value,
				fmt.Sprintf("value %q does not match pattern %q", o.Value, pc.Pattern))
		}
		// Lengths count characters, matching the minLength/maxLength the
		// emitted JSON Schema enforces.
		length := utf8.RuneCountInString(o.Value)
		if pc.MinLength != nil && length < *pc.MinLength {
			add("minLength", o.Value,
				fmt.Sprintf("value %q is shorter than %d characters", o.Value, *pc.MinLength))
		}
		if pc.MaxLength != nil && length > *pc.MaxLength {
			add("maxLength", o.Value,
				fmt.Sprintf("value %q is longer than %d characters", o.Value, *pc.MaxLength))
		}
		violations = append(violations, checkRange(subject, pc, o)...)
		if len(pc.In) > 0 && !inList(o, pc.In) {
			add("in", o.Value,
				fmt.Sprintf("value %q is not one of the allowed values for %s", o.Value, pc.Path))
		}
	}

	return violations
}

// inList compares by value only; a plain "Jane" matches an sh:in entry
// "Jane" regardless of declared datatype.
func inList(o graph.Object, list []graph.Object) bool {
	for _, allowed := range list {
		if allowed.IsIRI == o.IsIRI && allowed.Value == o.Value {
			return true
		}
	}
	return false
}
