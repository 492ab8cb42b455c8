// Package query answers read-only triple-pattern queries over a snapshot
// graph. The Engine interface is the seam where an external query engine
// could be plugged in.
package query

import (
	"fmt"

	"github.com/c360studio/semshape/graph"
)

// Error indicates a malformed query string. It maps to HTTP 400.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("query line %d: %s", e.Line, e.Msg)
}

// Result is a set of variable bindings.
type Result struct {
	Vars []string            `json:"vars"`
	Rows []map[string]string `json:"rows"`
}

// Engine evaluates a query against a graph without mutating it.
type Engine interface {
	Query(g *graph.Graph, query string) (*Result, error)
}

// PatternEngine evaluates conjunctive triple patterns, one per line. Terms
// are ?variables, <IRIs>, or "literals".
type PatternEngine struct{}

// NewPatternEngine returns the built-in pattern engine.
func NewPatternEngine() *PatternEngine {
	return &PatternEngine{}
}

// Query parses and evaluates the query. Patterns join on shared variables;
// rows come out in graph insertion order of the first pattern's matches.
func (e *PatternEngine) Query(g *graph.Graph, query string) (*Result, error) {
	patterns, err := Parse(query)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, &Error{Line: 1, Msg: "empty query"}
	}

	result := &Result{Vars: collectVars(patterns)}

	bindings := []map[string]string{{}}
	for _, p := range patterns {
		var next []map[string]string
		for _, binding := range bindings {
			next = append(next, matchPattern(g, p, binding)...)
		}
		bindings = next
		if len(bindings) == 0 {
			break
		}
	}

	result.Rows = bindings
	if result.Rows == nil {
		result.Rows = []map[string]string{}
	}
	return result, nil
}

func collectVars(patterns []Pattern) []string {
	seen := map[string]bool{}
	var vars []string
	for _, p := range patterns {
		for _, t := range []Term{p.S, p.P, p.O} {
			if t.IsVar && !seen[t.Value] {
				seen[t.Value] = true
				vars = append(vars, t.Value)
			}
		}
	}
	return vars
}

// matchPattern extends one binding with every triple matching the pattern.
func matchPattern(g *graph.Graph, p Pattern, binding map[string]string) []map[string]string {
	var out []map[string]string
	for _, t := range g.Triples() {
		objValue := t.Object.Value

		if !termMatches(p.S, t.Subject, binding, true) {
			continue
		}
		if !termMatches(p.P, t.Predicate, binding, true) {
			continue
		}
		if !termMatches(p.O, objValue, binding, t.Object.IsIRI) {
			continue
		}

		extended := make(map[string]string, len(binding)+3)
		for k, v := range binding {
			extended[k] = v
		}
		bindTerm(extended, p.S, t.Subject)
		bindTerm(extended, p.P, t.Predicate)
		bindTerm(extended, p.O, objValue)
		out = append(out, extended)
	}
	return out
}

func termMatches(t Term, value string, binding map[string]string, isIRI bool) bool {
	if t.IsVar {
		bound, ok := binding[t.Value]
		return !ok || bound == value
	}
	if t.IsIRI != isIRI {
		return false
	}
	return t.Value == value
}

func bindTerm(binding map[string]string, t Term, value string) {
	if t.IsVar {
		binding[t.Value] = value
	}
}
