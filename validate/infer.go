package validate

import (
	"sort"
	"strings"

	"github.com/c360studio/semshape/graph"
)

// InferTargets derives candidate schema paths from the IRIs an instance
// graph uses, for validation requests that name no schema. Namespaces on
// the ignore list are assumed to carry no validatable constraints and are
// skipped. Results are sorted and deduplicated.
func InferTargets(instance *graph.Graph, ignore []string) []string {
	seen := map[string]bool{}
	var targets []string

	consider := func(iri string) {
		base, ok := extractBase(iri)
		if !ok || seen[base] {
			return
		}
		seen[base] = true
		if ignored(base, ignore) {
			return
		}
		targets = append(targets, base)
	}

	for _, t := range instance.Triples() {
		consider(t.Subject)
		consider(t.Predicate)
		if t.Object.IsIRI {
			consider(t.Object.Value)
		}
	}

	sort.Strings(targets)
	return targets
}

// extractBase strips the fragment or last path segment and the scheme from
// an IRI, leaving a host-qualified schema path. Blank nodes and file IRIs
// yield nothing; they never identify a served schema.
func extractBase(iri string) (string, bool) {
	if graph.IsBlankNode(iri) || strings.HasPrefix(iri, "file:") {
		return "", false
	}

	base := iri
	if i := strings.Index(base, "#"); i >= 0 {
		base = base[:i]
	}

	switch {
	case strings.HasPrefix(base, "http://"):
		base = base[len("http://"):]
	case strings.HasPrefix(base, "https://"):
		base = base[len("https://"):]
	default:
		return "", false
	}

	base = strings.Trim(base, "/")
	if base == "" || !strings.Contains(base, "/") {
		return "", false
	}
	return base, true
}

func ignored(base string, ignore []string) bool {
	for _, ns := range ignore {
		if strings.Contains(base, ns) {
			return true
		}
	}
	return false
}
