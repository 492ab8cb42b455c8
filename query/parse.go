package query

import (
	"strings"
)

// Term is one position of a triple pattern: a ?variable, an <IRI>, or a
// "literal".
type Term struct {
	Value string
	IsVar bool
	IsIRI bool
}

// Pattern is one triple pattern.
type Pattern struct {
	S, P, O Term
}

// Parse reads a query: one triple pattern per line, terms separated by
// whitespace, optional trailing dot. Blank lines and #-comments are
// skipped.
func Parse(query string) ([]Pattern, error) {
	var patterns []Pattern

	for i, raw := range strings.Split(query, "\n") {
		line := strings.TrimSpace(raw)
		line = strings.TrimSuffix(line, ".")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		terms, err := splitTerms(line, i+1)
		if err != nil {
			return nil, err
		}
		if len(terms) != 3 {
			return nil, &Error{Line: i + 1, Msg: "expected exactly three terms"}
		}

		s, err := parseTerm(terms[0], i+1)
		if err != nil {
			return nil, err
		}
		p, err := parseTerm(terms[1], i+1)
		if err != nil {
			return nil, err
		}
		o, err := parseTerm(terms[2], i+1)
		if err != nil {
			return nil, err
		}

		if !s.IsVar && !s.IsIRI {
			return nil, &Error{Line: i + 1, Msg: "subject must be a variable or an IRI"}
		}
		if !p.IsVar && !p.IsIRI {
			return nil, &Error{Line: i + 1, Msg: "predicate must be a variable or an IRI"}
		}
		patterns = append(patterns, Pattern{S: s, P: p, O: o})
	}

	return patterns, nil
}

// splitTerms tokenizes a line, keeping quoted literals intact.
func splitTerms(line string, lineNo int) ([]string, error) {
	var terms []string
	rest := line
	for rest != "" {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			break
		}
		switch rest[0] {
		case '"':
			end := strings.Index(rest[1:], `"`)
			if end < 0 {
				return nil, &Error{Line: lineNo, Msg: "unterminated literal"}
			}
			terms = append(terms, rest[:end+2])
			rest = rest[end+2:]
		case '<':
			end := strings.Index(rest, ">")
			if end < 0 {
				return nil, &Error{Line: lineNo, Msg: "unterminated IRI"}
			}
			terms = append(terms, rest[:end+1])
			rest = rest[end+1:]
		default:
			end := strings.IndexAny(rest, " \t")
			if end < 0 {
				terms = append(terms, rest)
				rest = ""
			} else {
				terms = append(terms, rest[:end])
				rest = rest[end:]
			}
		}
	}
	return terms, nil
}

func parseTerm(tok string, lineNo int) (Term, error) {
	switch {
	case strings.HasPrefix(tok, "?"):
		name := tok[1:]
		if name == "" {
			return Term{}, &Error{Line: lineNo, Msg: "variable needs a name"}
		}
		return Term{Value: name, IsVar: true}, nil
	case strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">"):
		return Term{Value: tok[1 : len(tok)-1], IsIRI: true}, nil
	case strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`) && len(tok) >= 2:
		return Term{Value: tok[1 : len(tok)-1]}, nil
	default:
		return Term{}, &Error{Line: lineNo, Msg: "term must be ?var, <iri>, or \"literal\": " + tok}
	}
}
