package server

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/c360studio/semshape/export"
	"github.com/c360studio/semshape/federate"
	"github.com/c360studio/semshape/graph"
	"github.com/c360studio/semshape/metrics"
	"github.com/c360studio/semshape/namespace"
	"github.com/c360studio/semshape/shape"
	"github.com/c360studio/semshape/store"
	"github.com/c360studio/semshape/validate"
)

// ----------------------------------------------------------------------------
// GET /{path}
// ----------------------------------------------------------------------------

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")

	snap, err := s.store.Snapshot()
	if err != nil {
		writeError(w, err)
		return
	}

	resolver := namespace.New(snap)
	res, err := resolver.Resolve(path)
	if err != nil {
		if reason, quarantined := snap.IsQuarantined(path); quarantined {
			writeJSON(w, http.StatusNotAcceptable, errorResponse{
				Error: fmt.Sprintf("schema %q is quarantined: %s", path, reason),
			})
			return
		}
		writeError(w, err)
		return
	}

	if res.Remote != nil {
		body, contentType, err := s.federation.FetchSchema(r.Context(), res.Remote, r.Header.Get("Accept"), hopCount(r))
		if err != nil {
			writeError(w, err)
			return
		}
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.Write(body)
		return
	}

	format := negotiate(r.Header.Get("Accept"))
	if format == "" {
		writeJSON(w, http.StatusNotAcceptable, errorResponse{
			Error: fmt.Sprintf("no acceptable representation for %q", r.Header.Get("Accept")),
		})
		return
	}

	doc := res.Doc
	metrics.SchemasServed.WithLabelValues(format).Inc()

	switch format {
	case MediaTurtle:
		w.Header().Set("Content-Type", MediaTurtle)
		// Same-format requests get the stored text verbatim.
		if doc.Format == store.FormatTurtle && res.Subject == "" {
			w.Write(doc.Content)
			return
		}
		io.WriteString(w, export.Turtle(doc.Graph))

	case MediaJSONLD:
		w.Header().Set("Content-Type", MediaJSONLD)
		if doc.Format == store.FormatJSONLD && res.Subject == "" {
			w.Write(doc.Content)
			return
		}
		out, err := export.JSONLD(doc.Graph)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Write(out)

	case MediaHTML:
		w.Header().Set("Content-Type", MediaHTML+"; charset=utf-8")
		if res.Subject != "" {
			s.renderer.RenderElement(w, res.Subject, doc.Graph)
			return
		}
		s.renderer.RenderDocument(w, doc.Path, doc.Graph)

	case MediaJSONSchema:
		s.emitJSONSchema(w, r, snap, resolver, path, res)
	}
}

func (s *Server) emitJSONSchema(w http.ResponseWriter, r *http.Request, snap *store.Snapshot, resolver *namespace.Resolver, path string, res *namespace.Resolution) {
	class := res.Subject
	if class == "" {
		iri, err := resolver.ElementIRI(path)
		if err != nil {
			writeError(w, err)
			return
		}
		class = iri
	}

	cs, err := s.compiler.Compile(snap, class)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := export.NewSchemaEmitter(snap.Graph).Emit(cs)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", MediaJSONSchema)
	w.Write(out)
}

// ----------------------------------------------------------------------------
// POST /validate/{path}
// ----------------------------------------------------------------------------

// validationResponse is returned when the compiled shape is conflicted and
// each shape of the effective set reports independently.
type validationResponse struct {
	Class      string                 `json:"class"`
	Conflicted bool                   `json:"conflicted"`
	Conflicts  []string               `json:"conflicts,omitempty"`
	Reports    []validate.ShapeReport `json:"reports"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return
	}

	format, ok := instanceFormat(r.Header.Get("Content-Type"))
	if !ok {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResponse{
			Error: fmt.Sprintf("unsupported content type %q, expected %s or %s",
				r.Header.Get("Content-Type"), MediaTurtle, MediaJSONLD),
		})
		return
	}

	snap, err := s.store.Snapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	resolver := namespace.New(snap)

	// A host-qualified path proxies the whole request to the remote.
	if path != "" {
		if res, err := resolver.Resolve(path); err == nil && res.Remote != nil {
			report, err := s.federation.Validate(r.Context(), res.Remote, body, r.Header.Get("Content-Type"), hopCount(r))
			if err != nil {
				writeError(w, err)
				return
			}
			w.Header().Set("Content-Type", MediaJSON)
			w.Write(report)
			return
		}
	}

	instance, err := store.ParseDocument("instance", format, body)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: fmt.Sprintf("unparseable instance data: %v", err),
		})
		return
	}

	if path == "" {
		s.validateInferred(w, r, snap, instance, body)
		return
	}

	class, err := resolver.ElementIRI(path)
	if err != nil {
		writeError(w, err)
		return
	}
	s.validateClass(w, snap, instance, class)
}

func (s *Server) validateClass(w http.ResponseWriter, snap *store.Snapshot, instance *graph.Graph, class string) {
	cs, err := s.compiler.Compile(snap, class)
	if err != nil {
		writeError(w, err)
		return
	}

	if cs.Conflicted() {
		// No single authoritative constraint set exists; report against
		// each shape of the effective set independently.
		reports, err := s.engine.ValidateEachShape(instance, snap.Graph, cs)
		if err != nil {
			writeError(w, err)
			return
		}
		resp := validationResponse{Class: class, Conflicted: true, Reports: reports}
		for _, path := range sortedConflictPaths(cs.Conflicts) {
			resp.Conflicts = append(resp.Conflicts, path)
		}
		metrics.Validations.WithLabelValues("conflicted").Inc()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	report := s.engine.Validate(instance, cs)
	if report.Conforms {
		metrics.Validations.WithLabelValues("conforms").Inc()
	} else {
		metrics.Validations.WithLabelValues("violations").Inc()
	}
	writeJSON(w, http.StatusOK, report)
}

// validateInferred handles POST /validate/ without a path: candidate schemas
// are inferred from the namespaces the instance data uses.
func (s *Server) validateInferred(w http.ResponseWriter, r *http.Request, snap *store.Snapshot, instance *graph.Graph, body []byte) {
	targets := validate.InferTargets(instance, s.ignore)
	if len(targets) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: "no validatable schema namespaces found in instance data",
		})
		return
	}

	resolver := namespace.New(snap)
	results := make(map[string]any, len(targets))

	for _, target := range targets {
		res, err := resolver.Resolve(target)
		if err != nil {
			results[target] = errorResponse{Error: err.Error()}
			continue
		}
		if res.Remote != nil {
			report, err := s.federation.Validate(r.Context(), res.Remote, body, r.Header.Get("Content-Type"), hopCount(r))
			if err != nil {
				results[target] = errorResponse{Error: err.Error()}
				continue
			}
			results[target] = rawJSON(report)
			continue
		}

		class, err := resolver.ElementIRI(target)
		if err != nil {
			results[target] = errorResponse{Error: err.Error()}
			continue
		}
		cs, err := s.compiler.Compile(snap, class)
		if err != nil {
			results[target] = errorResponse{Error: err.Error()}
			continue
		}
		results[target] = s.engine.Validate(instance, cs)
	}

	writeJSON(w, http.StatusOK, results)
}

// ----------------------------------------------------------------------------
// POST /query
// ----------------------------------------------------------------------------

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return
	}

	snap, err := s.store.Snapshot()
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.queries.Query(snap.Graph, string(body))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ----------------------------------------------------------------------------
// Listings and health
// ----------------------------------------------------------------------------

type schemaListing struct {
	Path   string `json:"path"`
	File   string `json:"file"`
	Format string `json:"format"`
}

func (s *Server) handleSchemas(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot()
	if err != nil {
		writeError(w, err)
		return
	}

	listings := make([]schemaListing, 0, len(snap.Paths()))
	for _, path := range snap.Paths() {
		doc, _ := snap.Document(path)
		listings = append(listings, schemaListing{Path: doc.Path, File: doc.File, Format: string(doc.Format)})
	}
	writeJSON(w, http.StatusOK, listings)
}

func (s *Server) handleBadSchemas(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Quarantine())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "starting"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"version":     snap.Version,
		"documents":   len(snap.Paths()),
		"quarantined": len(snap.Quarantine()),
		"built_at":    snap.BuiltAt,
	})
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

func hopCount(r *http.Request) int {
	n, err := strconv.Atoi(r.Header.Get(federate.HopHeader))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func instanceFormat(contentType string) (store.Format, bool) {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "turtle"), ct == "":
		return store.FormatTurtle, true
	case strings.Contains(ct, "json"):
		return store.FormatJSONLD, true
	}
	return "", false
}

type rawJSON []byte

func (r rawJSON) MarshalJSON() ([]byte, error) { return r, nil }

func sortedConflictPaths(conflicts map[string]*shape.ConflictRecord) []string {
	paths := make([]string, 0, len(conflicts))
	for p := range conflicts {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
