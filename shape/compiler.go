package shape

import (
	"log/slog"
	"sync"

	"github.com/c360studio/semshape/graph"
	"github.com/c360studio/semshape/metrics"
	"github.com/c360studio/semshape/store"
	"github.com/c360studio/semshape/vocabulary/shacl"
)

// Compiler produces CompiledShapes from snapshots, caching results per
// (snapshot version, class). The cache is dropped wholesale when a compile
// arrives for a newer snapshot.
type Compiler struct {
	logger *slog.Logger

	mu      sync.Mutex
	version string
	cache   map[string]*CompiledShape
}

// NewCompiler returns a Compiler with an empty cache.
func NewCompiler(logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{logger: logger, cache: make(map[string]*CompiledShape)}
}

// Compile returns the compiled shape for a class against one snapshot. A
// class with no effective shapes compiles to an empty shape; conflicts are
// recorded in the result, not returned as an error. The only error is a
// cyclic inheritance relation in the data.
func (c *Compiler) Compile(snap *store.Snapshot, class string) (*CompiledShape, error) {
	c.mu.Lock()
	if c.version != snap.Version {
		c.version = snap.Version
		c.cache = make(map[string]*CompiledShape)
	}
	if cs, ok := c.cache[class]; ok {
		c.mu.Unlock()
		return cs, nil
	}
	c.mu.Unlock()

	cs, err := compile(snap.Graph, class)
	if err != nil {
		return nil, err
	}
	cs.Version = snap.Version

	if cs.Conflicted() {
		metrics.CompileConflicts.Inc()
		c.logger.Warn("Compiled shape has conflicts",
			"class", class,
			"conflicts", len(cs.Conflicts))
	}

	c.mu.Lock()
	if c.version == snap.Version {
		c.cache[class] = cs
	}
	c.mu.Unlock()
	return cs, nil
}

func compile(g *graph.Graph, class string) (*CompiledShape, error) {
	ancestors, err := graph.SuperClassClosure(g, class)
	if err != nil {
		return nil, err
	}

	// Effective shape set: every node shape targeting the class or one of
	// its ancestors, nearest class first.
	var shapes []graph.Shape
	seen := map[string]bool{}
	for _, anc := range ancestors {
		for _, sh := range graph.ShapesTargeting(g, anc) {
			if seen[sh.IRI] {
				continue
			}
			seen[sh.IRI] = true
			shapes = append(shapes, sh)
		}
	}

	cs := &CompiledShape{
		Class:      class,
		Properties: make(map[string]*PropertyConstraint),
		Conflicts:  make(map[string]*ConflictRecord),
	}

	groups := make(map[string][]*PropertyConstraint)
	for _, sh := range shapes {
		cs.ShapeSet = append(cs.ShapeSet, sh.IRI)
		resolved, err := resolveShape(g, sh)
		if err != nil {
			return nil, err
		}
		for _, pc := range resolved {
			groups[pc.Path] = append(groups[pc.Path], pc)
		}
	}

	for path, list := range groups {
		distinct := []*PropertyConstraint{list[0]}
		for _, pc := range list[1:] {
			dup := false
			for _, d := range distinct {
				if d.EquivalentTo(pc) {
					dup = true
					break
				}
			}
			if !dup {
				distinct = append(distinct, pc)
			}
		}
		if len(distinct) == 1 {
			cs.Properties[path] = distinct[0]
			continue
		}
		cs.Conflicts[path] = &ConflictRecord{Path: path, Class: class, Constraints: distinct}
	}

	return cs, nil
}

// CompileSingle compiles one node shape in isolation, ignoring every other
// shape in the class's effective set. Validation uses it to report against
// each shape independently when the merged compile is conflicted.
func CompileSingle(g *graph.Graph, shapeIRI, class string) (*CompiledShape, error) {
	sh := graph.ShapeView(g, shapeIRI)
	resolved, err := resolveShape(g, sh)
	if err != nil {
		return nil, err
	}

	cs := &CompiledShape{
		Class:      class,
		ShapeSet:   []string{shapeIRI},
		Properties: make(map[string]*PropertyConstraint),
		Conflicts:  make(map[string]*ConflictRecord),
	}
	for _, pc := range resolved {
		if prev, ok := cs.Properties[pc.Path]; ok && !prev.EquivalentTo(pc) {
			cs.Conflicts[pc.Path] = &ConflictRecord{
				Path:        pc.Path,
				Class:       class,
				Constraints: []*PropertyConstraint{prev, pc},
			}
			delete(cs.Properties, pc.Path)
			continue
		}
		if rec, conflicted := cs.Conflicts[pc.Path]; conflicted {
			// A conflicted path keeps collecting every distinct declaration.
			dup := false
			for _, recorded := range rec.Constraints {
				if recorded.EquivalentTo(pc) {
					dup = true
					break
				}
			}
			if !dup {
				rec.Constraints = append(rec.Constraints, pc)
			}
			continue
		}
		cs.Properties[pc.Path] = pc
	}
	return cs, nil
}

// resolveShape turns one node shape's property references into concrete
// constraints. Within a single shape, a named reference and an anonymous
// constraint on the same path collapse to the named one; the anonymous
// declaration never survives to the merge stage.
func resolveShape(g *graph.Graph, sh graph.Shape) ([]*PropertyConstraint, error) {
	var named, anon []*PropertyConstraint

	for _, ref := range sh.Properties {
		if ref.Anonymous {
			pc := readConstraint(g, ref.Node)
			if pc.Path == ref.Node {
				// Anonymous constraint without sh:path constrains nothing.
				continue
			}
			pc.Provenance = Provenance{Shape: sh.IRI, Source: ref.Node}
			anon = append(anon, pc)
			continue
		}

		pc, err := resolveNamed(g, ref.Node)
		if err != nil {
			return nil, err
		}
		pc.Provenance = Provenance{Shape: sh.IRI, Source: ref.Node, Named: true}
		named = append(named, pc)
	}

	namedPaths := map[string]bool{}
	for _, pc := range named {
		namedPaths[pc.Path] = true
	}

	out := named
	for _, pc := range anon {
		if namedPaths[pc.Path] {
			continue
		}
		out = append(out, pc)
	}
	return out, nil
}

// resolveNamed reads a named property or property-shape reference and folds
// in constraints inherited through subPropertyOf. Explicit fields win over
// inherited ones; nearer superproperties win over farther ones.
func resolveNamed(g *graph.Graph, node string) (*PropertyConstraint, error) {
	pc := readConstraint(g, node)

	prop := node
	if p, ok := g.FirstIRI(node, shacl.Path); ok {
		prop = p
	}

	chain, err := graph.SuperPropertyClosure(g, prop)
	if err != nil {
		return nil, err
	}
	for _, sup := range chain[1:] {
		inherited := readConstraint(g, sup)
		if inherited.empty() {
			continue
		}
		inherited.Path = pc.Path
		pc.inheritFrom(inherited)
	}
	return pc, nil
}
