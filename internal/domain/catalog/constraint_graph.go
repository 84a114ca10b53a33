package catalog

import "sort"

// Violation names two ingredients involved in a broken constraint.
// For requirements Other is the missing ingredient; for incompatibilities
// Ingredient is the one selected first.
type Violation struct {
	Ingredient uint
	Other      uint
}

// ConstraintGraph is an in-memory view of the requirement and
// incompatibility relations between ingredients.
type ConstraintGraph struct {
	names        map[uint]string
	requires     map[uint][]uint
	incompatible map[uint]map[uint]struct{}
}

// NewConstraintGraph indexes the given edges. Incompatibility edges are
// registered in both directions.
func NewConstraintGraph(ingredients []Ingredient, requirements []RequirementEdge, incompatibilities []IncompatibilityEdge) *ConstraintGraph {
	g := &ConstraintGraph{
		names:        make(map[uint]string, len(ingredients)),
		requires:     make(map[uint][]uint),
		incompatible: make(map[uint]map[uint]struct{}),
	}
	for _, ing := range ingredients {
		g.names[ing.ID] = ing.Name
	}
	for _, e := range requirements {
		g.requires[e.IngredientID] = append(g.requires[e.IngredientID], e.RequiredIngredientID)
	}
	for id := range g.requires {
		sort.Slice(g.requires[id], func(i, j int) bool { return g.requires[id][i] < g.requires[id][j] })
	}
	for _, e := range incompatibilities {
		g.link(e.IngredientID, e.IncompatibleWithID)
		g.link(e.IncompatibleWithID, e.IngredientID)
	}
	return g
}

func (g *ConstraintGraph) link(a, b uint) {
	set, ok := g.incompatible[a]
	if !ok {
		set = make(map[uint]struct{})
		g.incompatible[a] = set
	}
	set[b] = struct{}{}
}

// Name returns the ingredient name, or an empty string if unknown
func (g *ConstraintGraph) Name(id uint) string {
	return g.names[id]
}

// Requires returns the ingredients that id requires, sorted by ID
func (g *ConstraintGraph) Requires(id uint) []uint {
	return g.requires[id]
}

// IncompatibleWith returns every ingredient that cannot be combined with id, sorted by ID
func (g *ConstraintGraph) IncompatibleWith(id uint) []uint {
	set := g.incompatible[id]
	out := make([]uint, 0, len(set))
	for other := range set {
		out = append(out, other)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AreIncompatible reports whether a and b may not be selected together
func (g *ConstraintGraph) AreIncompatible(a, b uint) bool {
	_, ok := g.incompatible[a][b]
	return ok
}

// MissingRequirements checks the distinct selection against every
// requirement edge. selected must not contain duplicates; its order decides
// the order of the returned violations.
func (g *ConstraintGraph) MissingRequirements(selected []uint) []Violation {
	chosen := make(map[uint]struct{}, len(selected))
	for _, id := range selected {
		chosen[id] = struct{}{}
	}

	var out []Violation
	for _, id := range selected {
		for _, req := range g.requires[id] {
			if _, ok := chosen[req]; !ok {
				out = append(out, Violation{Ingredient: id, Other: req})
			}
		}
	}
	return out
}

// Conflicts returns every incompatible pair inside the distinct selection,
// each pair once.
func (g *ConstraintGraph) Conflicts(selected []uint) []Violation {
	var out []Violation
	for i, a := range selected {
		for _, b := range selected[i+1:] {
			if g.AreIncompatible(a, b) {
				out = append(out, Violation{Ingredient: a, Other: b})
			}
		}
	}
	return out
}
