package scenario

import (
	"math/rand"
	"sync"

	"github.com/alexanderramin/mipractice/internal/domain"
)

// RandomSource is the subset of *rand.Rand the generator draws from.
type RandomSource interface {
	Intn(n int) int
}

// Generator builds patient profiles from a catalog. It is safe for
// concurrent use; draws from the shared source are serialised.
type Generator struct {
	catalog *Catalog

	mu  sync.Mutex
	rng RandomSource
}

// NewGenerator creates a Generator over catalog using rng.
func NewGenerator(catalog *Catalog, rng RandomSource) *Generator {
	return &Generator{catalog: catalog, rng: rng}
}

// NewSeededGenerator creates a Generator whose output is fully determined by seed.
func NewSeededGenerator(catalog *Catalog, seed int64) *Generator {
	return NewGenerator(catalog, rand.New(rand.NewSource(seed)))
}

// Catalog returns the reference data backing the generator.
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// GenerateProfile picks a template matching the filters and instantiates a
// patient from it. It never fails: an unknown topic falls back to the full
// table and an unknown stage or difficulty is ignored.
func (g *Generator) GenerateProfile(filters domain.ProfileFilters) domain.PatientProfile {
	g.mu.Lock()
	defer g.mu.Unlock()

	candidates := g.catalog.TemplatesForTopic(filters.Topic)
	tmpl := candidates[g.rng.Intn(len(candidates))]

	age := tmpl.AgeRange.Min + g.rng.Intn(tmpl.AgeRange.Max-tmpl.AgeRange.Min+1)

	complaint := tmpl.ChiefComplaint
	if tmpl.HasConflictingComplaint() && g.rng.Intn(2) == 1 {
		complaint = tmpl.ConflictingChiefComplaint
	}

	stage := g.resolveStage(filters)
	name := g.catalog.Names[g.rng.Intn(len(g.catalog.Names))]
	sex := g.catalog.Sexes[g.rng.Intn(len(g.catalog.Sexes))]

	return domain.PatientProfile{
		Name:              name,
		Age:               age,
		Sex:               sex,
		Background:        tmpl.BackgroundFor(age),
		PresentingProblem: tmpl.PresentingProblem,
		Topic:             tmpl.Topic,
		History:           tmpl.History,
		ChiefComplaint:    complaint,
		StageOfChange:     stage,
	}
}

// resolveStage applies precedence: explicit stage, then difficulty subset,
// then any stage.
func (g *Generator) resolveStage(filters domain.ProfileFilters) domain.StageOfChange {
	if st, ok := domain.ParseStage(string(filters.StageOfChange)); ok {
		return st
	}
	pool := filters.Difficulty.Stages()
	if len(pool) == 0 {
		pool = domain.AllStages()
	}
	return pool[g.rng.Intn(len(pool))]
}
