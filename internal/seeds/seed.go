// Package seeds fills a migrated database with reference and demo data.
//
// Seeds are named with a numeric prefix and always run in prefix order,
// each inside its own transaction. Three kinds exist:
//
//   - replace: delete every row of the table, then insert the fixed set
//   - scoped: delete and re-insert only the rows owned by seeded parents
//   - additive: insert rows whose natural key is missing, skip the rest
//
// Replace seeds are for reference tables only. Never point them at a
// database holding user-submitted rows in those tables.
package seeds

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/config"
)

type Kind string

const (
	KindReplace  Kind = "replace"
	KindScoped   Kind = "scoped"
	KindAdditive Kind = "additive"
)

// Result reports what one seed changed
type Result struct {
	Seed     string
	Inserted int
	Deleted  int
	Skipped  int
}

// Env carries what seeds need besides the transaction
type Env struct {
	Logger *log.Logger
	Config config.SeedConfig
	Now    func() time.Time
}

func (e Env) withDefaults() Env {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard, "", 0)
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	if e.Config.BcryptCost == 0 {
		e.Config.BcryptCost = config.DefaultConfig().Seed.BcryptCost
	}
	return e
}

// Seed is one named, independently runnable unit of seed data
type Seed struct {
	Name        string
	Kind        Kind
	Description string
	Run         func(ctx context.Context, tx *gorm.DB, env Env) (Result, error)
}

// All returns every seed in run order
func All() []Seed {
	all := []Seed{
		citiesSeed,
		universitiesSeed,
		featuresSeed,
		propertiesSeed,
		propertyImagesSeed,
		propertyAvailabilitySeed,
		usersSeed,
		additionalPropertiesSeed,
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// Select returns the named seeds in run order. A name matches with or
// without its numeric prefix; no names selects every seed.
func Select(names ...string) ([]Seed, error) {
	all := All()
	if len(names) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		found := false
		for _, s := range all {
			if s.Name == name || s.shortName() == name {
				wanted[s.Name] = true
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown seed %q", name)
		}
	}

	var selected []Seed
	for _, s := range all {
		if wanted[s.Name] {
			selected = append(selected, s)
		}
	}
	return selected, nil
}

func (s Seed) shortName() string {
	if i := strings.IndexByte(s.Name, '_'); i >= 0 {
		return s.Name[i+1:]
	}
	return s.Name
}

// Runner executes seeds against one database
type Runner struct {
	db  *gorm.DB
	env Env
}

func NewRunner(db *gorm.DB, env Env) *Runner {
	return &Runner{db: db, env: env.withDefaults()}
}

// Run executes the named seeds (all when none are given) and stops at the
// first failure. Results of the seeds that committed are returned with it.
func (r *Runner) Run(ctx context.Context, names ...string) ([]Result, error) {
	selected, err := Select(names...)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(selected))
	for _, s := range selected {
		r.env.Logger.Printf("Seeding %s (%s)...", s.Name, s.Kind)

		var result Result
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			result, err = s.Run(ctx, tx, r.env)
			return err
		})
		if err != nil {
			return results, fmt.Errorf("seed %s: %w", s.Name, err)
		}

		result.Seed = s.Name
		results = append(results, result)
		r.env.Logger.Printf("%s: inserted %d, deleted %d, skipped %d", s.Name, result.Inserted, result.Deleted, result.Skipped)
	}
	return results, nil
}

// RefreshPropertyCounts recomputes cities.property_count from properties
func RefreshPropertyCounts(tx *gorm.DB) error {
	err := tx.Exec(`UPDATE cities SET property_count = (SELECT COUNT(*) FROM properties WHERE properties.city_id = cities.id)`).Error
	if err != nil {
		return fmt.Errorf("failed to refresh city property counts: %w", err)
	}
	return nil
}
