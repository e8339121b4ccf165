package engine

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrDuplicateID   = errors.New("duplicate content id")
	ErrNegativeLikes = errors.New("negative like count")
)

// ContentItem is a story or game card. Never mutated once seeded.
type ContentItem struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
	Likes int    `toml:"likes"`
}

// Seed is the immutable input a Catalog is built from.
type Seed struct {
	Stories []ContentItem `toml:"stories"`
	Games   []ContentItem `toml:"games"`
}

// DefaultSeed is the built-in mock catalog.
func DefaultSeed() Seed {
	return Seed{
		Stories: []ContentItem{
			{ID: "1", Title: "The Curious Explorer's Adventure", Likes: 150},
			{ID: "2", Title: "Lily's Magical Garden", Likes: 120},
			{ID: "3", Title: "The Friendly Robot's First Day", Likes: 100},
		},
		Games: []ContentItem{
			{ID: "1", Title: "Math Adventure", Likes: 200},
			{ID: "2", Title: "Word Explorer", Likes: 180},
			{ID: "3", Title: "Science Quest", Likes: 160},
		},
	}
}

// Items returns the seed slice for kind.
func (s Seed) Items(kind Kind) []ContentItem {
	if kind == KindGame {
		return s.Games
	}
	return s.Stories
}

// Normalize returns a deep copy with a fresh id on every item that lacks one.
func (s Seed) Normalize() Seed {
	fill := func(in []ContentItem) []ContentItem {
		out := slices.Clone(in)
		for i := range out {
			if out[i].ID == "" {
				out[i].ID = uuid.NewString()
			}
		}
		return out
	}
	return Seed{Stories: fill(s.Stories), Games: fill(s.Games)}
}

// Validate checks id uniqueness per kind and like counts.
func (s Seed) Validate() error {
	for _, kind := range AllKinds {
		seen := make(map[string]struct{}, len(s.Items(kind)))
		for _, it := range s.Items(kind) {
			if it.Likes < 0 {
				return errors.Wrapf(ErrNegativeLikes, "%s %q", kind, it.ID)
			}
			if _, ok := seen[it.ID]; ok {
				return errors.Wrapf(ErrDuplicateID, "%s %q", kind, it.ID)
			}
			seen[it.ID] = struct{}{}
		}
	}
	return nil
}

// Source yields a seed catalog at startup or on reload.
type Source interface {
	Load(ctx context.Context) (Seed, error)
}

// StaticSource serves a fixed seed.
type StaticSource struct{ Seed Seed }

func (s StaticSource) Load(ctx context.Context) (Seed, error) { return s.Seed, nil }

// Catalog is a read-only view over one seed snapshot. It is owned by the UI
// event loop; Replace swaps the whole snapshot and never edits items in place.
type Catalog struct {
	seed Seed
	subs subscribers[*Catalog]
}

// NewCatalog normalizes and validates seed.
func NewCatalog(seed Seed) (*Catalog, error) {
	c := &Catalog{}
	if err := c.set(seed); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) set(seed Seed) error {
	seed = seed.Normalize()
	if err := seed.Validate(); err != nil {
		return err
	}
	c.seed = seed
	return nil
}

// List returns the items of kind ordered by likes, highest first. Ties keep
// no particular order. The result is a copy.
func (c *Catalog) List(kind Kind) []ContentItem {
	out := slices.Clone(c.seed.Items(kind))
	slices.SortFunc(out, func(a, b ContentItem) int { return cmp.Compare(b.Likes, a.Likes) })
	return out
}

// Len is the item count for kind.
func (c *Catalog) Len(kind Kind) int { return len(c.seed.Items(kind)) }

// Replace swaps in a new snapshot and notifies subscribers. On a validation
// error the previous snapshot stays.
func (c *Catalog) Replace(seed Seed) error {
	if err := c.set(seed); err != nil {
		return err
	}
	c.subs.notify(c)
	return nil
}

// Subscribe registers fn for snapshot changes.
func (c *Catalog) Subscribe(fn func(*Catalog)) (unsubscribe func()) {
	return c.subs.add(fn)
}
