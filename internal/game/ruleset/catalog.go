package ruleset

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/cory-johannsen/duel/content"
	"github.com/cory-johannsen/duel/internal/game/inventory"
)

var (
	// ErrUnknownArchetype is returned when an archetype ID is not in the catalog.
	ErrUnknownArchetype = errors.New("unknown archetype")
	// ErrWeaponNotInPool is returned when a weapon is requested outside its archetype's pool.
	ErrWeaponNotInPool = errors.New("weapon not in archetype pool")
)

// Picker is the subset of dice.Source used for uniform menu choices.
type Picker interface {
	Intn(n int) int
}

// Catalog is the fixed set of archetypes and their legal weapon pools.
// It is immutable after construction and safe for concurrent reads.
type Catalog struct {
	archetypes []*Archetype
	byID       map[string]*Archetype
	pools      map[string][]*inventory.WeaponDef
}

// NewCatalog builds a Catalog from archetypes and weapons.
//
// Precondition: archetypes are ordered as they should appear in menus.
// Postcondition: every weapon belongs to a known archetype and every archetype
// has a non-empty pool, or an error is returned.
func NewCatalog(archetypes []*Archetype, weapons []*inventory.WeaponDef) (*Catalog, error) {
	if len(archetypes) == 0 {
		return nil, errors.New("catalog: at least one archetype is required")
	}
	c := &Catalog{
		archetypes: archetypes,
		byID:       make(map[string]*Archetype, len(archetypes)),
		pools:      make(map[string][]*inventory.WeaponDef, len(archetypes)),
	}
	for _, a := range archetypes {
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate archetype %q", a.ID)
		}
		c.byID[a.ID] = a
	}
	for _, w := range weapons {
		if _, ok := c.byID[w.Archetype]; !ok {
			return nil, fmt.Errorf("catalog: weapon %q references %w %q", w.ID, ErrUnknownArchetype, w.Archetype)
		}
		c.pools[w.Archetype] = append(c.pools[w.Archetype], w)
	}
	for _, a := range archetypes {
		if len(c.pools[a.ID]) == 0 {
			return nil, fmt.Errorf("catalog: archetype %q has no weapons", a.ID)
		}
	}
	return c, nil
}

// LoadCatalog reads archetypes/ and weapons/ from fsys.
//
// Postcondition: Returns a validated Catalog or a non-nil error.
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	archetypes, err := LoadArchetypes(fsys, "archetypes")
	if err != nil {
		return nil, err
	}
	weapons, err := inventory.LoadWeapons(fsys, "weapons")
	if err != nil {
		return nil, err
	}
	return NewCatalog(archetypes, weapons)
}

// Builtin returns the catalog embedded in the binary.
func Builtin() (*Catalog, error) {
	return LoadCatalog(content.FS)
}

// MustBuiltin returns the embedded catalog and panics if it is malformed.
func MustBuiltin() *Catalog {
	c, err := Builtin()
	if err != nil {
		panic("ruleset: embedded catalog is invalid: " + err.Error())
	}
	return c
}

// Archetypes returns all archetypes in menu order.
func (c *Catalog) Archetypes() []*Archetype {
	out := make([]*Archetype, len(c.archetypes))
	copy(out, c.archetypes)
	return out
}

// Archetype returns the archetype with the given ID.
func (c *Catalog) Archetype(id string) (*Archetype, error) {
	a, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownArchetype, id)
	}
	return a, nil
}

// Pool returns the weapons an archetype may wield, in content order.
//
// Postcondition: Returns nil for unknown archetypes.
func (c *Catalog) Pool(archetypeID string) []*inventory.WeaponDef {
	pool := c.pools[archetypeID]
	out := make([]*inventory.WeaponDef, len(pool))
	copy(out, pool)
	return out
}

// Weapon returns weaponID from the pool of archetypeID.
//
// Postcondition: Returns ErrWeaponNotInPool for cross-pool requests.
func (c *Catalog) Weapon(archetypeID, weaponID string) (*inventory.WeaponDef, error) {
	if _, err := c.Archetype(archetypeID); err != nil {
		return nil, err
	}
	for _, w := range c.pools[archetypeID] {
		if w.ID == weaponID {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not wielded by %q", ErrWeaponNotInPool, weaponID, archetypeID)
}

// RandomLoadout picks an archetype uniformly, then a weapon uniformly from its pool.
// Exactly two draws are consumed.
//
// Precondition: src must be non-nil.
func (c *Catalog) RandomLoadout(src Picker) (*Archetype, *inventory.WeaponDef) {
	a := c.archetypes[src.Intn(len(c.archetypes))]
	pool := c.pools[a.ID]
	return a, pool[src.Intn(len(pool))]
}
