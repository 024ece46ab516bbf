// Package inventory provides weapon definitions and their YAML loader.
package inventory

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// WeaponDef defines the static properties of a weapon. Values are immutable
// once loaded; combatants hold a pointer to the shared definition.
type WeaponDef struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	Archetype      string  `yaml:"archetype"` // owning archetype pool
	MinDamage      int     `yaml:"min_damage"`
	MaxDamage      int     `yaml:"max_damage"`
	HitChance      float64 `yaml:"hit_chance"`
	CritChance     float64 `yaml:"crit_chance"`
	CritMultiplier float64 `yaml:"crit_multiplier"`
}

// Validate checks that the WeaponDef satisfies its invariants.
//
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponDef) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if w.Archetype == "" {
		errs = append(errs, errors.New("archetype must not be empty"))
	}
	if w.MinDamage < 0 {
		errs = append(errs, fmt.Errorf("min_damage must be >= 0, got %d", w.MinDamage))
	}
	if w.MaxDamage < w.MinDamage {
		errs = append(errs, fmt.Errorf("max_damage %d must be >= min_damage %d", w.MaxDamage, w.MinDamage))
	}
	if w.HitChance < 0 || w.HitChance > 1 {
		errs = append(errs, fmt.Errorf("hit_chance must be in [0,1], got %v", w.HitChance))
	}
	if w.CritChance < 0 || w.CritChance > 1 {
		errs = append(errs, fmt.Errorf("crit_chance must be in [0,1], got %v", w.CritChance))
	}
	if w.CritMultiplier < 1 {
		errs = append(errs, fmt.Errorf("crit_multiplier must be >= 1, got %v", w.CritMultiplier))
	}
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("weapon %q validation failed: %s", w.ID, strings.Join(msgs, "; "))
	}
	return nil
}

// LoadWeapons reads every *.yaml file in dir of fsys. Each file holds a YAML
// list of weapon definitions. Weapons are validated and returned in file-name
// order, preserving list order within a file.
//
// Precondition: dir is a readable directory of fsys.
// Postcondition: returns all valid WeaponDefs or the first encountered error.
func LoadWeapons(fsys fs.FS, dir string) ([]*WeaponDef, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: cannot read directory %q: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var weapons []*WeaponDef
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		p := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot read file %q: %w", p, err)
		}
		var defs []*WeaponDef
		if err := yaml.Unmarshal(data, &defs); err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot parse file %q: %w", p, err)
		}
		for _, w := range defs {
			if err := w.Validate(); err != nil {
				return nil, fmt.Errorf("LoadWeapons: invalid weapon in %q: %w", p, err)
			}
			if prev, dup := seen[w.ID]; dup {
				return nil, fmt.Errorf("LoadWeapons: duplicate weapon id %q in %q (first seen in %q)", w.ID, p, prev)
			}
			seen[w.ID] = p
			weapons = append(weapons, w)
		}
	}
	return weapons, nil
}
