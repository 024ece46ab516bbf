// Package ruleset holds the static entity catalog: archetypes, their special
// abilities and their weapon pools.
package ruleset

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Archetype defines a combatant class with fixed base stats.
//
// Precondition: ID, Name and MaxHealth must be set after loading.
type Archetype struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Order         int     `yaml:"order"` // menu position, ascending
	MaxHealth     int     `yaml:"max_health"`
	ShieldRatio   float64 `yaml:"shield_ratio"`
	Power         int     `yaml:"power"`
	AccuracyBonus float64 `yaml:"accuracy_bonus"`
	BlockBonus    float64 `yaml:"block_bonus"`
	Special       Special `yaml:"special"`
}

// Validate checks the archetype invariants.
//
// Postcondition: returns nil iff every field is in range.
func (a *Archetype) Validate() error {
	var errs []string
	if a.ID == "" {
		errs = append(errs, "id must not be empty")
	}
	if a.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	if a.MaxHealth <= 0 {
		errs = append(errs, fmt.Sprintf("max_health must be > 0, got %d", a.MaxHealth))
	}
	if a.ShieldRatio < 0 || a.ShieldRatio >= 1 {
		errs = append(errs, fmt.Sprintf("shield_ratio must be in [0,1), got %v", a.ShieldRatio))
	}
	if a.Power < 0 {
		errs = append(errs, fmt.Sprintf("power must be >= 0, got %d", a.Power))
	}
	if len(errs) > 0 {
		return fmt.Errorf("archetype %q validation failed: %s", a.ID, strings.Join(errs, "; "))
	}
	return nil
}

// LoadArchetypes reads all .yaml files in dir of fsys and parses each as an Archetype.
//
// Precondition: dir must be a readable directory of fsys.
// Postcondition: Returns all parsed archetypes sorted by Order, or a non-nil error.
func LoadArchetypes(fsys fs.FS, dir string) ([]*Archetype, error) {
	files, err := yamlFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	archetypes := make([]*Archetype, 0, len(files))
	for _, p := range files {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		var a Archetype
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("parsing archetype file %s: %w", p, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("loading %s: %w", p, err)
		}
		archetypes = append(archetypes, &a)
	}
	sort.SliceStable(archetypes, func(i, j int) bool { return archetypes[i].Order < archetypes[j].Order })
	return archetypes, nil
}

func yamlFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, path.Join(dir, name))
		}
	}
	return paths, nil
}
