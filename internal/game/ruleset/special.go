package ruleset

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Special tags the attacker-side bonus damage rule carried by an archetype.
type Special int

const (
	SpecialNone Special = iota
	SpecialBerserker
	SpecialPiercingShot
	SpecialArcaneBurst
)

var specialKeys = map[Special]string{
	SpecialNone:         "none",
	SpecialBerserker:    "berserker",
	SpecialPiercingShot: "piercing_shot",
	SpecialArcaneBurst:  "arcane_burst",
}

// String returns the content key for s, e.g. "piercing_shot".
func (s Special) String() string {
	if k, ok := specialKeys[s]; ok {
		return k
	}
	return "unknown"
}

// Label returns the display name of s.
func (s Special) Label() string {
	switch s {
	case SpecialBerserker:
		return "Berserker"
	case SpecialPiercingShot:
		return "Piercing Shot"
	case SpecialArcaneBurst:
		return "Arcane Burst"
	default:
		return "None"
	}
}

// ParseSpecial maps a content key to its Special tag. The empty string is SpecialNone.
//
// Postcondition: returns an error for unknown keys.
func ParseSpecial(key string) (Special, error) {
	if key == "" {
		return SpecialNone, nil
	}
	for s, k := range specialKeys {
		if k == key {
			return s, nil
		}
	}
	return SpecialNone, fmt.Errorf("unknown special ability %q", key)
}

// UnmarshalYAML decodes a special ability from its content key.
func (s *Special) UnmarshalYAML(node *yaml.Node) error {
	var key string
	if err := node.Decode(&key); err != nil {
		return err
	}
	parsed, err := ParseSpecial(key)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
