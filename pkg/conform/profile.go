package conform

import (
	"fmt"
	"sort"
	"strings"
)

// ProfileID identifies a set of gates to run together.
type ProfileID string

const (
	// ProfileContracts checks the generated types and the release version.
	ProfileContracts ProfileID = "CONTRACTS"
	// ProfileCI adds coverage thresholds for pull request checks.
	ProfileCI ProfileID = "CI"
)

// Gate IDs.
const (
	GateSchemaDrift = "GX_SCHEMA_DRIFT"
	GateVersion     = "GX_VERSION"
	GateCoverage    = "GX_COVERAGE"
)

// ProfileDefinition describes which gates a profile requires.
type ProfileDefinition struct {
	ID            ProfileID `json:"id"`
	Description   string    `json:"description"`
	RequiredGates []string  `json:"required_gates"`
	Inherits      ProfileID `json:"inherits,omitempty"`
}

// Profiles returns the built-in profile definitions.
func Profiles() map[ProfileID]*ProfileDefinition {
	return map[ProfileID]*ProfileDefinition{
		ProfileContracts: {
			ID:            ProfileContracts,
			Description:   "Generated types match the schema and the version is documented",
			RequiredGates: []string{GateSchemaDrift, GateVersion},
		},
		ProfileCI: {
			ID:            ProfileCI,
			Description:   "CONTRACTS plus test coverage thresholds",
			Inherits:      ProfileContracts,
			RequiredGates: []string{GateSchemaDrift, GateVersion, GateCoverage},
		},
	}
}

// GatesForProfile returns the gate IDs required by a profile.
func GatesForProfile(id ProfileID) []string {
	def, ok := Profiles()[id]
	if !ok {
		return nil
	}
	return def.RequiredGates
}

// ParseProfile resolves a case-insensitive profile name.
func ParseProfile(name string) (ProfileID, error) {
	id := ProfileID(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := Profiles()[id]; ok {
		return id, nil
	}
	known := make([]string, 0, len(Profiles()))
	for p := range Profiles() {
		known = append(known, string(p))
	}
	sort.Strings(known)
	return "", fmt.Errorf("unknown profile %q (known: %s)", name, strings.Join(known, ", "))
}
