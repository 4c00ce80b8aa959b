package approval

import (
	"fmt"
	"strings"
)

// Level is a single approval authority: a display name and the inclusive upper
// bound of amounts it may approve.
type Level struct {
	Name      string `json:"name" yaml:"name"`
	Threshold int    `json:"threshold" yaml:"threshold"`
}

// Covers reports whether the level may approve amount.
func (l Level) Covers(amount int) bool {
	return amount <= l.Threshold
}

// Role enumerates the built-in approval authorities.
type Role int

const (
	Manager Role = iota + 1
	Director
	VicePresident
)

var roleLevels = map[Role]Level{
	Manager:       {Name: "Manager", Threshold: 1000},
	Director:      {Name: "Director", Threshold: 5000},
	VicePresident: {Name: "Vice President", Threshold: 10000},
}

// Roles returns the built-in roles in escalation order.
func Roles() []Role {
	return []Role{Manager, Director, VicePresident}
}

// Level returns the display name and threshold of the role.
func (r Role) Level() Level {
	return roleLevels[r]
}

func (r Role) String() string {
	if level, ok := roleLevels[r]; ok {
		return level.Name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole resolves a role by name, ignoring case, spaces, dashes and underscores.
func ParseRole(name string) (Role, error) {
	normalized := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(name))
	switch normalized {
	case "manager":
		return Manager, nil
	case "director":
		return Director, nil
	case "vicepresident", "vp":
		return VicePresident, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, name)
}
