package task

import (
	"errors"
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// ErrBadProfile is returned by LoadProfile and Profile.Apply for profiles
// that cannot be parsed or name values outside the bounded enums.
var ErrBadProfile = errors.New("task: invalid spawn profile")

// Profile is a spawn configuration loadable from YAML:
//
//	name: telemetry
//	priority: low      # high | default | low
//	stack: low         # default | low
//
// Empty fields keep the builder's defaults.
type Profile struct {
	Name     string `yaml:"name"`
	Priority string `yaml:"priority"`
	Stack    string `yaml:"stack"`
}

// LoadProfile reads a profile from path. A missing file yields the zero
// profile (all defaults); a file that exists but does not parse, or names
// an unknown priority or stack depth, is an error.
func LoadProfile(path string) (Profile, error) {
	var p Profile
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, nil
		}
		return Profile{}, fmt.Errorf("task: read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrBadProfile, err)
	}
	if _, err := ParsePriority(p.Priority); err != nil {
		return Profile{}, err
	}
	if _, err := ParseStackDepth(p.Stack); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Apply overlays the profile's set fields onto b and returns the result.
func (p Profile) Apply(b Builder) (Builder, error) {
	if p.Name != "" {
		b = b.Name(p.Name)
	}
	if p.Priority != "" {
		pr, err := ParsePriority(p.Priority)
		if err != nil {
			return b, err
		}
		b = b.Priority(pr)
	}
	if p.Stack != "" {
		sd, err := ParseStackDepth(p.Stack)
		if err != nil {
			return b, err
		}
		b = b.StackDepth(sd)
	}
	return b, nil
}

// ParsePriority maps the textual enum used in profiles. The empty string
// is PriorityDefault.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "", "default":
		return PriorityDefault, nil
	case "high":
		return PriorityHigh, nil
	case "low":
		return PriorityLow, nil
	default:
		return PriorityDefault, fmt.Errorf("%w: unknown priority %q", ErrBadProfile, s)
	}
}

// ParseStackDepth maps the textual enum used in profiles. The empty string
// is StackDefault.
func ParseStackDepth(s string) (StackDepth, error) {
	switch s {
	case "", "default":
		return StackDefault, nil
	case "low":
		return StackLow, nil
	default:
		return StackDefault, fmt.Errorf("%w: unknown stack depth %q", ErrBadProfile, s)
	}
}
