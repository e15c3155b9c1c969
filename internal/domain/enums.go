package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Priority ranks a card. Lower value means more urgent.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// DefaultPriority is assigned when a card is created without an explicit
// priority, or with one that does not parse.
const DefaultPriority = PriorityMedium

// Valid reports whether p is one of the three defined priorities.
func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

// Name returns the display name for p. Unknown values render as "Medium",
// matching the default used on create.
func (p Priority) Name() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "Medium"
	}
}

// ParsePriority accepts a numeric value ("1".."3") or a name
// ("high"/"medium"/"low", any case).
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("priority %q must be 1-3 or high/medium/low", s)
	}
	p := Priority(n)
	if !p.Valid() {
		return 0, fmt.Errorf("priority %d out of range 1-3", n)
	}
	return p, nil
}
