package internal

import (
	"errors"
	"fmt"
	"strings"
)

// RoutingStrategy selects how conventional routes resolve controllers.
type RoutingStrategy int

const (
	// RoutingDefault resolves "/api/{controller}/{id}" by controller name only.
	RoutingDefault RoutingStrategy = iota
	// RoutingNamespace also resolves "/api/{namespace}/{controller}/{id}".
	RoutingNamespace
)

var ErrUnknownRoutingStrategy = errors.New("authgate: unknown routing strategy")

func (s RoutingStrategy) String() string {
	switch s {
	case RoutingDefault:
		return "default"
	case RoutingNamespace:
		return "namespace"
	default:
		return "unknown"
	}
}

// ParseRoutingStrategy parses "default" or "namespace", case-insensitively.
func ParseRoutingStrategy(s string) (RoutingStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return RoutingDefault, nil
	case "namespace":
		return RoutingNamespace, nil
	default:
		return RoutingDefault, fmt.Errorf("%w: %q", ErrUnknownRoutingStrategy, s)
	}
}

// UnmarshalText lets env and yaml decoders populate a RoutingStrategy.
func (s *RoutingStrategy) UnmarshalText(text []byte) error {
	v, err := ParseRoutingStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s RoutingStrategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
