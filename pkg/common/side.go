package common

import (
	"fmt"
	"strings"
)

// Side identifies the player to move.
type Side int8

const (
	SideNone Side = iota
	First
	Second
)

func (s Side) Opponent() Side {
	switch s {
	case First:
		return Second
	case Second:
		return First
	}
	return SideNone
}

func (s Side) String() string {
	switch s {
	case First:
		return "first"
	case Second:
		return "second"
	}
	return "none"
}

// ParseSide accepts "first"/"second", "1"/"2" and the game symbols
// "x"/"o" (first moves with x).
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "first", "1", "x":
		return First, nil
	case "second", "2", "o":
		return Second, nil
	}
	return SideNone, fmt.Errorf("bad side %q", s)
}
