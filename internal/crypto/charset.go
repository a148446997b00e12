package crypto

import (
	"fmt"
	"strings"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	symbolChars    = "!@#$%^&*()-_=+[]{};:,.?/"
)

// CharacterClass identifies one of the fixed alphabets a password may draw from.
type CharacterClass uint8

const (
	Lowercase CharacterClass = iota
	Uppercase
	Digit
	Symbol
)

// classOrder is the canonical iteration order used when building pools.
var classOrder = [...]CharacterClass{Lowercase, Uppercase, Digit, Symbol}

// Alphabet returns the characters belonging to the class.
func (c CharacterClass) Alphabet() string {
	switch c {
	case Lowercase:
		return lowercaseChars
	case Uppercase:
		return uppercaseChars
	case Digit:
		return digitChars
	case Symbol:
		return symbolChars
	}
	return ""
}

func (c CharacterClass) String() string {
	switch c {
	case Lowercase:
		return "lower"
	case Uppercase:
		return "upper"
	case Digit:
		return "digit"
	case Symbol:
		return "symbol"
	}
	return fmt.Sprintf("CharacterClass(%d)", uint8(c))
}

// ParseClass maps a user-supplied name such as "lower" or "numbers" to a class.
func ParseClass(name string) (CharacterClass, error) {
	trimmed := strings.TrimSpace(name)
	// Range labels are case sensitive.
	switch trimmed {
	case "a-z":
		return Lowercase, nil
	case "A-Z":
		return Uppercase, nil
	case "0-9":
		return Digit, nil
	}

	switch strings.ToLower(trimmed) {
	case "lower", "lowercase":
		return Lowercase, nil
	case "upper", "uppercase":
		return Uppercase, nil
	case "digit", "digits", "number", "numbers":
		return Digit, nil
	case "symbol", "symbols":
		return Symbol, nil
	}
	return 0, fmt.Errorf("unknown character class %q", name)
}

// ClassSet is an immutable set of character classes.
type ClassSet uint8

// AllClasses enables every character class.
const AllClasses ClassSet = 1<<Lowercase | 1<<Uppercase | 1<<Digit | 1<<Symbol

// NewClassSet returns a set containing the given classes.
func NewClassSet(classes ...CharacterClass) ClassSet {
	var s ClassSet
	for _, c := range classes {
		s = s.With(c)
	}
	return s
}

// ParseClassSet parses a list of class names, e.g. from a comma separated flag.
func ParseClassSet(names []string) (ClassSet, error) {
	var s ClassSet
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, err := ParseClass(name)
		if err != nil {
			return 0, err
		}
		s = s.With(c)
	}
	return s, nil
}

// With returns a copy of s that also contains c.
func (s ClassSet) With(c CharacterClass) ClassSet {
	return s | 1<<c
}

// Without returns a copy of s that no longer contains c.
func (s ClassSet) Without(c CharacterClass) ClassSet {
	return s &^ (1 << c)
}

// Toggle flips membership of c.
func (s ClassSet) Toggle(c CharacterClass) ClassSet {
	return s ^ 1<<c
}

// Has reports whether c is in the set.
func (s ClassSet) Has(c CharacterClass) bool {
	return s&(1<<c) != 0
}

// Len returns the number of classes in the set.
func (s ClassSet) Len() int {
	n := 0
	for _, c := range classOrder {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Classes lists the members in canonical order.
func (s ClassSet) Classes() []CharacterClass {
	classes := make([]CharacterClass, 0, len(classOrder))
	for _, c := range classOrder {
		if s.Has(c) {
			classes = append(classes, c)
		}
	}
	return classes
}

// Pool concatenates the alphabets of every member in canonical order.
func (s ClassSet) Pool() string {
	var b strings.Builder
	for _, c := range s.Classes() {
		b.WriteString(c.Alphabet())
	}
	return b.String()
}

func (s ClassSet) String() string {
	names := make([]string, 0, len(classOrder))
	for _, c := range s.Classes() {
		names = append(names, c.String())
	}
	return strings.Join(names, ",")
}
