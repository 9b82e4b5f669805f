// Package codec packs serialized menu state into the spare length of
// component identifiers and recovers it.
//
// Each interactive component owns a Slot: a fixed prefix and the platform
// cap for its kind. The serialized text is cut into consecutive fragments,
// one per slot in traversal order, so that prefix+fragment never exceeds the
// cap. Lengths are counted in Unicode code points.
package codec

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Delimiter separates the segments of an identifier.
const Delimiter = ":"

// Identifier caps per component kind on Discord.
const (
	MaxButtonID    = 100
	MaxSelectID    = 100
	MaxTextInputID = 100
	MaxModalID     = 100
)

// ErrStateOverflow is matched by OverflowError.
var ErrStateOverflow = errors.New("state too large for components")

// OverflowError reports serialized state that did not fit.
type OverflowError struct {
	Serialized int
	Capacity   int
	Leftover   int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("state is too large: %d characters, capacity %d, %d left over; add interactive components or store less",
		e.Serialized, e.Capacity, e.Leftover)
}

func (e *OverflowError) Is(target error) bool { return target == ErrStateOverflow }

// Slot is the storage area of one interactive component.
type Slot struct {
	Prefix    string
	MaxLength int
}

// Space is the number of characters the slot can carry after its prefix.
func (s Slot) Space() int {
	return max(0, s.MaxLength-utf8.RuneCountInString(s.Prefix))
}

// Capacity is the total space of slots.
func Capacity(slots []Slot) int {
	total := 0
	for _, s := range slots {
		total += s.Space()
	}
	return total
}

// Pack cuts serialized into one identifier per slot. Slots after the end of
// the text get an empty fragment. Text left after the last slot fails with
// *OverflowError.
func Pack(serialized string, slots []Slot) ([]string, error) {
	ids := make([]string, len(slots))
	rest := serialized
	for i, slot := range slots {
		n := prefixLen(rest, slot.Space())
		ids[i] = slot.Prefix + rest[:n]
		rest = rest[n:]
	}
	if rest != "" {
		total := utf8.RuneCountInString(serialized)
		return nil, &OverflowError{
			Serialized: total,
			Capacity:   Capacity(slots),
			Leftover:   utf8.RuneCountInString(rest),
		}
	}
	return ids, nil
}

// prefixLen returns the byte length of the first n code points of s.
func prefixLen(s string, n int) int {
	if n <= 0 {
		return 0
	}
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}

// Unpack concatenates fragments in the order given.
func Unpack(fragments []string) string {
	return strings.Join(fragments, "")
}

// FormatID joins menu id, component name and fragment.
func FormatID(menuID, name, fragment string) string {
	return menuID + Delimiter + name + Delimiter + fragment
}

// Prefix is FormatID with an empty fragment.
func Prefix(menuID, name string) string {
	return FormatID(menuID, name, "")
}

// ParseID splits an identifier on its first two delimiters. The fragment may
// itself contain the delimiter.
func ParseID(id string) (menuID, name, fragment string, ok bool) {
	menuID, rest, ok := strings.Cut(id, Delimiter)
	if !ok {
		return "", "", "", false
	}
	name, fragment, ok = strings.Cut(rest, Delimiter)
	if !ok {
		return "", "", "", false
	}
	return menuID, name, fragment, true
}

// ParseField splits a two-segment identifier, as used by modal text inputs.
func ParseField(id string) (name, fragment string, ok bool) {
	return strings.Cut(id, Delimiter)
}

// ValidateName rejects empty names and names containing the delimiter.
func ValidateName(name string) error {
	switch {
	case name == "":
		return errors.New("name is empty")
	case strings.Contains(name, Delimiter):
		return fmt.Errorf("name %q contains %q", name, Delimiter)
	}
	return nil
}
