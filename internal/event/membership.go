package event

import "encoding/json"

// Membership is the set of category identifiers an event belongs to.
// Order is kept for display only.
type Membership []ID

// NewMembership builds a membership from ids, dropping empty and duplicate entries
func NewMembership(ids ...ID) Membership {
	m := make(Membership, 0, len(ids))
	seen := make(map[ID]bool, len(ids))
	for _, id := range ids {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		m = append(m, id)
	}
	return m
}

// Contains reports whether id is a member
func (m Membership) Contains(id ID) bool {
	for _, member := range m {
		if member == id {
			return true
		}
	}
	return false
}

// Intersects reports whether the two sets share at least one identifier
func (m Membership) Intersects(other Membership) bool {
	for _, id := range other {
		if m.Contains(id) {
			return true
		}
	}
	return false
}

// Equal compares set contents, ignoring order
func (m Membership) Equal(other Membership) bool {
	a, b := NewMembership(m...), NewMembership(other...)
	if len(a) != len(b) {
		return false
	}
	for _, id := range a {
		if !b.Contains(id) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the membership
func (m Membership) Clone() Membership {
	if m == nil {
		return nil
	}
	clone := make(Membership, len(m))
	copy(clone, m)
	return clone
}

// MarshalJSON encodes an empty membership as [] rather than null
func (m Membership) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]ID(m))
}
