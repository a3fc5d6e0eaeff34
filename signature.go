package archecs

import "slices"

// Signature is the sorted, deduplicated set of component ids that defines an
// archetype. Equal sets have equal sequences.
type Signature []ComponentID

// Has reports whether id is in the signature.
func (s Signature) Has(id ComponentID) bool {
	_, ok := slices.BinarySearch(s, id)
	return ok
}

// indexOf returns the position of id, or -1.
func (s Signature) indexOf(id ComponentID) int {
	i, ok := slices.BinarySearch(s, id)
	if !ok {
		return -1
	}
	return i
}

// Contains reports whether every id of sub is in s. Both must be sorted.
func (s Signature) Contains(sub Signature) bool {
	if len(sub) > len(s) {
		return false
	}
	i := 0
	for _, id := range sub {
		for i < len(s) && s[i] < id {
			i++
		}
		if i == len(s) || s[i] != id {
			return false
		}
		i++
	}
	return true
}

// union appends the sorted union of s and ids to dst. ids may be unsorted.
func (s Signature) union(dst Signature, ids []ComponentID) Signature {
	dst = append(dst, s...)
	dst = append(dst, ids...)
	slices.Sort(dst)
	return slices.Compact(dst)
}

// difference appends s minus ids to dst.
func (s Signature) difference(dst Signature, ids []ComponentID) Signature {
	for _, id := range s {
		if !slices.Contains(ids, id) {
			dst = append(dst, id)
		}
	}
	return dst
}

// duplicate returns the first id listed twice in ids.
func duplicate(ids []ComponentID) (ComponentID, bool) {
	for i := 1; i < len(ids); i++ {
		if slices.Contains(ids[:i], ids[i]) {
			return ids[i], true
		}
	}
	return 0, false
}
