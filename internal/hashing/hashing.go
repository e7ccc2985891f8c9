// Package hashing detects replayed scripts that end in the same position.
package hashing

import (
	"github.com/lgbarn/xadrez-go/internal/match"
)

// DuplicateDetector remembers the final positions it has seen.
type DuplicateDetector struct {
	hashTable map[uint64][]Signature
	// useExactMatch also requires the same number of half-moves.
	useExactMatch  bool
	duplicateCount int
}

// Signature identifies the final position of one replayed script.
type Signature struct {
	Hash     uint64
	WeakHash uint64
	Plies    int
	Name     string
}

// NewDuplicateDetector creates a new duplicate detector.
func NewDuplicateDetector(exactMatch bool) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]Signature),
		useExactMatch: exactMatch,
	}
}

// CheckAndAdd records the position of m under name. If an earlier entry
// has the same position it returns that entry's name and true, and m is
// not recorded.
func (d *DuplicateDetector) CheckAndAdd(name string, m *match.Match) (string, bool) {
	sig := Signature{
		Hash:     GenerateZobristHash(m),
		WeakHash: WeakHash(m),
		Plies:    len(m.History()),
		Name:     name,
	}

	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return existing.Name, true
		}
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	return "", false
}

func (d *DuplicateDetector) signaturesMatch(a, b Signature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	if d.useExactMatch && a.Plies != b.Plies {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of distinct positions recorded.
func (d *DuplicateDetector) UniqueCount() int {
	count := 0
	for _, sigs := range d.hashTable {
		count += len(sigs)
	}
	return count
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]Signature)
	d.duplicateCount = 0
}
