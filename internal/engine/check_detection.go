package engine

import "github.com/lgbarn/xadrez-go/internal/chess"

// Attacked reports whether any of attackers has target among its
// destinations.
func Attacked(target chess.Position, attackers []*chess.Piece, s Snapshot) bool {
	for _, p := range attackers {
		if LegalDestinations(p, s).At(target) {
			return true
		}
	}
	return false
}
