package hashing

import (
	"math/rand"
	"strings"

	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/match"
)

const (
	zobristSeed = 0x5eed
	numSquares  = chess.BoardSize * chess.BoardSize
	numKinds    = int(chess.King) + 1
)

// Zobrist keys, fixed for the life of the process.
var (
	pieceKeys     [2][numKinds][numSquares]uint64
	sideKey       uint64
	castlingKeys  = map[byte]uint64{}
	enPassantKeys [chess.BoardSize]uint64
)

func init() {
	rng := rand.New(rand.NewSource(zobristSeed))
	for c := range pieceKeys {
		for k := range pieceKeys[c] {
			for sq := range pieceKeys[c][k] {
				pieceKeys[c][k][sq] = rng.Uint64()
			}
		}
	}
	sideKey = rng.Uint64()
	for _, r := range []byte("KQkq") {
		castlingKeys[r] = rng.Uint64()
	}
	for i := range enPassantKeys {
		enPassantKeys[i] = rng.Uint64()
	}
}

// GenerateZobristHash hashes the position of m: placement, side to move,
// castling rights and en passant file. Move counts and history do not
// contribute, so transpositions hash alike.
func GenerateZobristHash(m *match.Match) uint64 {
	var hash uint64
	for r, row := range m.BoardSnapshot() {
		for c, v := range row {
			if v != nil {
				hash ^= pieceKeys[v.Colour][v.Kind][r*chess.BoardSize+c]
			}
		}
	}

	fields := strings.Fields(m.FEN())
	if fields[1] == "b" {
		hash ^= sideKey
	}
	for i := 0; i < len(fields[2]); i++ {
		hash ^= castlingKeys[fields[2][i]]
	}
	if ep := fields[3]; ep != "-" {
		hash ^= enPassantKeys[ep[0]-chess.FirstFile]
	}
	return hash
}

// WeakHash is a cheap secondary hash over the piece letters in board
// order.
func WeakHash(m *match.Match) uint64 {
	var hash uint64
	for _, row := range m.BoardSnapshot() {
		for _, v := range row {
			letter := byte('.')
			if v != nil {
				letter = v.String()[0]
			}
			hash = hash*31 + uint64(letter)
		}
	}
	return hash
}
