// Package tictactoe supplies the 3x3 Tic-Tac-Toe rules to the search engine.
// Boards are small values and are copied for every branch.
package tictactoe

import (
	"github.com/ChizhovVadim/CounterGames/pkg/common"
)

type Cell int8

const (
	Empty Cell = iota
	X
	O
)

const Size = 9

// Board cells are numbered row by row:
//
//	0 1 2
//	3 4 5
//	6 7 8
type Board [Size]Cell

// Move is the index of the cell to fill.
type Move int

var lines = [...][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// X moves first.
func CellOf(side common.Side) Cell {
	switch side {
	case common.First:
		return X
	case common.Second:
		return O
	}
	return Empty
}

func SideOf(c Cell) common.Side {
	switch c {
	case X:
		return common.First
	case O:
		return common.Second
	}
	return common.SideNone
}

// SideToMove derives the player to move from the number of marks.
func (b Board) SideToMove() common.Side {
	var xs, os int
	for _, c := range b {
		switch c {
		case X:
			xs++
		case O:
			os++
		}
	}
	if xs > os {
		return common.Second
	}
	return common.First
}

func (b Board) IsFull() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Game implements common.Game, common.Orderer and common.Hasher.
type Game struct{}

func (Game) LegalMoves(b Board, side common.Side) []Move {
	if winner(&b) != Empty {
		return nil
	}
	var result = make([]Move, 0, Size)
	for i, c := range b {
		if c == Empty {
			result = append(result, Move(i))
		}
	}
	return result
}

func (Game) Apply(b Board, m Move, side common.Side) Board {
	b[m] = CellOf(side)
	return b
}

func (Game) Terminal(b Board) common.Outcome {
	if w := winner(&b); w != Empty {
		return common.WinFor(SideOf(w))
	}
	if b.IsFull() {
		return common.DrawOutcome()
	}
	return common.Outcome{}
}

var lineWeights = [...]int{0, 1, 10, 100}

// Heuristic counts the lines still open for each player. It is antisymmetric:
// the value for one side is the negated value for the other.
func (Game) Heuristic(b Board, side common.Side) int {
	var own, opp = CellOf(side), CellOf(side.Opponent())
	var score = 0
	for _, line := range lines {
		var ownCount, oppCount int
		for _, sq := range line {
			switch b[sq] {
			case own:
				ownCount++
			case opp:
				oppCount++
			}
		}
		if oppCount == 0 {
			score += lineWeights[ownCount]
		}
		if ownCount == 0 {
			score -= lineWeights[oppCount]
		}
	}
	return score
}

var orderKeys = [Size]int{
	2, 1, 2,
	1, 3, 1,
	2, 1, 2,
}

// OrderKey prefers the centre, then corners, then edges.
func (Game) OrderKey(b Board, m Move, side common.Side) int {
	return orderKeys[m]
}

func (Game) Key(b Board, side common.Side) uint64 {
	var key uint64
	for _, c := range b {
		key = key*3 + uint64(c)
	}
	key <<= 1
	if side == common.Second {
		key |= 1
	}
	return key
}

func winner(b *Board) Cell {
	for _, line := range lines {
		var c = b[line[0]]
		if c != Empty && c == b[line[1]] && c == b[line[2]] {
			return c
		}
	}
	return Empty
}
