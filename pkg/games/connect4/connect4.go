package connect4

import (
	"github.com/ChizhovVadim/CounterGames/pkg/common"
)

// Game implements common.Game, common.Mutator, common.Orderer and common.Hasher.
type Game struct{}

func (Game) LegalMoves(b *Board, side common.Side) []Move {
	if b.winner() != Empty {
		return nil
	}
	var result = make([]Move, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.heights[col] < Rows {
			result = append(result, Move(col))
		}
	}
	return result
}

func (Game) Apply(b *Board, m Move, side common.Side) *Board {
	var child = b.Clone()
	child.play(int(m), CellOf(side))
	return child
}

func (Game) Make(b *Board, m Move, side common.Side) func() {
	var col, prevLastCol = int(m), b.lastCol
	b.play(col, CellOf(side))
	return func() {
		b.unplay(col, prevLastCol)
	}
}

func (Game) Terminal(b *Board) common.Outcome {
	if w := b.winner(); w != Empty {
		return common.WinFor(SideOf(w))
	}
	if b.IsFull() {
		return common.DrawOutcome()
	}
	return common.Outcome{}
}

var windowWeights = [...]int{0, 1, 5, 50, 0}

const centreWeight = 3

// Heuristic scores every window of four cells that only one player occupies,
// plus a bonus for discs in the centre column. It is antisymmetric.
func (Game) Heuristic(b *Board, side common.Side) int {
	var own, opp = CellOf(side), CellOf(side.Opponent())
	var score = 0
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			for _, d := range directions {
				var endCol, endRow = col + d[0]*(Connect-1), row + d[1]*(Connect-1)
				if endCol < 0 || endCol >= Columns || endRow < 0 || endRow >= Rows {
					continue
				}
				var ownCount, oppCount int
				for i := 0; i < Connect; i++ {
					switch b.cells[col+d[0]*i][row+d[1]*i] {
					case own:
						ownCount++
					case opp:
						oppCount++
					}
				}
				if oppCount == 0 {
					score += windowWeights[ownCount]
				}
				if ownCount == 0 {
					score -= windowWeights[oppCount]
				}
			}
		}
	}
	const centre = Columns / 2
	for row := 0; row < b.heights[centre]; row++ {
		switch b.cells[centre][row] {
		case own:
			score += centreWeight
		case opp:
			score -= centreWeight
		}
	}
	return score
}

// OrderKey prefers columns close to the centre.
func (Game) OrderKey(b *Board, m Move, side common.Side) int {
	var d = int(m) - Columns/2
	if d < 0 {
		d = -d
	}
	return Columns/2 - d
}

func (Game) Key(b *Board, side common.Side) uint64 {
	if side == common.Second {
		return b.key ^ zobrist.side
	}
	return b.key
}
