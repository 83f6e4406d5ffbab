package connect4

import "golang.org/x/exp/rand"

const zobristSeed = 0x9e3779b97f4a7c15

type zobristTable struct {
	discs [Columns][Rows][2]uint64
	side  uint64
}

var zobrist = newZobristTable()

func newZobristTable() *zobristTable {
	var rnd = rand.New(rand.NewSource(zobristSeed))
	var z = &zobristTable{}
	for col := range z.discs {
		for row := range z.discs[col] {
			z.discs[col][row][0] = rnd.Uint64()
			z.discs[col][row][1] = rnd.Uint64()
		}
	}
	z.side = rnd.Uint64()
	return z
}

func (z *zobristTable) disc(col, row int, c Cell) uint64 {
	if c == Yellow {
		return z.discs[col][row][1]
	}
	return z.discs[col][row][0]
}

// computeKey hashes the board from scratch.
func (b *Board) computeKey() uint64 {
	var key uint64
	for col := 0; col < Columns; col++ {
		for row := 0; row < b.heights[col]; row++ {
			key ^= zobrist.disc(col, row, b.cells[col][row])
		}
	}
	return key
}
