// Package connect4 supplies the Connect-4 rules to the search engine.
// Boards are mutated in place during search and restored by the undo
// function returned from Game.Make.
package connect4

import (
	"github.com/ChizhovVadim/CounterGames/pkg/common"
)

const (
	Columns = 7
	Rows    = 6
	Connect = 4
)

type Cell int8

const (
	Empty Cell = iota
	Red
	Yellow
)

// Move is a column index, 0 is the leftmost column.
type Move int

// Board stores the discs column by column, row 0 is the bottom row.
type Board struct {
	cells   [Columns][Rows]Cell
	heights [Columns]int
	plies   int
	key     uint64
	lastCol int
}

func NewBoard() *Board {
	return &Board{lastCol: -1}
}

func (b *Board) Clone() *Board {
	var result = *b
	return &result
}

func (b *Board) At(col, row int) Cell {
	return b.cells[col][row]
}

func (b *Board) Height(col int) int {
	return b.heights[col]
}

func (b *Board) Plies() int {
	return b.plies
}

// Red moves first.
func (b *Board) SideToMove() common.Side {
	if b.plies%2 == 0 {
		return common.First
	}
	return common.Second
}

func (b *Board) IsFull() bool {
	return b.plies == Columns*Rows
}

func (b *Board) play(col int, c Cell) {
	var row = b.heights[col]
	b.cells[col][row] = c
	b.heights[col]++
	b.plies++
	b.key ^= zobrist.disc(col, row, c)
	b.lastCol = col
}

func (b *Board) unplay(col, prevLastCol int) {
	b.heights[col]--
	var row = b.heights[col]
	b.key ^= zobrist.disc(col, row, b.cells[col][row])
	b.cells[col][row] = Empty
	b.plies--
	b.lastCol = prevLastCol
}

var directions = [...][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// winner checks the lines through the last disc, or the whole board when
// the last move is unknown.
func (b *Board) winner() Cell {
	if b.lastCol >= 0 {
		var row = b.heights[b.lastCol] - 1
		if row >= 0 && b.connectedAt(b.lastCol, row) {
			return b.cells[b.lastCol][row]
		}
		return Empty
	}
	for col := 0; col < Columns; col++ {
		for row := 0; row < b.heights[col]; row++ {
			if b.connectedAt(col, row) {
				return b.cells[col][row]
			}
		}
	}
	return Empty
}

func (b *Board) connectedAt(col, row int) bool {
	var c = b.cells[col][row]
	if c == Empty {
		return false
	}
	for _, d := range directions {
		var count = 1 + b.count(col, row, d[0], d[1], c) + b.count(col, row, -d[0], -d[1], c)
		if count >= Connect {
			return true
		}
	}
	return false
}

func (b *Board) count(col, row, dc, dr int, c Cell) int {
	var n = 0
	for {
		col += dc
		row += dr
		if col < 0 || col >= Columns || row < 0 || row >= Rows || b.cells[col][row] != c {
			return n
		}
		n++
	}
}

func CellOf(side common.Side) Cell {
	switch side {
	case common.First:
		return Red
	case common.Second:
		return Yellow
	}
	return Empty
}

func SideOf(c Cell) common.Side {
	switch c {
	case Red:
		return common.First
	case Yellow:
		return common.Second
	}
	return common.SideNone
}
