package connect4

import (
	"fmt"
	"strconv"
	"strings"
)

const InitialBoard = "......./......./......./......./......./......."

// ParseBoard reads the rows from top to bottom separated by '/'.
// 'x' is a red disc, 'o' a yellow one and '.' an empty cell.
func (Game) ParseBoard(s string) (*Board, error) {
	var rows = strings.Split(strings.TrimSpace(s), "/")
	if len(rows) != Rows {
		return nil, fmt.Errorf("connect4 board needs %v rows: %q", Rows, s)
	}
	var b = NewBoard()
	var reds, yellows int
	for i, line := range rows {
		var row = Rows - 1 - i
		if len(line) != Columns {
			return nil, fmt.Errorf("connect4 row %v needs %v cells: %q", i+1, Columns, line)
		}
		for col, ch := range line {
			var c Cell
			switch ch {
			case 'x', 'X':
				c = Red
				reds++
			case 'o', 'O':
				c = Yellow
				yellows++
			case '.', '-', '_':
				c = Empty
			default:
				return nil, fmt.Errorf("bad connect4 cell %q", ch)
			}
			b.cells[col][row] = c
		}
	}
	for col := 0; col < Columns; col++ {
		var h = 0
		for h < Rows && b.cells[col][h] != Empty {
			h++
		}
		for row := h; row < Rows; row++ {
			if b.cells[col][row] != Empty {
				return nil, fmt.Errorf("connect4 disc floating in column %v", col+1)
			}
		}
		b.heights[col] = h
	}
	if reds != yellows && reds != yellows+1 {
		return nil, fmt.Errorf("connect4 disc counts do not alternate: %v red, %v yellow", reds, yellows)
	}
	b.plies = reds + yellows
	b.key = b.computeKey()
	return b, nil
}

func (Game) FormatBoard(b *Board) string {
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		for col := 0; col < Columns; col++ {
			sb.WriteByte(".xo"[b.cells[col][row]])
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// ParseMove reads a column number from 1 to 7.
func (Game) ParseMove(b *Board, s string) (Move, error) {
	var col, err = strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad connect4 move %q: %w", s, err)
	}
	if col < 1 || col > Columns {
		return 0, fmt.Errorf("connect4 column out of range: %v", col)
	}
	if b.heights[col-1] >= Rows {
		return 0, fmt.Errorf("connect4 column %v is full", col)
	}
	return Move(col - 1), nil
}

func (Game) FormatMove(m Move) string {
	return strconv.Itoa(int(m) + 1)
}
