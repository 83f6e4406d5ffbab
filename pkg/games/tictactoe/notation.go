package tictactoe

import (
	"fmt"
	"strconv"
	"strings"
)

const InitialBoard = "........."

// ParseBoard reads nine cells row by row. X and O are the players, '.', '-' and '_'
// are empty cells. Slashes and spaces between rows are ignored.
func (Game) ParseBoard(s string) (Board, error) {
	var b Board
	var n = 0
	for _, ch := range s {
		var c Cell
		switch ch {
		case '/', ' ':
			continue
		case 'x', 'X':
			c = X
		case 'o', 'O', '0':
			c = O
		case '.', '-', '_':
			c = Empty
		default:
			return Board{}, fmt.Errorf("bad tictactoe cell %q", ch)
		}
		if n >= Size {
			return Board{}, fmt.Errorf("tictactoe board too long: %q", s)
		}
		b[n] = c
		n++
	}
	if n != Size {
		return Board{}, fmt.Errorf("tictactoe board needs %v cells: %q", Size, s)
	}
	return b, nil
}

func (Game) FormatBoard(b Board) string {
	var sb strings.Builder
	for _, c := range b {
		sb.WriteByte(".XO"[c])
	}
	return sb.String()
}

func (Game) ParseMove(b Board, s string) (Move, error) {
	var i, err = strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad tictactoe move %q: %w", s, err)
	}
	if i < 0 || i >= Size {
		return 0, fmt.Errorf("tictactoe move out of range: %v", i)
	}
	if b[i] != Empty {
		return 0, fmt.Errorf("tictactoe cell %v is taken", i)
	}
	return Move(i), nil
}

func (Game) FormatMove(m Move) string {
	return strconv.Itoa(int(m))
}
