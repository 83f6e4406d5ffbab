package common

import "fmt"

type OutcomeKind int8

const (
	OutcomeNone OutcomeKind = iota
	OutcomeWin
	OutcomeDraw
)

// Outcome is the terminal value of a board. The zero value means the game is not over.
type Outcome struct {
	Kind   OutcomeKind
	Winner Side
}

func WinFor(side Side) Outcome {
	return Outcome{Kind: OutcomeWin, Winner: side}
}

func LossFor(side Side) Outcome {
	return Outcome{Kind: OutcomeWin, Winner: side.Opponent()}
}

func DrawOutcome() Outcome {
	return Outcome{Kind: OutcomeDraw}
}

func (o Outcome) IsTerminal() bool {
	return o.Kind != OutcomeNone
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeWin:
		return fmt.Sprintf("%v wins", o.Winner)
	case OutcomeDraw:
		return "draw"
	}
	return "none"
}
