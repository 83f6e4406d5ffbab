package common

// Game supplies the per-game collaborators of the search.
//
// LegalMoves must return a non-empty slice for every non-terminal board.
// Apply must not modify b; boards that are mutated in place should
// implement Mutator instead. Heuristic is only called on non-terminal
// boards and must return a value from the point of view of side.
type Game[B any, M comparable] interface {
	LegalMoves(b B, side Side) []M
	Apply(b B, m M, side Side) B
	Terminal(b B) Outcome
	Heuristic(b B, side Side) int
}

// Mutator is implemented by games whose boards are changed in place.
// Make applies m to b and returns the function that restores b.
type Mutator[B any, M comparable] interface {
	Make(b B, m M, side Side) (undo func())
}

// Orderer gives a static ordering key for a move, higher keys are searched first.
type Orderer[B any, M comparable] interface {
	OrderKey(b B, m M, side Side) int
}

// Hasher returns a position key for the transposition table.
type Hasher[B any] interface {
	Key(b B, side Side) uint64
}

// Notation converts boards and moves to and from text.
type Notation[B any, M comparable] interface {
	ParseBoard(s string) (B, error)
	FormatBoard(b B) string
	ParseMove(b B, s string) (M, error)
	FormatMove(m M) string
}
