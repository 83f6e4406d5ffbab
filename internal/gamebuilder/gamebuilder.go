package gamebuilder

import (
	"fmt"

	"github.com/ChizhovVadim/CounterGames/pkg/common"
	"github.com/ChizhovVadim/CounterGames/pkg/engine"
	"github.com/ChizhovVadim/CounterGames/pkg/games/connect4"
	"github.com/ChizhovVadim/CounterGames/pkg/games/tictactoe"
	"github.com/ChizhovVadim/CounterGames/pkg/protocol"
)

// Names lists the games known to Get.
var Names = []string{"tictactoe", "connect4"}

// Get returns a protocol engine for the named game together with the
// options the protocol may change.
func Get(name string, options ...engine.Option) (protocol.Engine, []protocol.Option, error) {
	switch name {
	case "tictactoe", "ttt":
		var game = tictactoe.Game{}
		return build[tictactoe.Board, tictactoe.Move](game, game, tictactoe.InitialBoard, options)
	case "connect4", "c4":
		var game = connect4.Game{}
		return build[*connect4.Board, connect4.Move](game, game, connect4.InitialBoard, options)
	}
	return nil, nil, fmt.Errorf("bad game %v", name)
}

func build[B any, M comparable](
	game common.Game[B, M],
	notation common.Notation[B, M],
	initialBoard string,
	options []engine.Option,
) (protocol.Engine, []protocol.Option, error) {
	var eng = engine.NewEngine(game, options...)
	var adapter, err = protocol.NewAdapter[B, M](eng, game, notation, initialBoard)
	if err != nil {
		return nil, nil, err
	}
	return adapter, engineOptions(&eng.Options), nil
}

func engineOptions(options *engine.Options) []protocol.Option {
	return []protocol.Option{
		&protocol.IntOption{OptionName: "Hash", Min: 0, Max: 1 << 12, Value: &options.Hash},
		&protocol.BoolOption{OptionName: "AlphaBeta", Value: &options.AlphaBeta},
		&protocol.BoolOption{OptionName: "MoveOrdering", Value: &options.MoveOrdering},
		&protocol.IntOption{OptionName: "ProgressMinNodes", Min: 0, Max: 1 << 30, Value: &options.ProgressMinNodes},
	}
}
