package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterGames/internal/gamebuilder"
	"github.com/ChizhovVadim/CounterGames/pkg/common"
	"github.com/ChizhovVadim/CounterGames/pkg/engine"
	"github.com/ChizhovVadim/CounterGames/pkg/protocol"
)

/*
Counter Copyright (C) 2017-2023 Vadim Chizhov
This program is free software: you can redistribute it and/or modify it under the terms of the GNU General Public License as published by the Free Software Foundation, either version 3 of the License, or (at your option) any later version.
This program is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License for more details.
You should have received a copy of the GNU General Public License along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

const (
	name   = "Counter"
	author = "Vadim Chizhov"
)

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

type Config struct {
	Game     string
	Board    string
	Side     string
	Depth    int
	MoveTime int
	Hash     int
	Debug    bool
}

var config Config

func main() {
	flag.StringVar(&config.Game, "game", "tictactoe", "game to play: tictactoe or connect4")
	flag.StringVar(&config.Board, "board", "", "search this board once and exit")
	flag.StringVar(&config.Side, "side", "first", "side to move on -board")
	flag.IntVar(&config.Depth, "depth", 0, "search depth limit for -board")
	flag.IntVar(&config.MoveTime, "movetime", 1000, "search time limit for -board in milliseconds")
	flag.IntVar(&config.Hash, "hash", 16, "transposition table size in megabytes")
	flag.BoolVar(&config.Debug, "debug", false, "log every completed iteration")
	flag.Parse()

	var logger = newLogger(config.Debug)

	logger.Info().
		Str("name", name).
		Str("versionName", versionName).
		Str("buildDate", buildDate).
		Str("gitRevision", gitRevision).
		Str("runtimeVersion", runtime.Version()).
		Str("GOARCH", runtime.GOARCH).
		Str("GOOS", runtime.GOOS).
		Int("NumCPU", runtime.NumCPU()).
		Str("game", config.Game).
		Send()

	if err := run(logger); err != nil {
		logger.Error().Err(err).Msg("counter failed")
		os.Exit(1)
	}
}

func newLogger(debug bool) zerolog.Logger {
	var level = zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func run(logger zerolog.Logger) error {
	var eng, options, err = gamebuilder.Get(config.Game,
		engine.WithHash(config.Hash),
		engine.WithLogger(logger))
	if err != nil {
		return err
	}

	if config.Board == "" {
		var p = protocol.New(name, author, versionName, eng, options)
		p.Run(os.Stdin, os.Stdout, logger)
		return nil
	}

	if err := eng.SetPosition(config.Board, config.Side, nil); err != nil {
		return err
	}
	eng.Prepare()
	var limits = common.LimitsType{
		Depth:    config.Depth,
		MoveTime: config.MoveTime,
	}
	si, err := eng.Search(context.Background(), limits, func(si protocol.SearchInfo) {
		logger.Info().
			Int("depth", si.Depth).
			Stringer("score", si.Score).
			Int64("nodes", si.Nodes).
			Strs("pv", si.MainLine).
			Msg("progress")
	})
	if err != nil {
		return err
	}
	if len(si.MainLine) == 0 {
		return fmt.Errorf("no move found")
	}
	fmt.Printf("bestmove %v\n", si.MainLine[0])
	return nil
}
