package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterGames/pkg/common"
)

var (
	errSearchRunning   = errors.New("search still run")
	errCommandNotFound = errors.New("command not found")
)

type searchOutput struct {
	info  SearchInfo
	err   error
	final bool
}

type Protocol struct {
	name         string
	author       string
	version      string
	options      []Option
	engine       Engine
	out          io.Writer
	thinking     bool
	quitting     bool
	engineOutput chan searchOutput
	cancel       context.CancelFunc
}

func New(name, author, version string, engine Engine, options []Option) *Protocol {
	return &Protocol{
		name:    name,
		author:  author,
		version: version,
		engine:  engine,
		options: options,
	}
}

// Run reads commands from in until quit or end of input.
// A running search is finished before Run returns.
func (p *Protocol) Run(in io.Reader, out io.Writer, logger zerolog.Logger) {
	p.out = out
	var commands = make(chan string)

	go func() {
		defer close(commands)
		readCommands(in, commands)
	}()

	var commandsIn = commands
	var searchResult SearchInfo
	for {
		if commandsIn == nil && !p.thinking {
			return
		}
		select {
		case so, ok := <-p.engineOutput:
			if !ok {
				if len(searchResult.MainLine) != 0 {
					fmt.Fprintf(out, "bestmove %v\n", searchResult.MainLine[0])
				}
				p.thinking = false
				p.cancel = nil
				p.engineOutput = nil
				searchResult = SearchInfo{}
				continue
			}
			if so.err != nil {
				logger.Warn().Err(so.err).Msg("search failed")
				fmt.Fprintf(out, "error %v\n", so.err)
				continue
			}
			if !so.final || len(so.info.MainLine) != len(searchResult.MainLine) ||
				so.info.Depth != searchResult.Depth {
				fmt.Fprintln(out, searchInfoToString(so.info))
			}
			searchResult = so.info
		case commandLine, ok := <-commandsIn:
			if !ok {
				commandsIn = nil
				continue
			}
			var err = p.handle(commandLine)
			if err != nil {
				logger.Warn().Err(err).Str("command", commandLine).Msg("command failed")
				fmt.Fprintf(out, "error %v\n", err)
			}
			if p.quitting {
				commandsIn = nil
			}
		}
	}
}

func readCommands(in io.Reader, commands chan<- string) {
	var scanner = bufio.NewScanner(in)
	for scanner.Scan() {
		var commandLine = strings.TrimSpace(scanner.Text())
		if commandLine == "" {
			continue
		}
		commands <- commandLine
		if isQuit(commandLine) {
			return
		}
	}
}

func isQuit(commandLine string) bool {
	var fields = strings.Fields(commandLine)
	return len(fields) != 0 && fields[0] == "quit"
}

func (p *Protocol) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if commandName == "quit" {
		p.quitting = true
		if p.thinking {
			p.cancel()
		}
		return nil
	}

	if p.thinking {
		if commandName == "stop" {
			p.cancel()
			return nil
		}
		return errSearchRunning
	}

	var h func(fields []string) error

	switch commandName {
	case "hello":
		h = p.helloCommand
	case "setoption":
		h = p.setOptionCommand
	case "isready":
		h = p.isReadyCommand
	case "newgame":
		h = p.newGameCommand
	case "position":
		h = p.positionCommand
	case "go":
		h = p.goCommand
	case "stop":
		return nil
	}

	if h == nil {
		return fmt.Errorf("%w: %v", errCommandNotFound, commandName)
	}

	return h(fields)
}

func (p *Protocol) helloCommand(fields []string) error {
	fmt.Fprintf(p.out, "id name %s %s\n", p.name, p.version)
	fmt.Fprintf(p.out, "id author %s\n", p.author)
	for _, option := range p.options {
		fmt.Fprintln(p.out, option.String())
	}
	fmt.Fprintln(p.out, "ok")
	return nil
}

func (p *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 4 || fields[0] != "name" || fields[2] != "value" {
		return errors.New("invalid setoption arguments")
	}
	var name, value = fields[1], fields[3]
	for _, option := range p.options {
		if strings.EqualFold(option.Name(), name) {
			return option.Set(value)
		}
	}
	return fmt.Errorf("unhandled option %v", name)
}

func (p *Protocol) isReadyCommand(fields []string) error {
	p.engine.Prepare()
	fmt.Fprintln(p.out, "readyok")
	return nil
}

func (p *Protocol) newGameCommand(fields []string) error {
	p.engine.Clear()
	return p.engine.SetPosition("", "", nil)
}

func (p *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("empty position command")
	}
	var moves []string
	var movesIndex = findIndexString(fields, "moves")
	if movesIndex >= 0 {
		moves = fields[movesIndex+1:]
		fields = fields[:movesIndex]
	}
	if fields[0] == "startpos" {
		return p.engine.SetPosition("", "", moves)
	}
	if len(fields) != 2 {
		return errors.New("position needs a board and a side")
	}
	return p.engine.SetPosition(fields[0], fields[1], moves)
}

func (p *Protocol) goCommand(fields []string) error {
	var limits, err = parseLimits(fields)
	if err != nil {
		return err
	}
	p.engine.Prepare()
	var ctx, cancel = context.WithCancel(context.Background())
	var engineOutput = make(chan searchOutput, 3)
	p.cancel = cancel
	p.thinking = true
	p.engineOutput = engineOutput
	go func() {
		defer close(engineOutput)
		defer cancel()
		var searchResult, err = p.engine.Search(ctx, limits, func(si SearchInfo) {
			select {
			case engineOutput <- searchOutput{info: si}:
			default:
			}
		})
		engineOutput <- searchOutput{info: searchResult, err: err, final: true}
	}()
	return nil
}

func searchInfoToString(si SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v score %v", si.Depth, si.Score)
	var timeMs = si.Time.Milliseconds()
	var nps = si.Nodes * 1000 / (timeMs + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v", si.Nodes, timeMs, nps)
	if len(si.MainLine) != 0 {
		fmt.Fprintf(sb, " pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(move)
		}
	}
	return sb.String()
}

func parseLimits(args []string) (result common.LimitsType, err error) {
	var intArg = func(i int) (int, error) {
		if i+1 >= len(args) {
			return 0, fmt.Errorf("missing value for %v", args[i])
		}
		var v, err = strconv.Atoi(args[i+1])
		if err != nil {
			return 0, fmt.Errorf("bad %v: %w", args[i], err)
		}
		return v, nil
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			result.Depth, err = intArg(i)
			i++
		case "nodes":
			result.Nodes, err = intArg(i)
			i++
		case "movetime":
			result.MoveTime, err = intArg(i)
			i++
		case "infinite":
			result.Infinite = true
		default:
			err = fmt.Errorf("unknown go argument %v", args[i])
		}
		if err != nil {
			return common.LimitsType{}, err
		}
	}
	return result, nil
}

func findIndexString(slice []string, value string) int {
	for p, v := range slice {
		if v == value {
			return p
		}
	}
	return -1
}
