package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCommandsStopsAtQuit(t *testing.T) {
	var commands = make(chan string, 10)
	readCommands(strings.NewReader("isready\n\n  quit now \nisready\n"), commands)
	close(commands)
	var got []string
	for command := range commands {
		got = append(got, command)
	}
	require.Equal(t, []string{"isready", "quit now"}, got)
}
