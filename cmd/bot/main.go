// bot is an automated player speaking the hub protocol on stdin/stdout.
// The strategy comes from the invocation name (build or link the binary as
// shenzi, banzai or ed) or explicitly as "bot strategy pcount myid".
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/bot"
	"github.com/vctt94/austerity/pkg/client"
)

const (
	exitNormal    = 0
	exitUsage     = 1
	exitBadCount  = 2
	exitBadID     = 3
	exitCommError = 6
)

func fail(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

// stdio joins stdin and stdout into the engine's connection.
type stdio struct {
	io.Reader
	io.Writer
}

func known(name string) bool {
	for _, s := range bot.Strategies {
		if s == name {
			return true
		}
	}
	return false
}

func main() {
	name := filepath.Base(os.Args[0])
	args := os.Args[1:]

	strategy := name
	usage := fmt.Sprintf("Usage: %s pcount myid", name)
	if !known(name) {
		usage = "Usage: bot strategy pcount myid"
		if len(args) < 1 || !known(args[0]) {
			fail(exitUsage, usage)
		}
		strategy = args[0]
		args = args[1:]
	}
	if len(args) != 2 {
		fail(exitUsage, usage)
	}

	numPlayers, ok := austerity.ParseUint(args[0])
	if !ok || numPlayers < austerity.MinPlayers || numPlayers > austerity.MaxPlayers {
		fail(exitBadCount, "Invalid player count")
	}
	playerID, ok := austerity.ParseUint(args[1])
	if !ok || playerID > numPlayers-1 {
		fail(exitBadID, "Invalid player ID")
	}

	actor, err := bot.New(strategy)
	if err != nil {
		fail(exitUsage, usage)
	}

	e := client.NewEngine(client.EngineConfig{
		Conn:               stdio{os.Stdin, os.Stdout},
		Actor:              actor,
		StatusW:            os.Stderr,
		NoticeW:            os.Stderr,
		AllowTokensAnytime: true,
	})
	if err := e.InitSeats(playerID, numPlayers); err != nil {
		fail(exitCommError, "Communication Error")
	}

	res, err := e.Run()
	if err != nil || res.Outcome != client.OutcomeGameOver {
		fail(exitCommError, "Communication Error")
	}
	os.Exit(exitNormal)
}
