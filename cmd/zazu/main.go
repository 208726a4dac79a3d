// zazu is the interactive player. It connects to a rafiki port, joins (or
// reconnects to) a game and prompts on stdout for each turn, mirroring the
// game to stderr after every announcement.
package main

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/client"
	"github.com/vctt94/austerity/pkg/server"
)

const (
	exitNormal       = 0
	exitUsage        = 1
	exitBadKeyfile   = 2
	exitBadName      = 3
	exitConnectFail  = 5
	exitBadAuth      = 6
	exitBadReconnect = 7
	exitCommError    = 8
	exitDisconnect   = 9
	exitInvalid      = 10
)

func fail(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

func main() {
	if len(os.Args) != 5 {
		fail(exitUsage, "Usage: zazu keyfile port game pname")
	}

	key, err := server.LoadKeyfile(os.Args[1])
	if err != nil {
		fail(exitBadKeyfile, "Bad key file")
	}

	isReconnect := os.Args[3] == "reconnect"
	if !server.ValidName(os.Args[3]) || (!isReconnect && !server.ValidName(os.Args[4])) {
		fail(exitBadName, "Bad name")
	}

	conn, err := net.Dial("tcp", net.JoinHostPort("localhost", os.Args[2]))
	if err != nil {
		fail(exitConnectFail, "Failed to connect")
	}
	defer conn.Close()

	e := client.NewEngine(client.EngineConfig{
		Conn:    conn,
		Actor:   client.NewPrompter(os.Stdin, os.Stdout),
		StatusW: os.Stderr,
		NoticeW: os.Stdout,
	})

	if isReconnect {
		err = e.LoginReconnect(key, os.Args[4])
	} else {
		err = e.Login(key, os.Args[3], os.Args[4])
	}
	switch {
	case errors.Is(err, client.ErrAuthRejected):
		fail(exitBadAuth, "Bad auth")
	case errors.Is(err, client.ErrRidRejected):
		fail(exitBadReconnect, "Bad reconnect id")
	case err != nil:
		fail(exitCommError, "Communication Error")
	}

	if !isReconnect {
		rid, err := e.AwaitRid()
		if err != nil {
			fail(exitCommError, "Communication Error")
		}
		fmt.Println(rid)
	}
	if err := e.AwaitPlayInfo(); err != nil {
		fail(exitCommError, "Communication Error")
	}
	if err := e.AwaitTokens(); err != nil {
		fail(exitCommError, "Communication Error")
	}
	if isReconnect {
		if err := e.Catchup(); err != nil {
			fail(exitCommError, "Communication Error")
		}
	}

	res, err := e.Run()
	if err != nil {
		fail(exitCommError, "Communication Error")
	}
	switch res.Outcome {
	case client.OutcomeDisconnect:
		fail(exitDisconnect, fmt.Sprintf("Player %c disconnected", austerity.SeatLetter(res.Seat)))
	case client.OutcomeInvalid:
		fail(exitInvalid, fmt.Sprintf("Player %c sent invalid message", austerity.SeatLetter(res.Seat)))
	}
	os.Exit(exitNormal)
}
