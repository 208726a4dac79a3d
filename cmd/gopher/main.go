// gopher fetches the scoreboard from a rafiki port and prints it to stdout.
package main

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/vctt94/austerity/pkg/protocol"
)

const (
	exitNormal        = 0
	exitUsage         = 1
	exitConnectFail   = 3
	exitInvalidServer = 4
)

func fail(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

func main() {
	if len(os.Args) != 2 {
		fail(exitUsage, "Usage: gopher port")
	}

	conn, err := net.Dial("tcp", net.JoinHostPort("localhost", os.Args[1]))
	if err != nil {
		fail(exitConnectFail, "Failed to connect")
	}
	defer conn.Close()

	if _, err := fmt.Fprintf(conn, "%s\n", protocol.EncodeScores()); err != nil {
		fail(exitInvalidServer, "Invalid server")
	}

	r := bufio.NewReader(conn)
	greeting, err := r.ReadString('\n')
	if err != nil || greeting != "yes\n" {
		fail(exitInvalidServer, "Invalid server")
	}

	io.Copy(os.Stdout, r)
	os.Exit(exitNormal)
}
