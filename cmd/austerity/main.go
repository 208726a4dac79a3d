// austerity is the local hub: it spawns one child process per player,
// wires their stdin/stdout as the game channel and referees the match,
// narrating every move to stdout.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/protocol"
)

const (
	exitNormal      = 0
	exitUsage       = 1
	exitBadArgument = 2
	exitDeckAccess  = 3
	exitDeckInvalid = 4
	exitBadStart    = 5
	exitDisconnect  = 6
	exitBadProtocol = 7
	exitSigint      = 10
)

// childKillWait is how long children get to exit after eog before SIGKILL.
const childKillWait = 2 * time.Second

// child is one spawned player process with its game channel.
type child struct {
	cmd *exec.Cmd
	in  *os.File
	out *bufio.Reader
}

type hub struct {
	game     *austerity.Game
	children []*child
}

func startChild(path string, numPlayers, playerID int) (*child, error) {
	cmd := exec.Command(path, strconv.Itoa(numPlayers), strconv.Itoa(playerID))

	inR, inW, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	outR, outW, err := os.Pipe()
	if err != nil {
		inR.Close()
		inW.Close()
		return nil, err
	}
	cmd.Stdin = inR
	cmd.Stdout = outW
	// Child stderr is discarded.

	if err := cmd.Start(); err != nil {
		inR.Close()
		inW.Close()
		outR.Close()
		outW.Close()
		return nil, err
	}
	inR.Close()
	outW.Close()
	return &child{cmd: cmd, in: inW, out: bufio.NewReader(outR)}, nil
}

// broadcast sends one protocol line to every child.
func (h *hub) broadcast(msg protocol.Message) {
	for _, c := range h.children {
		fmt.Fprintf(c.in, "%s\n", msg.Encode())
	}
}

// reveal faces up the next deck card, if the board has room and the deck
// has cards, announcing and narrating it.
func (h *hub) reveal() {
	card, ok := h.game.Reveal()
	if !ok {
		return
	}
	h.broadcast(protocol.NewCard{Card: card})
	p := card.Price()
	fmt.Printf("New card = Bonus %c, worth %d, costs %s\n",
		card.Discount().Letter(), card.Value(), austerity.FormatTokenVec(p))
}

// handleAction validates and applies one child line. A false return means
// the line was not a legal move.
func (h *hub) handleAction(seat int, line string) bool {
	action, err := protocol.ParseAction(line)
	if err != nil {
		return false
	}
	letter := austerity.SeatLetter(seat)
	switch a := action.(type) {
	case protocol.TakeWild:
		h.game.TakeWild(seat)
		h.broadcast(protocol.WildTaken{Seat: seat})
		fmt.Printf("Player %c took a wild\n", letter)

	case protocol.Take:
		if err := h.game.TakeTokens(seat, a.Taken); err != nil {
			return false
		}
		h.broadcast(protocol.Took{Seat: seat, Taken: a.Taken})
		fmt.Printf("Player %c drew %s\n", letter, austerity.FormatTokenVec(a.Taken))

	case protocol.Purchase:
		if err := h.game.Purchase(seat, a.Card, a.Pay); err != nil {
			return false
		}
		h.broadcast(protocol.Purchased{Seat: seat, Card: a.Card, Paid: a.Pay})
		fmt.Printf("Player %c purchased %d using %s\n",
			letter, a.Card, austerity.FormatWallet(a.Pay))
		h.reveal()
	}
	return true
}

// turn prompts one seat and processes its answer. A child gets a second
// chance after one bad line; two in a row is a protocol error.
func (h *hub) turn(seat int) int {
	attempted := false
	for {
		c := h.children[seat]
		fmt.Fprintf(c.in, "%s\n", protocol.DoWhat{}.Encode())

		line, err := c.out.ReadString('\n')
		if err != nil {
			return exitDisconnect
		}
		if h.handleAction(seat, strings.TrimSuffix(line, "\n")) {
			return exitNormal
		}
		if attempted {
			return exitBadProtocol
		}
		attempted = true
	}
}

// run plays rounds until the game ends. A reached threshold lets the round
// finish; an empty board ends the game on the spot.
func (h *hub) run() int {
	thresholdReached := false
	for {
		if thresholdReached {
			return exitNormal
		}
		for seat := range h.children {
			if code := h.turn(seat); code != exitNormal {
				return code
			}
			if h.game.IsOver() {
				thresholdReached = true
			}
			if h.game.BoardEmpty() {
				return exitNormal
			}
		}
	}
}

// reap kills any child still alive after the post-eog grace period and,
// when report is set, relays abnormal child ends to stderr.
func (h *hub) reap(report bool) {
	time.Sleep(childKillWait)
	for i, c := range h.children {
		c.cmd.Process.Kill()
		c.cmd.Wait()
		if !report {
			continue
		}
		ws, ok := c.cmd.ProcessState.Sys().(syscall.WaitStatus)
		if !ok {
			continue
		}
		if ws.Exited() {
			if ws.ExitStatus() != 0 {
				fmt.Fprintf(os.Stderr, "Player %c ended with status %d\n",
					austerity.SeatLetter(i), ws.ExitStatus())
			}
		} else if ws.Signaled() {
			fmt.Fprintf(os.Stderr, "Player %c shutdown after receiving signal %d\n",
				austerity.SeatLetter(i), int(ws.Signal()))
		}
	}
}

// exit reports the end state and tears the children down. eog only goes
// out once children exist, i.e. for a normal end or anything from a start
// failure onward.
func (h *hub) exit(code int) {
	switch code {
	case exitUsage:
		fmt.Fprintln(os.Stderr, "Usage: austerity tokens points deck player player [player ...]")
	case exitBadArgument:
		fmt.Fprintln(os.Stderr, "Bad argument")
	case exitDeckAccess:
		fmt.Fprintln(os.Stderr, "Cannot access deck file")
	case exitDeckInvalid:
		fmt.Fprintln(os.Stderr, "Invalid deck file contents")
	case exitBadStart:
		fmt.Fprintln(os.Stderr, "Bad start")
	case exitDisconnect:
		fmt.Println("Game ended due to disconnect")
		fmt.Fprintln(os.Stderr, "Client disconnected")
	case exitBadProtocol:
		fmt.Fprintln(os.Stderr, "Protocol error by client")
	case exitSigint:
		fmt.Fprintln(os.Stderr, "SIGINT caught")
	}

	if code == exitNormal {
		fmt.Printf("Winner(s) %s\n", h.game.WinnerLetters())
	}
	if code == exitNormal || code >= exitBadStart {
		h.broadcast(protocol.EndOfGame{})
		h.reap(code > exitBadStart && code != exitSigint)
	}
	os.Exit(code)
}

func main() {
	if len(os.Args) < 6 || len(os.Args) > austerity.MaxPlayers+4 {
		fmt.Fprintln(os.Stderr, "Usage: austerity tokens points deck player player [player ...]")
		os.Exit(exitUsage)
	}

	tokens, tokensOK := austerity.ParseUint(os.Args[1])
	points, pointsOK := austerity.ParseUint(os.Args[2])
	if !tokensOK || !pointsOK {
		fmt.Fprintln(os.Stderr, "Bad argument")
		os.Exit(exitBadArgument)
	}

	raw, err := os.ReadFile(os.Args[3])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Cannot access deck file")
		os.Exit(exitDeckAccess)
	}
	deck, err := austerity.ParseDeck(string(raw))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid deck file contents")
		os.Exit(exitDeckInvalid)
	}

	paths := os.Args[4:]
	game, err := austerity.NewGame(austerity.Config{
		Deck:          deck,
		PlayerNames:   paths,
		InitialTokens: tokens,
		WinThreshold:  points,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Bad argument")
		os.Exit(exitBadArgument)
	}
	h := &hub{game: game}

	for i, path := range paths {
		c, err := startChild(path, len(paths), i)
		if err != nil {
			h.exit(exitBadStart)
		}
		h.children = append(h.children, c)
	}

	h.broadcast(protocol.Tokens{Count: tokens})
	for i := 0; i < austerity.BoardSize; i++ {
		h.reveal()
	}

	// Disconnects surface as read errors, not write signals.
	signal.Ignore(syscall.SIGPIPE)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	go func() {
		<-sigCh
		h.exit(exitSigint)
	}()

	h.exit(h.run())
}
