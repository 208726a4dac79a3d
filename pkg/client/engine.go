// Package client implements the player side of the austerity wire protocol:
// the login handshakes, the reconnect catch-up and the message loop that
// keeps a local mirror of the game in step with the server's announcements.
package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/decred/slog"
	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/protocol"
)

var (
	// ErrAuthRejected is returned when the server answers the greeting
	// with "no".
	ErrAuthRejected = errors.New("authentication rejected")

	// ErrRidRejected is returned when the server refuses a reconnect
	// identifier.
	ErrRidRejected = errors.New("reconnect id rejected")
)

// Outcome classifies how a game session ended.
type Outcome int

const (
	// OutcomeGameOver is a normal end of game.
	OutcomeGameOver Outcome = iota
	// OutcomeDisconnect means the game ended because a seat disconnected
	// for good.
	OutcomeDisconnect
	// OutcomeInvalid means the game ended because a seat broke protocol.
	OutcomeInvalid
	// OutcomeCommError means the server connection broke or the server
	// sent a line the protocol does not allow.
	OutcomeCommError
)

// Result is the final state of a session. Seat is the faulting seat for
// OutcomeDisconnect and OutcomeInvalid and -1 otherwise.
type Result struct {
	Outcome Outcome
	Seat    int
}

// Actor decides a turn action when the server prompts. The game mirror is
// read-only for the actor; the engine applies the server's echo of the
// action when it arrives.
type Actor interface {
	ChooseAction(g *austerity.Game, self int) (protocol.Action, error)
}

// EngineConfig configures an Engine.
type EngineConfig struct {
	// Conn is the server connection (or stdio pipes for hub children).
	Conn io.ReadWriter

	// Actor answers dowhat prompts.
	Actor Actor

	// Log receives debug traces. Defaults to slog.Disabled.
	Log slog.Logger

	// StatusW, when non-nil, receives the full game status after every
	// state-changing announcement, plus the winner line at end of game.
	StatusW io.Writer

	// NoticeW, when non-nil, receives the "Received dowhat" notice.
	NoticeW io.Writer

	// AllowTokensAnytime permits token pile announcements after setup.
	// Hub children run with this set; over TCP a mid-game tokens line is
	// a protocol violation.
	AllowTokensAnytime bool
}

// Engine drives one game session over a server connection. It is not safe
// for concurrent use.
type Engine struct {
	r     *bufio.Reader
	w     io.Writer
	actor Actor
	log   slog.Logger
	ntfns *NotificationManager

	statusW            io.Writer
	noticeW            io.Writer
	allowTokensAnytime bool
	tokensSeen         bool

	game *austerity.Game
	self int
}

// NewEngine creates an engine over the given connection. The game mirror
// does not exist until one of the setup calls builds it.
func NewEngine(cfg EngineConfig) *Engine {
	log := cfg.Log
	if log == nil {
		log = slog.Disabled
	}
	return &Engine{
		r:                  bufio.NewReader(cfg.Conn),
		w:                  cfg.Conn,
		actor:              cfg.Actor,
		log:                log,
		ntfns:              NewNotificationManager(),
		statusW:            cfg.StatusW,
		noticeW:            cfg.NoticeW,
		allowTokensAnytime: cfg.AllowTokensAnytime,
		self:               -1,
	}
}

// Notifications returns the engine's notification manager.
func (e *Engine) Notifications() *NotificationManager { return e.ntfns }

// Game returns the local mirror, nil before setup.
func (e *Engine) Game() *austerity.Game { return e.game }

// Self returns the local seat, -1 before setup.
func (e *Engine) Self() int { return e.self }

func (e *Engine) readLine() (string, error) {
	line, err := e.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	e.log.Debugf("<- %q", line)
	return line, nil
}

func (e *Engine) sendLine(line string) error {
	e.log.Debugf("-> %q", line)
	_, err := fmt.Fprintf(e.w, "%s\n", line)
	return err
}

func (e *Engine) auth(greeting string) error {
	if err := e.sendLine(greeting); err != nil {
		return err
	}
	line, err := e.readLine()
	if err != nil {
		return err
	}
	if line != "yes" {
		return ErrAuthRejected
	}
	return nil
}

// Login runs the fresh-join handshake: the play greeting followed by the
// game and player names. The server stays silent until the game fills, so
// a bad name surfaces later as a closed connection.
func (e *Engine) Login(key, game, name string) error {
	if err := e.auth(protocol.EncodePlay(key)); err != nil {
		return err
	}
	if err := e.sendLine(game); err != nil {
		return err
	}
	return e.sendLine(name)
}

// LoginReconnect runs the reconnect handshake: the reconnect greeting
// followed by the rid line, answered yes or no.
func (e *Engine) LoginReconnect(key, rid string) error {
	if err := e.auth(protocol.EncodeReconnect(key)); err != nil {
		return err
	}
	if err := e.sendLine("rid" + rid); err != nil {
		return err
	}
	line, err := e.readLine()
	if err != nil {
		return err
	}
	if line != "yes" {
		return ErrRidRejected
	}
	return nil
}

// AwaitRid reads the reconnect identifier announcement and returns its
// payload verbatim.
func (e *Engine) AwaitRid() (string, error) {
	line, err := e.readLine()
	if err != nil {
		return "", err
	}
	payload := strings.TrimPrefix(line, "rid")
	if payload == line || payload == "" {
		return "", fmt.Errorf("expected rid, got %q", line)
	}
	return payload, nil
}

// AwaitPlayInfo reads the playinfo announcement and builds the mirror.
func (e *Engine) AwaitPlayInfo() error {
	line, err := e.readLine()
	if err != nil {
		return err
	}
	msg, err := protocol.ParseMessage(line)
	if err != nil {
		return fmt.Errorf("expected playinfo, got %q", line)
	}
	pi, ok := msg.(protocol.PlayInfo)
	if !ok {
		return fmt.Errorf("expected playinfo, got %q", line)
	}
	return e.InitSeats(pi.Seat, pi.Players)
}

// InitSeats builds the mirror directly. Hub children call this with their
// command-line identity since the hub sends no playinfo line.
func (e *Engine) InitSeats(self, players int) error {
	if self < 0 || self >= players {
		return fmt.Errorf("seat %d out of range for %d players", self, players)
	}
	g, err := austerity.NewMirror(players)
	if err != nil {
		return err
	}
	e.game = g
	e.self = self
	e.status()
	return nil
}

// AwaitTokens reads the initial token pile announcement.
func (e *Engine) AwaitTokens() error {
	line, err := e.readLine()
	if err != nil {
		return err
	}
	msg, err := protocol.ParseMessage(line)
	if err != nil {
		return fmt.Errorf("expected tokens, got %q", line)
	}
	tk, ok := msg.(protocol.Tokens)
	if !ok {
		return fmt.Errorf("expected tokens, got %q", line)
	}
	e.game.SetInitialTokens(tk.Count)
	e.tokensSeen = true
	e.ntfns.notifyTokensSet(tk.Count)
	e.status()
	return nil
}

// Catchup replays the reconnect catch-up: any number of newcard lines
// followed by exactly one player line per seat, in seat order. The board
// is echoed after each card and each seat after its line.
func (e *Engine) Catchup() error {
	line, err := e.readLine()
	for ; err == nil; line, err = e.readLine() {
		if !strings.HasPrefix(line, "newcard") {
			break
		}
		card, cerr := austerity.ParseCard(line[len("newcard"):])
		if cerr != nil {
			return fmt.Errorf("bad catchup card %q", line)
		}
		if aerr := e.game.AddBoardCard(card); aerr != nil {
			return aerr
		}
		e.ntfns.notifyNewCard(card)
		e.status()
	}
	if err != nil {
		return err
	}

	for seat := 0; seat < e.game.NumPlayers(); seat++ {
		if seat > 0 {
			if line, err = e.readLine(); err != nil {
				return err
			}
		}
		msg, perr := protocol.ParseMessage(line)
		if perr != nil {
			return fmt.Errorf("bad catchup line %q", line)
		}
		ps, ok := msg.(protocol.PlayerState)
		if !ok || ps.Seat != seat {
			return fmt.Errorf("expected player %c state, got %q",
				austerity.SeatLetter(seat), line)
		}
		if aerr := e.game.ApplyPlayerSnapshot(ps.Seat, ps.Score, ps.Discounts, ps.Tokens); aerr != nil {
			return aerr
		}
		if e.statusW != nil {
			WritePlayerState(e.statusW, e.game.Player(seat))
		}
	}
	return nil
}

// Setup runs the post-login server preamble. A fresh join reads the rid
// and playinfo announcements and the initial token count; a reconnect
// skips the rid (its payload was the login credential) and replays the
// catch-up instead. It returns the rid payload for fresh joins.
func (e *Engine) Setup(isReconnect bool) (string, error) {
	var rid string
	var err error
	if !isReconnect {
		if rid, err = e.AwaitRid(); err != nil {
			return "", err
		}
	}
	if err = e.AwaitPlayInfo(); err != nil {
		return "", err
	}
	if err = e.AwaitTokens(); err != nil {
		return "", err
	}
	if isReconnect {
		if err = e.Catchup(); err != nil {
			return "", err
		}
	}
	return rid, nil
}

func (e *Engine) status() {
	if e.statusW != nil {
		WriteGameStatus(e.statusW, e.game)
	}
}

// Run processes announcements until the game ends. The returned error is
// non-nil only for OutcomeCommError and describes what broke.
func (e *Engine) Run() (Result, error) {
	commErr := func(err error) (Result, error) {
		return Result{Outcome: OutcomeCommError, Seat: -1}, err
	}
	for {
		line, err := e.readLine()
		if err != nil {
			return commErr(err)
		}
		msg, err := protocol.ParseMessage(line)
		if err != nil {
			return commErr(fmt.Errorf("bad server line %q", line))
		}
		switch m := msg.(type) {
		case protocol.DoWhat:
			if e.noticeW != nil {
				fmt.Fprintln(e.noticeW, "Received dowhat")
			}
			e.ntfns.notifyTurn()
			action, err := e.actor.ChooseAction(e.game, e.self)
			if err != nil {
				return commErr(err)
			}
			if err := e.sendLine(action.Encode()); err != nil {
				return commErr(err)
			}

		case protocol.NewCard:
			if err := e.game.AddBoardCard(m.Card); err != nil {
				return commErr(err)
			}
			e.ntfns.notifyNewCard(m.Card)
			e.status()

		case protocol.Tokens:
			if e.tokensSeen && !e.allowTokensAnytime {
				return commErr(fmt.Errorf("unexpected mid-game line %q", line))
			}
			e.game.SetInitialTokens(m.Count)
			e.tokensSeen = true
			e.ntfns.notifyTokensSet(m.Count)
			e.status()

		case protocol.Purchased:
			if m.Seat >= e.game.NumPlayers() || m.Card >= e.game.BoardLen() {
				return commErr(fmt.Errorf("impossible purchase %q", line))
			}
			e.game.ApplyPurchase(m.Seat, m.Card, m.Paid)
			e.ntfns.notifyPurchased(m.Seat, m.Card, m.Paid)
			e.status()

		case protocol.Took:
			if m.Seat >= e.game.NumPlayers() {
				return commErr(fmt.Errorf("impossible take %q", line))
			}
			e.game.ApplyTake(m.Seat, m.Taken)
			e.ntfns.notifyTook(m.Seat, m.Taken)
			e.status()

		case protocol.WildTaken:
			if m.Seat >= e.game.NumPlayers() {
				return commErr(fmt.Errorf("impossible wild %q", line))
			}
			e.game.TakeWild(m.Seat)
			e.ntfns.notifyWild(m.Seat)
			e.status()

		case protocol.EndOfGame:
			if e.statusW != nil {
				WriteWinners(e.statusW, e.game)
			}
			e.ntfns.notifyGameEnd(OutcomeGameOver, e.game.WinnerLetters(), -1)
			return Result{Outcome: OutcomeGameOver, Seat: -1}, nil

		case protocol.Disco:
			e.ntfns.notifyGameEnd(OutcomeDisconnect, "", m.Seat)
			return Result{Outcome: OutcomeDisconnect, Seat: m.Seat}, nil

		case protocol.Invalid:
			e.ntfns.notifyGameEnd(OutcomeInvalid, "", m.Seat)
			return Result{Outcome: OutcomeInvalid, Seat: m.Seat}, nil

		default:
			// rid, playinfo and player lines never arrive mid-game.
			return commErr(fmt.Errorf("unexpected mid-game line %q", line))
		}
	}
}
