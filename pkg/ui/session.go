package ui

import (
	"errors"
	"net"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/client"
	"github.com/vctt94/austerity/pkg/protocol"
)

// Message types flowing from the game session into the UI.
type errorMsg error
type joinedMsg struct{}
type connectedMsg struct{ rid string }
type yourTurnMsg struct{}

// cardOffer is one board card together with the canonical payment the local
// seat would make for it, computed when the snapshot was taken.
type cardOffer struct {
	card       austerity.Card
	pay        austerity.Wallet
	affordable bool
}

// stateMsg is an immutable snapshot of the game mirror, safe to hold across
// UI frames while the session goroutine keeps mutating the mirror.
type stateMsg struct {
	board   []cardOffer
	players []austerity.Player
	piles   austerity.TokenVec
	self    int
}

type gameEndMsg struct {
	result  client.Result
	winners string
}

// Session owns the server connection and the engine goroutine, and bridges
// both to the tea program. It is also the engine's Actor: a dowhat surfaces
// as a yourTurnMsg and blocks until the UI pushes an action back.
type Session struct {
	cfg     *client.AppConfig
	key     string
	program *tea.Program

	conn    net.Conn
	engine  *client.Engine
	actions chan protocol.Action
}

// NewSession creates a session for the given configuration and auth key.
func NewSession(cfg *client.AppConfig, key string) *Session {
	return &Session{
		cfg:     cfg,
		key:     key,
		actions: make(chan protocol.Action),
	}
}

// ChooseAction implements client.Actor from the engine goroutine.
func (s *Session) ChooseAction(g *austerity.Game, self int) (protocol.Action, error) {
	s.program.Send(yourTurnMsg{})
	action, ok := <-s.actions
	if !ok {
		return nil, errors.New("ui closed")
	}
	return action, nil
}

// submit hands the UI's chosen action to the blocked engine goroutine.
func (s *Session) submit(action protocol.Action) {
	s.actions <- action
}

// connectCmd dials the server and runs the login handshake, then starts the
// session goroutine that plays the game.
func (s *Session) connectCmd(addr, game, name string) tea.Cmd {
	return func() tea.Msg {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return errorMsg(err)
		}
		s.conn = conn
		s.engine = client.NewEngine(client.EngineConfig{
			Conn:  conn,
			Actor: s,
		})
		if err := s.engine.Login(s.key, game, name); err != nil {
			conn.Close()
			return errorMsg(err)
		}
		go s.play()
		return joinedMsg{}
	}
}

// Close tears the connection down.
func (s *Session) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}

// snapshot copies the mirror for the UI. Runs on the session goroutine only.
func (s *Session) snapshot() stateMsg {
	g := s.engine.Game()
	self := s.engine.Self()
	snap := stateMsg{
		piles: g.Piles(),
		self:  self,
	}
	for i, c := range g.Board() {
		pay, _ := g.RequiredPayment(self, i)
		snap.board = append(snap.board, cardOffer{
			card:       c,
			pay:        pay,
			affordable: g.CanAfford(self, i),
		})
	}
	for _, p := range g.Players() {
		snap.players = append(snap.players, *p)
	}
	return snap
}

// play drives the engine from setup to the end of the game, pushing a fresh
// snapshot into the UI after every announcement.
func (s *Session) play() {
	e := s.engine
	push := func() { s.program.Send(s.snapshot()) }

	ntfns := e.Notifications()
	ntfns.RegisterSync(client.OnTokensSetNtfn(func(int) { push() }))
	ntfns.RegisterSync(client.OnNewCardNtfn(func(austerity.Card) { push() }))
	ntfns.RegisterSync(client.OnPurchasedNtfn(func(int, int, austerity.Wallet) { push() }))
	ntfns.RegisterSync(client.OnTookNtfn(func(int, austerity.TokenVec) { push() }))
	ntfns.RegisterSync(client.OnWildNtfn(func(int) { push() }))

	rid, err := e.Setup(false)
	if err != nil {
		s.program.Send(errorMsg(err))
		return
	}
	s.program.Send(connectedMsg{rid: rid})
	push()

	res, err := e.Run()
	if err != nil {
		s.program.Send(errorMsg(err))
		return
	}
	s.program.Send(gameEndMsg{result: res, winners: e.Game().WinnerLetters()})
}
