package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/client"
	"github.com/vctt94/austerity/pkg/protocol"
)

type menuOption string

const (
	optionPurchase menuOption = "Purchase a card"
	optionTake     menuOption = "Take tokens"
	optionWild     menuOption = "Take a wild"
)

var actionMenu = []menuOption{optionPurchase, optionTake, optionWild}

// screenState represents the current screen in the UI
type screenState int

const (
	stateConnect screenState = iota
	stateWaiting
	stateWatching
	stateChooseAction
	stateChooseCard
	stateChooseTake
	stateGameOver
)

// Model contains all the state for our UI
type Model struct {
	session *Session
	state   screenState
	err     error
	message string

	// Connect form inputs (just strings for simplicity)
	serverAddr        string
	gameName          string
	playerName        string
	selectedFormField int

	// Game state tracking
	rid  string
	snap stateMsg

	// Action selection
	selectedAction int
	selectedCard   int
	take           austerity.TokenVec
	takeCursor     int

	// End of game
	over gameEndMsg
}

// NewModel creates a new UI model
func NewModel(session *Session) Model {
	return Model{
		session:    session,
		state:      stateConnect,
		serverAddr: session.cfg.ServerAddr,
		gameName:   session.cfg.GameName,
		playerName: session.cfg.PlayerName,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.session.Close()
			return m, tea.Quit
		}
		return m.updateKeys(msg)

	case errorMsg:
		m.err = error(msg)
		m.message = fmt.Sprintf("Error: %v", m.err)
		if m.state != stateConnect {
			m.state = stateGameOver
		}

	case joinedMsg:
		m.state = stateWaiting
		m.message = "Waiting for the game to fill..."

	case connectedMsg:
		m.rid = msg.rid
		m.message = fmt.Sprintf("Game on. Reconnect id: %s", m.rid)

	case stateMsg:
		m.snap = msg
		if m.state == stateWaiting {
			m.state = stateWatching
		}

	case yourTurnMsg:
		m.state = stateChooseAction
		m.selectedAction = 0
		m.message = "Your turn"

	case gameEndMsg:
		m.over = msg
		m.state = stateGameOver
		switch msg.result.Outcome {
		case client.OutcomeGameOver:
			m.message = fmt.Sprintf("Game over. Winners are %s", msg.winners)
		case client.OutcomeDisconnect:
			m.message = fmt.Sprintf("Player %c disconnected", austerity.SeatLetter(msg.result.Seat))
		case client.OutcomeInvalid:
			m.message = fmt.Sprintf("Player %c sent invalid message", austerity.SeatLetter(msg.result.Seat))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateConnect:
		return m.updateConnectForm(msg)

	case stateChooseAction:
		switch msg.String() {
		case "up", "k":
			m.selectedAction = max(0, m.selectedAction-1)
		case "down", "j":
			m.selectedAction = min(len(actionMenu)-1, m.selectedAction+1)
		case "enter":
			switch actionMenu[m.selectedAction] {
			case optionPurchase:
				if len(m.snap.board) > 0 {
					m.state = stateChooseCard
					m.selectedCard = 0
				} else {
					m.message = "No cards on the board"
				}
			case optionTake:
				m.state = stateChooseTake
				m.take = austerity.TokenVec{}
				m.takeCursor = 0
			case optionWild:
				m.session.submit(protocol.TakeWild{})
				m.state = stateWatching
			}
		}

	case stateChooseCard:
		switch msg.String() {
		case "left", "h":
			m.selectedCard = max(0, m.selectedCard-1)
		case "right", "l":
			m.selectedCard = min(len(m.snap.board)-1, m.selectedCard+1)
		case "esc":
			m.state = stateChooseAction
		case "enter":
			offer := m.snap.board[m.selectedCard]
			if !offer.affordable {
				m.message = "You cannot afford that card"
				break
			}
			m.session.submit(protocol.Purchase{Card: m.selectedCard, Pay: offer.pay})
			m.state = stateWatching
		}

	case stateChooseTake:
		switch msg.String() {
		case "left", "h":
			m.takeCursor = max(0, m.takeCursor-1)
		case "right", "l":
			m.takeCursor = min(austerity.NumColours-1, m.takeCursor+1)
		case " ":
			if m.take[m.takeCursor] == 1 {
				m.take[m.takeCursor] = 0
			} else if m.snap.piles[m.takeCursor] > 0 {
				m.take[m.takeCursor] = 1
			}
		case "esc":
			m.state = stateChooseAction
		case "enter":
			if m.take.Total() != austerity.TokensPerTake {
				m.message = fmt.Sprintf("Pick exactly %d colours", austerity.TokensPerTake)
				break
			}
			m.session.submit(protocol.Take{Taken: m.take})
			m.state = stateWatching
		}

	case stateGameOver:
		if msg.String() == "q" || msg.String() == "enter" {
			m.session.Close()
			return m, tea.Quit
		}

	default:
		if msg.String() == "q" {
			m.session.Close()
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) updateConnectForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := []*string{&m.serverAddr, &m.gameName, &m.playerName}

	switch msg.String() {
	case "up", "shift+tab":
		m.selectedFormField = max(0, m.selectedFormField-1)
	case "down", "tab":
		m.selectedFormField = min(len(fields)-1, m.selectedFormField+1)
	case "enter":
		if m.serverAddr == "" || m.gameName == "" || m.playerName == "" {
			m.message = "All fields are required"
			return m, nil
		}
		m.message = fmt.Sprintf("Connecting to %s...", m.serverAddr)
		return m, m.session.connectCmd(m.serverAddr, m.gameName, m.playerName)
	case "backspace":
		f := fields[m.selectedFormField]
		if len(*f) > 0 {
			*f = (*f)[:len(*f)-1]
		}
	default:
		if len(msg.String()) == 1 {
			*fields[m.selectedFormField] += msg.String()
		}
	}
	return m, nil
}

// Run starts the UI and blocks until it exits.
func Run(cfg *client.AppConfig, key string) error {
	session := NewSession(cfg, key)
	model := NewModel(session)

	p := tea.NewProgram(model, tea.WithAltScreen())
	session.program = p
	_, err := p.Run()
	session.Close()
	return err
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
