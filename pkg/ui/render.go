package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vctt94/austerity/pkg/austerity"
)

// View renders the current state of the UI
func (m Model) View() string {
	var s string

	// Show any temporary message
	if m.message != "" {
		s += titleStyle.Render(m.message) + "\n\n"
	}

	// Show error if any
	if m.err != nil {
		s += ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n"
	}

	switch m.state {
	case stateConnect:
		s += m.renderConnectForm()

	case stateWaiting:
		s += titleStyle.Render("Austerity") + "\n\n"
		s += gameInfoStyle.Render("Seated. The game starts when the table fills.") + "\n"
		s += "\n" + helpStyle.Render("Press 'q' to quit")

	case stateWatching:
		s += m.renderGame()
		s += "\n" + helpStyle.Render("Waiting for the other players...")

	case stateChooseAction:
		s += m.renderGame()
		s += "\n" + m.renderActionMenu()
		s += "\n" + helpStyle.Render("Up/down to choose, Enter to confirm")

	case stateChooseCard:
		s += m.renderGame()
		s += "\n" + helpStyle.Render("Left/right to pick a card, Enter to buy, Esc to go back")

	case stateChooseTake:
		s += m.renderGame()
		s += "\n" + m.renderTakeSelector()
		s += "\n" + helpStyle.Render("Left/right to move, Space to toggle, Enter to take, Esc to go back")

	case stateGameOver:
		s += m.renderGame()
		s += "\n" + helpStyle.Render("Press Enter or 'q' to exit")
	}

	return s
}

func (m Model) renderConnectForm() string {
	var s string
	s += titleStyle.Render("Austerity - Connect") + "\n\n"

	fields := []struct {
		label string
		value string
	}{
		{"Server", m.serverAddr},
		{"Game", m.gameName},
		{"Name", m.playerName},
	}

	for i, field := range fields {
		style := blurredStyle
		marker := " "
		if i == m.selectedFormField {
			style = focusedStyle
			marker = ">"
		}
		s += style.Render(fmt.Sprintf("%s %s: %s", marker, field.label, field.value)) + "\n"
	}
	s += "\n" + helpStyle.Render("Tab to navigate, type to edit, Enter to connect")
	return s
}

func (m Model) renderGame() string {
	var s string
	s += titleStyle.Render("Austerity") + "\n\n"

	s += m.renderBoard() + "\n"
	s += m.renderPiles() + "\n\n"
	s += m.renderPlayers() + "\n"
	return s
}

func (m Model) renderBoard() string {
	if len(m.snap.board) == 0 {
		return gameInfoStyle.Render("The board is empty.") + "\n"
	}

	var cards []string
	for i, offer := range m.snap.board {
		c := offer.card
		body := fmt.Sprintf("%d\n%s %d\n%s",
			i,
			colourStyles[c.Discount()].Render(string(c.Discount().Letter())),
			c.Value(),
			renderPrice(c.Price()))
		if !offer.affordable {
			body += "\n" + blurredStyle.Render("costly")
		}
		style := cardStyle
		if m.state == stateChooseCard && i == m.selectedCard {
			style = selectedCardStyle
		}
		cards = append(cards, style.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderPrice(price austerity.TokenVec) string {
	var parts []string
	for k := 0; k < austerity.NumColours; k++ {
		c := austerity.Colour(k)
		parts = append(parts,
			colourStyles[c].Render(fmt.Sprintf("%c%d", c.Letter(), price[k])))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderPiles() string {
	var parts []string
	for k := 0; k < austerity.NumColours; k++ {
		c := austerity.Colour(k)
		parts = append(parts,
			colourStyles[c].Render(fmt.Sprintf("%c:%d", c.Letter(), m.snap.piles[k])))
	}
	return gameInfoStyle.Render("Piles  " + strings.Join(parts, "  "))
}

func (m Model) renderPlayers() string {
	var boxes []string
	for i, p := range m.snap.players {
		body := fmt.Sprintf("Player %c  %d pts\nDiscounts %s\nTokens    %s",
			austerity.SeatLetter(i), p.Score,
			austerity.FormatTokenVec(p.Discounts),
			austerity.FormatWallet(p.Tokens))
		style := playerBoxStyle
		if i == m.snap.self {
			style = yourPlayerStyle
		}
		boxes = append(boxes, style.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) renderActionMenu() string {
	var buttons []string
	for i, option := range actionMenu {
		style := actionButtonStyle
		if i == m.selectedAction {
			style = selectedActionStyle
		}
		buttons = append(buttons, style.Render(string(option)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m Model) renderTakeSelector() string {
	var parts []string
	for k := 0; k < austerity.NumColours; k++ {
		c := austerity.Colour(k)
		marker := " "
		if m.take[k] == 1 {
			marker = "x"
		}
		label := fmt.Sprintf("[%s] %c (%d left)", marker, c.Letter(), m.snap.piles[k])
		style := blurredStyle
		if k == m.takeCursor {
			style = focusedStyle
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, "  ")
}
