package server

import (
	"fmt"
	"io"
	"sort"
)

// ScoreRow is one scoreboard line: one display name's totals across every
// game, live or finished.
type ScoreRow struct {
	Name   string
	Tokens int
	Points int
}

// CollectScores walks every game and sums tokens (wilds included) and
// points per display name. Rows are sorted by points descending, then
// tokens ascending, then name.
func (s *Server) CollectScores() []ScoreRow {
	s.joinMu.Lock()
	games := make([]*gameData, len(s.games))
	copy(games, s.games)
	s.joinMu.Unlock()

	index := make(map[string]int)
	var rows []ScoreRow
	for _, g := range games {
		g.mu.Lock()
		for _, p := range g.game.Players() {
			i, ok := index[p.Name]
			if !ok {
				i = len(rows)
				index[p.Name] = i
				rows = append(rows, ScoreRow{Name: p.Name})
			}
			rows[i].Tokens += p.Tokens.Total()
			rows[i].Points += p.Score
		}
		g.mu.Unlock()
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].Tokens != rows[j].Tokens {
			return rows[i].Tokens < rows[j].Tokens
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// writeScores streams the scoreboard in CSV form with its header line.
func (s *Server) writeScores(w io.Writer) {
	fmt.Fprintf(w, "Player Name,Total Tokens,Total Points\n")
	for _, row := range s.CollectScores() {
		fmt.Fprintf(w, "%s,%d,%d\n", row.Name, row.Tokens, row.Points)
	}
}
