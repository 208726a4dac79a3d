package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vctt94/austerity/pkg/austerity"
)

const maxPort = 65535

// Config holds everything rafiki loads before serving.
type Config struct {
	// Key is the shared secret clients present in play/reconnect
	// greetings.
	Key string
	// Deck is the master deck; each game draws from its own copy.
	Deck *austerity.Deck
	// Timeout is the reconnect grace window. Zero ends a game on the
	// first disconnect.
	Timeout time.Duration
}

// StatEntry is one statfile line: a port to listen on and the parameters of
// games created through it.
type StatEntry struct {
	// Port to listen on. Zero asks the kernel for an ephemeral port;
	// Listen replaces it with the bound one.
	Port int
	// Tokens is the initial size of each real-colour pile.
	Tokens int
	// Points is the score needed to win.
	Points int
	// Players is the number of seats per game.
	Players int
}

// LoadStatfile reads and validates a statfile. Each line is
// port,tokens,points,players with strict integers; the file must not end
// with a newline. Duplicate non-zero ports are rejected.
func LoadStatfile(path string) ([]StatEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseStatfile(string(raw))
}

// ParseStatfile validates raw statfile contents. See LoadStatfile.
func ParseStatfile(raw string) ([]StatEntry, error) {
	if raw == "" {
		return nil, fmt.Errorf("statfile is empty")
	}
	if raw[len(raw)-1] == '\n' {
		return nil, fmt.Errorf("statfile must not end with a newline")
	}
	lines := strings.Split(raw, "\n")
	entries := make([]StatEntry, 0, len(lines))
	for i, line := range lines {
		entry, err := parseStatLine(line)
		if err != nil {
			return nil, fmt.Errorf("statfile line %d: %v", i+1, err)
		}
		if entry.Port != 0 {
			for _, prev := range entries {
				if prev.Port == entry.Port {
					return nil, fmt.Errorf("statfile line %d: duplicate port %d", i+1, entry.Port)
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseStatLine(line string) (StatEntry, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return StatEntry{}, fmt.Errorf("want 4 fields, got %d", len(parts))
	}
	nums := make([]int, 4)
	for i, p := range parts {
		n, ok := austerity.ParseUint(p)
		if !ok {
			return StatEntry{}, fmt.Errorf("bad integer %q", p)
		}
		nums[i] = n
	}
	entry := StatEntry{Port: nums[0], Tokens: nums[1], Points: nums[2], Players: nums[3]}
	switch {
	case entry.Port > maxPort:
		return StatEntry{}, fmt.Errorf("port %d out of range", entry.Port)
	case entry.Tokens < 1:
		return StatEntry{}, fmt.Errorf("tokens %d below minimum", entry.Tokens)
	case entry.Points < 1:
		return StatEntry{}, fmt.Errorf("points %d below minimum", entry.Points)
	case entry.Players < austerity.MinPlayers || entry.Players > austerity.MaxPlayers:
		return StatEntry{}, fmt.Errorf("players %d out of range", entry.Players)
	}
	return entry, nil
}

// LoadKeyfile reads a key file: exactly one non-empty line with no trailing
// newline.
func LoadKeyfile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	key := string(raw)
	if key == "" || strings.ContainsRune(key, '\n') {
		return "", fmt.Errorf("keyfile must hold a single line with no trailing newline")
	}
	return key, nil
}

// ValidName reports whether a game or player name may appear on the wire:
// non-empty, with no comma or newline.
func ValidName(name string) bool {
	return name != "" && !strings.ContainsAny(name, ",\n")
}
