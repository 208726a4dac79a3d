package server

import (
	"fmt"
	"net"
	"sync"

	"github.com/decred/slog"
	"github.com/vctt94/bisonbotkit/logging"
)

// Server coordinates the acceptor pool, lobbies and running games.
//
// Lock hierarchy: joinMu guards the lobby list and the game table and may
// be taken before a gameData.mu, never the reverse. shutdownMu serialises
// terminal game transitions and is never held together with joinMu.
type Server struct {
	log        slog.Logger
	logBackend *logging.LogBackend
	cfg        Config

	joinMu  sync.Mutex
	lobbies []*lobby
	games   []*gameData

	shutdownMu sync.Mutex

	listeners []*portListener
	acceptWG  sync.WaitGroup
	gameWG    sync.WaitGroup
}

// portListener pairs a listening socket with the statfile entry that
// configured it.
type portListener struct {
	ln    net.Listener
	entry StatEntry
}

// New creates a server. The log backend supplies rotated file plus stderr
// logging for every subsystem.
func New(cfg Config, logBackend *logging.LogBackend) *Server {
	return &Server{
		log:        logBackend.Logger("SERVER"),
		logBackend: logBackend,
		cfg:        cfg,
	}
}

// Listen binds one socket per statfile entry on localhost. A zero port is
// replaced by the kernel-chosen one. On any failure every already-bound
// socket is closed and an error returned. The bound ports are returned in
// entry order.
func (s *Server) Listen(entries []StatEntry) ([]int, error) {
	listeners := make([]*portListener, 0, len(entries))
	ports := make([]int, 0, len(entries))
	for _, entry := range entries {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", entry.Port))
		if err != nil {
			for _, pl := range listeners {
				pl.ln.Close()
			}
			return nil, fmt.Errorf("listen on port %d: %w", entry.Port, err)
		}
		entry.Port = ln.Addr().(*net.TCPAddr).Port
		listeners = append(listeners, &portListener{ln: ln, entry: entry})
		ports = append(ports, entry.Port)
	}
	s.listeners = listeners
	s.log.Infof("Listening on ports %v", ports)
	return ports, nil
}

// Serve starts one acceptor goroutine per bound listener and returns.
func (s *Server) Serve() {
	for _, pl := range s.listeners {
		s.acceptWG.Add(1)
		go s.acceptLoop(pl)
	}
}

func (s *Server) acceptLoop(pl *portListener) {
	defer s.acceptWG.Done()
	for {
		conn, err := pl.ln.Accept()
		if err != nil {
			// Listener closed.
			return
		}
		go s.handleConn(conn, pl.entry)
	}
}

// StopAccepting closes all listening sockets and waits for the acceptor
// goroutines to exit. Established connections and running games are
// untouched.
func (s *Server) StopAccepting() {
	for _, pl := range s.listeners {
		pl.ln.Close()
	}
	s.acceptWG.Wait()
	s.listeners = nil
}

// Shutdown ends every unfinished game with eog, closes their sockets and
// waits for the game goroutines to exit.
func (s *Server) Shutdown() {
	s.joinMu.Lock()
	games := make([]*gameData, len(s.games))
	copy(games, s.games)
	s.joinMu.Unlock()

	for _, g := range games {
		s.finalizeGame(g, endNormal, 0)
	}
	s.gameWG.Wait()
	s.log.Infof("All games shut down")
}

// findOpenGame returns the unfinished game with the given name and
// counter, or nil.
func (s *Server) findOpenGame(name string, counter int) *gameData {
	s.joinMu.Lock()
	defer s.joinMu.Unlock()
	for _, g := range s.games {
		if g.name == name && g.counter == counter && !g.rv.isFinished() {
			return g
		}
	}
	return nil
}
