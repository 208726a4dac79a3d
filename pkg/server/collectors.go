package server

import (
	"runtime"
	"time"

	"github.com/pbnjay/memory"
	"github.com/prometheus/procfs"
)

// Stats is a point-in-time snapshot of server load, used for periodic
// logging.
type Stats struct {
	OpenLobbies   int
	LiveGames     int
	TotalGames    int
	ResidentBytes uint64
	OpenFDs       int
	Goroutines    int
}

// CollectStats gathers a load snapshot. Process figures come from procfs
// and degrade to zero where /proc is unavailable.
func (s *Server) CollectStats() Stats {
	var st Stats
	s.joinMu.Lock()
	for _, lb := range s.lobbies {
		if lb.open {
			st.OpenLobbies++
		}
	}
	st.TotalGames = len(s.games)
	for _, g := range s.games {
		if !g.rv.isFinished() {
			st.LiveGames++
		}
	}
	s.joinMu.Unlock()

	st.Goroutines = runtime.NumGoroutine()
	if proc, err := procfs.Self(); err == nil {
		if stat, err := proc.Stat(); err == nil {
			st.ResidentBytes = uint64(stat.ResidentMemory())
		}
		if n, err := proc.FileDescriptorsLen(); err == nil {
			st.OpenFDs = n
		}
	}
	return st
}

// LogSystemMemory records total and free system memory once at startup.
func (s *Server) LogSystemMemory() {
	s.log.Infof("System memory: total=%d free=%d", memory.TotalMemory(), memory.FreeMemory())
}

// StartStatsSampler logs a load snapshot every interval until stop is
// closed.
func (s *Server) StartStatsSampler(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				st := s.CollectStats()
				s.log.Debugf("Load: lobbies=%d live=%d total=%d rss=%d fds=%d goroutines=%d",
					st.OpenLobbies, st.LiveGames, st.TotalGames,
					st.ResidentBytes, st.OpenFDs, st.Goroutines)
			case <-stop:
				return
			}
		}
	}()
}
