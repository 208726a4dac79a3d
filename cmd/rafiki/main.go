// rafiki is the game server. It listens on the ports named in the statfile,
// seats players into lobbies and runs their games. SIGINT reloads the
// statfile and re-listens without touching running games; SIGTERM shuts
// everything down.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/server"
	"github.com/vctt94/austerity/pkg/utils"
	"github.com/vctt94/bisonbotkit/logging"
	brutils "github.com/vctt94/bisonbotkit/utils"
)

const (
	exitNormal       = 0
	exitUsage        = 1
	exitBadKeyfile   = 2
	exitBadDeckfile  = 3
	exitBadStatfile  = 4
	exitBadTimeout   = 5
	exitFailedListen = 6
	exitSystemError  = 10
)

func fail(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

func main() {
	if len(os.Args) != 5 {
		fail(exitUsage, "Usage: rafiki keyfile deckfile statfile timeout")
	}

	key, err := server.LoadKeyfile(os.Args[1])
	if err != nil {
		fail(exitBadKeyfile, "Bad keyfile")
	}
	deck, err := austerity.LoadDeckFile(os.Args[2])
	if err != nil {
		fail(exitBadDeckfile, "Bad deckfile")
	}

	datadir := os.Getenv("AUSTERITY_DATADIR")
	if datadir == "" {
		datadir = brutils.AppDataDir("austerity", false)
	}
	debugLevel := os.Getenv("AUSTERITY_DEBUG")
	if debugLevel == "" {
		debugLevel = "info"
	}
	if err := utils.EnsureDataDirExists(datadir); err != nil {
		fail(exitSystemError, "System error")
	}
	logBackend, err := logging.NewLogBackend(logging.LogConfig{
		LogFile:        filepath.Join(datadir, "logs", "rafiki.log"),
		DebugLevel:     debugLevel,
		MaxLogFiles:    5,
		MaxBufferLines: 1000,
	})
	if err != nil {
		fail(exitSystemError, "System error")
	}
	log := logBackend.Logger("RAFIKI")

	// Disconnects surface as read errors, not write signals.
	signal.Ignore(syscall.SIGPIPE)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var srv *server.Server
	stopSampler := make(chan struct{})
	for {
		// The statfile is reloaded every cycle; a statfile error is
		// reported ahead of a timeout error.
		entries, err := server.LoadStatfile(os.Args[3])
		if err != nil {
			fail(exitBadStatfile, "Bad statfile")
		}
		secs, ok := austerity.ParseUint(os.Args[4])
		if !ok {
			fail(exitBadTimeout, "Bad timeout")
		}

		if srv == nil {
			srv = server.New(server.Config{
				Key:     key,
				Deck:    deck,
				Timeout: time.Duration(secs) * time.Second,
			}, logBackend)
			srv.LogSystemMemory()
			srv.StartStatsSampler(30*time.Second, stopSampler)
		}

		ports, err := srv.Listen(entries)
		if err != nil {
			fail(exitFailedListen, "Failed listen")
		}
		for i, p := range ports {
			if i > 0 {
				fmt.Fprint(os.Stderr, " ")
			}
			fmt.Fprint(os.Stderr, p)
		}
		fmt.Fprintln(os.Stderr)
		srv.Serve()

		sig := <-sigCh
		srv.StopAccepting()
		if sig == syscall.SIGTERM {
			break
		}
		log.Infof("SIGINT: reloading statfile")
	}

	close(stopSampler)
	srv.Shutdown()
	os.Exit(exitNormal)
}
