// client is the full-screen terminal player. It keeps its settings in a
// config file under its data directory and plays the same wire protocol as
// zazu through a bubbletea interface.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vctt94/austerity/pkg/client"
	"github.com/vctt94/austerity/pkg/server"
	"github.com/vctt94/austerity/pkg/ui"
	"github.com/vctt94/austerity/pkg/utils"
	"github.com/vctt94/bisonbotkit/logging"
)

func main() {
	var (
		datadir    string
		debugLevel string
		serverAddr string
		keyFile    string
		gameName   string
		playerName string
	)
	flag.StringVar(&datadir, "datadir", "", "Directory to load config file from")
	flag.StringVar(&debugLevel, "debuglevel", "info", "Logging level: trace, debug, info, warn, error")
	flag.StringVar(&serverAddr, "server", "", "Server address (host:port)")
	flag.StringVar(&keyFile, "keyfile", "", "Path to the game key file")
	flag.StringVar(&gameName, "game", "", "Game to join")
	flag.StringVar(&playerName, "name", "", "Player name")
	flag.Parse()

	cfg, err := client.LoadConfig("austerity", datadir, client.ConfigOverrides{
		ServerAddr: serverAddr,
		KeyFile:    keyFile,
		GameName:   gameName,
		PlayerName: playerName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := utils.EnsureDataDirExists(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Data dir error: %v\n", err)
		os.Exit(1)
	}
	logBackend, err := logging.NewLogBackend(logging.LogConfig{
		LogFile:        filepath.Join(cfg.DataDir, "logs", "client.log"),
		DebugLevel:     debugLevel,
		MaxLogFiles:    5,
		MaxBufferLines: 1000,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging error: %v\n", err)
		os.Exit(1)
	}
	log := logBackend.Logger("CLIENT")

	if cfg.KeyFile == "" {
		fmt.Fprintln(os.Stderr, "No key file configured; pass -keyfile")
		os.Exit(1)
	}
	key, err := server.LoadKeyfile(cfg.KeyFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Bad key file")
		os.Exit(2)
	}

	log.Infof("Using server address: %s", cfg.ServerAddr)
	if err := ui.Run(cfg, key); err != nil {
		log.Errorf("UI error: %v", err)
		fmt.Fprintf(os.Stderr, "UI error: %v\n", err)
		os.Exit(1)
	}
}
