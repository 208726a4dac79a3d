package client

import (
	"fmt"

	brconfig "github.com/vctt94/bisonbotkit/config"
	"github.com/vctt94/bisonbotkit/utils"
)

// ConfigOverrides carries optional CLI/runtime overrides for config values.
type ConfigOverrides struct {
	ServerAddr string
	KeyFile    string
	GameName   string
	PlayerName string
}

// AppConfig is the unified configuration for the interactive client.
type AppConfig struct {
	// BRConfig holds the on-disk configuration store.
	BRConfig *brconfig.ClientConfig

	// Data directory
	DataDir string

	ServerAddr string
	KeyFile    string
	GameName   string
	PlayerName string

	// Notifications
	Notifications *NotificationManager
}

// LoadConfig loads the client configuration from the app data dir, applying
// any overrides and persisting them for the next run.
func LoadConfig(appName string, datadir string, ov ConfigOverrides) (*AppConfig, error) {
	if datadir == "" {
		datadir = utils.AppDataDir(appName, false)
	}
	cfg, err := brconfig.LoadClientConfig(datadir, appName+".conf")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// App settings live in ExtraConfig; overrides win but persist in cfg.
	addr := cfg.GetString("serveraddr")
	if ov.ServerAddr != "" {
		addr = ov.ServerAddr
		cfg.SetString("serveraddr", addr)
	}
	keyfile := cfg.GetString("keyfile")
	if ov.KeyFile != "" {
		keyfile = ov.KeyFile
		cfg.SetString("keyfile", keyfile)
	}
	gameName := cfg.GetString("gamename")
	if ov.GameName != "" {
		gameName = ov.GameName
		cfg.SetString("gamename", gameName)
	}
	playerName := cfg.GetString("playername")
	if ov.PlayerName != "" {
		playerName = ov.PlayerName
		cfg.SetString("playername", playerName)
	}

	return &AppConfig{
		BRConfig:      cfg,
		DataDir:       datadir,
		ServerAddr:    addr,
		KeyFile:       keyfile,
		GameName:      gameName,
		PlayerName:    playerName,
		Notifications: NewNotificationManager(),
	}, nil
}
