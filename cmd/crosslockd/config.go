package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the daemon configuration, read from CROSSLOCK_* environment
// variables with sensible defaults.
type Config struct {
	ListenAddr   string
	ChainID      string
	LogLevel     string
	GenesisAdmin string
	StartHeight  int64
}

const (
	keyListenAddr   = "LISTEN_ADDR"
	keyChainID      = "CHAIN_ID"
	keyLogLevel     = "LOG_LEVEL"
	keyGenesisAdmin = "GENESIS_ADMIN"
	keyStartHeight  = "START_HEIGHT"
)

func LoadConfig() (*Config, error) {
	viper.SetEnvPrefix("CROSSLOCK")
	viper.AutomaticEnv()

	viper.SetDefault(keyListenAddr, ":8545")
	viper.SetDefault(keyChainID, "crosslock-local")
	viper.SetDefault(keyLogLevel, "info")
	viper.SetDefault(keyGenesisAdmin, "")
	viper.SetDefault(keyStartHeight, 1)

	cfg := &Config{
		ListenAddr:   viper.GetString(keyListenAddr),
		ChainID:      viper.GetString(keyChainID),
		LogLevel:     viper.GetString(keyLogLevel),
		GenesisAdmin: viper.GetString(keyGenesisAdmin),
		StartHeight:  viper.GetInt64(keyStartHeight),
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}
