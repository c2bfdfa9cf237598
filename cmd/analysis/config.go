package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"chess-core/engine"
)

type Config struct {
	Addr              string `json:"addr"`
	HashMB            int    `json:"hash_mb"`
	DefaultMoveTimeMs int    `json:"default_movetime_ms"`
	MaxMoveTimeMs     int    `json:"max_movetime_ms"`
	MaxSearchDepth    int    `json:"max_search_depth"`
	MaxPerftDepth     int    `json:"max_perft_depth"`
	SquareSize        int    `json:"square_size"`
	HeartbeatSeconds  int    `json:"heartbeat_seconds"`
}

func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		HashMB:            engine.DefaultTTSizeMB,
		DefaultMoveTimeMs: 1000,
		MaxMoveTimeMs:     30000,
		MaxSearchDepth:    engine.MaxPly - 1,
		MaxPerftDepth:     6,
		SquareSize:        60,
		HeartbeatSeconds:  30,
	}
}

// loadConfig reads a JSON file over the defaults. Fields missing from the
// file keep their default values.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.normalized(), nil
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.HashMB <= 0 {
		c.HashMB = def.HashMB
	}
	if c.DefaultMoveTimeMs <= 0 {
		c.DefaultMoveTimeMs = def.DefaultMoveTimeMs
	}
	if c.MaxMoveTimeMs < c.DefaultMoveTimeMs {
		c.MaxMoveTimeMs = c.DefaultMoveTimeMs
	}
	if c.MaxSearchDepth <= 0 || c.MaxSearchDepth >= engine.MaxPly {
		c.MaxSearchDepth = def.MaxSearchDepth
	}
	if c.MaxPerftDepth <= 0 {
		c.MaxPerftDepth = def.MaxPerftDepth
	}
	if c.SquareSize <= 0 {
		c.SquareSize = def.SquareSize
	}
	if c.HeartbeatSeconds <= 0 {
		c.HeartbeatSeconds = def.HeartbeatSeconds
	}
	return c
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func NewConfigStore(cfg Config) *ConfigStore {
	return &ConfigStore{config: cfg.normalized()}
}

func (s *ConfigStore) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *ConfigStore) Update(cfg Config) Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg.Addr = s.config.Addr
	s.config = cfg.normalized()
	return s.config
}
