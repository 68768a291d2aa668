package app

import (
	"github.com/sirupsen/logrus"

	"parley/internal/protocol/yak"
	"parley/internal/store"
)

// Wire bundles the dependencies the CLI commands share: the logger, this
// process's key-agreement state, and the transcript store. The network
// endpoint itself is built per command, since only chat listens.
type Wire struct {
	Log        *logrus.Logger
	Exchange   *yak.KeyExchange
	Transcript *store.Transcript
}

// NewWire constructs the dependency graph from cfg. The long-term secret
// exponent is generated here, once per process, and lives only in memory.
func NewWire(cfg Config) (*Wire, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	kx, err := yak.New()
	if err != nil {
		return nil, err
	}

	return &Wire{
		Log:        log,
		Exchange:   kx,
		Transcript: store.NewTranscript(cfg.Home),
	}, nil
}
