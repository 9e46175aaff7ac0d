package config

import "time"

const (
	// ServiceName is used for the config file names and log fields.
	ServiceName = "requestbot"

	// Upstream defaults.
	DefaultImageBase       = "https://image.tmdb.org/t/p/w500"
	DefaultUpstreamTimeout = 15 * time.Second

	// Telegram defaults. The Bot API allows roughly 30 messages per second.
	DefaultPollTimeout = 60
	DefaultSendRate    = 25.0
	DefaultSendBurst   = 5

	// Enrichment fan-out per batch of presented cards.
	DefaultEnrichWorkers = 4

	// Health server.
	DefaultHealthPort = 8080

	// NATS defaults.
	DefaultSubjectPrefix = "requestbot"
	DefaultMaxReconnect  = 60
	DefaultReconnectWait = 2 * time.Second
)
