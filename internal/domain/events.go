package domain

import "time"

type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// LogEvent is one log-like event from the session's event stream.
type LogEvent struct {
	Level     LogLevel
	Tag       string
	Message   string
	Timestamp time.Time
}

// RawIdentity is the identity snapshot fetched from the session.
type RawIdentity struct {
	UserID   string
	Nickname string
	Level    int
	Exp      int64
	Money    int64
}
