package notify

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Level string

const (
	LevelFail    Level = "fail"
	LevelSuccess Level = "success"
)

const (
	FailDuration    = 3 * time.Second
	SuccessDuration = 2 * time.Second
)

// Notification is a short user-facing message, shown for Duration.
type Notification struct {
	Level    Level
	Message  string
	Duration time.Duration
}

func Fail(message string) Notification {
	return Notification{Level: LevelFail, Message: message, Duration: FailDuration}
}

func Success(message string) Notification {
	return Notification{Level: LevelSuccess, Message: message, Duration: SuccessDuration}
}

type Notifier interface {
	Notify(n Notification)
}

// LogNotifier surfaces notifications through zerolog, failures at warn
// level and successes at info.
type LogNotifier struct {
	logger zerolog.Logger
}

var _ Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NewGlobalLogNotifier writes to the global zerolog logger.
func NewGlobalLogNotifier() *LogNotifier {
	return &LogNotifier{logger: log.Logger}
}

func (n *LogNotifier) Notify(note Notification) {
	ev := n.logger.Info()
	if note.Level == LevelFail {
		ev = n.logger.Warn()
	}
	ev.Str("level_hint", string(note.Level)).Dur("duration", note.Duration).Msg(note.Message)
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(Notification) {}
