package report

import (
	"nc-usersync/core/sync"

	"go.uber.org/zap"
)

// Multi fans every outcome out to all wrapped sinks.
type Multi []sync.Sink

func (m Multi) Record(o sync.Outcome) {
	for _, s := range m {
		s.Record(o)
	}
}

// LogSink logs each outcome as it happens so long runs show progress.
type LogSink struct {
	Log *zap.Logger
}

func (s *LogSink) Record(o sync.Outcome) {
	fields := []zap.Field{
		zap.String("user", o.Username),
		zap.String("op", string(o.Op)),
	}
	if len(o.Changes) > 0 {
		fields = append(fields, zap.Strings("changes", o.Changes))
	}
	if o.Detail != "" {
		fields = append(fields, zap.String("detail", o.Detail))
	}
	if o.Success {
		s.Log.Info("processed user", fields...)
	} else {
		s.Log.Warn("failed to process user", fields...)
	}
}
