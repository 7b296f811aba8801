package reset

import (
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/services/quota"
	"github.com/robfig/cron/v3"
)

// boundarySchedule fires at the quota reset boundary. It defers to the quota
// service so counters and the scheduler always agree on the instant.
type boundarySchedule struct {
	quota quota.Service
}

func (b boundarySchedule) Next(t time.Time) time.Time {
	return b.quota.NextReset(t)
}

var _ cron.Schedule = boundarySchedule{}

// cronLogger routes cron's own logging through zap
type cronLogger struct {
	sugar interface {
		Infow(msg string, keysAndValues ...interface{})
		Errorw(msg string, keysAndValues ...interface{})
	}
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}

var _ cron.Logger = cronLogger{}
