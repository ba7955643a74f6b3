package security

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// PurgeJob removes expired refresh tokens. It implements cron.Job.
type PurgeJob struct {
	cmd     Command
	logger  *slog.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewPurgeJob creates a purge job bounded by timeout per run.
func NewPurgeJob(cmd Command, logger *slog.Logger, timeout time.Duration) *PurgeJob {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &PurgeJob{cmd: cmd, logger: logger, timeout: timeout, now: time.Now}
}

func (j *PurgeJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	n, err := j.cmd.PurgeExpired(ctx, j.now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "purge expired refresh tokens", slog.Any("error", err))
		return
	}
	if n > 0 {
		j.logger.InfoContext(ctx, "purged expired refresh tokens", slog.Int64("count", n))
	}
}

// Schedule registers job on c under spec (standard five-field cron syntax or
// descriptors such as "@hourly").
func Schedule(c *cron.Cron, spec string, job *PurgeJob) (cron.EntryID, error) {
	return c.AddJob(spec, job)
}

var _ cron.Job = (*PurgeJob)(nil)
