package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/match-stats/internal/platform/logging"
)

const defaultLivePollInterval = time.Minute

// IngestionTarget is one league season kept fresh by the live poller.
type IngestionTarget struct {
	LeagueID int64
	Season   int
}

type liveSyncer interface {
	SyncLive(ctx context.Context, leagueID int64, season int) (IngestionResult, error)
}

type LivePollerConfig struct {
	Interval   time.Duration
	RunTimeout time.Duration
	Targets    []IngestionTarget
}

// LivePoller runs SyncLive for every configured target on a fixed interval.
type LivePoller struct {
	syncer liveSyncer
	cfg    LivePollerConfig
	logger *logging.Logger
}

func NewLivePoller(syncer liveSyncer, cfg LivePollerConfig, logger *logging.Logger) *LivePoller {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultLivePollInterval
	}
	if cfg.RunTimeout <= 0 || cfg.RunTimeout > cfg.Interval {
		cfg.RunTimeout = cfg.Interval
	}

	return &LivePoller{
		syncer: syncer,
		cfg:    cfg,
		logger: logger,
	}
}

// Run polls until ctx is cancelled. The first poll happens immediately.
func (p *LivePoller) Run(ctx context.Context) {
	if len(p.cfg.Targets) == 0 {
		p.logger.WarnContext(ctx, "live poller has no targets, not starting")
		return
	}

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	p.logger.InfoContext(ctx, "live poller started", "interval", p.cfg.Interval.String(), "targets", len(p.cfg.Targets))
	for {
		p.RunOnce(ctx)

		select {
		case <-ctx.Done():
			p.logger.InfoContext(ctx, "live poller stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce syncs every target once. A failing target is logged and does not stop the rest.
func (p *LivePoller) RunOnce(parentCtx context.Context) int {
	ctx, cancel := context.WithTimeout(parentCtx, p.cfg.RunTimeout)
	defer cancel()

	failed := 0
	for _, target := range p.cfg.Targets {
		if ctx.Err() != nil {
			return failed
		}
		if _, err := p.syncer.SyncLive(ctx, target.LeagueID, target.Season); err != nil {
			failed++
			p.logger.WarnContext(ctx, "live sync failed",
				"league_id", target.LeagueID,
				"season", target.Season,
				"error", err,
			)
		}
	}
	return failed
}
