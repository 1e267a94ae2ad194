package discord

import (
	"context"
	"time"
)

// RunDailySummary posts the day's summary into channelID at hh:mm local
// time, skipping days where the summary already went out (because every
// player finished and the message handler posted it early). Blocks until
// ctx is cancelled.
func (c *Client) RunDailySummary(ctx context.Context, hour, minute int, channelID string) {
	timer := time.NewTimer(untilNext(time.Now(), hour, minute))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}
	c.postScheduledSummary(ctx, channelID)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("daily summary scheduler shutting down")
			return
		case <-ticker.C:
			c.postScheduledSummary(ctx, channelID)
		}
	}
}

// untilNext returns the duration from now to the next hh:mm boundary,
// rolling to tomorrow when today's has passed.
func untilNext(now time.Time, hour, minute int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}

func (c *Client) postScheduledSummary(ctx context.Context, channelID string) {
	c.logger.Info("checking whether the daily summary is due")
	posted, err := c.db.LatestGameSummaryPosted(ctx)
	if err != nil {
		c.logger.Error("unable to check summary status", "error", err.Error())
		return
	}
	if posted {
		return
	}
	latest, err := c.db.LatestGameNumber(ctx)
	if err != nil || latest == 0 {
		return
	}
	if err := c.summary.Execute(ctx, c.Session, nil, channelID); err != nil {
		c.logger.Error("unable to post scheduled summary", "error", err.Error())
	}
}
