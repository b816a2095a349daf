package utils

import (
	"time"

	"github.com/soapboxd/soapbox/config"
	"github.com/soapboxd/soapbox/models"
)

// StartPageViewPruner launches a background goroutine that periodically
// deletes page-view rows older than the configured retention window. It is
// best-effort and logs failures.
func StartPageViewPruner(interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			db := config.DB()
			if db == nil {
				continue
			}
			days := config.Get().PageViewRetentionDays
			if days <= 0 {
				continue
			}
			cutoff := time.Now().AddDate(0, 0, -days)
			res := db.Where("date < ?", cutoff).Delete(&models.PageView{})
			if res.Error != nil {
				Sugar.Warnf("page view pruner failed: %v", res.Error)
				continue
			}
			if res.RowsAffected > 0 {
				Sugar.Infof("pruned %d page view rows older than %s", res.RowsAffected, cutoff.Format("2006-01-02"))
			}
		}
	}()
}
