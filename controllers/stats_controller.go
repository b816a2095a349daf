package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/soapboxd/soapbox/models"
	"github.com/soapboxd/soapbox/utils"
)

const (
	statsCacheKey = "cache:stats"
	statsCacheTTL = time.Minute
)

type StatsController struct {
	db *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

type boardStats struct {
	Posts       int64 `json:"posts"`
	HiddenPosts int64 `json:"hidden_posts"`
	Identities  int64 `json:"identities"`
	Bugs        int64 `json:"bugs"`
	Features    int64 `json:"features"`
	ViewsToday  int64 `json:"views_today"`
}

// BoardStats aggregates board-wide counters. Hidden counts what the default
// client would filter out; the rows themselves are never deleted.
func (s *StatsController) BoardStats(c *gin.Context) {
	if b, ok := utils.CacheGetBytes(statsCacheKey); ok {
		var cached boardStats
		if json.Unmarshal(b, &cached) == nil {
			utils.Success(c, cached)
			return
		}
	}

	var stats boardStats
	s.db.Model(&models.PublicPost{}).Count(&stats.Posts)
	s.db.Model(&models.PublicPost{}).
		Where("report_count >= ? AND immune = ?", models.HideThreshold, false).
		Count(&stats.HiddenPosts)
	s.db.Model(&models.Identity{}).Count(&stats.Identities)
	s.db.Model(&models.Feedback{}).Where("category = ?", models.FeedbackBug).Count(&stats.Bugs)
	s.db.Model(&models.Feedback{}).Where("category = ?", models.FeedbackFeature).Count(&stats.Features)

	now := time.Now().In(time.Local)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var views *int64
	row := s.db.Model(&models.PageView{}).
		Select("SUM(count)").Where("date = ?", today).Row()
	if row != nil {
		if err := row.Scan(&views); err == nil && views != nil {
			stats.ViewsToday = *views
		}
	}

	utils.CacheSetJSON(statsCacheKey, stats, statsCacheTTL)
	utils.Success(c, stats)
}

// Health is the unauthenticated liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
