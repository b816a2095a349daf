package controllers

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/soapboxd/soapbox/middleware"
	"github.com/soapboxd/soapbox/models"
	"github.com/soapboxd/soapbox/utils"
)

type FeedbackController struct {
	db *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{db: db}
}

type feedbackRequest struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// SubmitFeedback stores a bug report or feature suggestion. The feedback row
// and the author's per-category activity mark are written together, and the
// merge only touches the submitted category's column.
func (f *FeedbackController) SubmitFeedback(c *gin.Context) {
	identityID, ok := middleware.IdentityID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, 40101, "identity required")
		return
	}

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, 40020, "invalid request body")
		return
	}
	if !models.ValidFeedbackCategory(req.Category) {
		utils.Error(c, http.StatusBadRequest, 40040, "unknown feedback category")
		return
	}

	message := strings.TrimSpace(utils.Sanitize(req.Message))
	if utf8.RuneCountInString(message) < models.MinFeedbackChars {
		utils.Error(c, http.StatusBadRequest, 40041, "feedback message too short")
		return
	}

	ua := c.Request.UserAgent()
	if len(ua) > 512 {
		ua = ua[:512]
	}

	fb := models.Feedback{
		Category:  req.Category,
		Message:   message,
		UserAgent: ua,
		AuthorID:  identityID,
	}
	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&fb).Error; err != nil {
			return err
		}
		now := time.Now()
		activity := models.UserActivity{IdentityID: identityID}
		assignments := map[string]interface{}{"updated_at": now}
		if req.Category == models.FeedbackBug {
			activity.LastBugAt = &now
			assignments["last_bug_at"] = now
		} else {
			activity.LastFeatureAt = &now
			assignments["last_feature_at"] = now
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity_id"}},
			DoUpdates: clause.Assignments(assignments),
		}).Create(&activity).Error
	})
	if err != nil {
		utils.Sugar.Errorw("feedback create failed", "err", err, "identity", identityID)
		utils.Error(c, http.StatusInternalServerError, 50026, "feedback submission failed")
		return
	}

	utils.InvalidateByPrefix(statsCacheKey)
	utils.Metrics().FeedbackTotal.WithLabelValues(req.Category).Inc()
	utils.Success(c, fb)
}
