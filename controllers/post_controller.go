package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
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

const (
	feedFirstPageCacheKey = "cache:feed:first"
	feedCacheTTL          = 30 * time.Second
	maxFeedLimit          = 50
)

type PostController struct {
	db *gorm.DB
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

type feedPageResponse struct {
	Items      []models.PublicPost `json:"items"`
	NextCursor string              `json:"next_cursor"`
}

// ListFeed serves one raw page of public posts, newest first. Pages are not
// filtered here: reported-but-visible state and the hide threshold are the
// client's concern, so counts stay honest and immunity keeps working without
// a server round trip. The first page is cached briefly.
func (p *PostController) ListFeed(c *gin.Context) {
	token := c.Query("cursor")
	limit := models.FeedPageSize
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = minInt(n, maxFeedLimit)
		}
	}

	if token == "" && limit == models.FeedPageSize {
		if b, ok := utils.CacheGetBytes(feedFirstPageCacheKey); ok {
			var page feedPageResponse
			if json.Unmarshal(b, &page) == nil {
				utils.Metrics().FeedPages.Inc()
				utils.Success(c, page)
				return
			}
		}
	}

	q := p.db.Model(&models.PublicPost{}).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if token != "" {
		cur, err := decodeCursor(token)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, 40030, "malformed cursor")
			return
		}
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)",
			cur.CreatedAt, cur.CreatedAt, cur.ID)
	}

	items := make([]models.PublicPost, 0, limit)
	if err := q.Find(&items).Error; err != nil {
		utils.Sugar.Errorw("feed query failed", "err", err)
		utils.Error(c, http.StatusInternalServerError, 50022, "feed query failed")
		return
	}

	page := feedPageResponse{Items: items}
	if len(items) > 0 {
		last := items[len(items)-1]
		page.NextCursor = encodeCursor(feedCursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	if token == "" && limit == models.FeedPageSize {
		utils.CacheSetJSON(feedFirstPageCacheKey, page, feedCacheTTL)
	}

	utils.Metrics().FeedPages.Inc()
	utils.Success(c, page)
}

type createPostRequest struct {
	Content string `json:"content"`
}

// CreatePost stores a submission. The private row, its public mirror, and
// the author's activity mark are written in one transaction; a reader either
// sees the post everywhere or nowhere.
func (p *PostController) CreatePost(c *gin.Context) {
	identityID, ok := middleware.IdentityID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, 40101, "identity required")
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, 40020, "invalid request body")
		return
	}

	content := strings.TrimSpace(utils.Sanitize(req.Content))
	if content == "" {
		utils.Error(c, http.StatusBadRequest, 40021, "post content is empty")
		return
	}
	if utf8.RuneCountInString(content) > models.MaxPostChars {
		utils.Error(c, http.StatusBadRequest, 40022, "post content too long")
		return
	}

	post := models.Post{Content: content, AuthorID: identityID}
	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		pub := models.PublicPost{
			ID:        post.ID,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
		}
		if err := tx.Create(&pub).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "identity_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"last_post_at": now,
				"updated_at":   now,
			}),
		}).Create(&models.UserActivity{IdentityID: identityID, LastPostAt: &now}).Error
	})
	if err != nil {
		utils.Sugar.Errorw("post create failed", "err", err, "identity", identityID)
		utils.Error(c, http.StatusInternalServerError, 50023, "post creation failed")
		return
	}

	utils.InvalidateByPrefix(feedFirstPageCacheKey)
	utils.InvalidateByPrefix(statsCacheKey)
	utils.Metrics().PostsCreated.Inc()

	utils.Success(c, models.PublicPost{
		ID:        post.ID,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	})
}

var errAlreadyReported = errors.New("already reported")

type reportResponse struct {
	AlreadyReported bool `json:"already_reported"`
	ReportCount     int  `json:"report_count"`
}

// ReportPost registers one report per (post, reporter) pair. The receipt
// check, receipt insert, and counter increment run in a serializable
// transaction; the unique receipt index backstops any race the isolation
// level lets through. Repeat reports are acknowledged, not errored: the
// client treats its local flag as authoritative either way.
func (p *PostController) ReportPost(c *gin.Context) {
	identityID, ok := middleware.IdentityID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, 40101, "identity required")
		return
	}
	postID := c.Param("id")

	var count int
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var receipt models.ReportReceipt
		err := tx.Where("post_id = ? AND reporter_id = ?", postID, identityID).
			Take(&receipt).Error
		if err == nil {
			return errAlreadyReported
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var pub models.PublicPost
		if err := tx.Take(&pub, "id = ?", postID).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.ReportReceipt{
			PostID:     postID,
			ReporterID: identityID,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.PublicPost{}).Where("id = ?", postID).
			UpdateColumn("report_count", gorm.Expr("report_count + 1")).Error; err != nil {
			return err
		}
		count = pub.ReportCount + 1
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	switch {
	case err == nil:
		utils.InvalidateByPrefix(feedFirstPageCacheKey)
		utils.Metrics().ReportsTotal.WithLabelValues("recorded").Inc()
		utils.Success(c, reportResponse{AlreadyReported: false, ReportCount: count})
	case errors.Is(err, errAlreadyReported), errors.Is(err, gorm.ErrDuplicatedKey):
		utils.Metrics().ReportsTotal.WithLabelValues("duplicate").Inc()
		utils.Success(c, reportResponse{AlreadyReported: true})
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(c, http.StatusNotFound, 40401, "post not found")
	default:
		utils.Sugar.Errorw("report failed", "err", err, "post", postID, "identity", identityID)
		utils.Metrics().ReportsTotal.WithLabelValues("failed").Inc()
		utils.Error(c, http.StatusInternalServerError, 50024, "report failed")
	}
}

type immunityRequest struct {
	Immune *bool `json:"immune" binding:"required"`
}

// SetImmunity toggles the moderation override that keeps a post visible
// regardless of report count. Both the private row and the public mirror
// are updated so the flag survives either read path.
func (p *PostController) SetImmunity(c *gin.Context) {
	postID := c.Param("id")

	var req immunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, 40020, "invalid request body")
		return
	}

	var updated int64
	err := p.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PublicPost{}).Where("id = ?", postID).
			Update("immune", *req.Immune)
		if res.Error != nil {
			return res.Error
		}
		updated = res.RowsAffected
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			Update("immune", *req.Immune).Error
	})
	if err != nil {
		utils.Sugar.Errorw("immunity update failed", "err", err, "post", postID)
		utils.Error(c, http.StatusInternalServerError, 50025, "immunity update failed")
		return
	}
	if updated == 0 {
		utils.Error(c, http.StatusNotFound, 40401, "post not found")
		return
	}

	utils.InvalidateByPrefix(feedFirstPageCacheKey)
	utils.Success(c, gin.H{"id": postID, "immune": *req.Immune})
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
