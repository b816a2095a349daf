package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/soapboxd/soapbox/middleware"
	"github.com/soapboxd/soapbox/models"
	"github.com/soapboxd/soapbox/utils"
)

type AuthController struct {
	db *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

type identityResponse struct {
	IdentityID string    `json:"identity_id"`
	Token      string    `json:"token"`
	CreatedAt  time.Time `json:"created_at"`
}

// EstablishIdentity mints a fresh anonymous identity and a long-lived token
// for it. There is no signup form: one POST, one identity. Per-IP cooldown
// and a daily cap keep bulk minting in check.
func (a *AuthController) EstablishIdentity(c *gin.Context) {
	ip := c.ClientIP()

	if !utils.IdentityCooldownTry(ip) {
		utils.Error(c, http.StatusTooManyRequests, 42902, "identity requests too frequent, slow down")
		return
	}
	if !utils.IdentityDailyLimitCheck(ip) {
		utils.Error(c, http.StatusTooManyRequests, 42903, "daily identity limit reached for this address")
		return
	}

	identity := models.Identity{RegisterIP: ip}
	if err := a.db.Create(&identity).Error; err != nil {
		utils.Sugar.Errorw("identity create failed", "err", err, "ip", ip)
		utils.Error(c, http.StatusInternalServerError, 50020, "identity creation failed")
		return
	}

	token, err := utils.GenerateToken(identity.ID, utils.IdentityTokenTTL)
	if err != nil {
		utils.Sugar.Errorw("token issue failed", "err", err, "identity", identity.ID)
		utils.Error(c, http.StatusInternalServerError, 50021, "token issue failed")
		return
	}

	utils.IdentityDailyIncrement(ip)
	utils.Metrics().Identities.Inc()

	utils.Success(c, identityResponse{
		IdentityID: identity.ID,
		Token:      token,
		CreatedAt:  identity.CreatedAt,
	})
}

// Me returns the caller's identity record and refreshes its last-seen mark.
func (a *AuthController) Me(c *gin.Context) {
	identityID, ok := middleware.IdentityID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, 40101, "identity required")
		return
	}

	var identity models.Identity
	if err := a.db.Take(&identity, "id = ?", identityID).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, 40105, "identity no longer exists")
		return
	}

	now := time.Now()
	a.db.Model(&models.Identity{}).Where("id = ?", identityID).
		UpdateColumn("last_seen_at", now)
	identity.LastSeenAt = now

	utils.Success(c, identity)
}
