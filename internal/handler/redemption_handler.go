package handler

import (
	"errors"
	"net/http"

	"doypal/internal/repository"
	"doypal/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RedemptionHandler struct {
	redemptions *repository.RedemptionRepository
	svc         *service.RedemptionService
}

func NewRedemptionHandler(redemptions *repository.RedemptionRepository, svc *service.RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{redemptions: redemptions, svc: svc}
}

// List returns redemption history, active only unless
// include_withdrawn=true.
func (h *RedemptionHandler) List(c *gin.Context) {
	includeWithdrawn := c.Query("include_withdrawn") == "true"
	redemptions, err := h.redemptions.List(profileIDQuery(c), includeWithdrawn)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch redemptions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redemptions": redemptions})
}

type redeemRequest struct {
	RewardID  uint  `json:"reward_id" binding:"required"`
	ProfileID *uint `json:"profile_id"`
}

// Redeem spends points on a reward. Insufficient balance answers 400 with
// the required/current/needed detail and writes nothing.
func (h *RedemptionHandler) Redeem(c *gin.Context) {
	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: reward_id"})
		return
	}
	result, err := h.svc.Redeem(req.RewardID, req.ProfileID)
	if err != nil {
		var insufficient *service.InsufficientPointsError
		switch {
		case errors.Is(err, service.ErrRewardNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found or inactive"})
		case errors.As(err, &insufficient):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "Insufficient points",
				"required": insufficient.Required,
				"current":  insufficient.Current,
				"needed":   insufficient.Needed,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem reward"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"redemption":       result.Redemption,
		"message":          "Reward redeemed successfully!",
		"previous_balance": result.PreviousBalance,
		"new_balance":      result.NewBalance,
		"points_spent":     result.PointsSpent,
	})
}

func (h *RedemptionHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid redemption id"})
		return
	}
	redemption, err := h.redemptions.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Redemption not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch redemption"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redemption": redemption})
}

type redemptionPatchRequest struct {
	Action string `json:"action"`
}

// Patch handles the withdraw action. Re-withdrawing answers 400 and
// leaves the row untouched.
func (h *RedemptionHandler) Patch(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid redemption id"})
		return
	}
	var req redemptionPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Action != "withdraw" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action. Only 'withdraw' is supported"})
		return
	}
	result, err := h.svc.Withdraw(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRedemptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Redemption not found"})
		case errors.Is(err, service.ErrAlreadyWithdrawn):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Redemption already withdrawn"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to withdraw redemption"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Redemption withdrawn successfully",
		"points_refunded": result.PointsRefunded,
		"reward_name":     result.RewardName,
	})
}
