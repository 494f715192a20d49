package handler

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"doypal/internal/domain"
	"doypal/internal/models"
	"doypal/internal/repository"
	"doypal/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RewardHandler struct {
	rewards *repository.RewardRepository
	cloud   cloudinary.Client
}

func NewRewardHandler(rewards *repository.RewardRepository, cloud cloudinary.Client) *RewardHandler {
	return &RewardHandler{rewards: rewards, cloud: cloud}
}

// List returns the active catalog, cheapest first, annotated with the
// redemption status of each reward.
func (h *RewardHandler) List(c *gin.Context) {
	rewards, err := h.rewards.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rewards"})
		return
	}
	type rewardWithStatus struct {
		models.Reward
		IsRedeemed bool    `json:"is_redeemed"`
		RedeemedAt *string `json:"redeemed_at"`
	}
	out := make([]rewardWithStatus, 0, len(rewards))
	for _, rw := range rewards {
		entry := rewardWithStatus{Reward: rw}
		red, err := h.rewards.ActiveRedemption(rw.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rewards"})
			return
		}
		if red != nil {
			entry.IsRedeemed = true
			ts := red.RedeemedAt.Format("2006-01-02T15:04:05Z07:00")
			entry.RedeemedAt = &ts
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, gin.H{"rewards": out})
}

// Create adds a catalog entry from a multipart form with an optional
// image. A DB failure after the upload rolls the image back.
func (h *RewardHandler) Create(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	pointCost, _ := strconv.Atoi(c.PostForm("point_cost"))
	if name == "" || pointCost <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name and valid point_cost"})
		return
	}

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil && file.Size > 0 {
		url, errMsg, status := h.uploadImage(c, file)
		if status != 0 {
			c.JSON(status, gin.H{"error": errMsg})
			return
		}
		imageURL = url
	}

	reward := models.Reward{
		Name:        name,
		Description: description,
		PointCost:   pointCost,
		ImageURL:    imageURL,
		IsActive:    true,
	}
	if err := h.rewards.Create(&reward); err != nil {
		if imageURL != "" {
			if derr := h.cloud.DeleteByURL(c.Request.Context(), imageURL); derr != nil {
				log.Printf("[Rewards] orphan image cleanup failed: %v", derr)
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reward"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reward": reward, "message": "Reward created successfully"})
}

func (h *RewardHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reward id"})
		return
	}
	reward, err := h.rewards.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reward"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reward": reward})
}

// Update patches reward fields from a multipart form; a new image
// replaces (and deletes) the old one.
func (h *RewardHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reward id"})
		return
	}
	current, err := h.rewards.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reward"})
		return
	}

	fields := map[string]interface{}{}
	if name := strings.TrimSpace(c.PostForm("name")); name != "" {
		fields["name"] = name
	}
	if _, present := c.GetPostForm("description"); present {
		fields["description"] = strings.TrimSpace(c.PostForm("description"))
	}
	if raw, present := c.GetPostForm("point_cost"); present {
		pointCost, err := strconv.Atoi(raw)
		if err != nil || pointCost <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "point_cost must be a positive integer"})
			return
		}
		fields["point_cost"] = pointCost
	}
	if raw, present := c.GetPostForm("is_active"); present {
		fields["is_active"] = raw == "true"
	}

	if file, err := c.FormFile("image"); err == nil && file.Size > 0 {
		url, errMsg, status := h.uploadImage(c, file)
		if status != 0 {
			c.JSON(status, gin.H{"error": errMsg})
			return
		}
		if current.ImageURL != "" {
			if derr := h.cloud.DeleteByURL(c.Request.Context(), current.ImageURL); derr != nil {
				log.Printf("[Rewards] old image delete failed: %v", derr)
			}
		}
		fields["image_url"] = url
	}

	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}
	reward, err := h.rewards.Update(id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reward"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reward": reward, "message": "Reward updated successfully"})
}

// Delete deactivates a reward; the image stays for existing redemptions.
func (h *RewardHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reward id"})
		return
	}
	if err := h.rewards.SoftDelete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reward"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reward deactivated successfully"})
}

// uploadImage validates and uploads a reward image. Returns the URL, or
// an error message plus HTTP status when validation/upload fails.
func (h *RewardHandler) uploadImage(c *gin.Context, file *multipart.FileHeader) (url, errMsg string, status int) {
	if file.Size > domain.MaxImageBytes {
		return "", "Image size must be less than 1MB", http.StatusBadRequest
	}
	contentType := file.Header.Get("Content-Type")
	allowed := false
	for _, t := range domain.AllowedImageTypes {
		if contentType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", "Image must be JPEG, PNG, or WebP format", http.StatusBadRequest
	}
	f, err := file.Open()
	if err != nil {
		return "", "could not read image", http.StatusBadRequest
	}
	defer f.Close()
	publicID := "reward_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	uploaded, err := h.cloud.UploadImage(c.Request.Context(), f, cloudinary.RewardImageFolder, publicID)
	if err != nil {
		log.Printf("[Rewards] image upload failed: %v", err)
		return "", "Failed to upload image", http.StatusInternalServerError
	}
	return uploaded, "", 0
}
