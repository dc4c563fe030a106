package handlers

import (
	"net/http"

	"drivewell/middleware"
	"drivewell/services/feedback"
	"drivewell/utils"

	"github.com/gin-gonic/gin"
)

// ListPublishedFeedback is public; it powers the testimonial wall.
func ListPublishedFeedback(c *gin.Context) {
	items, err := FeedbackService.ListPublished()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListAllFeedback returns every review. Manager only.
func ListAllFeedback(c *gin.Context) {
	items, err := FeedbackService.ListAll()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListMyFeedback returns the authenticated customer's reviews.
func ListMyFeedback(c *gin.Context) {
	payload := middleware.CurrentUser(c)
	items, err := FeedbackService.ListByUser(payload.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateFeedback leaves a review, capped per customer.
func CreateFeedback(c *gin.Context) {
	payload := middleware.CurrentUser(c)

	var input feedback.FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	f, err := FeedbackService.Create(payload.UserID, payload.UserName, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// UpdateFeedback edits one of the customer's reviews.
func UpdateFeedback(c *gin.Context) {
	payload := middleware.CurrentUser(c)

	var input feedback.FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	f, err := FeedbackService.Update(c.Param("id"), payload.UserID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// DeleteFeedback removes a review.
func DeleteFeedback(c *gin.Context) {
	payload := middleware.CurrentUser(c)
	if err := FeedbackService.Delete(c.Param("id"), payload.UserID, payload.Role); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted."})
}

// ToggleFeedbackPublished flips a review's publication state. Manager only.
func ToggleFeedbackPublished(c *gin.Context) {
	if err := FeedbackService.TogglePublished(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Publication state toggled."})
}
