package handlers

import (
	"net/http"

	"drivewell/middleware"
	"drivewell/models"
	"drivewell/services/user"
	"drivewell/utils"

	"github.com/gin-gonic/gin"
)

// uploadedImage reads the optional "image" multipart field and stores it,
// returning nil when the request carries no image.
func uploadedImage(c *gin.Context, folder string) (*models.Image, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, utils.ValidationError("Could not read the uploaded image.")
	}
	defer file.Close()

	img, err := StorageService.UploadImage(c.Request.Context(), file, folder)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// GetProfile returns the authenticated user's account.
func GetProfile(c *gin.Context) {
	payload := middleware.CurrentUser(c)
	u, err := UserService.GetProfile(payload.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile edits the profile fields and optionally replaces the profile
// image. The request is multipart form data.
func UpdateProfile(c *gin.Context) {
	payload := middleware.CurrentUser(c)

	img, err := uploadedImage(c, "profiles")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	update := user.ProfileUpdate{
		FullName: c.PostForm("fullName"),
		Phone:    c.PostForm("phone"),
		Address:  c.PostForm("address"),
		Image:    img,
	}
	u, err := UserService.UpdateProfile(payload.UserID, update)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ChangePassword replaces the password after verifying the current one.
func ChangePassword(c *gin.Context) {
	payload := middleware.CurrentUser(c)

	var input struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	if err := UserService.ChangePassword(payload.UserID, input.CurrentPassword, input.NewPassword); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed."})
}
