package handlers

import (
	"net/http"

	"drivewell/config"
	"drivewell/services/user"
	"drivewell/utils"

	"github.com/gin-gonic/gin"
)

// refreshCookieName is the httpOnly cookie carrying the refresh token.
const refreshCookieName = "wisp"

func setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(refreshCookieName, token, int(utils.RefreshTokenTTL.Seconds()), "/", "", config.IsProduction(), true)
}

func clearRefreshCookie(c *gin.Context) {
	c.SetCookie(refreshCookieName, "", -1, "/", "", config.IsProduction(), true)
}

// Register creates a customer account and signs it in.
func Register(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	result, err := UserService.Register(input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	setRefreshCookie(c, result.RefreshToken)
	c.JSON(http.StatusCreated, gin.H{
		"user":        result.User,
		"accessToken": result.AccessToken,
	})
}

// Login verifies credentials and issues a token pair.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	result, err := UserService.Login(input.Email, input.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	setRefreshCookie(c, result.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"user":        result.User,
		"accessToken": result.AccessToken,
	})
}

// Refresh exchanges the refresh cookie for a fresh token pair.
func Refresh(c *gin.Context) {
	token, err := c.Cookie(refreshCookieName)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "No session", "")
		return
	}

	result, err := UserService.Refresh(token)
	if err != nil {
		clearRefreshCookie(c)
		utils.RespondError(c, err)
		return
	}

	setRefreshCookie(c, result.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"user":        result.User,
		"accessToken": result.AccessToken,
	})
}

// Logout invalidates the stored refresh token and clears the cookie.
func Logout(c *gin.Context) {
	token, _ := c.Cookie(refreshCookieName)
	if err := UserService.Logout(token); err != nil {
		utils.RespondError(c, err)
		return
	}
	clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

// ForgotPassword mails a temporary password. The response is the same whether
// or not the email exists.
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	if err := UserService.ForgotPassword(input.Email); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the email is registered, a temporary password has been sent."})
}
