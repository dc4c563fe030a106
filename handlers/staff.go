package handlers

import (
	"net/http"

	"drivewell/services/user"
	"drivewell/utils"

	"github.com/gin-gonic/gin"
)

// RegisterStaff onboards a staff or manager account onto a branch. Manager
// only.
func RegisterStaff(c *gin.Context) {
	var input user.StaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	u, err := UserService.RegisterStaff(input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}
