package handlers

import (
	"net/http"

	"drivewell/middleware"
	"drivewell/services/vehicle"
	"drivewell/utils"

	"github.com/gin-gonic/gin"
)

// ListVehicles returns the authenticated customer's vehicles.
func ListVehicles(c *gin.Context) {
	payload := middleware.CurrentUser(c)
	vehicles, err := VehicleService.ListByOwner(payload.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// RegisterVehicle adds a vehicle to the customer's garage.
func RegisterVehicle(c *gin.Context) {
	payload := middleware.CurrentUser(c)

	var input vehicle.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	v, err := VehicleService.Register(payload.UserID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// UpdateVehicle edits one of the customer's vehicles.
func UpdateVehicle(c *gin.Context) {
	payload := middleware.CurrentUser(c)

	var input vehicle.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	v, err := VehicleService.Update(c.Param("id"), payload.UserID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DeleteVehicle removes one of the customer's vehicles.
func DeleteVehicle(c *gin.Context) {
	payload := middleware.CurrentUser(c)
	if err := VehicleService.Delete(c.Param("id"), payload.UserID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted."})
}
