package handlers

import (
	"net/http"
	"time"

	bookingRepo "drivewell/database/repository/booking"
	branchRepo "drivewell/database/repository/branch"
	catalogRepo "drivewell/database/repository/catalog"
	userRepo "drivewell/database/repository/user"
	vehicleRepo "drivewell/database/repository/vehicle"
	"drivewell/models"
	"drivewell/utils"

	"github.com/gin-gonic/gin"
)

var (
	statsBookings bookingRepo.BookingRepository
	statsUsers    userRepo.UserRepository
	statsBranches branchRepo.BranchRepository
	statsCatalog  catalogRepo.CatalogRepository
	statsVehicles vehicleRepo.VehicleRepository
)

// InitStats wires the repositories the dashboard counters read from.
func InitStats(
	bookings bookingRepo.BookingRepository,
	users userRepo.UserRepository,
	branches branchRepo.BranchRepository,
	cat catalogRepo.CatalogRepository,
	vehicles vehicleRepo.VehicleRepository,
) {
	statsBookings = bookings
	statsUsers = users
	statsBranches = branches
	statsCatalog = cat
	statsVehicles = vehicles
}

// DashboardStats returns platform-wide counters for the manager dashboard.
func DashboardStats(c *gin.Context) {
	bookings, err := statsBookings.CountAll()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	weekAgo := time.Now().AddDate(0, 0, -7).Format(models.BookingDateLayout)
	recent, err := statsBookings.GetSince(weekAgo)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	customers, err := statsUsers.CountByRole(models.RoleCustomer)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	staff, err := statsUsers.CountByRole(models.RoleStaff, models.RoleManager)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	branches, err := statsBranches.CountAll()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	services, err := statsCatalog.CountAll()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	vehicles, err := statsVehicles.CountAll()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings":       bookings,
		"recentBookings": len(recent),
		"customers":      customers,
		"staff":          staff,
		"branches":       branches,
		"services":       services,
		"vehicles":       vehicles,
	})
}
