package handlers

import (
	"net/http"

	"drivewell/middleware"
	"drivewell/models"
	"drivewell/utils"

	"github.com/gin-gonic/gin"
)

func bindBookingRequest(c *gin.Context) (models.BookingRequest, bool) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return req, false
	}

	payload := middleware.CurrentUser(c)
	req.CustomerID = payload.UserID
	req.CustomerName = payload.UserName
	req.CustomerEmail = payload.Email
	return req, true
}

// CheckAvailability verifies the requested slot without starting a payment.
func CheckAvailability(c *gin.Context) {
	req, ok := bindBookingRequest(c)
	if !ok {
		return
	}
	if err := BookingService.CheckAvailability(req); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true})
}

// RequestBooking validates the slot and returns the checkout URL for the
// advance fee. The booking itself is created when the payment settles.
func RequestBooking(c *gin.Context) {
	req, ok := bindBookingRequest(c)
	if !ok {
		return
	}
	url, err := BookingService.RequestBooking(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// RequestFinalPayment returns the checkout URL settling the outstanding bill.
func RequestFinalPayment(c *gin.Context) {
	payload := middleware.CurrentUser(c)
	url, err := BookingService.RequestFinalPayment(c.Param("id"), payload.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// UnavailableDates lists fully booked dates for a branch/service pairing.
func UnavailableDates(c *gin.Context) {
	branch := c.Query("branch")
	service := c.Query("service")
	if branch == "" || service == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "branch and service query parameters are required")
		return
	}

	dates, err := BookingService.UnavailableDates(branch, service)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if dates == nil {
		dates = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// ListMyBookings returns the authenticated customer's bookings.
func ListMyBookings(c *gin.Context) {
	payload := middleware.CurrentUser(c)
	bookings, err := BookingService.ListForCustomer(payload.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListBranchBookings returns the bookings of the staff member's branch.
func ListBranchBookings(c *gin.Context) {
	payload := middleware.CurrentUser(c)
	branch := payload.Branch
	if payload.Role == models.RoleManager {
		if q := c.Query("branch"); q != "" {
			branch = q
		}
	}
	if branch == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "no branch on account")
		return
	}

	bookings, err := BookingService.ListForBranch(branch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking returns one booking. Customers can only read their own.
func GetBooking(c *gin.Context) {
	payload := middleware.CurrentUser(c)
	b, err := BookingService.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if payload.Role == models.RoleCustomer && b.Customer != payload.UserID {
		utils.JSONError(c, http.StatusForbidden, "You do not have access to this booking.", "")
		return
	}
	c.JSON(http.StatusOK, b)
}

// SetBookingStatus advances the workflow status. Staff only.
func SetBookingStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	if err := BookingService.SetStatus(c.Param("id"), input.Status); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated."})
}

// AddBookingNote attaches a work note. Staff only.
func AddBookingNote(c *gin.Context) {
	payload := middleware.CurrentUser(c)

	var input struct {
		Note string `json:"note" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	note, err := BookingService.AddNote(c.Param("id"), payload.UserName, input.Note)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// RemoveBookingNote deletes a work note. Staff only.
func RemoveBookingNote(c *gin.Context) {
	if err := BookingService.RemoveNote(c.Param("id"), c.Param("noteId")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note removed."})
}

// SetBookingBill replaces the itemized bill. Staff only.
func SetBookingBill(c *gin.Context) {
	var input struct {
		Bill []models.BillItem `json:"bill" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	if err := BookingService.SetBill(c.Param("id"), input.Bill); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bill updated."})
}

// RecordCashPayment settles the bill in person. Staff only.
func RecordCashPayment(c *gin.Context) {
	if err := BookingService.RecordCashPayment(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment recorded."})
}

// DeleteBooking removes a booking, subject to ownership and settlement rules.
func DeleteBooking(c *gin.Context) {
	payload := middleware.CurrentUser(c)
	if err := BookingService.Delete(c.Param("id"), payload.UserID, payload.Role); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted."})
}
