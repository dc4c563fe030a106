package handlers

import (
	"net/http"
	"strconv"

	"drivewell/services/catalog"
	"drivewell/utils"

	"github.com/gin-gonic/gin"
)

// branchInputFromForm reads the multipart branch payload, including the
// optional image upload.
func branchInputFromForm(c *gin.Context) (catalog.BranchInput, error) {
	input := catalog.BranchInput{
		BranchName: c.PostForm("branchName"),
		Location:   c.PostForm("location"),
		Phone:      c.PostForm("phone"),
	}
	if input.BranchName == "" || input.Location == "" || input.Phone == "" {
		return input, utils.ValidationError("branchName, location and phone are required.")
	}
	if lng := c.PostForm("longitude"); lng != "" {
		v, err := strconv.ParseFloat(lng, 64)
		if err != nil {
			return input, utils.ValidationError("longitude must be a number.")
		}
		input.Longitude = v
	}
	if lat := c.PostForm("latitude"); lat != "" {
		v, err := strconv.ParseFloat(lat, 64)
		if err != nil {
			return input, utils.ValidationError("latitude must be a number.")
		}
		input.Latitude = v
	}

	img, err := uploadedImage(c, "branches")
	if err != nil {
		return input, err
	}
	input.Image = img
	return input, nil
}

// ListBranches is public so customers can browse the network.
func ListBranches(c *gin.Context) {
	branches, err := CatalogService.ListBranches()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, branches)
}

func GetBranch(c *gin.Context) {
	b, err := CatalogService.GetBranch(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CreateBranch opens a new branch. Manager only.
func CreateBranch(c *gin.Context) {
	input, err := branchInputFromForm(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	b, err := CatalogService.CreateBranch(input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateBranch edits a branch. Manager only.
func UpdateBranch(c *gin.Context) {
	input, err := branchInputFromForm(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	b, err := CatalogService.UpdateBranch(c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBranch closes a branch. Manager only.
func DeleteBranch(c *gin.Context) {
	if err := CatalogService.DeleteBranch(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted."})
}

func offeringInputFromForm(c *gin.Context) (catalog.OfferingInput, error) {
	input := catalog.OfferingInput{
		ServiceName: c.PostForm("serviceName"),
		Description: c.PostForm("description"),
	}
	if input.ServiceName == "" || input.Description == "" {
		return input, utils.ValidationError("serviceName and description are required.")
	}
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		return input, utils.ValidationError("price must be a positive number.")
	}
	input.Price = price

	img, err := uploadedImage(c, "services")
	if err != nil {
		return input, err
	}
	input.Image = img
	return input, nil
}

// ListServices is public so customers can browse offerings.
func ListServices(c *gin.Context) {
	offerings, err := CatalogService.ListOfferings()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offerings)
}

func GetService(c *gin.Context) {
	o, err := CatalogService.GetOffering(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// CreateService adds a service offering. Manager only.
func CreateService(c *gin.Context) {
	input, err := offeringInputFromForm(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	o, err := CatalogService.CreateOffering(input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// UpdateService edits a service offering. Manager only.
func UpdateService(c *gin.Context) {
	input, err := offeringInputFromForm(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	o, err := CatalogService.UpdateOffering(c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// DeleteService removes a service offering. Manager only.
func DeleteService(c *gin.Context) {
	if err := CatalogService.DeleteOffering(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted."})
}
