package handlers

import (
	"fmt"
	"net/http"

	"homechef-api/authz"
	"homechef-api/config"
	"homechef-api/middleware"
	"homechef-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VerifyDriver approves a driver and stamps the approving admin
func VerifyDriver(c *gin.Context) {
	driverID, ok := pathID(c, "id")
	if !ok {
		return
	}
	adminUID := middleware.GetUserID(c)

	res := config.DB.Model(&models.Driver{}).
		Where("DriverUID = ?", driverID).
		Updates(map[string]interface{}{
			"ApprovalStatus": models.ApprovalApproved,
			"VerifiedBy":     adminUID,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Driver %d approved", driverID)})
}

// ApproveKitchen approves a kitchen and stamps the approving admin
func ApproveKitchen(c *gin.Context) {
	kitchenID, ok := pathID(c, "id")
	if !ok {
		return
	}
	adminUID := middleware.GetUserID(c)

	res := config.DB.Model(&models.HomeKitchen{}).
		Where("KitchenID = ?", kitchenID).
		Updates(map[string]interface{}{
			"ApprovalStatus": models.ApprovalApproved,
			"VerifiedBy":     adminUID,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Kitchen not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Kitchen %d approved", kitchenID)})
}

// DeleteUser removes a user and every identity-adjacent row in one
// transaction: membership tables, addresses, then the user itself.
func DeleteUser(c *gin.Context) {
	uid, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("CustomerUID = ?", uid).Delete(&models.CustomerAddress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("CustomerUID = ?", uid).Delete(&models.Customer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("DriverUID = ?", uid).Delete(&models.Driver{}).Error; err != nil {
			return err
		}
		if err := tx.Where("OwnerUID = ?", uid).Delete(&models.KitchenOwner{}).Error; err != nil {
			return err
		}
		if err := tx.Where("AdminUID = ?", uid).Delete(&models.Admin{}).Error; err != nil {
			return err
		}
		return tx.Where("UID = ?", uid).Delete(&models.User{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %d deleted", uid)})
}

// GetPendingDrivers lists drivers waiting for approval
func GetPendingDrivers(c *gin.Context) {
	var drivers []models.Driver
	if err := config.DB.
		Where("ApprovalStatus != ? OR ApprovalStatus IS NULL OR ApprovalStatus = ''", models.ApprovalApproved).
		Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]gin.H, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, gin.H{"DriverUID": d.DriverUID})
	}
	c.JSON(http.StatusOK, out)
}

// GetPendingKitchens lists kitchens waiting for approval
func GetPendingKitchens(c *gin.Context) {
	var kitchens []models.HomeKitchen
	if err := config.DB.
		Where("ApprovalStatus != ? OR ApprovalStatus IS NULL OR ApprovalStatus = ''", models.ApprovalApproved).
		Find(&kitchens).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]gin.H, 0, len(kitchens))
	for _, k := range kitchens {
		out = append(out, gin.H{"KitchenID": k.KitchenID, "Name": k.Name})
	}
	c.JSON(http.StatusOK, out)
}

// GetAllUsers lists every user with their resolved role
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		role := authz.ResolveRole(config.DB, u.UID)
		if authz.IsAdmin(config.DB, u.UID) {
			role = models.RoleAdmin
		}
		out = append(out, gin.H{
			"UID":       u.UID,
			"FirstName": u.FirstName,
			"LastName":  u.LastName,
			"Role":      role,
		})
	}
	c.JSON(http.StatusOK, out)
}
