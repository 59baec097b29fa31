package handlers

import (
	"net/http"

	"homechef-api/authz"
	"homechef-api/config"
	"homechef-api/middleware"
	"homechef-api/models"

	"github.com/gin-gonic/gin"
)

// GetMe returns the caller's profile with role-specific attachments:
// customers get their addresses, owners their kitchens.
func GetMe(c *gin.Context) {
	email := middleware.GetEmail(c)

	var user models.User
	if err := config.DB.Where("Email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	role := authz.ResolveRole(config.DB, user.UID)
	if authz.IsAdmin(config.DB, user.UID) {
		role = models.RoleAdmin
	}

	resp := gin.H{
		"UID":       user.UID,
		"FirstName": user.FirstName,
		"LastName":  user.LastName,
		"PhoneNo":   user.PhoneNo,
		"Role":      role,
	}

	switch role {
	case models.RoleCustomer:
		var addresses []models.CustomerAddress
		config.DB.Where("CustomerUID = ?", user.UID).Find(&addresses)
		list := make([]string, 0, len(addresses))
		for _, a := range addresses {
			list = append(list, a.Address)
		}
		resp["Addresses"] = list
	case models.RoleOwner:
		var kitchens []models.HomeKitchen
		config.DB.Where("OwnerUID = ?", user.UID).Find(&kitchens)
		resp["HomeKitchens"] = kitchens
	}

	c.JSON(http.StatusOK, resp)
}
