// Package authz derives a user's effective role from the membership
// tables and guards kitchen mutations behind ownership checks.
package authz

import (
	"errors"

	"homechef-api/models"

	"gorm.io/gorm"
)

// ErrNotKitchenOwner is the single answer the ownership guard gives
// for both "kitchen doesn't exist" and "exists but isn't yours".
var ErrNotKitchenOwner = errors.New("you do not own this kitchen")

// ResolveRole derives the user's role by probing the membership tables
// in fixed precedence order: owner, then driver, then customer. A user
// present in more than one table resolves to the highest-precedence
// role. Returns RoleNone when the user is in none of the three.
func ResolveRole(db *gorm.DB, uid uint) models.UserRole {
	var count int64
	db.Model(&models.KitchenOwner{}).Where("OwnerUID = ?", uid).Count(&count)
	if count > 0 {
		return models.RoleOwner
	}
	db.Model(&models.Driver{}).Where("DriverUID = ?", uid).Count(&count)
	if count > 0 {
		return models.RoleDriver
	}
	db.Model(&models.Customer{}).Where("CustomerUID = ?", uid).Count(&count)
	if count > 0 {
		return models.RoleCustomer
	}
	return models.RoleNone
}

// IsAdmin reports whether the user is in the seeded ADMINS table.
// Admin sits outside the three-role precedence model and is probed
// separately at login.
func IsAdmin(db *gorm.DB, uid uint) bool {
	var count int64
	db.Model(&models.Admin{}).Where("AdminUID = ?", uid).Count(&count)
	return count > 0
}

// LookupUID resolves a user id from an email
func LookupUID(db *gorm.DB, email string) (uint, error) {
	var user models.User
	if err := db.Where("Email = ?", email).First(&user).Error; err != nil {
		return 0, err
	}
	return user.UID, nil
}

// AssertOwnsKitchen verifies the caller owns the given kitchen before
// any catalog mutation. Must be invoked ahead of every change to menu
// items, meal plans, or meal plan items scoped to a kitchen.
func AssertOwnsKitchen(db *gorm.DB, callerEmail string, kitchenID uint) error {
	uid, err := LookupUID(db, callerEmail)
	if err != nil {
		return ErrNotKitchenOwner
	}
	var count int64
	db.Model(&models.HomeKitchen{}).
		Where("KitchenID = ? AND OwnerUID = ?", kitchenID, uid).
		Count(&count)
	if count == 0 {
		return ErrNotKitchenOwner
	}
	return nil
}
