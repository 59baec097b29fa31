package handlers

import (
	"errors"
	"net/http"
	"strings"

	"homechef-api/authz"
	"homechef-api/config"
	"homechef-api/middleware"
	"homechef-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	FirstName string          `json:"FirstName" binding:"required"`
	LastName  string          `json:"LastName" binding:"required"`
	Email     string          `json:"Email" binding:"required,email"`
	PhoneNo   string          `json:"PhoneNo"`
	Password  string          `json:"Password" binding:"required"`
	Role      models.UserRole `json:"Role" binding:"required"`
	Address   string          `json:"Address"` // customers only
}

// Register creates a new user account together with its role
// membership row (and address, for customers) in one transaction.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.RegisterableRoles[req.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: customer, driver, or owner"})
		return
	}

	var existing models.User
	if result := config.DB.Where("Email = ?", req.Email).First(&existing); result.Error == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNo:        req.PhoneNo,
		HashedPassword: string(hash),
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		switch req.Role {
		case models.RoleCustomer:
			if err := tx.Create(&models.Customer{CustomerUID: user.UID}).Error; err != nil {
				return err
			}
			if req.Address != "" {
				if err := tx.Create(&models.CustomerAddress{CustomerUID: user.UID, Address: req.Address}).Error; err != nil {
					return err
				}
			}
		case models.RoleDriver:
			if err := tx.Create(&models.Driver{DriverUID: user.UID}).Error; err != nil {
				return err
			}
		case models.RoleOwner:
			if err := tx.Create(&models.KitchenOwner{OwnerUID: user.UID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Two registrations racing on the same email slip past the
		// existence check above; the unique index fires here instead.
		if isDuplicateKey(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user creation success",
		"user": gin.H{
			"UID":       user.UID,
			"FirstName": user.FirstName,
			"LastName":  user.LastName,
			"Email":     user.Email,
			"Role":      req.Role,
		},
	})
}

// isDuplicateKey reports whether a store error came from a unique
// constraint violation
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Login exchanges form-encoded username/password for a bearer token.
// The role baked into the token is resolved from the membership tables
// at this point and trusted until expiry.
func Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	var user models.User
	if err := config.DB.Where("Email = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	role := models.RoleNone
	if authz.IsAdmin(config.DB, user.UID) {
		role = models.RoleAdmin
	} else {
		role = authz.ResolveRole(config.DB, user.UID)
	}
	if role == models.RoleNone {
		// Absent from every membership table: reject rather than issue
		// a role-less token.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not resolve a role for this account"})
		return
	}

	token, err := middleware.GenerateToken(&user, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}
