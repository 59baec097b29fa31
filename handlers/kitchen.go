package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"homechef-api/authz"
	"homechef-api/config"
	"homechef-api/middleware"
	"homechef-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ── Kitchen Management ──────────────────────────────────────────────────────

type CreateKitchenRequest struct {
	Name          string   `json:"Name" binding:"required"`
	Address       string   `json:"Address" binding:"required"`
	AverageRating *float64 `json:"AverageRating"`
	Logo          string   `json:"Logo"`
}

// ListKitchens returns every kitchen, whatever its approval status
func ListKitchens(c *gin.Context) {
	var kitchens []models.HomeKitchen
	if err := config.DB.Find(&kitchens).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, kitchens)
}

// CreateKitchen lets an owner register their kitchen. Approval always
// starts out pending; only an admin can move it to approved.
func CreateKitchen(c *gin.Context) {
	email := middleware.GetEmail(c)

	var req CreateKitchenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, err := authz.LookupUID(config.DB, email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Owner not found"})
		return
	}
	if authz.ResolveRole(config.DB, uid) != models.RoleOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not an owner"})
		return
	}

	kitchen := models.HomeKitchen{
		OwnerUID:       uid,
		Name:           req.Name,
		Address:        req.Address,
		AverageRating:  req.AverageRating,
		ApprovalStatus: models.ApprovalPending,
		Logo:           req.Logo,
	}
	if err := config.DB.Create(&kitchen).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "HomeKitchen created successfully", "kitchen": kitchen})
}

// ── Catalog reads ───────────────────────────────────────────────────────────

// GetMealPlans lists a kitchen's meal plans. An empty result is a 404,
// whether the kitchen is missing or simply has no plans.
func GetMealPlans(c *gin.Context) {
	kitchenID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var plans []models.MealPlan
	config.DB.Where("KitchenID = ?", kitchenID).Find(&plans)
	if len(plans) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No meal plans found for this kitchen"})
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetMenuItems lists a kitchen's menu items; empty is a 404
func GetMenuItems(c *gin.Context) {
	kitchenID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var items []models.MenuItem
	config.DB.Where("KitchenID = ?", kitchenID).Find(&items)
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No menu items found for this kitchen"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetMealPlanItems lists the menu items composing a meal plan
func GetMealPlanItems(c *gin.Context) {
	mealPlanID, ok := pathID(c, "mealplanId")
	if !ok {
		return
	}
	var items []models.MenuItem
	config.DB.
		Select("MENUITEMS.*").
		Joins("JOIN MEALPLANITEMS ON MEALPLANITEMS.ItemID = MENUITEMS.ItemID").
		Where("MEALPLANITEMS.MealPlanID = ?", mealPlanID).
		Find(&items)
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No items found for this meal plan"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ── Meal plan management ────────────────────────────────────────────────────

type MealPlanItemRef struct {
	ItemID uint `json:"ItemID" binding:"required"`
}

type CreateMealPlanRequest struct {
	Name       string            `json:"Name" binding:"required"`
	TotalPrice float64           `json:"TotalPrice"`
	Image      string            `json:"Image"`
	Items      []MealPlanItemRef `json:"Items" binding:"required,min=1"`
}

// CreateMealPlan builds a meal plan from existing menu items of the
// same kitchen. Every item is validated before anything is written;
// the plan row and its item rows land in a single transaction.
func CreateMealPlan(c *gin.Context) {
	kitchenID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := authz.AssertOwnsKitchen(config.DB, middleware.GetEmail(c), kitchenID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	var req CreateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Fail fast on the first item outside this kitchen; no writes yet.
	for _, item := range req.Items {
		var count int64
		config.DB.Model(&models.MenuItem{}).
			Where("ItemID = ? AND KitchenID = ?", item.ItemID, kitchenID).
			Count(&count)
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Menu item %d does not exist in this kitchen", item.ItemID),
			})
			return
		}
	}

	plan := models.MealPlan{
		KitchenID:  kitchenID,
		Name:       req.Name,
		TotalPrice: req.TotalPrice,
		Image:      req.Image,
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}
		for _, item := range req.Items {
			row := models.MealPlanItem{
				KitchenID:  kitchenID,
				MealPlanID: plan.MealPlanID,
				ItemID:     item.ItemID,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Meal plan created successfully",
		"MealPlanID": plan.MealPlanID,
	})
}

// DeleteMealPlan removes a plan and its item rows. Items go first so
// no junction row is ever left pointing at a deleted plan.
func DeleteMealPlan(c *gin.Context) {
	kitchenID, ok := pathID(c, "id")
	if !ok {
		return
	}
	mealPlanID, ok := pathID(c, "mealplanId")
	if !ok {
		return
	}
	if err := authz.AssertOwnsKitchen(config.DB, middleware.GetEmail(c), kitchenID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("MealPlanID = ? AND KitchenID = ?", mealPlanID, kitchenID).
			Delete(&models.MealPlanItem{}).Error; err != nil {
			return err
		}
		return tx.Where("MealPlanID = ? AND KitchenID = ?", mealPlanID, kitchenID).
			Delete(&models.MealPlan{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal plan and its items deleted"})
}

// ── Menu item management ────────────────────────────────────────────────────

type CreateMenuItemRequest struct {
	Name        string  `json:"Name" binding:"required"`
	Description string  `json:"Description"`
	Price       float64 `json:"Price" binding:"required,gt=0"`
	Image       string  `json:"Image"`
}

// CreateMenuItem adds a new item to the kitchen's menu
func CreateMenuItem(c *gin.Context) {
	kitchenID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := authz.AssertOwnsKitchen(config.DB, middleware.GetEmail(c), kitchenID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.MenuItem{
		KitchenID:   kitchenID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item created successfully", "item": item})
}

// DeleteMenuItem removes a menu item. Deleting an item that is already
// gone still reports success.
func DeleteMenuItem(c *gin.Context) {
	kitchenID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	if err := authz.AssertOwnsKitchen(config.DB, middleware.GetEmail(c), kitchenID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Where("ItemID = ? AND KitchenID = ?", itemID, kitchenID).
		Delete(&models.MenuItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// pathID parses a numeric path parameter, answering 400 itself on bad
// input so handlers can bail with a bare return.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}
