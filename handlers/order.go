package handlers

import (
	"net/http"

	"homechef-api/authz"
	"homechef-api/config"
	"homechef-api/middleware"
	"homechef-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderItemRequest struct {
	ItemID   uint `json:"ItemID" binding:"required"`
	Quantity int  `json:"Quantity" binding:"required,min=1"`
}

type OrderRequest struct {
	KitchenID  uint               `json:"KitchenID" binding:"required"`
	Items      []OrderItemRequest `json:"Items" binding:"required,min=1"`
	ETA        string             `json:"ETA" binding:"required"` // HH:MM:SS
	TotalPrice float64            `json:"TotalPrice"`
}

// PlaceOrder creates a new order for the calling customer. Status is
// always server-assigned Pending; the order row and its item rows are
// written in one transaction and the generated id comes straight from
// the insert.
func PlaceOrder(c *gin.Context) {
	email := middleware.GetEmail(c)

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerUID, err := authz.LookupUID(config.DB, email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
		return
	}

	order := models.Order{
		TotalPrice:  req.TotalPrice,
		ETA:         req.ETA,
		CustomerUID: customerUID,
		KitchenID:   req.KitchenID,
		Status:      models.StatusPending,
	}
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, item := range req.Items {
			row := models.OrderContains{
				OrderID:   order.OrderID,
				KitchenID: req.KitchenID,
				ItemID:    item.ItemID,
				Quantity:  item.Quantity,
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
		"message": "Order placed successfully",
		"OrderID": order.OrderID,
	})
}
