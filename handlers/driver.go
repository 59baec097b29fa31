package handlers

import (
	"net/http"

	"homechef-api/authz"
	"homechef-api/config"
	"homechef-api/middleware"
	"homechef-api/models"
	"homechef-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListOrders returns every order in the requested status
func ListOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	if !models.ValidStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be: Pending, Claimed, or Completed"})
		return
	}

	var orders []models.Order
	if err := config.DB.Where("Status = ?", status).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ClaimOrder assigns a Pending order exclusively to the calling driver.
// The transition is guarded by a conditional update on the current
// status, so of two drivers racing for the same order exactly one wins
// and the other gets a Conflict.
func ClaimOrder(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	driverUID, err := authz.LookupUID(config.DB, middleware.GetEmail(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Driver not found"})
		return
	}

	var order models.Order
	if err := config.DB.Where("OrderID = ?", orderID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusClaimed, "driver"); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":          "Order has already been claimed or completed",
			"current_status": order.Status,
			"reason":         err.Error(),
		})
		return
	}

	res := config.DB.Model(&models.Order{}).
		Where("OrderID = ? AND Status = ?", orderID, models.StatusPending).
		Updates(map[string]interface{}{
			"Status":    models.StatusClaimed,
			"DriverUID": driverUID,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		// Someone else won the claim between our read and the update.
		c.JSON(http.StatusConflict, gin.H{"error": "Order has already been claimed or completed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order claimed successfully",
		"OrderID": orderID,
		"status":  models.StatusClaimed,
	})
}

// CompleteOrder transitions Claimed → Completed, scoped to the driver
// who claimed the order. A driver can never complete another driver's
// delivery.
func CompleteOrder(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	driverUID, err := authz.LookupUID(config.DB, middleware.GetEmail(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Driver not found"})
		return
	}

	var order models.Order
	if err := config.DB.Where("OrderID = ? AND DriverUID = ?", orderID, driverUID).
		First(&order).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Order is not assigned to you or doesn't exist"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCompleted, "driver"); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":          "Order must be claimed before completing",
			"current_status": order.Status,
			"reason":         err.Error(),
		})
		return
	}

	res := config.DB.Model(&models.Order{}).
		Where("OrderID = ? AND DriverUID = ? AND Status = ?", orderID, driverUID, models.StatusClaimed).
		Update("Status", models.StatusCompleted)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Order must be claimed before completing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order marked as completed",
		"OrderID": orderID,
		"status":  models.StatusCompleted,
	})
}
