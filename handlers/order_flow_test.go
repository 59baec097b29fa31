package handlers_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"homechef-api/config"
	"homechef-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placeTestOrder runs the customer flow up to a placed order and
// returns the order id.
func placeTestOrder(t *testing.T, r *gin.Engine, customerToken string, kitchenID, itemID uint) uint {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/order/", customerToken, gin.H{
		"KitchenID":  kitchenID,
		"Items":      []gin.H{{"ItemID": itemID, "Quantity": 2}},
		"ETA":        "18:00:00",
		"TotalPrice": 20,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Order placed successfully", body["message"])
	orderID := uint(body["OrderID"].(float64))
	require.NotZero(t, orderID)
	return orderID
}

func TestPlaceOrderScenario(t *testing.T) {
	r := setupRouter(t)

	registerUser(t, r, models.RoleOwner, "o@x.com", "pw", "")
	ownerToken := login(t, r, "o@x.com", "pw")
	kitchenID := createKitchen(t, r, ownerToken, "K")
	itemID := createMenuItem(t, r, ownerToken, kitchenID, "Thali", 10)

	registerUser(t, r, models.RoleCustomer, "a@x.com", "pw", "42 Main Street")
	customerToken := login(t, r, "a@x.com", "pw")
	orderID := placeTestOrder(t, r, customerToken, kitchenID, itemID)

	var order models.Order
	require.NoError(t, config.DB.First(&order, orderID).Error)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Nil(t, order.DriverUID)
	assert.Equal(t, "18:00:00", order.ETA)
	assert.EqualValues(t, 20, order.TotalPrice)

	var contains []models.OrderContains
	config.DB.Where("OrderID = ?", orderID).Find(&contains)
	require.Len(t, contains, 1)
	assert.Equal(t, itemID, contains[0].ItemID)
	assert.Equal(t, 2, contains[0].Quantity)
}

func TestPlaceOrderRequiresCustomerRole(t *testing.T) {
	r := setupRouter(t)

	registerUser(t, r, models.RoleDriver, "d@x.com", "pw", "")
	token := login(t, r, "d@x.com", "pw")

	w := doJSON(r, http.MethodPost, "/order/", token, gin.H{
		"KitchenID": 1,
		"Items":     []gin.H{{"ItemID": 1, "Quantity": 1}},
		"ETA":       "18:00:00",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListOrdersValidatesStatus(t *testing.T) {
	r := setupRouter(t)

	registerUser(t, r, models.RoleDriver, "d@x.com", "pw", "")
	token := login(t, r, "d@x.com", "pw")

	w := doJSON(r, http.MethodGet, "/driver/orders?status=Pending", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, bad := range []string{"", "pending", "Shipped"} {
		w := doJSON(r, http.MethodGet, "/driver/orders?status="+bad, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "status %q", bad)
	}
}

func TestClaimOrderLifecycle(t *testing.T) {
	r := setupRouter(t)

	registerUser(t, r, models.RoleOwner, "o@x.com", "pw", "")
	ownerToken := login(t, r, "o@x.com", "pw")
	kitchenID := createKitchen(t, r, ownerToken, "K")
	itemID := createMenuItem(t, r, ownerToken, kitchenID, "Thali", 10)

	registerUser(t, r, models.RoleCustomer, "c@x.com", "pw", "")
	customerToken := login(t, r, "c@x.com", "pw")
	orderID := placeTestOrder(t, r, customerToken, kitchenID, itemID)

	registerUser(t, r, models.RoleDriver, "d1@x.com", "pw", "")
	registerUser(t, r, models.RoleDriver, "d2@x.com", "pw", "")
	driver1 := login(t, r, "d1@x.com", "pw")
	driver2 := login(t, r, "d2@x.com", "pw")

	claimPath := fmt.Sprintf("/driver/orders/%d/claim", orderID)

	w := doJSON(r, http.MethodPost, claimPath, driver1, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, config.DB.First(&order, orderID).Error)
	assert.Equal(t, models.StatusClaimed, order.Status)
	require.NotNil(t, order.DriverUID)

	// Second driver loses: the order keeps its first claimant.
	w = doJSON(r, http.MethodPost, claimPath, driver2, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	firstDriver := *order.DriverUID
	require.NoError(t, config.DB.First(&order, orderID).Error)
	assert.Equal(t, firstDriver, *order.DriverUID)

	// Claiming a missing order is a 404, not a conflict.
	w = doJSON(r, http.MethodPost, "/driver/orders/9999/claim", driver1, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompleteOrderScopedToClaimingDriver(t *testing.T) {
	r := setupRouter(t)

	registerUser(t, r, models.RoleOwner, "o@x.com", "pw", "")
	ownerToken := login(t, r, "o@x.com", "pw")
	kitchenID := createKitchen(t, r, ownerToken, "K")
	itemID := createMenuItem(t, r, ownerToken, kitchenID, "Thali", 10)

	registerUser(t, r, models.RoleCustomer, "c@x.com", "pw", "")
	customerToken := login(t, r, "c@x.com", "pw")
	orderID := placeTestOrder(t, r, customerToken, kitchenID, itemID)

	registerUser(t, r, models.RoleDriver, "d1@x.com", "pw", "")
	registerUser(t, r, models.RoleDriver, "d2@x.com", "pw", "")
	driver1 := login(t, r, "d1@x.com", "pw")
	driver2 := login(t, r, "d2@x.com", "pw")

	completePath := fmt.Sprintf("/driver/orders/%d/complete", orderID)

	// Completing before any claim fails for everyone.
	w := doJSON(r, http.MethodPost, completePath, driver1, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/driver/orders/%d/claim", orderID), driver1, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The other driver can never complete driver1's order.
	w = doJSON(r, http.MethodPost, completePath, driver2, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, completePath, driver1, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, config.DB.First(&order, orderID).Error)
	assert.Equal(t, models.StatusCompleted, order.Status)

	// Completed is terminal: a repeat complete conflicts, a fresh
	// claim conflicts too.
	w = doJSON(r, http.MethodPost, completePath, driver1, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = doJSON(r, http.MethodPost, fmt.Sprintf("/driver/orders/%d/claim", orderID), driver2, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestConcurrentClaimsHaveOneWinner(t *testing.T) {
	r := setupRouter(t)

	registerUser(t, r, models.RoleOwner, "o@x.com", "pw", "")
	ownerToken := login(t, r, "o@x.com", "pw")
	kitchenID := createKitchen(t, r, ownerToken, "K")
	itemID := createMenuItem(t, r, ownerToken, kitchenID, "Thali", 10)

	registerUser(t, r, models.RoleCustomer, "c@x.com", "pw", "")
	customerToken := login(t, r, "c@x.com", "pw")
	orderID := placeTestOrder(t, r, customerToken, kitchenID, itemID)

	const drivers = 4
	tokens := make([]string, drivers)
	for i := 0; i < drivers; i++ {
		email := fmt.Sprintf("d%d@x.com", i)
		registerUser(t, r, models.RoleDriver, email, "pw", "")
		tokens[i] = login(t, r, email, "pw")
	}

	var wg sync.WaitGroup
	codes := make([]int, drivers)
	for i := 0; i < drivers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := doJSON(r, http.MethodPost, fmt.Sprintf("/driver/orders/%d/claim", orderID), tokens[i], nil)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, code := range codes {
		switch code {
		case http.StatusOK:
			wins++
		case http.StatusConflict:
		default:
			t.Fatalf("unexpected claim response code %d", code)
		}
	}
	assert.Equal(t, 1, wins, "exactly one driver must win the claim")

	var order models.Order
	require.NoError(t, config.DB.First(&order, orderID).Error)
	assert.Equal(t, models.StatusClaimed, order.Status)
	assert.NotNil(t, order.DriverUID)
}
