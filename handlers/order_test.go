package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"dinedash-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeOrder(t *testing.T, env *testEnv, token, restaurantID, paymentMethod string) models.Order {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"restaurant_id": restaurantID,
		"items": []gin.H{
			{"item_id": "item-1", "name": "Paneer Tikka", "price": 199.0, "quantity": 2},
		},
		"delivery_address": "42 Curry Lane",
		"delivery_phone":   "+919876543210",
		"payment_method":   paymentMethod,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var order models.Order
	decode(t, w, &order)
	require.NotEmpty(t, order.OrderID)
	return order
}

func TestCreateOrderCOD(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")
	restaurant := env.createRestaurant(t, ownerToken, "Spice Hub", 20)
	customerToken := env.signup(t, "customer", "cust@example.com", "Cust")

	order := placeOrder(t, env, customerToken, restaurant.RestaurantID, "COD")

	assert.Equal(t, 398.0, order.TotalAmount)
	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.Equal(t, "paid", order.PaymentStatus)
	require.NotNil(t, order.EstimatedDeliveryTime)
	assert.WithinDuration(t, time.Now().Add(45*time.Minute), *order.EstimatedDeliveryTime, 2*time.Minute)

	// Placement notifies by email and SMS.
	assert.Equal(t, 1, env.notifier.emailCount())
	assert.Len(t, env.notifier.sms, 1)
}

func TestCreateOrderOnlineStartsPending(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")
	restaurant := env.createRestaurant(t, ownerToken, "Spice Hub", 20)
	customerToken := env.signup(t, "customer", "cust@example.com", "Cust")

	order := placeOrder(t, env, customerToken, restaurant.RestaurantID, "ONLINE")
	assert.Equal(t, "pending", order.PaymentStatus)
}

func TestCreateOrderUnknownRestaurant(t *testing.T) {
	env := newTestEnv(t)
	customerToken := env.signup(t, "customer", "cust@example.com", "Cust")

	w := env.do(t, http.MethodPost, "/api/orders", customerToken, gin.H{
		"restaurant_id": "nope",
		"items": []gin.H{
			{"item_id": "item-1", "name": "Paneer Tikka", "price": 199.0, "quantity": 1},
		},
		"delivery_address": "42 Curry Lane",
		"delivery_phone":   "+919876543210",
		"payment_method":   "COD",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")
	restaurant := env.createRestaurant(t, ownerToken, "Spice Hub", 20)
	customerToken := env.signup(t, "customer", "cust@example.com", "Cust")
	order := placeOrder(t, env, customerToken, restaurant.RestaurantID, "COD")

	w := env.do(t, http.MethodPut, "/api/orders/"+order.OrderID+"/status", ownerToken, gin.H{
		"status": "ACCEPTED",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Order            models.Order         `json:"order"`
		StatusTimestamps map[string]time.Time `json:"status_timestamps"`
	}
	decode(t, w, &resp)
	assert.Equal(t, models.StatusAccepted, resp.Order.Status)
	assert.Contains(t, resp.StatusTimestamps, "ACCEPTED")

	// The estimate is recomputed for the new status: 35 minutes from now.
	require.NotNil(t, resp.Order.EstimatedDeliveryTime)
	assert.WithinDuration(t, time.Now().Add(35*time.Minute), *resp.Order.EstimatedDeliveryTime, 2*time.Minute)
}

func TestUpdateOrderStatusInvalidTransition(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")
	restaurant := env.createRestaurant(t, ownerToken, "Spice Hub", 20)
	customerToken := env.signup(t, "customer", "cust@example.com", "Cust")
	order := placeOrder(t, env, customerToken, restaurant.RestaurantID, "COD")

	w := env.do(t, http.MethodPut, "/api/orders/"+order.OrderID+"/status", ownerToken, gin.H{
		"status": "DELIVERED",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error           string   `json:"error"`
		CurrentStatus   string   `json:"current_status"`
		ValidNextStates []string `json:"valid_next_states"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "PLACED", resp.CurrentStatus)
	assert.ElementsMatch(t, []string{"ACCEPTED", "CANCELLED"}, resp.ValidNextStates)
}

func TestUpdateOrderStatusUnknownValue(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")
	restaurant := env.createRestaurant(t, ownerToken, "Spice Hub", 20)
	customerToken := env.signup(t, "customer", "cust@example.com", "Cust")
	order := placeOrder(t, env, customerToken, restaurant.RestaurantID, "COD")

	w := env.do(t, http.MethodPut, "/api/orders/"+order.OrderID+"/status", ownerToken, gin.H{
		"status": "TELEPORTED",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatusForeignRestaurant(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")
	restaurant := env.createRestaurant(t, ownerToken, "Spice Hub", 20)
	otherOwner := env.signup(t, "restaurant", "other@example.com", "Other")
	customerToken := env.signup(t, "customer", "cust@example.com", "Cust")
	order := placeOrder(t, env, customerToken, restaurant.RestaurantID, "COD")

	w := env.do(t, http.MethodPut, "/api/orders/"+order.OrderID+"/status", otherOwner, gin.H{
		"status": "ACCEPTED",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCustomerCancelOrder(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")
	restaurant := env.createRestaurant(t, ownerToken, "Spice Hub", 20)
	customerToken := env.signup(t, "customer", "cust@example.com", "Cust")
	order := placeOrder(t, env, customerToken, restaurant.RestaurantID, "COD")

	w := env.do(t, http.MethodPut, "/api/orders/"+order.OrderID+"/cancel", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Order
	require.NoError(t, env.db.Where("order_id = ?", order.OrderID).First(&stored).Error)
	assert.Equal(t, models.StatusCancelled, stored.Status)

	var history []models.OrderStatusHistory
	require.NoError(t, env.db.Where("order_id = ?", order.OrderID).Find(&history).Error)
	require.Len(t, history, 2)
	assert.Equal(t, models.StatusCancelled, history[1].ToStatus)
}

func TestCustomerCancelOrderTooLate(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")
	restaurant := env.createRestaurant(t, ownerToken, "Spice Hub", 20)
	customerToken := env.signup(t, "customer", "cust@example.com", "Cust")
	order := placeOrder(t, env, customerToken, restaurant.RestaurantID, "COD")

	for _, status := range []string{"ACCEPTED", "PREPARING"} {
		w := env.do(t, http.MethodPut, "/api/orders/"+order.OrderID+"/status", ownerToken, gin.H{
			"status": status,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// Once the kitchen is preparing, the customer can no longer cancel.
	w := env.do(t, http.MethodPut, "/api/orders/"+order.OrderID+"/cancel", customerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	otherToken := env.signup(t, "customer", "other@example.com", "Other")
	w = env.do(t, http.MethodPut, "/api/orders/"+order.OrderID+"/cancel", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetOrderOwnership(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")
	restaurant := env.createRestaurant(t, ownerToken, "Spice Hub", 20)
	customerToken := env.signup(t, "customer", "cust@example.com", "Cust")
	otherToken := env.signup(t, "customer", "other@example.com", "Other")
	order := placeOrder(t, env, customerToken, restaurant.RestaurantID, "COD")

	w := env.do(t, http.MethodGet, "/api/orders/"+order.OrderID, customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Order            models.Order         `json:"order"`
		StatusTimestamps map[string]time.Time `json:"status_timestamps"`
	}
	decode(t, w, &resp)
	assert.Equal(t, order.OrderID, resp.Order.OrderID)
	assert.Contains(t, resp.StatusTimestamps, "PLACED")

	w = env.do(t, http.MethodGet, "/api/orders/"+order.OrderID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetMyOrders(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")
	restaurant := env.createRestaurant(t, ownerToken, "Spice Hub", 20)
	customerToken := env.signup(t, "customer", "cust@example.com", "Cust")

	placeOrder(t, env, customerToken, restaurant.RestaurantID, "COD")
	placeOrder(t, env, customerToken, restaurant.RestaurantID, "COD")

	w := env.do(t, http.MethodGet, "/api/orders", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	decode(t, w, &orders)
	assert.Len(t, orders, 2)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Paneer Tikka", orders[0].Items[0].Name)
}

func TestGetRestaurantOrders(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")
	restaurant := env.createRestaurant(t, ownerToken, "Spice Hub", 20)
	customerToken := env.signup(t, "customer", "cust@example.com", "Cust")
	placeOrder(t, env, customerToken, restaurant.RestaurantID, "COD")

	w := env.do(t, http.MethodGet, "/api/restaurant/orders", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	decode(t, w, &orders)
	assert.Len(t, orders, 1)
}
