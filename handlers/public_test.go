package handlers_test

import (
	"net/http"
	"testing"

	"dinedash-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addMenuItem(t *testing.T, env *testEnv, ownerToken, restaurantID, categoryID, name string, price float64, isVeg bool) models.MenuItem {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/restaurants/"+restaurantID+"/items", ownerToken, gin.H{
		"category_id": categoryID,
		"name":        name,
		"price":       price,
		"is_veg":      isVeg,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var item models.MenuItem
	decode(t, w, &item)
	require.NotEmpty(t, item.ItemID)
	return item
}

func TestListRestaurantsFilters(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")

	env.createRestaurant(t, ownerToken, "Spice Hub", 20)
	w := env.do(t, http.MethodPost, "/api/restaurants", ownerToken, gin.H{
		"name":         "Pasta Corner",
		"address":      "2 Noodle Road",
		"cuisine":      "Italian",
		"service_type": "delivery",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/restaurants", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Restaurant
	decode(t, w, &listed)
	assert.Len(t, listed, 2)

	w = env.do(t, http.MethodGet, "/api/restaurants?cuisine=Italian", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Pasta Corner", listed[0].Name)

	w = env.do(t, http.MethodGet, "/api/restaurants?search=Spice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Spice Hub", listed[0].Name)

	// service_type=reservations matches "reservations" and "both".
	w = env.do(t, http.MethodGet, "/api/restaurants?service_type=reservations", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Spice Hub", listed[0].Name)
}

func TestMenuManagementAndBrowsing(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")
	restaurant := env.createRestaurant(t, ownerToken, "Spice Hub", 20)

	w := env.do(t, http.MethodPost, "/api/restaurants/"+restaurant.RestaurantID+"/categories", ownerToken, gin.H{
		"name":          "Starters",
		"display_order": 1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var category models.MenuCategory
	decode(t, w, &category)

	addMenuItem(t, env, ownerToken, restaurant.RestaurantID, category.CategoryID, "Paneer Tikka", 199.0, true)
	chicken := addMenuItem(t, env, ownerToken, restaurant.RestaurantID, category.CategoryID, "Chicken 65", 249.0, false)

	w = env.do(t, http.MethodGet, "/api/restaurants/"+restaurant.RestaurantID+"/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var menu []struct {
		Name  string            `json:"name"`
		Items []models.MenuItem `json:"items"`
	}
	decode(t, w, &menu)
	require.Len(t, menu, 1)
	assert.Equal(t, "Starters", menu[0].Name)
	assert.Len(t, menu[0].Items, 2)

	w = env.do(t, http.MethodGet, "/api/restaurants/"+restaurant.RestaurantID+"/menu?diet=veg", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &menu)
	require.Len(t, menu, 1)
	require.Len(t, menu[0].Items, 1)
	assert.Equal(t, "Paneer Tikka", menu[0].Items[0].Name)

	// Update and delete round out the item lifecycle.
	w = env.do(t, http.MethodPut, "/api/restaurants/"+restaurant.RestaurantID+"/items/"+chicken.ItemID, ownerToken, gin.H{
		"category_id":  category.CategoryID,
		"name":         "Chicken 65",
		"price":        269.0,
		"is_available": false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.MenuItem
	decode(t, w, &updated)
	assert.Equal(t, 269.0, updated.Price)

	w = env.do(t, http.MethodDelete, "/api/restaurants/"+restaurant.RestaurantID+"/items/"+chicken.ItemID, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/restaurants/"+restaurant.RestaurantID+"/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &menu)
	require.Len(t, menu, 1)
	assert.Len(t, menu[0].Items, 1)
}

func TestMenuOwnershipEnforced(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")
	restaurant := env.createRestaurant(t, ownerToken, "Spice Hub", 20)
	intruderToken := env.signup(t, "restaurant", "intruder@example.com", "Intruder")

	w := env.do(t, http.MethodPost, "/api/restaurants/"+restaurant.RestaurantID+"/categories", intruderToken, gin.H{
		"name": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPut, "/api/restaurants/"+restaurant.RestaurantID, intruderToken, gin.H{
		"name":         "Taken Over",
		"address":      "Elsewhere",
		"service_type": "delivery",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRestaurantDefaultsCapacity(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.signup(t, "restaurant", "owner@example.com", "Owner")
	restaurant := env.createRestaurant(t, ownerToken, "Spice Hub", 20)
	customerToken := env.signup(t, "customer", "cust@example.com", "Cust")

	// An update that omits the capacity fields must not zero them out.
	w := env.do(t, http.MethodPut, "/api/restaurants/"+restaurant.RestaurantID, ownerToken, gin.H{
		"name":         "Spice Hub Renamed",
		"address":      "1 Test Street",
		"service_type": "both",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/restaurants/"+restaurant.RestaurantID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stored models.Restaurant
	decode(t, w, &stored)
	assert.Equal(t, "Spice Hub Renamed", stored.Name)
	assert.Equal(t, 20, stored.SeatCapacity)
	assert.Equal(t, 60, stored.SlotLengthMinutes)

	// Booking still works after the update.
	require.NotNil(t, bookTable(t, env, customerToken, restaurant.RestaurantID, 4))
}

func TestGetRestaurantNotFound(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/restaurants/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
