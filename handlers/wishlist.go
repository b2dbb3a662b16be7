package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/models"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/store"
)

type WishlistController struct {
	wishlist store.Collection
}

func NewWishlistController(s store.Store) *WishlistController {
	return &WishlistController{wishlist: s.Wishlist()}
}

// AddToWishlist rejects duplicate (email, estateId) pairs here since the
// store has no unique index on the pair.
func (wc *WishlistController) AddToWishlist(c echo.Context) error {
	var item models.WishlistItem
	if err := c.Bind(&item); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if item.Email == "" || item.EstateID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email and estateId are required"})
	}

	count, err := wc.wishlist.CountDocuments(c.Request().Context(), bson.M{
		"email":    item.Email,
		"estateId": item.EstateID,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check wishlist"})
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Property already in wishlist"})
	}

	if _, err := wc.wishlist.InsertOne(c.Request().Context(), item); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add property to wishlist"})
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Property added to wishlist"})
}

func (wc *WishlistController) ListWishlist(c echo.Context) error {
	var items []models.WishlistItem
	err := wc.wishlist.Find(c.Request().Context(), bson.M{"email": c.Param("email")}, &items)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wishlist"})
	}
	return c.JSON(http.StatusOK, items)
}

func (wc *WishlistController) RemoveFromWishlist(c echo.Context) error {
	email := c.QueryParam("email")
	deleted, err := wc.wishlist.DeleteOne(c.Request().Context(), bson.M{
		"email":    email,
		"estateId": c.Param("estateId"),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to remove property from wishlist"})
	}
	if deleted == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found in wishlist"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Property removed from wishlist"})
}
