package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/models"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/store"
)

type ReviewController struct {
	reviews store.Collection
}

func NewReviewController(s store.Store) *ReviewController {
	return &ReviewController{reviews: s.Reviews()}
}

func (rc *ReviewController) CreateReview(c echo.Context) error {
	var review models.Review
	if err := c.Bind(&review); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if review.EstateID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Estate ID is required"})
	}

	review.Date = time.Now()
	id, err := rc.reviews.InsertOne(c.Request().Context(), review)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add review"})
	}
	review.ID = id
	return c.JSON(http.StatusCreated, review)
}

func (rc *ReviewController) ListReviews(c echo.Context) error {
	var reviews []models.Review
	if err := rc.reviews.Find(c.Request().Context(), bson.M{}, &reviews); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve reviews"})
	}
	return c.JSON(http.StatusOK, reviews)
}

func (rc *ReviewController) ListByEstate(c echo.Context) error {
	var reviews []models.Review
	err := rc.reviews.Find(c.Request().Context(), bson.M{"estateId": c.Param("estateId")}, &reviews)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve reviews"})
	}
	return c.JSON(http.StatusOK, reviews)
}

func (rc *ReviewController) ListByAuthor(c echo.Context) error {
	var reviews []models.Review
	err := rc.reviews.Find(c.Request().Context(), bson.M{"userEmail": c.Param("email")}, &reviews)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch user reviews"})
	}
	return c.JSON(http.StatusOK, reviews)
}

func (rc *ReviewController) DeleteReview(c echo.Context) error {
	oid, err := primitive.ObjectIDFromHex(c.Param("reviewId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid review ID"})
	}
	deleted, err := rc.reviews.DeleteOne(c.Request().Context(), bson.M{"_id": oid})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete review"})
	}
	if deleted == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Review not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}
