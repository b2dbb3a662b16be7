package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/models"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/services"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/store"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/utils"
)

type EstateController struct {
	estates store.Collection
	status  *services.PropertyStatusService
}

func NewEstateController(s store.Store, status *services.PropertyStatusService) *EstateController {
	return &EstateController{
		estates: s.Estates(),
		status:  status,
	}
}

type createEstateRequest struct {
	Title      string  `json:"property_title" validate:"required"`
	Location   string  `json:"property_location" validate:"required"`
	Image      string  `json:"property_image"`
	AgentName  string  `json:"agent_name" validate:"required"`
	AgentEmail string  `json:"agent_email" validate:"required,email"`
	AgentImage string  `json:"agent_image"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
	// Legacy clients send the bounds as a single "min-max" string.
	PriceRange string `json:"price_range"`
}

func (r createEstateRequest) priceRange() (models.PriceRange, error) {
	if r.PriceRange != "" {
		return utils.ParsePriceRange(r.PriceRange)
	}
	if r.MinPrice < 0 || r.MaxPrice < r.MinPrice {
		return models.PriceRange{}, utils.ErrBadPriceRange
	}
	return models.PriceRange{Min: r.MinPrice, Max: r.MaxPrice}, nil
}

func (ec *EstateController) ListEstates(c echo.Context) error {
	ctx := c.Request().Context()

	var estates []models.Estate
	if hit, err := utils.GetCached(ctx, utils.EstateListCacheKey, &estates); err == nil && hit {
		return c.JSON(http.StatusOK, estates)
	}

	if err := ec.estates.Find(ctx, bson.M{}, &estates); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve estates"})
	}
	utils.SetCached(ctx, utils.EstateListCacheKey, estates, utils.EstateListCacheTTL)
	return c.JSON(http.StatusOK, estates)
}

func (ec *EstateController) GetEstate(c echo.Context) error {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid estate ID"})
	}
	var estate models.Estate
	if err := ec.estates.FindOne(c.Request().Context(), bson.M{"_id": oid}, &estate); err != nil {
		if err == store.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch estate"})
	}
	return c.JSON(http.StatusOK, estate)
}

func (ec *EstateController) ListByAgent(c echo.Context) error {
	agentEmail := c.QueryParam("agentEmail")
	if agentEmail == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "agentEmail is required"})
	}
	var estates []models.Estate
	if err := ec.estates.Find(c.Request().Context(), bson.M{"agent_email": agentEmail}, &estates); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}
	return c.JSON(http.StatusOK, estates)
}

func (ec *EstateController) CreateEstate(c echo.Context) error {
	var req createEstateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	priceRange, err := req.priceRange()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	estate := models.Estate{
		Title:              req.Title,
		Location:           req.Location,
		Image:              req.Image,
		AgentName:          req.AgentName,
		AgentEmail:         req.AgentEmail,
		AgentImage:         req.AgentImage,
		PriceRange:         priceRange,
		VerificationStatus: models.VerificationPending,
		SaleStatus:         models.SaleListed,
		CreatedAt:          time.Now(),
	}
	id, err := ec.estates.InsertOne(c.Request().Context(), estate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add property"})
	}
	ec.invalidateListCache(c.Request().Context())
	return c.JSON(http.StatusCreated, map[string]string{
		"message":    "Property added successfully",
		"propertyId": id.Hex(),
	})
}

type updateEstateRequest struct {
	Title      string  `json:"property_title"`
	Location   string  `json:"property_location"`
	Image      string  `json:"property_image"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
	PriceRange string  `json:"price_range"`
}

func (ec *EstateController) UpdateEstate(c echo.Context) error {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid estate ID"})
	}
	var req updateEstateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	updateDoc := bson.M{"updatedAt": time.Now()}
	if req.Title != "" {
		updateDoc["property_title"] = req.Title
	}
	if req.Location != "" {
		updateDoc["property_location"] = req.Location
	}
	if req.Image != "" {
		updateDoc["property_image"] = req.Image
	}
	if req.PriceRange != "" || req.MaxPrice > 0 {
		priceRange, err := (createEstateRequest{
			MinPrice:   req.MinPrice,
			MaxPrice:   req.MaxPrice,
			PriceRange: req.PriceRange,
		}).priceRange()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		updateDoc["price_range"] = priceRange
	}

	matched, err := ec.estates.UpdateOne(c.Request().Context(), bson.M{"_id": oid}, bson.M{"$set": updateDoc})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update property"})
	}
	if matched == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}
	ec.invalidateListCache(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{"message": "Property updated successfully"})
}

func (ec *EstateController) DeleteEstate(c echo.Context) error {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid estate ID"})
	}
	deleted, err := ec.estates.DeleteOne(c.Request().Context(), bson.M{"_id": oid})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete property"})
	}
	if deleted == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}
	ec.invalidateListCache(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{"message": "Property deleted successfully"})
}

func (ec *EstateController) VerifyEstate(c echo.Context) error {
	return ec.setVerification(c, models.VerificationVerified, "Property verified successfully")
}

func (ec *EstateController) RejectEstate(c echo.Context) error {
	return ec.setVerification(c, models.VerificationRejected, "Property rejected successfully")
}

func (ec *EstateController) setVerification(c echo.Context, status, okMessage string) error {
	err := ec.status.SetVerification(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return serviceError(c, err, "Failed to update property status")
	}
	ec.invalidateListCache(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{"message": okMessage})
}

func (ec *EstateController) invalidateListCache(ctx context.Context) {
	utils.InvalidateCache(ctx, utils.EstateListCacheKey)
}
