package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/models"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/services"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/store"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/utils"
)

type OfferController struct {
	svc             *services.OfferService
	offers          store.Collection
	invalidateCache func(context.Context)
}

func NewOfferController(s store.Store, svc *services.OfferService) *OfferController {
	return &OfferController{
		svc:    svc,
		offers: s.Offers(),
		invalidateCache: func(ctx context.Context) {
			utils.InvalidateCache(ctx, utils.EstateListCacheKey)
		},
	}
}

func (oc *OfferController) SubmitOffer(c echo.Context) error {
	var req services.SubmitOfferRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	offer, err := oc.svc.Submit(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err, "Failed to submit offer")
	}
	return c.JSON(http.StatusCreated, offer)
}

func (oc *OfferController) ListOffers(c echo.Context) error {
	var offers []models.Offer
	if err := oc.offers.Find(c.Request().Context(), bson.M{}, &offers); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve offers"})
	}
	return c.JSON(http.StatusOK, offers)
}

func (oc *OfferController) ListOffersByBuyer(c echo.Context) error {
	var offers []models.Offer
	err := oc.offers.Find(c.Request().Context(), bson.M{"buyer_email": c.Param("email")}, &offers)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch offers"})
	}
	return c.JSON(http.StatusOK, offers)
}

func (oc *OfferController) DecideOffer(c echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := oc.svc.Decide(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return serviceError(c, err, "Failed to update offer status")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Offer status updated"})
}

func (oc *OfferController) FinalizePurchase(c echo.Context) error {
	var req struct {
		TransactionID string `json:"transactionId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.TransactionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "transactionId is required"})
	}
	if err := oc.svc.FinalizePurchase(c.Request().Context(), c.Param("estateId"), req.TransactionID); err != nil {
		return serviceError(c, err, "Failed to finalize purchase")
	}
	// The estate's sale status changed, so the cached public list is stale.
	oc.invalidateCache(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{"message": "Purchase finalized"})
}

// SoldByAgent lists the bought offers carrying the given agent's name, which
// is the denormalized snapshot taken at submission time.
func (oc *OfferController) SoldByAgent(c echo.Context) error {
	var offers []models.Offer
	err := oc.offers.Find(c.Request().Context(), bson.M{
		"agent_name": c.Param("agentName"),
		"status":     models.OfferBought,
	}, &offers)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch sold properties"})
	}
	if len(offers) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No sold properties found for this agent"})
	}
	return c.JSON(http.StatusOK, offers)
}
