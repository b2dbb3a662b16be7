package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/services"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

type createIntentRequest struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Email  string `json:"email" validate:"required,email"`
}

func (pc *PaymentController) CreatePaymentIntent(c echo.Context) error {
	var req createIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	clientSecret, err := pc.payments.CreateIntent(c.Request().Context(), req.Amount, req.Email)
	if err != nil {
		return serviceError(c, err, "Failed to create payment intent")
	}
	return c.JSON(http.StatusOK, map[string]string{"clientSecret": clientSecret})
}
