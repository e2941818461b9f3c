package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/renewals/backend/internal/service"
	"github.com/pageza/renewals/backend/internal/types"
)

type SubscriptionHandler struct {
	subscriptions service.ISubscriptionService
}

func NewSubscriptionHandler(subscriptions service.ISubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

func (h *SubscriptionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/subscriptions", h.ListSubscriptions)
	router.GET("/customers/:id/subscriptions", h.ListCustomerSubscriptions)
	router.POST("/customers/:id/subscriptions", h.CreateSubscription)
}

// ListSubscriptions feeds the renewal calendar
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	subscriptions, err := h.subscriptions.ListSubscriptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subscriptions)
}

func (h *SubscriptionHandler) ListCustomerSubscriptions(c *gin.Context) {
	customerID, ok := paramID(c)
	if !ok {
		return
	}

	subscriptions, err := h.subscriptions.ListCustomerSubscriptions(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subscriptions)
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	customerID, ok := paramID(c)
	if !ok {
		return
	}
	var req types.CreateSubscriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	subscription, err := h.subscriptions.CreateSubscription(c.Request.Context(), customerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subscription)
}
