package api

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/renewals/backend/internal/middleware"
	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/service"
	"github.com/pageza/renewals/backend/internal/types"
)

type CustomerHandler struct {
	customers service.ICustomerService
}

func NewCustomerHandler(customers service.ICustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) RegisterRoutes(router *gin.RouterGroup) {
	customers := router.Group("/customers")
	{
		customers.GET("", h.ListCustomers)
		customers.POST("", h.CreateCustomer)
		customers.GET("/:id", h.GetCustomer)
		customers.PATCH("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
		customers.GET("/:id/attachment", h.DownloadAttachment)
		customers.GET("/:id/attachment/url", h.AttachmentURL)
	}
}

// ListCustomers supports ?software=, ?churned=true|false and ?search=
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	filters := &models.CustomerFilters{
		Software: c.Query("software"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("churned"); raw != "" {
		churned, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: "churned must be true or false"})
			return
		}
		filters.Churned = &churned
	}

	customers, err := h.customers.ListCustomers(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req types.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customers.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	customer, err := h.customers.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req types.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customers.UpdateCustomer(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.customers.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadAttachment streams the decoded customer file
func (h *CustomerHandler) DownloadAttachment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	file, err := h.customers.GetAttachment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := file.Filename
	if filename == "" {
		filename = "attachment"
	}
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, file.MimeType, file.Content)
}

// AttachmentURL returns a short-lived link to the archived copy
func (h *CustomerHandler) AttachmentURL(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	url, expiresAt, err := h.customers.AttachmentURL(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.AttachmentURLResponse{URL: url, ExpiresAt: expiresAt})
}
