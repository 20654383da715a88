package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tabletoprpg/internal/service"
)

// ItemHandler handles item catalog endpoints.
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// CreateItemRequest represents an item creation request.
type CreateItemRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=1000"`
	Weight      decimal.Decimal `json:"weight"`
	Price       int             `json:"price" validate:"min=0"`
}

// UpdateItemRequest represents a partial item update.
type UpdateItemRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	Price       *int             `json:"price,omitempty"`
}

// Create godoc
// @Summary Create a catalog item
// @Description ADMIN only.
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateItemRequest true "Item data"
// @Success 201 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.itemService.CreateItem(c.Request().Context(), service.ItemCreate{
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
		Price:       req.Price,
	}, userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// Get godoc
// @Summary Get an item by id
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} model.Item
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.itemService.GetItem(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Search godoc
// @Summary Search items by name
// @Description An empty query lists the whole catalog.
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name fragment"
// @Success 200 {array} model.Item
// @Router /items [get]
func (h *ItemHandler) Search(c echo.Context) error {
	items, err := h.itemService.Search(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Update godoc
// @Summary Update a catalog item
// @Description ADMIN only.
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body UpdateItemRequest true "Fields to update"
// @Success 200 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [patch]
func (h *ItemHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	item, err := h.itemService.UpdateItem(c.Request().Context(), id, service.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
		Price:       req.Price,
	}, userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a catalog item
// @Description ADMIN or GAME_MASTER. Refused while any character inventory still references the item.
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.itemService.DeleteItem(c.Request().Context(), id, userID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
