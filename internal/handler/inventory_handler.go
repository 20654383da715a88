package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tabletoprpg/internal/service"
)

// InventoryHandler handles character inventory endpoints.
type InventoryHandler struct {
	inventoryService service.InventoryService
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// GiveItemRequest represents a GM granting items to a character.
type GiveItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// SetQuantityRequest represents a GM overwriting an entry's quantity.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// ConsumeItemRequest represents a partial removal; when the body is
// omitted the whole entry is removed instead.
type ConsumeItemRequest struct {
	Quantity int `json:"quantity"`
}

// ChangeQuantityRequest represents a signed quantity adjustment.
type ChangeQuantityRequest struct {
	Delta int `json:"delta"`
}

// Get godoc
// @Summary List a character's inventory
// @Description Visible to the character's owner and the campaign GM.
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Character ID"
// @Success 200 {array} model.InventoryEntry
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /characters/{id}/inventory [get]
func (h *InventoryHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	entries, err := h.inventoryService.GetInventory(c.Request().Context(), characterID, userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// Give godoc
// @Summary Give items to a character
// @Description GM only. Adds to the existing stack or creates a new entry.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Character ID"
// @Param itemId path string true "Item ID"
// @Param request body GiveItemRequest true "Quantity to give"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /characters/{id}/inventory/{itemId} [post]
func (h *InventoryHandler) Give(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return err
	}
	var req GiveItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.inventoryService.GiveItem(c.Request().Context(), characterID, itemID, req.Quantity, userID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Set godoc
// @Summary Set an inventory entry's quantity
// @Description GM only. Zero deletes the entry; the operation is idempotent.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Character ID"
// @Param itemId path string true "Item ID"
// @Param request body SetQuantityRequest true "Absolute quantity"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /characters/{id}/inventory/{itemId} [patch]
func (h *InventoryHandler) Set(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return err
	}
	var req SetQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.inventoryService.SetQuantity(c.Request().Context(), characterID, itemID, *req.Quantity, userID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Remove godoc
// @Summary Consume or remove items
// @Description With a quantity in the body the owner consumes that many; without one the owner or GM removes the whole entry.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Character ID"
// @Param itemId path string true "Item ID"
// @Param request body ConsumeItemRequest false "Quantity to consume; omit to remove the entry"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /characters/{id}/inventory/{itemId} [delete]
func (h *InventoryHandler) Remove(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return err
	}

	var req ConsumeItemRequest
	if err := c.Bind(&req); err != nil || req.Quantity == 0 {
		// no usable body, treat as a full removal
		if err := h.inventoryService.RemoveItem(c.Request().Context(), characterID, itemID, userID); err != nil {
			return domainError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}

	if err := h.inventoryService.ConsumeItem(c.Request().Context(), characterID, itemID, req.Quantity, userID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Change godoc
// @Summary Adjust an entry's quantity by a signed delta
// @Description Positive deltas follow the GM give rules, negative deltas the owner consume rules. Zero is rejected.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Character ID"
// @Param itemId path string true "Item ID"
// @Param request body ChangeQuantityRequest true "Signed quantity delta"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /characters/{id}/inventory/{itemId}/change [post]
func (h *InventoryHandler) Change(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	characterID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return err
	}
	var req ChangeQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.inventoryService.ChangeQuantity(c.Request().Context(), characterID, itemID, req.Delta, userID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
