package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tabletoprpg/internal/model"
	"tabletoprpg/internal/service"
)

// CharacterHandler handles character endpoints.
type CharacterHandler struct {
	characterService service.CharacterService
}

// NewCharacterHandler creates a new character handler.
func NewCharacterHandler(characterService service.CharacterService) *CharacterHandler {
	return &CharacterHandler{characterService: characterService}
}

// CreateCharacterRequest represents a character creation request. OwnerID
// is optional; when omitted the character belongs to the requester.
type CreateCharacterRequest struct {
	Name       string           `json:"name" validate:"required,max=100"`
	Class      string           `json:"class" validate:"required,max=50"`
	Race       string           `json:"race" validate:"required,max=50"`
	Level      int              `json:"level"`
	HP         int              `json:"hp"`
	MaxHP      int              `json:"maxHp"`
	Attributes model.Attributes `json:"attributes"`
	OwnerID    *uuid.UUID       `json:"ownerId,omitempty"`
}

// UpdateCharacterRequest represents a partial character update.
type UpdateCharacterRequest struct {
	Name       *string           `json:"name,omitempty"`
	Class      *string           `json:"class,omitempty"`
	Race       *string           `json:"race,omitempty"`
	Level      *int              `json:"level,omitempty"`
	MaxHP      *int              `json:"maxHp,omitempty"`
	Attributes *model.Attributes `json:"attributes,omitempty"`
}

// PatchHPRequest represents an HP adjustment. Set wins over Delta, which
// wins over the hp query parameter.
type PatchHPRequest struct {
	Set   *int `json:"set,omitempty"`
	Delta *int `json:"delta,omitempty"`
}

// Create godoc
// @Summary Create a character in a campaign
// @Description Players create for themselves; the GM may create for any member. One character per player per campaign.
// @Tags characters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body CreateCharacterRequest true "Character data"
// @Success 201 {object} model.Character
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /campaigns/{id}/characters [post]
func (h *CharacterHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	campaignID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req CreateCharacterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	character, err := h.characterService.CreateCharacter(c.Request().Context(), campaignID, service.CharacterCreate{
		Name:       req.Name,
		Class:      req.Class,
		Race:       req.Race,
		Level:      req.Level,
		HP:         req.HP,
		MaxHP:      req.MaxHP,
		Attributes: req.Attributes,
		OwnerID:    req.OwnerID,
	}, userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, character)
}

// Get godoc
// @Summary Get a character by id
// @Tags characters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Character ID"
// @Success 200 {object} model.Character
// @Failure 404 {object} errors.ErrorResponse
// @Router /characters/{id} [get]
func (h *CharacterHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	character, err := h.characterService.GetByID(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, character)
}

// Update godoc
// @Summary Update a character
// @Description Owner or campaign GM only. Attributes replace the full stat block when present.
// @Tags characters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Character ID"
// @Param request body UpdateCharacterRequest true "Fields to update"
// @Success 200 {object} model.Character
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /characters/{id} [patch]
func (h *CharacterHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateCharacterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	character, err := h.characterService.UpdateCharacter(c.Request().Context(), id, service.CharacterPatch{
		Name:       req.Name,
		Class:      req.Class,
		Race:       req.Race,
		Level:      req.Level,
		MaxHP:      req.MaxHP,
		Attributes: req.Attributes,
	}, userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, character)
}

// PatchHP godoc
// @Summary Adjust a character's hit points
// @Description Accepts {"set": n} or {"delta": n} in the body, or a bare ?hp=n query parameter. Set wins over delta, delta over the parameter.
// @Tags characters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Character ID"
// @Param hp query int false "Absolute HP value"
// @Param request body PatchHPRequest false "HP adjustment"
// @Success 200 {object} model.Character
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /characters/{id}/hp [patch]
func (h *CharacterHandler) PatchHP(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var patch service.HPPatch
	var req PatchHPRequest
	if err := c.Bind(&req); err == nil {
		patch.Set = req.Set
		patch.Delta = req.Delta
	}
	if raw := c.QueryParam("hp"); raw != "" {
		hp, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid hp parameter")
		}
		patch.Param = &hp
	}

	character, err := h.characterService.PatchHP(c.Request().Context(), id, patch, userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, character)
}

// Delete godoc
// @Summary Delete a character
// @Description Owner or campaign GM only. The character's inventory goes with it.
// @Tags characters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Character ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /characters/{id} [delete]
func (h *CharacterHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.characterService.DeleteCharacter(c.Request().Context(), id, userID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListByCampaign godoc
// @Summary List a campaign's characters
// @Tags characters
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {array} model.Character
// @Failure 404 {object} errors.ErrorResponse
// @Router /campaigns/{id}/characters [get]
func (h *CharacterHandler) ListByCampaign(c echo.Context) error {
	campaignID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	characters, err := h.characterService.ListByCampaign(c.Request().Context(), campaignID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, characters)
}

// ListMine godoc
// @Summary List the authenticated user's characters across campaigns
// @Tags characters
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Character
// @Router /characters/mine [get]
func (h *CharacterHandler) ListMine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	characters, err := h.characterService.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, characters)
}
