package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tabletoprpg/internal/model"
	"tabletoprpg/internal/service"
)

// JournalHandler handles campaign and personal journal endpoints.
type JournalHandler struct {
	journalService service.JournalService
}

// NewJournalHandler creates a new journal handler.
func NewJournalHandler(journalService service.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// CreateJournalRequest represents a journal entry creation request.
type CreateJournalRequest struct {
	Type       string `json:"type" validate:"required,max=50"`
	Visibility string `json:"visibility" validate:"required"`
	Title      string `json:"title" validate:"required,max=150"`
	Content    string `json:"content" validate:"required"`
	Tags       string `json:"tags"`
}

// UpdateJournalRequest represents a partial journal entry update.
type UpdateJournalRequest struct {
	Type       *string `json:"type,omitempty"`
	Visibility *string `json:"visibility,omitempty"`
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	Tags       *string `json:"tags,omitempty"`
}

func (r CreateJournalRequest) toCreate() service.JournalCreate {
	return service.JournalCreate{
		Type:       r.Type,
		Visibility: model.JournalVisibility(r.Visibility),
		Title:      r.Title,
		Content:    r.Content,
		Tags:       r.Tags,
	}
}

func (r UpdateJournalRequest) toPatch() service.JournalPatch {
	patch := service.JournalPatch{
		Type:    r.Type,
		Title:   r.Title,
		Content: r.Content,
		Tags:    r.Tags,
	}
	if r.Visibility != nil {
		v := model.JournalVisibility(*r.Visibility)
		patch.Visibility = &v
	}
	return patch
}

// Create godoc
// @Summary Create a campaign journal entry
// @Description GM only.
// @Tags journals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body CreateJournalRequest true "Entry data"
// @Success 201 {object} model.JournalEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /campaigns/{id}/journal [post]
func (h *JournalHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	campaignID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req CreateJournalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.journalService.CreateJournal(c.Request().Context(), campaignID, userID, req.toCreate())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// List godoc
// @Summary List a campaign's journal entries
// @Description Participants only. Non-GM callers see PLAYERS entries; the GM sees everything unless playersOnly=true.
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param type query string false "Filter by entry type, case-insensitive"
// @Param playersOnly query bool false "Restrict the GM view to PLAYERS entries"
// @Success 200 {array} model.JournalEntry
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /campaigns/{id}/journal [get]
func (h *JournalHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	campaignID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	playersOnly := c.QueryParam("playersOnly") == "true"

	entries, err := h.journalService.ListJournals(c.Request().Context(), campaignID, userID, c.QueryParam("type"), playersOnly)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// Get godoc
// @Summary Get a journal entry by id
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} model.JournalEntry
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /journal/{id} [get]
func (h *JournalHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	entry, err := h.journalService.GetJournalByID(c.Request().Context(), id, userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Update godoc
// @Summary Update a journal entry
// @Description Campaign entries: GM only. Personal entries: author only.
// @Tags journals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param request body UpdateJournalRequest true "Fields to update"
// @Success 200 {object} model.JournalEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /journal/{id} [patch]
func (h *JournalHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateJournalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	entry, err := h.journalService.UpdateJournal(c.Request().Context(), id, userID, req.toPatch())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete a journal entry
// @Description Campaign entries: GM only. Personal entries: author only.
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /journal/{id} [delete]
func (h *JournalHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.journalService.DeleteJournal(c.Request().Context(), id, userID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreatePersonal godoc
// @Summary Create a personal journal entry
// @Description Personal entries belong to no campaign and are visible to their author alone.
// @Tags journals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateJournalRequest true "Entry data"
// @Success 201 {object} model.JournalEntry
// @Failure 400 {object} errors.ErrorResponse
// @Router /journal/personal [post]
func (h *JournalHandler) CreatePersonal(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req CreateJournalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.journalService.CreatePersonal(c.Request().Context(), userID, req.toCreate())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// ListPersonal godoc
// @Summary List the authenticated user's personal journal entries
// @Tags journals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.JournalEntry
// @Router /journal/personal [get]
func (h *JournalHandler) ListPersonal(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	entries, err := h.journalService.ListPersonal(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, entries)
}
