package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tabletoprpg/internal/model"
	"tabletoprpg/internal/service"
)

// CampaignHandler handles campaign and membership endpoints.
type CampaignHandler struct {
	campaignService service.CampaignService
}

// NewCampaignHandler creates a new campaign handler.
func NewCampaignHandler(campaignService service.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// CreateCampaignRequest represents a campaign creation request.
type CreateCampaignRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// UpdateCampaignRequest represents a partial campaign update.
type UpdateCampaignRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// MemberRequest represents a membership upsert or role change.
type MemberRequest struct {
	Role string `json:"role,omitempty"`
}

// Create godoc
// @Summary Create a campaign
// @Description The authenticated user becomes the campaign's game master and is added as a GM member.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCampaignRequest true "Campaign data"
// @Success 201 {object} model.Campaign
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /campaigns [post]
func (h *CampaignHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	campaign, err := h.campaignService.CreateCampaign(c.Request().Context(), userID, req.Name, req.Description)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, campaign)
}

// Get godoc
// @Summary Get a campaign by id
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} model.Campaign
// @Failure 404 {object} errors.ErrorResponse
// @Router /campaigns/{id} [get]
func (h *CampaignHandler) Get(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	campaign, err := h.campaignService.GetCampaign(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, campaign)
}

// Update godoc
// @Summary Update a campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body UpdateCampaignRequest true "Fields to update"
// @Success 200 {object} model.Campaign
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /campaigns/{id} [patch]
func (h *CampaignHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	campaign, err := h.campaignService.UpdateCampaign(c.Request().Context(), id, userID, service.CampaignPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, campaign)
}

// Delete godoc
// @Summary Delete a campaign
// @Description Refused while any character still belongs to the campaign.
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.campaignService.DeleteCampaign(c.Request().Context(), id, userID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMine godoc
// @Summary List campaigns run by the authenticated user
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Campaign
// @Router /campaigns/mine [get]
func (h *CampaignHandler) ListMine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	campaigns, err := h.campaignService.ListByGM(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, campaigns)
}

// ListMemberOf godoc
// @Summary List campaigns the authenticated user participates in
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Campaign
// @Router /campaigns/member-of [get]
func (h *CampaignHandler) ListMemberOf(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	campaigns, err := h.campaignService.ListByMember(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, campaigns)
}

// UpsertMember godoc
// @Summary Add a user to a campaign
// @Description Idempotent: re-adding an existing member with the same role returns 200 instead of 201.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param userId path string true "User ID"
// @Param request body MemberRequest false "Membership role, defaults to PLAYER"
// @Success 200 {object} model.CampaignMember
// @Success 201 {object} model.CampaignMember
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /campaigns/{id}/members/{userId} [put]
func (h *CampaignHandler) UpsertMember(c echo.Context) error {
	requesterID, err := currentUserID(c)
	if err != nil {
		return err
	}
	campaignID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}
	var req MemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	member, created, err := h.campaignService.UpsertMember(c.Request().Context(), campaignID, userID, model.CampaignRole(req.Role), requesterID)
	if err != nil {
		return domainError(err)
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, member)
}

// UpdateMemberRole godoc
// @Summary Change an existing member's role
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param userId path string true "User ID"
// @Param request body MemberRequest true "New role"
// @Success 200 {object} model.CampaignMember
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /campaigns/{id}/members/{userId} [patch]
func (h *CampaignHandler) UpdateMemberRole(c echo.Context) error {
	requesterID, err := currentUserID(c)
	if err != nil {
		return err
	}
	campaignID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}
	var req MemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	member, err := h.campaignService.UpdateMemberRole(c.Request().Context(), campaignID, userID, model.CampaignRole(req.Role), requesterID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, member)
}

// RemoveMember godoc
// @Summary Remove a member from a campaign
// @Description Also deletes every character the removed user owns in the campaign.
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param userId path string true "User ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /campaigns/{id}/members/{userId} [delete]
func (h *CampaignHandler) RemoveMember(c echo.Context) error {
	requesterID, err := currentUserID(c)
	if err != nil {
		return err
	}
	campaignID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}
	if err := h.campaignService.RemoveMember(c.Request().Context(), campaignID, userID, requesterID); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMembers godoc
// @Summary List a campaign's members
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {array} model.CampaignMember
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /campaigns/{id}/members [get]
func (h *CampaignHandler) ListMembers(c echo.Context) error {
	requesterID, err := currentUserID(c)
	if err != nil {
		return err
	}
	campaignID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	members, err := h.campaignService.ListMembers(c.Request().Context(), campaignID, requesterID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, members)
}
