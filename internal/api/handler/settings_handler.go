package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/core/ports"
)

type SettingsHandler struct {
	service ports.SettingsService
}

func NewSettingsHandler(service ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

type updateSettingsRequest struct {
	AccentColor        string `json:"accentColor" validate:"required,oneof=blue pink green yellow orange purple cyan"`
	EmailNotifications bool   `json:"emailNotifications"`
}

// Preferences handles GET /api/settings/user-preferences.
//
// @Summary      Current user's preferences
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Settings
// @Router       /api/settings/user-preferences [get]
func (h *SettingsHandler) Preferences(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	settings, err := h.service.Preferences(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// Update handles PATCH /api/settings.
//
// @Summary      Update preferences
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateSettingsRequest  true  "Preferences"
// @Success      200   {object}  domain.Settings
// @Failure      400   {object}  messageResponse
// @Router       /api/settings [patch]
func (h *SettingsHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateSettingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	settings, err := h.service.Update(c.Request().Context(), user.ID, req.AccentColor, req.EmailNotifications)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}
