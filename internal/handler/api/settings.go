package api

import (
	"net/http"

	reqdto "table-reservation/internal/handler/dto/request"
	resdto "table-reservation/internal/handler/dto/response"
	"table-reservation/internal/handler/httperr"
	"table-reservation/internal/usecase/commands"
	"table-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	cmds commands.SettingsCommands
	q    queries.ReservationQueries
}

func NewSettingsHandler(cmds commands.SettingsCommands, q queries.ReservationQueries) *SettingsHandler {
	return &SettingsHandler{cmds: cmds, q: q}
}

// @Summary Get reservation settings
// @Tags settings
// @Produce json
// @Success 200 {object} resdto.SettingsResponse
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	h.respond(c, http.StatusOK)
}

// @Summary Replace reservation settings
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReplaceSettingsRequest true "Settings"
// @Success 200 {object} resdto.SettingsResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/settings [put]
func (h *SettingsHandler) Replace(c *gin.Context) {
	var req reqdto.ReplaceSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	params, err := req.ToParams()
	if err != nil {
		abortWithReservationError(c, err)
		return
	}
	if _, err = h.cmds.Replace(c.Request.Context(), params); err != nil {
		abortWithReservationError(c, err)
		return
	}
	h.respond(c, http.StatusOK)
}

// @Summary Patch reservation settings
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PatchSettingsRequest true "Settings fields to change"
// @Success 200 {object} resdto.SettingsResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /admin/settings [patch]
func (h *SettingsHandler) Patch(c *gin.Context) {
	var req reqdto.PatchSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	p, err := req.ToPatch()
	if err != nil {
		abortWithReservationError(c, err)
		return
	}
	if _, err = h.cmds.Patch(c.Request.Context(), p); err != nil {
		abortWithReservationError(c, err)
		return
	}
	h.respond(c, http.StatusOK)
}

func (h *SettingsHandler) respond(c *gin.Context, status int) {
	view, err := h.q.Settings(c.Request.Context())
	if err != nil {
		abortWithReservationError(c, err)
		return
	}
	res, err := resdto.FromSettingsView(view)
	if err != nil {
		abortWithReservationError(c, err)
		return
	}
	c.JSON(status, res)
}
