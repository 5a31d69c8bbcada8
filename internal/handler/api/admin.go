package api

import (
	"net/http"

	"table-reservation/internal/domain/reservation"
	reqdto "table-reservation/internal/handler/dto/request"
	resdto "table-reservation/internal/handler/dto/response"
	"table-reservation/internal/handler/httperr"
	"table-reservation/internal/usecase/commands"
	"table-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewAdminReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *AdminReservationHandler {
	return &AdminReservationHandler{cmds: cmds, q: q}
}

// @Summary Update reservation status
// @Description Staff confirm, decline, complete or mark a reservation as no-show
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateStatusRequest true "New status"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/reservations/{id}/status [patch]
func (h *AdminReservationHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.UpdateStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	next, err := reservation.ParseStatus(req.Status)
	if err != nil {
		abortWithReservationError(c, err)
		return
	}

	if err = h.cmds.UpdateStatus(c.Request.Context(), id, next); err != nil {
		abortWithReservationError(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Get any reservation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/reservations/{id} [get]
func (h *AdminReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}
