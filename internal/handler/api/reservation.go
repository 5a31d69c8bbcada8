package api

import (
	"log/slog"
	"net/http"
	"strings"

	"table-reservation/internal/domain/reservation"
	reqdto "table-reservation/internal/handler/dto/request"
	resdto "table-reservation/internal/handler/dto/response"
	"table-reservation/internal/handler/httperr"
	"table-reservation/internal/handler/middleware"
	"table-reservation/internal/pkg/errs"
	"table-reservation/internal/usecase/commands"
	"table-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errGuestEmailRequired = errs.New("guest email required")

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Book a table as a guest or as an authenticated customer
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.CreateReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	var caller reservation.CallerIdentity
	if userID, ok := middleware.GetUserID(c); ok {
		caller = reservation.Authenticated(userID)
	}

	result, err := h.cmds.Create(c.Request.Context(), req.ToDomain(caller))
	if err != nil {
		abortWithReservationError(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.ReservationID)
	if err != nil {
		// the reservation is committed; report success without the full body
		slog.WarnContext(c.Request.Context(), "failed to load created reservation",
			slog.String("reservation_id", result.ReservationID.String()),
			slog.Any("error", err))
	}
	c.JSON(http.StatusCreated, resdto.NewCreateReservationResponse(result.ReservationID, result.Status, view))
}

// @Summary List reservations
// @Description List the caller's reservations. Guests pass the booking email and get contact details masked.
// @Tags reservations
// @Produce json
// @Param email query string false "Guest email"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	caller, ok := callerFrom(c, query.Email)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errGuestEmailRequired, "Email is required for guest lookups", nil)
		return
	}

	views, err := h.q.ListByCaller(c.Request.Context(), caller)
	if err != nil {
		abortWithReservationError(c, err)
		return
	}
	res := resdto.FromReservationViews(views)
	for i := range res {
		res[i] = guestSafe(caller, res[i])
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get reservation
// @Description Get one of the caller's reservations by ID
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Param email query string false "Guest email"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	caller, ok := callerFrom(c, c.Query("email"))
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errGuestEmailRequired, "Email is required for guest lookups", nil)
		return
	}

	view, err := h.q.GetForCaller(c.Request.Context(), id, caller)
	if err != nil {
		abortWithReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, guestSafe(caller, resdto.FromReservationView(view)))
}

// @Summary Cancel reservation
// @Description Cancel a pending or confirmed reservation owned by the caller
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest false "Guest email"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.CancelReservationRequest
	if c.Request.ContentLength != 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
			return
		}
	}

	caller, ok := callerFrom(c, req.Email)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errGuestEmailRequired, "Email is required to cancel a guest reservation", nil)
		return
	}

	if err = h.cmds.Cancel(c.Request.Context(), id, caller); err != nil {
		abortWithReservationError(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, guestSafe(caller, resdto.FromReservationView(view)))
}

// @Summary Check availability
// @Description Per-slot remaining capacity for a date. Advisory only.
// @Tags reservations
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param partySize query int false "Party size"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /availability [get]
func (h *ReservationHandler) Availability(c *gin.Context) {
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	date, err := reservation.ParseDate(query.Date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}

	view, err := h.q.Availability(c.Request.Context(), date, query.PartySize)
	if err != nil {
		abortWithReservationError(c, err)
		return
	}

	res, err := resdto.FromAvailabilityView(view)
	if err != nil {
		abortWithReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// callerFrom prefers the authenticated identity and falls back to a guest email.
func guestSafe(caller reservation.CallerIdentity, res *resdto.ReservationResponse) *resdto.ReservationResponse {
	if caller.IsGuest() {
		return res.Redact()
	}
	return res
}

func callerFrom(c *gin.Context, email string) (reservation.CallerIdentity, bool) {
	if userID, ok := middleware.GetUserID(c); ok {
		return reservation.Authenticated(userID), true
	}
	if strings.TrimSpace(email) == "" {
		return reservation.CallerIdentity{}, false
	}
	return reservation.Guest(email), true
}
