package http

import (
	"encoding/json"
	"net/http"

	"github.com/bodytraq/imctrack/internal/imctrack/service"
	"github.com/bodytraq/imctrack/pkg/httpx"
	"github.com/bodytraq/imctrack/pkg/slogx"
)

// BmiHandler serves the calculator, history and dashboard endpoints. All of
// them run behind AuthnMiddleware, so the user is always in context.
type BmiHandler struct {
	BmiService *service.BmiService
}

type calculateRequest struct {
	Altura float64 `json:"altura"`
	Peso   float64 `json:"peso"`
}

func (h *BmiHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := userFromContext(ctx)
	if !ok {
		ErrUnauthorized.Write(w)
		return
	}

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrBadRequest.Write(w)
		return
	}
	if fields := validateMeasurements(req.Altura, req.Peso); len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	rec, err := h.BmiService.Calculate(ctx, user, req.Altura, req.Peso)
	if err != nil {
		log.Error("bmi calculation failed", "err", err)
		ErrServerError.Write(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, calculationResponse{
		bmiRecordResponse: toBmiRecordResponse(rec),
		User:              toUserResponse(user),
	})
}

func (h *BmiHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := userFromContext(ctx)
	if !ok {
		ErrUnauthorized.Write(w)
		return
	}

	query, fields := parseHistoryQuery(r)
	if len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	page, err := h.BmiService.History(ctx, user.ID, query)
	if err != nil {
		log.Error("listing history failed", "err", err)
		ErrServerError.Write(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toHistoryResponse(page))
}

func (h *BmiHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := userFromContext(ctx)
	if !ok {
		ErrUnauthorized.Write(w)
		return
	}

	dashboard, err := h.BmiService.Dashboard(ctx, user.ID)
	if err != nil {
		log.Error("building dashboard failed", "err", err)
		ErrServerError.Write(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toDashboardResponse(dashboard))
}
