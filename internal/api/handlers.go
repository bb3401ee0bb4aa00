package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/susu3304/warikan/internal/db"
	"github.com/susu3304/warikan/internal/settlement"
	"github.com/susu3304/warikan/internal/split"
)

const maxBodyBytes = 1 << 20

type settlementRequest struct {
	Total        decimal.Decimal          `json:"total"`
	Participants []settlement.Participant `json:"participants"`
}

type settlementResponse struct {
	ID           string                   `json:"id"`
	CreatedAt    time.Time                `json:"created_at"`
	Total        decimal.Decimal          `json:"total"`
	EqualShare   decimal.Decimal          `json:"equal_share"`
	Balances     []settlement.Balance     `json:"balances"`
	Transactions []settlement.Transaction `json:"transactions"`
	Plan         []settlement.PayerGroup  `json:"plan"`
	Summary      string                   `json:"summary"`
}

func (a *API) toResponse(rec *db.SettlementRecord) settlementResponse {
	plan := rec.Result.ByPayer()
	if plan == nil {
		plan = []settlement.PayerGroup{}
	}
	return settlementResponse{
		ID:           rec.ID.String(),
		CreatedAt:    rec.CreatedAt,
		Total:        rec.Total,
		EqualShare:   rec.Result.EqualShare,
		Balances:     rec.Result.Balances,
		Transactions: rec.Result.Transactions,
		Plan:         plan,
		Summary:      a.format.Summary(&rec.Result),
	}
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"history": a.split.HistoryEnabled(),
	})
}

func (a *API) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	var req settlementRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	owner := ""
	if claims, ok := claimsFrom(r.Context()); ok {
		owner = claims.UserID
	}

	rec, err := a.split.Compute(r.Context(), split.Request{
		OwnerID:      owner,
		Total:        req.Total,
		Participants: req.Participants,
	})
	if err != nil {
		a.writeSettlementError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, a.toResponse(rec))
}

func (a *API) writeSettlementError(w http.ResponseWriter, err error) {
	var mismatch *settlement.ContributionMismatchError
	switch {
	case errors.As(err, &mismatch):
		d := mismatch.Discrepancy.String()
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:       err.Error(),
			Code:        "contribution_mismatch",
			Discrepancy: &d,
		})
	case errors.Is(err, settlement.ErrInsufficientParticipants):
		writeError(w, http.StatusUnprocessableEntity, "insufficient_participants", err.Error())
	case errors.Is(err, settlement.ErrInvalidParticipant):
		writeError(w, http.StatusUnprocessableEntity, "invalid_participant", err.Error())
	case errors.Is(err, settlement.ErrInvalidTotal):
		writeError(w, http.StatusUnprocessableEntity, "invalid_total", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal", "failed to compute settlement")
	}
}

func (a *API) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
			return
		}
		limit = n
	}

	records, err := a.split.History(r.Context(), claims.UserID, limit)
	if err != nil {
		a.writeHistoryError(w, err)
		return
	}

	out := make([]settlementResponse, 0, len(records))
	for i := range records {
		out = append(out, a.toResponse(&records[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleGetSettlement(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid settlement id")
		return
	}

	rec, err := a.split.Get(r.Context(), claims.UserID, id)
	if err != nil {
		a.writeHistoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.toResponse(rec))
}

func (a *API) writeHistoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, split.ErrHistoryDisabled):
		writeError(w, http.StatusServiceUnavailable, "history_disabled", err.Error())
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		a.log.Error("failed to load settlement history", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to load settlements")
	}
}
