// Package server exposes the amortization engine over an HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bfporto/tabelaprice/internal/cache"
	"github.com/bfporto/tabelaprice/internal/store"
	"github.com/bfporto/tabelaprice/pkg/amortization"
	"github.com/bfporto/tabelaprice/pkg/constants"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type handler struct {
	logger    *zap.Logger
	cache     cache.Repository
	history   *store.SQLiteStore
	generator *amortization.ScheduleGenerator
	version   string
}

// NewRouter constructs the HTTP router serving the amortization API. The
// history store may be nil, in which case history endpoints report the
// feature as unavailable.
func NewRouter(logger *zap.Logger, cacheRepo cache.Repository, history *store.SQLiteStore, version string) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheRepo == nil {
		cacheRepo = cache.NewMemoryCache()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:    logger,
		cache:     cacheRepo,
		history:   history,
		generator: amortization.NewScheduleGenerator(logger),
		version:   trimmedVersion,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/schedule", h.handleSchedule).Methods("POST")
	r.HandleFunc("/api/payment", h.handlePayment).Methods("POST")
	r.HandleFunc("/api/effective-rate", h.handleEffectiveRate).Methods("POST")
	r.HandleFunc("/api/history", h.handleHistory).Methods("GET")
	r.HandleFunc("/api/version", h.handleVersion).Methods("GET")
	r.HandleFunc("/healthz", h.handleHealth).Methods("GET")
	return r
}

type loanRequest struct {
	Name         string  `json:"name,omitempty"`
	Principal    float64 `json:"principal"`
	InterestRate float64 `json:"interestRate"` // percent per period
	TermMonths   int     `json:"termMonths"`
	DownPayment  bool    `json:"downPayment,omitempty"`
}

func (req loanRequest) terms() amortization.Terms {
	return amortization.Terms{
		Principal: req.Principal,
		Rate:      req.InterestRate / constants.PercentageMultiplier,
		Periods:   req.TermMonths,
	}
}

func (req loanRequest) cacheKey() string {
	return fmt.Sprintf("schedule:%.2f:%.6f:%d:%t",
		req.Principal, req.InterestRate, req.TermMonths, req.DownPayment)
}

type installmentRow struct {
	Period    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

type scheduleResponse struct {
	Name           string           `json:"name,omitempty"`
	Payment        float64          `json:"payment"`
	TotalPaid      float64          `json:"totalPaid"`
	TotalInterest  float64          `json:"totalInterest"`
	TotalPrincipal float64          `json:"totalPrincipal"`
	Installments   []installmentRow `json:"installments"`
}

type paymentResponse struct {
	Payment     float64 `json:"payment"`
	Coefficient float64 `json:"coefficient"`
	TotalPaid   float64 `json:"totalPaid"`
}

type effectiveRateRequest struct {
	Principal  float64 `json:"principal"`
	TermMonths int     `json:"termMonths"`
	TotalPaid  float64 `json:"totalPaid"`
}

type effectiveRateResponse struct {
	Rate        float64 `json:"rate"`
	RatePercent float64 `json:"ratePercent"`
	Iterations  int     `json:"iterations"`
	Converged   bool    `json:"converged"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", "server.handleSchedule")
		return
	}

	if cached, ok := h.cache.Get(req.cacheKey()); ok {
		h.logger.Debug("serving schedule from cache",
			zap.String("op", "server.handleSchedule"),
			zap.String("key", req.cacheKey()),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(cached))
		return
	}

	schedule, err := h.generator.GenerateSchedule(req.terms(), req.DownPayment)
	if err != nil {
		h.respondEngineError(w, err, "server.handleSchedule")
		return
	}

	resp := scheduleResponse{
		Name:           req.Name,
		Payment:        schedule.Installments[0].Payment,
		TotalPaid:      schedule.TotalPaid,
		TotalInterest:  schedule.TotalInterest,
		TotalPrincipal: schedule.TotalPrincipal,
		Installments:   make([]installmentRow, 0, len(schedule.Installments)),
	}
	for _, installment := range schedule.Installments {
		resp.Installments = append(resp.Installments, installmentRow{
			Period:    installment.Period,
			Payment:   installment.Payment,
			Interest:  installment.Interest,
			Principal: installment.Principal,
			Balance:   installment.RemainingBalance,
		})
	}

	if body, err := json.Marshal(resp); err != nil {
		h.logger.Warn("failed to encode schedule for caching",
			zap.String("op", "server.handleSchedule"),
			zap.Error(err),
		)
	} else if err := h.cache.Set(req.cacheKey(), string(body)); err != nil {
		h.logger.Warn("failed to cache schedule",
			zap.String("op", "server.handleSchedule"),
			zap.Error(err),
		)
	}

	if h.history != nil {
		if _, err := h.history.SaveCalculation(r.Context(), req.Name, req.terms(), req.DownPayment, schedule); err != nil {
			h.logger.Warn("failed to record calculation history",
				zap.String("op", "server.handleSchedule"),
				zap.Error(err),
			)
		}
	}

	h.logger.Info("computed schedule",
		zap.String("op", "server.handleSchedule"),
		zap.Float64("principal", req.Principal),
		zap.Int("termMonths", req.TermMonths),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handlePayment(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", "server.handlePayment")
		return
	}

	terms := req.terms()
	payment, err := amortization.InstallmentPayment(terms.Principal, terms.Rate, terms.Periods)
	if err != nil {
		h.respondEngineError(w, err, "server.handlePayment")
		return
	}
	coefficient, err := amortization.FinancingCoefficient(terms.Rate, terms.Periods)
	if err != nil {
		h.respondEngineError(w, err, "server.handlePayment")
		return
	}

	h.writeJSON(w, http.StatusOK, paymentResponse{
		Payment:     payment,
		Coefficient: coefficient,
		TotalPaid:   payment * float64(terms.Periods),
	})
}

func (h *handler) handleEffectiveRate(w http.ResponseWriter, r *http.Request) {
	var req effectiveRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", "server.handleEffectiveRate")
		return
	}

	estimate, err := amortization.EffectiveRate(req.Principal, req.TermMonths, req.TotalPaid)
	if err != nil {
		h.respondEngineError(w, err, "server.handleEffectiveRate")
		return
	}

	h.writeJSON(w, http.StatusOK, effectiveRateResponse{
		Rate:        estimate.Rate,
		RatePercent: estimate.Rate * constants.PercentageMultiplier,
		Iterations:  estimate.Iterations,
		Converged:   estimate.Converged,
	})
}

func (h *handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.respondError(w, http.StatusNotImplemented, "calculation history is not configured", "server.handleHistory")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid limit", "server.handleHistory")
			return
		}
		limit = parsed
	}

	calculations, err := h.history.ListCalculations(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list calculation history",
			zap.String("op", "server.handleHistory"),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "failed to load history", "server.handleHistory")
		return
	}
	if calculations == nil {
		calculations = []store.Calculation{}
	}

	h.writeJSON(w, http.StatusOK, calculations)
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) respondEngineError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, amortization.ErrInvalidInput):
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
	case errors.Is(err, amortization.ErrNoConvergence):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error(), op)
	default:
		h.logger.Error("engine failure",
			zap.String("op", op),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "internal error", op)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Debug(msg,
		zap.String("op", op),
		zap.Int("status", status),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
