/*
handlers.go - HTTP API handlers for contracts and careers

PURPOSE:
  Exposes the contract service via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the contract and wage packages.

ENDPOINTS:
  Contracts:
    POST   /api/contracts                   Create contract from a draft
    GET    /api/contracts/{id}              Get contract
    PATCH  /api/contracts/{id}              Update content (edit window applies)
    DELETE /api/contracts/{id}?party=&actor_id=  Hide from one party's view
    POST   /api/contracts/{id}/sign         Record a signature
    GET    /api/contracts/{id}/editability  Edit window state
    GET    /api/contracts/{id}/wage         Wage summary
    POST   /api/contracts/{id}/rating       Worker rating (completed only)

  Parties:
    GET    /api/workers/{id}/contracts      Worker's visible contracts
    GET    /api/workers/{id}/career         Career summary
    GET    /api/employers/{id}/contracts    Employer's visible contracts

  Calculators: see calculator.go
  Scenarios:   see scenarios.go

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Service: contract lifecycle and persistence
  - Terms:   JSON to terms/draft conversion
  - Now:     the only wall clock in the system

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: malformed input (bad clock, unknown enum, out-of-range value)
  - 403: actor is not the party they claim to be
  - 404: contract not found
  - 409: lifecycle conflict or edit window closed
  - 422: no statutory minimum wage for the requested year
  - 500: internal errors

SECURITY NOTE:
  No authentication. The acting party is named in the request.

SEE ALSO:
  - dto.go: Request/response data structures
  - calculator.go: Wage calculator endpoints
  - server.go: Router setup and middleware
*/
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/warp/contract-engine/contract"
	"github.com/warp/contract-engine/factory"
	"github.com/warp/contract-engine/wage"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *contract.Service
	Terms   *factory.TermsFactory
	Log     zerolog.Logger
	Now     func() time.Time

	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a new handler around the contract service.
func NewHandler(svc *contract.Service, log zerolog.Logger) *Handler {
	return &Handler{
		Service: svc,
		Terms:   factory.NewTermsFactory(),
		Log:     log,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

// =============================================================================
// CONTRACT HANDLERS
// =============================================================================

// CreateContract commits a draft.
// POST /api/contracts
func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req factory.DraftJSON
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	draft, err := h.Terms.DraftFromJSON(req)
	if err != nil {
		h.writeDomainError(w, "Invalid contract draft", err)
		return
	}

	now := h.Now()
	c, err := h.Service.Create(r.Context(), draft, now)
	if err != nil {
		h.writeDomainError(w, "Failed to create contract", err)
		return
	}

	writeJSON(w, http.StatusCreated, h.toContractDTO(c, now))
}

// GetContract returns one contract.
// GET /api/contracts/{id}
func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get contract", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toContractDTO(c, h.Now()))
}

// UpdateContract applies a content patch.
// PATCH /api/contracts/{id}
func (h *Handler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	var req UpdateContractRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	patch, err := h.toContentPatch(req)
	if err != nil {
		h.writeDomainError(w, "Invalid contract update", err)
		return
	}

	now := h.Now()
	c, err := h.Service.UpdateContent(r.Context(), chi.URLParam(r, "id"), patch, now)
	if err != nil {
		h.writeDomainError(w, "Failed to update contract", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toContractDTO(c, now))
}

func (h *Handler) toContentPatch(req UpdateContractRequest) (contract.ContentPatch, error) {
	patch := contract.ContentPatch{
		Title:            req.Title,
		WorkplaceName:    req.WorkplaceName,
		WorkplaceAddress: req.WorkplaceAddress,
		JobDescription:   req.JobDescription,
	}
	if req.StartDate != nil {
		d, err := factory.ParseDate(*req.StartDate)
		if err != nil {
			return patch, err
		}
		patch.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := factory.ParseDate(*req.EndDate)
		if err != nil {
			return patch, err
		}
		patch.EndDate = &d
	}
	if req.Terms != nil {
		terms, err := h.Terms.TermsFromJSON(*req.Terms)
		if err != nil {
			return patch, err
		}
		patch.Terms = &terms
	}
	return patch, nil
}

// SignContract records one party's signature.
// POST /api/contracts/{id}/sign
func (h *Handler) SignContract(w http.ResponseWriter, r *http.Request) {
	var req SignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	party, err := contract.ParseParty(req.Party)
	if err != nil {
		h.writeDomainError(w, "Invalid party", err)
		return
	}

	now := h.Now()
	c, err := h.Service.Sign(r.Context(), chi.URLParam(r, "id"), party, req.ActorID, req.Signature, now)
	if err != nil {
		h.writeDomainError(w, "Failed to sign contract", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toContractDTO(c, now))
}

// DeleteContract hides a contract from the acting party.
// DELETE /api/contracts/{id}?party=employer&actor_id=emp-1
func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	party, err := contract.ParseParty(r.URL.Query().Get("party"))
	if err != nil {
		h.writeDomainError(w, "Invalid party", err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(r.Context(), id, party, r.URL.Query().Get("actor_id")); err != nil {
		h.writeDomainError(w, "Failed to delete contract", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// GetEditability reports the edit window state.
// GET /api/contracts/{id}/editability
func (h *Handler) GetEditability(w http.ResponseWriter, r *http.Request) {
	v, err := h.Service.Editability(r.Context(), chi.URLParam(r, "id"), h.Now())
	if err != nil {
		h.writeDomainError(w, "Failed to get editability", err)
		return
	}
	writeJSON(w, http.StatusOK, toEditabilityDTO(v))
}

// GetContractWage returns the wage summary of a contract.
// GET /api/contracts/{id}/wage
func (h *Handler) GetContractWage(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.WageSummary(r.Context(), chi.URLParam(r, "id"), h.Now())
	if err != nil {
		h.writeDomainError(w, "Failed to compute wage summary", err)
		return
	}
	writeJSON(w, http.StatusOK, toWageSummaryDTO(s))
}

// RateContract stores the worker's rating.
// POST /api/contracts/{id}/rating
func (h *Handler) RateContract(w http.ResponseWriter, r *http.Request) {
	var req RatingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rating := contract.Rating{
		ContractID: chi.URLParam(r, "id"),
		WorkerID:   req.WorkerID,
		Score:      req.Score,
		Comment:    req.Comment,
	}
	if err := h.Service.Rate(r.Context(), rating, h.Now()); err != nil {
		h.writeDomainError(w, "Failed to rate contract", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"status": "rated", "score": req.Score})
}

// =============================================================================
// PARTY HANDLERS
// =============================================================================

// ListWorkerContracts returns the worker's visible contracts.
// GET /api/workers/{id}/contracts
func (h *Handler) ListWorkerContracts(w http.ResponseWriter, r *http.Request) {
	h.listContracts(w, r, contract.PartyWorker)
}

// ListEmployerContracts returns the employer's visible contracts.
// GET /api/employers/{id}/contracts
func (h *Handler) ListEmployerContracts(w http.ResponseWriter, r *http.Request) {
	h.listContracts(w, r, contract.PartyEmployer)
}

func (h *Handler) listContracts(w http.ResponseWriter, r *http.Request, party contract.Party) {
	contracts, err := h.Service.ListFor(r.Context(), party, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to list contracts", err)
		return
	}

	now := h.Now()
	dtos := make([]ContractDTO, len(contracts))
	for i, c := range contracts {
		dtos[i] = h.toContractDTO(c, now)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCareer returns the worker's career summary.
// GET /api/workers/{id}/career
func (h *Handler) GetCareer(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "id")
	summary, err := h.Service.Career(r.Context(), workerID, h.Now())
	if err != nil {
		h.writeDomainError(w, "Failed to load career", err)
		return
	}
	writeJSON(w, http.StatusOK, toCareerDTO(workerID, summary))
}

// =============================================================================
// HELPERS
// =============================================================================

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// statusFor maps domain errors onto HTTP status codes and error codes.
func statusFor(err error) (int, string) {
	switch {
	case contract.IsClientError(err):
		return http.StatusBadRequest, "invalid_input"
	case contract.IsForbidden(err):
		return http.StatusForbidden, "not_a_party"
	case contract.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case contract.IsConflict(err):
		return http.StatusConflict, "conflict"
	case wage.IsConfigError(err):
		return http.StatusUnprocessableEntity, "unknown_rate_year"
	}
	return http.StatusInternalServerError, "internal"
}

func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Log.Error().Err(err).Msg(message)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: err.Error(),
	}
	if wage.IsConfigError(err) {
		resp.SupportedYears = wage.RateYears()
	}
	writeJSON(w, status, resp)
}
