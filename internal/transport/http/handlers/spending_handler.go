package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/vedran77/budgeter/internal/domain"
	"github.com/vedran77/budgeter/internal/service"
	"github.com/vedran77/budgeter/internal/transport/http/middleware"
	"github.com/vedran77/budgeter/pkg/validator"
)

type SpendingHandler struct {
	spendingService *service.SpendingService
}

func NewSpendingHandler(spendingService *service.SpendingService) *SpendingHandler {
	return &SpendingHandler{spendingService: spendingService}
}

func (h *SpendingHandler) Add(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var input service.AddSpendingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateSpending(input.Item, input.Price); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	entry, err := h.spendingService.Add(r.Context(), username, input)
	if err != nil {
		log.Printf("ERROR add spending: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *SpendingHandler) List(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	entries, err := h.spendingService.ListByUsername(r.Context(), username)
	if err != nil {
		log.Printf("ERROR list spendings: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	if entries == nil {
		entries = []domain.SpendingEntry{}
	}

	writeJSON(w, http.StatusOK, entries)
}
