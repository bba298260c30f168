package http

import (
	"net/http"

	"campusbudget/internal/core"
)

// transactionView is the wire shape of a transaction. Amounts are dollars.
type transactionView struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Description string  `json:"description,omitempty"`
}

func toTransactionView(t core.Transaction) transactionView {
	return transactionView{
		ID:          t.ID,
		Type:        string(t.Kind),
		Amount:      t.Amount.Dollars(),
		Category:    t.Category,
		Date:        t.Date.Format(dateLayout),
		Description: t.Note,
	}
}

type createTransactionRequest struct {
	Type        string        `json:"type"`
	Amount      decimalString `json:"amount"`
	Category    string        `json:"category"`
	Date        string        `json:"date"`
	Description string        `json:"description"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := s.store.ListTransactions(r.Context(), userID(r), from, to)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	views := make([]transactionView, 0, len(txs))
	for _, t := range txs {
		views = append(views, toTransactionView(t))
	}
	writeData(w, http.StatusOK, views)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := parseAmount(string(req.Amount))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tx := core.Transaction{
		UserID:   userID(r),
		Kind:     core.TransactionKind(sanitizeInput(req.Type)),
		Amount:   amount,
		Category: sanitizeInput(req.Category),
		Date:     date,
		Note:     sanitizeInput(req.Description),
	}
	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.svc.CreateTransaction(r.Context(), tx)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.invalidateUser(tx.UserID)
	tx.ID = id
	writeData(w, http.StatusCreated, toTransactionView(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.svc.DeleteTransaction(r.Context(), userID(r), id); err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.invalidateUser(userID(r))
	writeData(w, http.StatusOK, map[string]string{"id": id})
}
