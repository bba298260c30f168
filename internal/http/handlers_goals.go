package http

import (
	"net/http"

	"campusbudget/internal/core"
)

// goalView is the wire shape of a savings goal. Amounts are dollars.
type goalView struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	TargetAmount float64 `json:"targetAmount"`
	SavedAmount  float64 `json:"savedAmount"`
	Deadline     string  `json:"deadline,omitempty"`
	Status       string  `json:"status"`
	Progress     float64 `json:"progress"`
}

func toGoalView(g core.Goal) goalView {
	v := goalView{
		ID:           g.ID,
		Title:        g.Title,
		TargetAmount: g.Target.Dollars(),
		SavedAmount:  g.Saved.Dollars(),
		Status:       string(g.Status),
		Progress:     g.Progress(),
	}
	if !g.Deadline.IsEmpty() {
		v.Deadline = g.Deadline.Format(dateLayout)
	}
	return v
}

type createGoalRequest struct {
	Title        string        `json:"title"`
	TargetAmount decimalString `json:"targetAmount"`
	Deadline     string        `json:"deadline"`
	Status       string        `json:"status"`
}

type contributionRequest struct {
	Amount decimalString `json:"amount"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.store.ListGoals(r.Context(), userID(r))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, toGoalView(g))
	}
	writeData(w, http.StatusOK, views)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	target, err := parseAmount(string(req.TargetAmount))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid target amount")
		return
	}
	deadline, err := parseOptionalDate(req.Deadline)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	goal := core.Goal{
		UserID:   userID(r),
		Title:    sanitizeInput(req.Title),
		Target:   target,
		Deadline: deadline,
		Status:   core.GoalStatus(sanitizeInput(req.Status)),
	}
	if goal.Status == "" {
		goal.Status = core.Active
	}
	if err := goal.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.svc.CreateGoal(r.Context(), goal)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.invalidateUser(goal.UserID)
	goal.ID = id
	writeData(w, http.StatusCreated, toGoalView(goal))
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := s.store.GetGoal(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toGoalView(goal))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.svc.DeleteGoal(r.Context(), userID(r), id); err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.invalidateUser(userID(r))
	writeData(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleAddContribution(w http.ResponseWriter, r *http.Request) {
	var req contributionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := parseAmount(string(req.Amount))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	goal, err := s.svc.AddContribution(r.Context(), userID(r), r.PathValue("id"), amount)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.invalidateUser(userID(r))
	writeData(w, http.StatusOK, toGoalView(goal))
}
