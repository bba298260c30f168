package http

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"campusbudget/internal/log"
)

// handleDashboard returns transaction aggregates and goal statistics in one
// response. Both summaries are computed concurrently and joined before
// writing; a failure in either aborts the whole request.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	uid := userID(r)
	key := s.dashboardKey(uid, from, to)
	if payload, found := s.dashboardCache.Get(key); found {
		slog.DebugContext(r.Context(), "Dashboard cache hit",
			log.FieldComponent, log.ComponentCache,
			log.FieldUserID, uid)
		writeData(w, http.StatusOK, payload)
		return
	}

	var payload dashboardPayload

	eg, ctx := errgroup.WithContext(r.Context())
	eg.Go(func() error {
		var err error
		payload.Transactions, err = s.agg.ComputeStats(ctx, uid, from, to)
		return err
	})
	eg.Go(func() error {
		var err error
		payload.Goals, err = s.goalCalc.ComputeGoalStats(ctx, uid)
		return err
	})
	if err := eg.Wait(); err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.dashboardCache.Set(key, payload)
	writeData(w, http.StatusOK, payload)
}

// handleInsights returns the period-over-period insight report for the
// caller, comparing the rolling 30-day window against the 30 days before it.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	key := s.insightsKey(uid)
	if report, found := s.insightsCache.Get(key); found {
		slog.DebugContext(r.Context(), "Insights cache hit",
			log.FieldComponent, log.ComponentCache,
			log.FieldUserID, uid)
		writeData(w, http.StatusOK, report)
		return
	}

	report, err := s.insights.ComputeInsights(r.Context(), uid, s.now())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.insightsCache.Set(key, report)
	writeData(w, http.StatusOK, report)
}
