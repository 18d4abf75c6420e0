package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mwhite/daybrief/internal/engine"
	"github.com/mwhite/daybrief/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func itemJSON(it store.Item) map[string]any {
	out := map[string]any{
		"id":              it.ID,
		"description":     it.Description,
		"status":          it.Status,
		"added_at":        it.Added().Format(time.RFC3339),
		"last_touched_at": it.LastTouched().Format(time.RFC3339),
	}
	if it.CompletedAt != nil {
		out["completed_at"] = time.UnixMilli(*it.CompletedAt).Format(time.RFC3339)
	}
	return out
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	var items []store.Item
	var err error
	if r.URL.Query().Get("all") == "true" {
		items, err = s.db.ListItems()
	} else {
		items, err = s.db.ListOpenItems()
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, itemJSON(it))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "description required")
		return
	}

	it, err := s.db.CreateItem(req.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, itemJSON(*it))
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	it, err := s.db.GetItem(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if it == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	out := itemJSON(*it)
	if notes, err := s.db.NotesForItem(it.ID); err == nil && len(notes) > 0 {
		noteList := make([]map[string]any, 0, len(notes))
		for _, n := range notes {
			noteList = append(noteList, map[string]any{
				"title":      n.Title,
				"body":       n.Body,
				"created_at": time.UnixMilli(n.CreatedAt).Format(time.RFC3339),
			})
		}
		out["notes"] = noteList
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTouchItem(w http.ResponseWriter, r *http.Request) {
	s.mutateItem(w, chi.URLParam(r, "itemID"), s.db.TouchItem, "touched")
}

func (s *Server) handleCompleteItem(w http.ResponseWriter, r *http.Request) {
	s.mutateItem(w, chi.URLParam(r, "itemID"), s.db.CompleteItem, "done")
}

func (s *Server) mutateItem(w http.ResponseWriter, id string, op func(string) error, status string) {
	it, err := s.db.GetItem(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if it == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	if err := op(it.ID); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status, "id": it.ID})
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"item_id"`
		Title  string `json:"title"`
		Body   string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title required")
		return
	}

	if req.ItemID != "" {
		it, err := s.db.GetItem(req.ItemID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if it == nil {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		req.ItemID = it.ID
	}

	n, err := s.db.AddNote(req.ItemID, req.Title, req.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": n.ID, "title": n.Title})
}

// parseDate reads a ?date=YYYY-MM-DD query param, defaulting to today.
func parseDate(r *http.Request) (time.Time, error) {
	q := r.URL.Query().Get("date")
	if q == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", q)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	plan, err := s.engine.PlanDay(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":     plan.Date.Format("2006-01-02"),
		"analysis": analysisJSON(plan.Analysis),
		"items":    reportJSON(plan.Items),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	report, err := s.engine.Status(time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reportJSON(report))
}

func (s *Server) handleReflect(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	ref, err := s.engine.Reflect(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	touched := make([]map[string]any, 0, len(ref.Touched))
	for _, it := range ref.Touched {
		touched = append(touched, itemJSON(it))
	}
	completed := make([]map[string]any, 0, len(ref.Completed))
	for _, it := range ref.Completed {
		completed = append(completed, itemJSON(it))
	}

	out := map[string]any{
		"date":      ref.Date.Format("2006-01-02"),
		"touched":   touched,
		"completed": completed,
		"notes":     len(ref.Notes),
	}
	if ref.Tomorrow != nil {
		out["tomorrow"] = analysisJSON(ref.Tomorrow)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleWeeklyReview(w http.ResponseWriter, r *http.Request) {
	review, err := s.engine.WeeklyReview(r.Context(), time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	load := make([]map[string]any, 0, len(review.MeetingLoad))
	for _, d := range review.MeetingLoad {
		load = append(load, map[string]any{
			"date":          d.Date.Format("2006-01-02"),
			"meeting_min":   int(d.TotalMeeting.Minutes()),
			"meeting_heavy": d.MeetingHeavy,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"period_start": review.PeriodStart.Format("2006-01-02"),
		"period_end":   review.PeriodEnd.Format("2006-01-02"),
		"added":        len(review.Added),
		"completed":    len(review.Completed),
		"open":         reportJSON(review.Open),
		"meeting_load": load,
	})
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.db.RecentReviews(r.URL.Query().Get("kind"), 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]map[string]any, 0, len(reviews))
	for _, rev := range reviews {
		out = append(out, map[string]any{
			"kind":         rev.Kind,
			"period_start": time.UnixMilli(rev.PeriodStart).Format("2006-01-02"),
			"period_end":   time.UnixMilli(rev.PeriodEnd).Format("2006-01-02"),
			"summary":      rev.Summary,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": out})
}

func analysisJSON(a *engine.DayAnalysis) map[string]any {
	free := make([]map[string]any, 0, len(a.FreeIntervals))
	for _, f := range a.FreeIntervals {
		free = append(free, map[string]any{
			"start":    f.Start.Format(time.RFC3339),
			"end":      f.End.Format(time.RFC3339),
			"duration": int(f.Duration().Minutes()),
		})
	}

	warnings := make([]map[string]any, 0, len(a.BackToBack))
	for _, b := range a.BackToBack {
		warnings = append(warnings, map[string]any{
			"first":   b.First.Title,
			"second":  b.Second.Title,
			"gap_min": int(b.Gap.Minutes()),
		})
	}

	return map[string]any{
		"total_meeting_min": int(a.TotalMeeting.Minutes()),
		"meeting_heavy":     a.MeetingHeavy,
		"free_intervals":    free,
		"back_to_back":      warnings,
	}
}

func reportJSON(report *engine.StalenessReport) map[string]any {
	items := make([]map[string]any, 0, len(report.Classified))
	for _, c := range report.Classified {
		items = append(items, map[string]any{
			"id":          c.Item.ID,
			"description": c.Item.Description,
			"freshness":   string(c.Freshness),
		})
	}

	counts := map[string]int{}
	for f, n := range report.Counts {
		counts[string(f)] = n
	}

	out := map[string]any{"items": items, "counts": counts}
	if len(report.Errors) > 0 {
		errs := make([]string, 0, len(report.Errors))
		for _, err := range report.Errors {
			errs = append(errs, err.Error())
		}
		out["errors"] = errs
	}
	return out
}
