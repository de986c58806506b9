package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appassessments "github.com/vendorvet/vendorvet/internal/application/assessments"
	appreviews "github.com/vendorvet/vendorvet/internal/application/reviews"
	appstandards "github.com/vendorvet/vendorvet/internal/application/standards"
	"github.com/vendorvet/vendorvet/internal/domain/assessment"
	"github.com/vendorvet/vendorvet/internal/domain/ingestion"
	"github.com/vendorvet/vendorvet/internal/domain/review"
	"github.com/vendorvet/vendorvet/internal/domain/standard"
	"github.com/vendorvet/vendorvet/internal/middleware"
)

type Router struct {
	assessSvc   *appassessments.Service
	standardSvc *appstandards.Service
	reviewSvc   *appreviews.Service
}

type Options struct {
	AllowedOrigins []string
	HealthCheckers map[string]middleware.HealthChecker
}

func NewRouter(assessSvc *appassessments.Service, standardSvc *appstandards.Service, reviewSvc *appreviews.Service, opts Options) http.Handler {
	r := &Router{assessSvc: assessSvc, standardSvc: standardSvc, reviewSvc: reviewSvc}
	mux := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers))
	mux.Get("/health/live", middleware.LivenessHandler)
	mux.Get("/health/ready", middleware.ReadinessHandler(opts.HealthCheckers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Use(middleware.RequireTenantMatch(func(req *http.Request) string {
			return chi.URLParam(req, "tenant")
		}))

		rt.Post("/assessments/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/assessments/latest", r.wrap(r.handleLatest))
		rt.Get("/assessments", r.wrap(r.handlePaginate))
		rt.Get("/assessments/{id}", r.wrap(r.handleGet))
		rt.Get("/assessments/{id}/ingest-errors", r.wrap(r.handleIngestErrors))
		rt.Get("/summary", r.wrap(r.handleSummary))
		rt.Post("/headers", r.wrap(r.handleHeaders))

		rt.Post("/standards", r.wrap(r.handleSaveStandard))
		rt.Get("/standards", r.wrap(r.handleListStandards))
		rt.Get("/standards/active", r.wrap(r.handleActiveStandard))
		rt.Get("/standards/{id}", r.wrap(r.handleGetStandard))
		rt.Put("/standards/{id}", r.wrap(r.handleSaveStandard))
		rt.Delete("/standards/{id}", r.wrap(r.handleDeleteStandard))
		rt.Post("/standards/{id}/activate", r.wrap(r.handleActivateStandard))

		rt.Post("/review-sets", r.wrap(r.handleCreateReviewSet))
		rt.Get("/review-sets", r.wrap(r.handleListReviewSets))
		rt.Get("/review-sets/{id}", r.wrap(r.handleGetReviewSet))
		rt.Delete("/review-sets/{id}", r.wrap(r.handleDeleteReviewSet))
		rt.Post("/review-sets/{id}/reports/{rid}", r.wrap(r.handleAttachReport))
		rt.Patch("/review-sets/{id}/status", r.wrap(r.handleReviewStatus))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

func badRequest(err error) error { return badRequestError{err: err} }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var br badRequestError
			switch {
			case errors.Is(err, sql.ErrNoRows),
				errors.Is(err, assessment.ErrNotFound),
				errors.Is(err, standard.ErrNotFound),
				errors.Is(err, review.ErrNotFound):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, ingestion.ErrEmptyFile),
				errors.Is(err, ingestion.ErrColumnNotFound):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.As(err, &br):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// POST /v1/{tenant}/assessments/analyze
// Body: {"file_name": "...", "file_text": "<raw csv>", "mapping": {...}}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")

	var body struct {
		FileName string `json:"file_name"`
		FileText string `json:"file_text"`
		Mapping  struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
			Category string `json:"category"`
			Supplier string `json:"supplier"`
		} `json:"mapping"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(err)
	}
	if body.FileText == "" {
		return badRequest(fmt.Errorf("file_text is required"))
	}
	if body.FileName != "" {
		if err := middleware.ValidateFileName(body.FileName); err != nil {
			return badRequest(err)
		}
	}

	report, err := r.assessSvc.Analyze(req.Context(), appassessments.AnalyzeCommand{
		TenantID: tenant,
		FileName: body.FileName,
		FileText: body.FileText,
		Mapping: ingestion.ColumnMapping{
			Question: body.Mapping.Question,
			Answer:   body.Mapping.Answer,
			Category: body.Mapping.Category,
			Supplier: body.Mapping.Supplier,
		},
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}
	middleware.IncrementAnalyses()
	middleware.AddRowsClassified(uint64(len(report.Rows)))

	return writeJSON(w, report)
}

// GET /v1/{tenant}/assessments/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.assessSvc.Latest(req.Context(), tenant, limit)
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// GET /v1/{tenant}/assessments?page=&page_size=&file_name=&standard=&min_score=
func (r *Router) handlePaginate(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	q := req.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("page_size"))

	filters := map[string]interface{}{}
	if v := q.Get("file_name"); v != "" {
		filters["file_name"] = v
	}
	if v := q.Get("standard"); v != "" {
		filters["standard"] = v
	}
	if v := q.Get("min_score"); v != "" {
		minScore, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(fmt.Errorf("invalid min_score: %q", v))
		}
		filters["min_score"] = minScore
	}

	result, err := r.assessSvc.Paginate(req.Context(), tenant, page, size, filters)
	if err != nil {
		return err
	}
	return writeJSON(w, result)
}

// GET /v1/{tenant}/assessments/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	report, err := r.assessSvc.Get(req.Context(), tenant, assessment.ReportID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, report)
}

// GET /v1/{tenant}/assessments/{id}/ingest-errors?limit=50
func (r *Router) handleIngestErrors(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.assessSvc.IngestErrors(req.Context(), tenant, id, limit)
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// GET /v1/{tenant}/summary?days=7
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))
	days = middleware.ValidateDays(days)

	summary, err := r.assessSvc.Summary(req.Context(), tenant, days)
	if err != nil {
		return err
	}
	return writeJSON(w, summary)
}

// POST /v1/{tenant}/headers
// Body: {"file_text": "<raw csv>"} -> ["Question","Answer",...]
func (r *Router) handleHeaders(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		FileText string `json:"file_text"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(err)
	}

	headers, err := r.assessSvc.Ingester.Headers(body.FileText)
	if err != nil {
		return err
	}
	return writeJSON(w, headers)
}

// POST /v1/{tenant}/standards
// PUT  /v1/{tenant}/standards/{id}
func (r *Router) handleSaveStandard(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	var body struct {
		Name string `json:"name"`
		Rows []struct {
			Question       string `json:"question"`
			PassAnswer     string `json:"pass_answer"`
			ConsiderAnswer string `json:"consider_answer"`
			FailAnswer     string `json:"fail_answer"`
		} `json:"rows"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(err)
	}

	rows := make([]standard.MasterRow, 0, len(body.Rows))
	for _, row := range body.Rows {
		rows = append(rows, standard.MasterRow{
			Question:       row.Question,
			PassAnswer:     row.PassAnswer,
			ConsiderAnswer: row.ConsiderAnswer,
			FailAnswer:     row.FailAnswer,
		})
	}

	set, err := r.standardSvc.Save(req.Context(), appstandards.SaveSetCommand{
		TenantID: tenant,
		ID:       id,
		Name:     body.Name,
		Rows:     rows,
	})
	if err != nil {
		return badRequest(err)
	}
	return writeJSON(w, set)
}

// GET /v1/{tenant}/standards
func (r *Router) handleListStandards(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")

	list, err := r.standardSvc.List(req.Context(), tenant)
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// GET /v1/{tenant}/standards/{id}
func (r *Router) handleGetStandard(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	set, err := r.standardSvc.Get(req.Context(), tenant, standard.SetID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, set)
}

// DELETE /v1/{tenant}/standards/{id}
func (r *Router) handleDeleteStandard(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	if err := r.standardSvc.Delete(req.Context(), tenant, standard.SetID(id)); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// POST /v1/{tenant}/standards/{id}/activate
func (r *Router) handleActivateStandard(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	if err := r.standardSvc.Activate(req.Context(), tenant, standard.SetID(id)); err != nil {
		return err
	}
	return writeJSON(w, map[string]any{"status": "activated", "id": id})
}

// GET /v1/{tenant}/standards/active
func (r *Router) handleActiveStandard(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")

	set, err := r.standardSvc.Active(req.Context(), tenant)
	if err != nil {
		return err
	}
	return writeJSON(w, set)
}

// POST /v1/{tenant}/review-sets
func (r *Router) handleCreateReviewSet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(err)
	}

	set, err := r.reviewSvc.Create(req.Context(), appreviews.CreateCommand{
		TenantID:    tenant,
		Name:        middleware.SanitizeString(body.Name),
		Description: middleware.SanitizeString(body.Description),
	})
	if err != nil {
		return badRequest(err)
	}
	return writeJSON(w, set)
}

// GET /v1/{tenant}/review-sets
func (r *Router) handleListReviewSets(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")

	list, err := r.reviewSvc.List(req.Context(), tenant)
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// GET /v1/{tenant}/review-sets/{id}
func (r *Router) handleGetReviewSet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	set, err := r.reviewSvc.Get(req.Context(), tenant, review.SetID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, set)
}

// DELETE /v1/{tenant}/review-sets/{id}
func (r *Router) handleDeleteReviewSet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	if err := r.reviewSvc.Delete(req.Context(), tenant, review.SetID(id)); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// POST /v1/{tenant}/review-sets/{id}/reports/{rid}
func (r *Router) handleAttachReport(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	rid := chi.URLParam(req, "rid")

	if err := middleware.ValidateReportID(rid); err != nil {
		return badRequest(err)
	}
	if err := r.reviewSvc.AttachReport(req.Context(), tenant, review.SetID(id), rid); err != nil {
		return err
	}
	return writeJSON(w, map[string]any{"status": "attached", "report_id": rid})
}

// PATCH /v1/{tenant}/review-sets/{id}/status
// Body: {"status": "Open"|"Closed"|"Archived"}, case-insensitive
func (r *Router) handleReviewStatus(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(err)
	}

	if err := r.reviewSvc.UpdateStatus(req.Context(), tenant, review.SetID(id), review.Status(body.Status)); err != nil {
		return badRequest(err)
	}
	return writeJSON(w, map[string]any{"status": body.Status, "id": id})
}
