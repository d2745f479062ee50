package jobs

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"jobportal/internal/contextutils"
	"jobportal/internal/response"
	"jobportal/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type JobController struct {
	services  *services.Collection
	logger    *zap.Logger
	builder   *response.Builder
	maxUpload int64
}

// NewJobController creates a new job controller
func NewJobController(svcs *services.Collection, logger *zap.Logger, builder *response.Builder, maxUpload int64) *JobController {
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &JobController{services: svcs, logger: logger, builder: builder, maxUpload: maxUpload}
}

// List handles GET /jobs
func (c *JobController) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := c.services.Job.List(r.Context())
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, jobs)
}

// Get handles GET /jobs/{id}; every successful read counts one view
func (c *JobController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	job, err := c.services.Job.Get(r.Context(), id)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, job)
}

// Create handles POST /jobs
func (c *JobController) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(r.Context(), w, services.NewValidationError("invalid request body", err))
		return
	}

	job, err := c.services.Job.Create(r.Context(), contextutils.GetPrincipal(r.Context()), &req)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteCreated(r.Context(), w, job)
}

// Update handles PUT /jobs/{id}
func (c *JobController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	var req services.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(r.Context(), w, services.NewValidationError("invalid request body", err))
		return
	}
	if req.ID != 0 && req.ID != id {
		c.builder.WriteError(r.Context(), w, services.NewConflictError("body id does not match path id", "ID_MISMATCH"))
		return
	}
	req.ID = id

	job, err := c.services.Job.Update(r.Context(), contextutils.GetPrincipal(r.Context()), &req)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, job)
}

// Delete handles DELETE /jobs/{id}
func (c *JobController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	if err := c.services.Job.Delete(r.Context(), contextutils.GetPrincipal(r.Context()), id); err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteNoContent(w)
}

// Search handles GET /jobs/search. All filters are optional query
// parameters and apply conjunctively.
func (c *JobController) Search(w http.ResponseWriter, r *http.Request) {
	q := queryReader{values: r.URL.Query()}
	req := services.SearchJobsRequest{
		Title:               q.str("title"),
		CompanyName:         q.str("companyName"),
		Location:            q.str("location"),
		MinApplicationCount: q.intPtr("minApplicationCount"),
		MaxApplicationCount: q.intPtr("maxApplicationCount"),
		MinFavoriteCount:    q.intPtr("minFavoriteCount"),
		MaxFavoriteCount:    q.intPtr("maxFavoriteCount"),
		MinViewCount:        q.intPtr("minViewCount"),
		MaxViewCount:        q.intPtr("maxViewCount"),
	}
	if q.err != nil {
		c.builder.WriteError(r.Context(), w, services.NewValidationError("invalid search filters", q.err))
		return
	}

	jobs, err := c.services.Job.Search(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, jobs)
}

// Paginated handles GET /jobs/paginated?pageNumber=&pageSize=
func (c *JobController) Paginated(w http.ResponseWriter, r *http.Request) {
	req := services.PaginateJobsRequest{
		PageNumber: queryInt(r, "pageNumber", 1),
		PageSize:   queryInt(r, "pageSize", 10),
	}

	jobs, err := c.services.Job.Paginate(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, jobs)
}

// Statistics handles GET /jobs/statistics/{id}
func (c *JobController) Statistics(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	stats, err := c.services.Job.Statistics(r.Context(), contextutils.GetPrincipal(r.Context()), id)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, stats)
}

// EmployerPosts handles GET /jobs/employer/post
func (c *JobController) EmployerPosts(w http.ResponseWriter, r *http.Request) {
	jobs, err := c.services.Job.ListByOwner(r.Context(), contextutils.GetPrincipal(r.Context()))
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, jobs)
}

// Apply handles POST /jobs/{id}/apply with an optional multipart CV
// under field cvFile
func (c *JobController) Apply(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	req := services.ApplyRequest{JobID: id}

	r.Body = http.MaxBytesReader(w, r.Body, c.maxUpload)
	if err := r.ParseMultipartForm(c.maxUpload); err == nil {
		if file, header, err := r.FormFile("cvFile"); err == nil {
			defer file.Close()
			req.CV = &services.CVUpload{FileName: header.Filename, Content: file}
		}
	}

	app, err := c.services.Application.Apply(r.Context(), contextutils.GetPrincipal(r.Context()), &req)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteCreated(r.Context(), w, app)
}

// UpdateApplicationStatus handles PUT /jobs/{jobId}/applications/{applicationId}
func (c *JobController) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "jobId")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	appID, err := pathID(r, "applicationId")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	var req services.UpdateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(r.Context(), w, services.NewValidationError("invalid request body", err))
		return
	}
	req.JobID = jobID
	req.ApplicationID = appID

	app, err := c.services.Application.UpdateStatus(r.Context(), contextutils.GetPrincipal(r.Context()), &req)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, app)
}

// DownloadCV handles both CV download routes; the role gate differs at
// the route, the ownership rule lives in the service
func (c *JobController) DownloadCV(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	download, err := c.services.Application.DownloadCV(r.Context(), contextutils.GetPrincipal(r.Context()), id)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	defer download.Content.Close()

	w.Header().Set("Content-Type", download.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.FileName))
	if _, err := io.Copy(w, download.Content); err != nil {
		c.logger.Error("Failed to stream CV", zap.Int64("application_id", id), zap.Error(err))
	}
}

// EmployerApplications handles GET /jobs/employer/applications
func (c *JobController) EmployerApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := c.services.Application.ListForEmployer(r.Context(), contextutils.GetPrincipal(r.Context()))
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, apps)
}

// AddFavorite handles POST /jobs/{id}/favorite
func (c *JobController) AddFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	if err := c.services.Engagement.AddFavorite(r.Context(), contextutils.GetPrincipal(r.Context()), id); err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteCreated(r.Context(), w, map[string]int64{"job_id": id})
}

// RemoveFavorite handles DELETE /jobs/{id}/favorite
func (c *JobController) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	if err := c.services.Engagement.RemoveFavorite(r.Context(), contextutils.GetPrincipal(r.Context()), id); err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteNoContent(w)
}

// ListFavorites handles GET /jobs/favorites
func (c *JobController) ListFavorites(w http.ResponseWriter, r *http.Request) {
	jobs, err := c.services.Engagement.ListFavorites(r.Context(), contextutils.GetPrincipal(r.Context()))
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, jobs)
}

// AddComment handles POST /jobs/{id}/comment
func (c *JobController) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	var req services.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(r.Context(), w, services.NewValidationError("invalid request body", err))
		return
	}
	req.JobID = id

	comment, err := c.services.Engagement.AddComment(r.Context(), contextutils.GetPrincipal(r.Context()), &req)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteCreated(r.Context(), w, comment)
}

// ListComments handles GET /jobs/{id}/comments; readable anonymously
func (c *JobController) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	comments, err := c.services.Engagement.ListComments(r.Context(), id)
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteSuccess(r.Context(), w, comments)
}

// DeleteComment handles DELETE /jobs/comment/{id}
func (c *JobController) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}

	if err := c.services.Engagement.DeleteComment(r.Context(), contextutils.GetPrincipal(r.Context()), id); err != nil {
		c.builder.WriteError(r.Context(), w, err)
		return
	}
	c.builder.WriteNoContent(w)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError(fmt.Sprintf("invalid %s", name), err)
	}
	return id, nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// queryReader collects optional filter parameters, remembering the
// first malformed value.
type queryReader struct {
	values url.Values
	err    error
}

func (q *queryReader) str(name string) *string {
	if v := q.values.Get(name); v != "" {
		return &v
	}
	return nil
}

func (q *queryReader) intPtr(name string) *int {
	v := q.values.Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		if q.err == nil {
			q.err = fmt.Errorf("parameter %q must be an integer: %w", name, err)
		}
		return nil
	}
	return &n
}
