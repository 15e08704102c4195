package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/jobly-api/internal/apperr"
	"github.com/justsurfingit/jobly-api/internal/dtos"
	"github.com/justsurfingit/jobly-api/internal/events"
	"github.com/justsurfingit/jobly-api/internal/services"
)

type JobHandler struct {
	Jobs   JobStore
	Events *eventSink
}

func NewJobHandler(jobs JobStore, sink *eventSink) *JobHandler {
	return &JobHandler{
		Jobs:   jobs,
		Events: sink,
	}
}

// CreateJob is POST /jobs. Admin only.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.Jobs.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.Events.publish(c, events.New(events.JobCreated, strconv.Itoa(job.ID), job))
	c.JSON(http.StatusCreated, gin.H{"job": job})
}

// ListJobs is GET /jobs with optional title, minSalary and hasEquity filters.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var q dtos.JobQuery
	if !bindQuery(c, &q, dtos.JobQueryKeys) {
		return
	}
	jobs, err := h.Jobs.FindAll(c.Request.Context(), services.JobFilter{
		Title:     q.Title,
		MinSalary: q.MinSalary,
		HasEquity: q.WantsEquity(),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	job, err := h.Jobs.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

// UpdateJob is PATCH /jobs/:id. Only title, salary and equity may change.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	var req dtos.JobUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.Jobs.Update(c.Request.Context(), id, req.Changes())
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.Events.publish(c, events.New(events.JobUpdated, strconv.Itoa(job.ID), job))
	c.JSON(http.StatusOK, gin.H{"job": job})
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	if err := h.Jobs.Remove(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	h.Events.publish(c, events.New(events.JobDeleted, c.Param("id"), nil))
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func jobID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		_ = c.Error(apperr.BadRequest(fmt.Sprintf("Invalid job id: %s", c.Param("id"))))
		return 0, false
	}
	return id, true
}
