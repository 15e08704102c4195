package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/jobly-api/internal/dtos"
	"github.com/justsurfingit/jobly-api/internal/events"
	"github.com/justsurfingit/jobly-api/internal/services"
)

type CompanyHandler struct {
	Companies CompanyStore
	Events    *eventSink
}

func NewCompanyHandler(companies CompanyStore, sink *eventSink) *CompanyHandler {
	return &CompanyHandler{Companies: companies, Events: sink}
}

func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req dtos.CompanyCreationRequest
	if !bindJSON(c, &req) {
		return
	}
	company, err := h.Companies.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.Events.publish(c, events.New(events.CompanyCreated, company.Handle, company))
	c.JSON(http.StatusCreated, gin.H{"company": company})
}

// ListCompanies is GET /companies with optional nameLike, minEmployees and maxEmployees.
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	var q dtos.CompanyQuery
	if !bindQuery(c, &q, dtos.CompanyQueryKeys) {
		return
	}
	companies, err := h.Companies.FindAll(c.Request.Context(), services.CompanyFilter{
		NameLike:     q.NameLike,
		MinEmployees: q.MinEmployees,
		MaxEmployees: q.MaxEmployees,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.Companies.Get(c.Request.Context(), c.Param("handle"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	var req dtos.CompanyUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	company, err := h.Companies.Update(c.Request.Context(), c.Param("handle"), req.Changes())
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.Events.publish(c, events.New(events.CompanyUpdated, company.Handle, company))
	c.JSON(http.StatusOK, gin.H{"company": company})
}

func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	handle := c.Param("handle")
	if err := h.Companies.Remove(c.Request.Context(), handle); err != nil {
		_ = c.Error(err)
		return
	}
	h.Events.publish(c, events.New(events.CompanyDeleted, handle, nil))
	c.JSON(http.StatusOK, gin.H{"deleted": handle})
}
