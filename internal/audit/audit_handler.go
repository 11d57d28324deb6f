package audit

import (
	"net/http"
	"strconv"
	"time"

	"swiftpay/internal/shared/apperror"
	"swiftpay/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := ListFilter{
		ActorID:    c.Query("actor_id"),
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
	}

	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid from date, expected YYYY-MM-DD", nil)
			return
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid to date, expected YYYY-MM-DD", nil)
			return
		}
		// inclusive end of day
		t = t.Add(24*time.Hour - time.Second)
		filter.To = &t
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	rows, err := h.repo.FindAll(ctx, filter)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp := make([]AuditLogResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	response.Success(c, http.StatusOK, resp, nil)
}
