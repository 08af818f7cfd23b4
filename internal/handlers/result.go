package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pendulab/pendulum-backend/internal/logger"
	"github.com/pendulab/pendulum-backend/internal/services"
)

type ResultHandler struct {
	log           *logger.Logger
	resultService services.ResultService
}

func NewResultHandler(log *logger.Logger, resultService services.ResultService) *ResultHandler {
	return &ResultHandler{
		log:           log.With("handler", "ResultHandler"),
		resultService: resultService,
	}
}

// Result ids are opaque strings on the wire; anything that does not parse as
// a uuid cannot resolve, so it reports not-found rather than bad-request.
func parseResultID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "result_not_found", errors.New("Result not found"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *ResultHandler) Create(c *gin.Context) {
	var req services.CreateResultInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "no_result_data", errors.New("No result data"))
		return
	}

	result, err := h.resultService.CreateResult(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Create result failed", "error", err)
		RespondFailure(c, err)
		return
	}
	RespondCreated(c, result)
}

func (h *ResultHandler) List(c *gin.Context) {
	results, err := h.resultService.GetResults(c.Request.Context(), parseListParams(c))
	if err != nil {
		h.log.Error("List results failed", "error", err)
		RespondFailure(c, err)
		return
	}
	RespondOK(c, results)
}

func (h *ResultHandler) Get(c *gin.Context) {
	id, ok := parseResultID(c)
	if !ok {
		return
	}
	result, err := h.resultService.GetResult(c.Request.Context(), id)
	if err != nil {
		RespondFailure(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *ResultHandler) Update(c *gin.Context) {
	id, ok := parseResultID(c)
	if !ok {
		return
	}
	var req services.UpdateResultInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "no_result_data", errors.New("No result data"))
		return
	}

	result, err := h.resultService.UpdateResult(c.Request.Context(), id, req)
	if err != nil {
		h.log.Error("Update result failed", "result_id", id, "error", err)
		RespondFailure(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *ResultHandler) Delete(c *gin.Context) {
	id, ok := parseResultID(c)
	if !ok {
		return
	}
	result, err := h.resultService.DeleteResult(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Delete result failed", "result_id", id, "error", err)
		RespondFailure(c, err)
		return
	}
	RespondOK(c, result)
}
