package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/koopa0/shortener/internal/model"
)

type createLinkRequest struct {
	OriginalURL string `json:"original_url" binding:"required"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

type updateLinkRequest struct {
	OriginalURL *string           `json:"original_url"`
	Description *string           `json:"description"`
	Status      *model.LinkStatus `json:"status"`
}

// batchDeleteRequest's IDs field intentionally carries no "required"
// validator tag: an empty ids list is a valid request that deletes nothing
// and returns count=0 (SPEC_FULL.md §8's batch-delete idempotence case), not
// a validation error.
type batchDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

type batchDeleteResponse struct {
	Count int64 `json:"count"`
}

type linkResponse struct {
	ID          int64            `json:"id"`
	Code        string           `json:"code"`
	OriginalURL string           `json:"original_url"`
	Description string           `json:"description"`
	Status      model.LinkStatus `json:"status"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

func toLinkResponse(l *model.Link) linkResponse {
	return linkResponse{
		ID:          l.ID,
		Code:        l.Code,
		OriginalURL: l.OriginalURL,
		Description: l.Description,
		Status:      l.Status,
		CreatedAt:   l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   l.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *Server) createLink(c *gin.Context) {
	var req createLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{ErrCode: "INVALID_REQUEST", ErrInfo: err.Error()})
		return
	}

	link, err := s.links.Create(c.Request.Context(), req.OriginalURL, req.Code, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toLinkResponse(link))
}

func (s *Server) listLinks(c *gin.Context) {
	page := parsePage(c, model.SortByCreatedAt)
	filter := model.LinkFilter{
		Code:            c.Query("code"),
		OriginalURLLike: c.Query("original_url"),
	}
	if raw := c.Query("status"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			status := model.LinkStatus(n)
			filter.Status = &status
		}
	}

	rows, total, err := s.links.List(c.Request.Context(), filter, page)
	if err != nil {
		writeError(c, err)
		return
	}
	data := make([]linkResponse, len(rows))
	for i, row := range rows {
		data[i] = toLinkResponse(row)
	}
	writeList(c, data, page, len(data), total)
}

func (s *Server) getLink(c *gin.Context) {
	link, err := s.links.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLinkResponse(link))
}

// updateLink handles PUT /api/shortens/{code}. The body may change
// original_url, description and status; the code itself is immutable and
// cannot be changed through this route.
func (s *Server) updateLink(c *gin.Context) {
	var req updateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{ErrCode: "INVALID_REQUEST", ErrInfo: err.Error()})
		return
	}

	patch := model.LinkPatch{OriginalURL: req.OriginalURL, Description: req.Description, Status: req.Status}
	link, err := s.links.Update(c.Request.Context(), c.Param("code"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLinkResponse(link))
}

func (s *Server) deleteLink(c *gin.Context) {
	if err := s.links.Delete(c.Request.Context(), c.Param("code")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) batchDeleteLinks(c *gin.Context) {
	var req batchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{ErrCode: "INVALID_REQUEST", ErrInfo: err.Error()})
		return
	}

	count, err := s.links.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, batchDeleteResponse{Count: count})
}
