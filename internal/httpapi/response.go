package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/koopa0/shortener/internal/model"
	"go.uber.org/zap"
)

// listEnvelope is the pagination wrapper SPEC_FULL.md §6 names:
// {data: [...], meta: {...}}.
type listEnvelope struct {
	Data any            `json:"data"`
	Meta model.PageMeta `json:"meta"`
}

func writeList(c *gin.Context, data any, page model.Page, count int, total int64) {
	c.JSON(http.StatusOK, listEnvelope{Data: data, Meta: model.NewPageMeta(page, count, total)})
}

func writeError(c *gin.Context, err error) {
	status, tag := statusFor(err)
	if status >= http.StatusInternalServerError {
		loggerFrom(c).Error("request failed", zap.Error(err), zap.String("errcode", tag))
	}
	info := err.Error()
	if tag == "STORAGE_ERROR" {
		// Storage detail is logged above, not sent to the client.
		info = "internal storage error"
	}
	c.AbortWithStatusJSON(status, errorBody{ErrCode: tag, ErrInfo: info})
}
