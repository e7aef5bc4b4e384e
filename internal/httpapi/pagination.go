package httpapi

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/koopa0/shortener/internal/model"
)

// parsePage reads page, per_page, sort_by, order from the query string and
// normalizes them, defaulting sort to defaultSort per SPEC_FULL.md §6.
func parsePage(c *gin.Context, defaultSort model.SortKey) model.Page {
	page := model.Page{
		Number:  queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 10),
		SortBy:  model.SortKey(c.Query("sort_by")),
		Order:   model.SortOrder(c.Query("order")),
	}
	return page.Normalize(defaultSort)
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
