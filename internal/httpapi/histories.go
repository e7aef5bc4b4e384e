package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/koopa0/shortener/internal/model"
)

type eventResponse struct {
	ID         int64  `json:"id"`
	LinkID     int64  `json:"link_id"`
	Code       string `json:"code"`
	IP         string `json:"ip_address"`
	UserAgent  string `json:"user_agent"`
	Referer    string `json:"referer"`
	Country    string `json:"country"`
	Region     string `json:"region"`
	Province   string `json:"province"`
	City       string `json:"city"`
	ISP        string `json:"isp"`
	DeviceType string `json:"device_type"`
	OS         string `json:"os"`
	Browser    string `json:"browser"`
	AccessedAt string `json:"accessed_at"`
}

func toEventResponse(e *model.AccessEvent) eventResponse {
	return eventResponse{
		ID: e.ID, LinkID: e.LinkID, Code: e.Code, IP: e.IP, UserAgent: e.UserAgent, Referer: e.Referer,
		Country: e.Country, Region: e.Region, Province: e.Province, City: e.City, ISP: e.ISP,
		DeviceType: string(e.DeviceType), OS: e.OS, Browser: e.Browser,
		AccessedAt: e.AccessedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *Server) listHistories(c *gin.Context) {
	page := parsePage(c, model.SortByCreatedAt)
	filter := model.EventFilter{
		Code:     c.Query("code"),
		IP:       c.Query("ip_address"),
		DateFrom: parseDateParam(c.Query("date_from")),
		DateTo:   parseDateParam(c.Query("date_to")),
	}

	rows, total, err := s.history.List(c.Request.Context(), filter, page)
	if err != nil {
		writeError(c, err)
		return
	}
	data := make([]eventResponse, len(rows))
	for i, row := range rows {
		data[i] = toEventResponse(row)
	}
	writeList(c, data, page, len(data), total)
}

// parseDateParam accepts RFC3339 or a bare YYYY-MM-DD date; an unparsable or
// empty value yields the zero time, meaning "no bound" to EventFilter.
func parseDateParam(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t
	}
	return time.Time{}
}

func (s *Server) batchDeleteHistories(c *gin.Context) {
	var req batchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{ErrCode: "INVALID_REQUEST", ErrInfo: err.Error()})
		return
	}

	count, err := s.history.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, batchDeleteResponse{Count: count})
}
