package storage

import (
	"time"

	"github.com/koopa0/shortener/internal/model"
)

// linkRow is the gorm-mapped row for links. A separate type from model.Link
// keeps the domain package free of persistence tags.
type linkRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	Code        string `gorm:"uniqueIndex;size:20;not null"`
	OriginalURL string `gorm:"type:text;not null"`
	Description string `gorm:"type:text"`
	Status      int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (linkRow) TableName() string { return "links" }

func (r *linkRow) toDomain() *model.Link {
	return &model.Link{
		ID:          r.ID,
		Code:        r.Code,
		OriginalURL: r.OriginalURL,
		Description: r.Description,
		Status:      model.LinkStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func linkRowFromDomain(l *model.Link) *linkRow {
	return &linkRow{
		ID:          l.ID,
		Code:        l.Code,
		OriginalURL: l.OriginalURL,
		Description: l.Description,
		Status:      int(l.Status),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// eventRow is the gorm-mapped row for access events.
type eventRow struct {
	ID         int64  `gorm:"primaryKey;autoIncrement:false"`
	LinkID     int64  `gorm:"index"`
	Code       string `gorm:"index;size:20;not null"`
	IP         string `gorm:"index;size:64"`
	UserAgent  string `gorm:"type:text"`
	Referer    string `gorm:"type:text"`
	Country    string `gorm:"size:64"`
	Region     string `gorm:"size:64"`
	Province   string `gorm:"size:64"`
	City       string `gorm:"size:64"`
	ISP        string `gorm:"size:128"`
	DeviceType string `gorm:"size:16"`
	OS         string `gorm:"size:64"`
	Browser    string `gorm:"size:64"`
	AccessedAt time.Time
	CreatedAt  time.Time
}

func (eventRow) TableName() string { return "access_events" }

func (r *eventRow) toDomain() *model.AccessEvent {
	return &model.AccessEvent{
		ID:         r.ID,
		LinkID:     r.LinkID,
		Code:       r.Code,
		IP:         r.IP,
		UserAgent:  r.UserAgent,
		Referer:    r.Referer,
		Country:    r.Country,
		Region:     r.Region,
		Province:   r.Province,
		City:       r.City,
		ISP:        r.ISP,
		DeviceType: model.DeviceType(r.DeviceType),
		OS:         r.OS,
		Browser:    r.Browser,
		AccessedAt: r.AccessedAt,
		CreatedAt:  r.CreatedAt,
	}
}

func eventRowFromDomain(e *model.AccessEvent) *eventRow {
	return &eventRow{
		ID:         e.ID,
		LinkID:     e.LinkID,
		Code:       e.Code,
		IP:         e.IP,
		UserAgent:  e.UserAgent,
		Referer:    e.Referer,
		Country:    e.Country,
		Region:     e.Region,
		Province:   e.Province,
		City:       e.City,
		ISP:        e.ISP,
		DeviceType: string(e.DeviceType),
		OS:         e.OS,
		Browser:    e.Browser,
		AccessedAt: e.AccessedAt,
		CreatedAt:  e.CreatedAt,
	}
}
