package model

import "time"

// DeviceType is the coarse device classification produced by enrichment.
type DeviceType string

const (
	DevicePC      DeviceType = "pc"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceUnknown DeviceType = "unknown"
)

// AccessEvent records one redirect occurrence plus its enrichment data.
// Deliberately not foreign-keyed to Link in a cascading way: Code is the
// durable join key once a Link row is gone (see DESIGN.md Open Questions).
type AccessEvent struct {
	ID         int64
	LinkID     int64
	Code       string
	IP         string
	UserAgent  string
	Referer    string
	Country    string
	Region     string
	Province   string
	City       string
	ISP        string
	DeviceType DeviceType
	OS         string
	Browser    string
	AccessedAt time.Time
	CreatedAt  time.Time
}

// EventFilter narrows ListEvents results. DateFrom/DateTo bound AccessedAt
// (inclusive) and are zero-valued when unset.
type EventFilter struct {
	Code     string
	IP       string
	DateFrom time.Time
	DateTo   time.Time
}
