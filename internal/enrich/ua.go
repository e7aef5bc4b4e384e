package enrich

import (
	"strings"

	"github.com/koopa0/shortener/internal/model"
	"github.com/mssola/user_agent"
)

// UaInfo is the result of parsing a User-Agent header.
type UaInfo struct {
	DeviceType model.DeviceType
	OS         string
	Browser    string
}

// ParseUA classifies a raw User-Agent header. Upgraded from the original's
// hand-rolled substring matching (services/history_service.rs's
// parse_user_agent, which greps for "ipad"/"tablet"/"mobile") to the
// mssola/user_agent ecosystem parser; a parser panic on malformed input is
// recovered into an unknown-but-valid result rather than propagating.
func ParseUA(raw string) (info UaInfo) {
	if raw == "" {
		return UaInfo{DeviceType: model.DeviceUnknown}
	}

	defer func() {
		if recover() != nil {
			info = UaInfo{DeviceType: model.DeviceUnknown}
		}
	}()

	ua := user_agent.New(raw)
	browserName, browserVersion := ua.Browser()
	browser := browserName
	if browserVersion != "" {
		browser = browserName + " " + browserVersion
	}

	return UaInfo{
		DeviceType: classifyDevice(ua, raw),
		OS:         ua.OS(),
		Browser:    browser,
	}
}

func classifyDevice(ua *user_agent.UserAgent, raw string) model.DeviceType {
	switch {
	case ua.Bot():
		return model.DeviceUnknown
	case containsAny(raw, "iPad", "Tablet", "Nexus 7", "Nexus 10"):
		return model.DeviceTablet
	case ua.Mobile():
		return model.DeviceMobile
	default:
		return model.DevicePC
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
