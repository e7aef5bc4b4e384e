package enrich

import (
	"testing"

	"github.com/koopa0/shortener/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestNilGeoLookupIsEmpty(t *testing.T) {
	var g *Geo
	info := g.Lookup("203.0.113.1")
	assert.True(t, info.IsEmpty())
}

func TestParseRegionString(t *testing.T) {
	info := parseRegionString("中国|0|浙江省|杭州市|电信")
	assert.Equal(t, "中国", info.Country)
	assert.Equal(t, "", info.Region)
	assert.Equal(t, "浙江省", info.Province)
	assert.Equal(t, "杭州市", info.City)
	assert.Equal(t, "电信", info.ISP)
	assert.False(t, info.IsEmpty())
}

func TestParseRegionStringAllPlaceholders(t *testing.T) {
	info := parseRegionString("0|0|0|0|0")
	assert.True(t, info.IsEmpty())
}

func TestParseUAEmpty(t *testing.T) {
	info := ParseUA("")
	assert.Equal(t, model.DeviceUnknown, info.DeviceType)
}

func TestParseUADesktopChrome(t *testing.T) {
	info := ParseUA("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	assert.Equal(t, model.DevicePC, info.DeviceType)
	assert.NotEmpty(t, info.OS)
}

func TestParseUAMobile(t *testing.T) {
	info := ParseUA("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
	assert.Equal(t, model.DeviceMobile, info.DeviceType)
}

func TestParseUATablet(t *testing.T) {
	info := ParseUA("Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
	assert.Equal(t, model.DeviceTablet, info.DeviceType)
}
