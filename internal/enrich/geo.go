// Package enrich wraps two external lookups the redirect pipeline uses to
// annotate access events: geolocation and user-agent parsing. Both wrappers
// follow the graceful-degradation pattern of
// _examples/original_source/shortener-server/src/geoip/mod.rs's GeoIp trait
// (lookup_or_empty): a failure never propagates, it yields an empty result.
package enrich

import (
	"strings"

	"github.com/lionsoul2014/ip2region/binding/golang/xdb"
)

// GeoInfo is the result of a geolocation lookup. Any field may be empty.
type GeoInfo struct {
	Country  string
	Region   string
	Province string
	City     string
	ISP      string
}

// IsEmpty reports whether every field is empty, matching GeoIpInfo::is_empty
// in the original implementation.
func (g GeoInfo) IsEmpty() bool {
	return g.Country == "" && g.Region == "" && g.Province == "" && g.City == "" && g.ISP == ""
}

// CachePolicy selects how the ip2region database is held in memory, mapped
// 1:1 onto the three policies in geoip/ip2region.rs.
type CachePolicy string

const (
	// CacheNone performs per-lookup file IO, no caching.
	CacheNone CachePolicy = "none"
	// CacheIndex caches the vector index only (recommended default).
	CacheIndex CachePolicy = "index"
	// CacheFull loads the entire database file into memory.
	CacheFull CachePolicy = "full"
)

// Geo is the geolocation lookup. The zero value (no searcher configured)
// answers every lookup with an empty GeoInfo.
type Geo struct {
	searcher *xdb.Searcher
}

// NewGeo opens the ip2region database at path under the given cache policy.
// Any failure to open the database is returned to the caller so the process
// can decide whether a missing GeoIP database is fatal (it is not, per
// SPEC_FULL.md §7 GeoError — callers typically log and fall back to Geo{}).
func NewGeo(path string, policy CachePolicy) (*Geo, error) {
	var searcher *xdb.Searcher
	var err error
	switch policy {
	case CacheFull:
		var buf []byte
		buf, err = xdb.LoadContentFromFile(path)
		if err == nil {
			searcher, err = xdb.NewWithBuffer(buf)
		}
	case CacheNone:
		searcher, err = xdb.NewWithFileOnly(path)
	default:
		var vectorIndex []byte
		vectorIndex, err = xdb.LoadVectorIndexFromFile(path)
		if err == nil {
			searcher, err = xdb.NewWithVectorIndex(path, vectorIndex)
		}
	}
	if err != nil {
		return nil, err
	}
	return &Geo{searcher: searcher}, nil
}

// Close releases the underlying database handle.
func (g *Geo) Close() {
	if g != nil && g.searcher != nil {
		g.searcher.Close()
	}
}

// Lookup returns geolocation info for ip, or an empty GeoInfo on any
// failure: bad database, malformed IP, or internal lookup error. Never
// returns an error — this is the graceful-degradation boundary enrich
// exists to provide.
func (g *Geo) Lookup(ip string) GeoInfo {
	if g == nil || g.searcher == nil || ip == "" {
		return GeoInfo{}
	}

	region, err := g.searcher.SearchByStr(ip)
	if err != nil {
		return GeoInfo{}
	}
	return parseRegionString(region)
}

// parseRegionString parses ip2region's pipe-delimited
// "country|region|province|city|isp" format, matching
// geoip/ip2region.rs's parse_region_string. A "0" placeholder segment
// (ip2region's convention for "unknown") is normalized to empty.
func parseRegionString(region string) GeoInfo {
	parts := strings.Split(region, "|")
	get := func(i int) string {
		if i >= len(parts) {
			return ""
		}
		v := strings.TrimSpace(parts[i])
		if v == "0" {
			return ""
		}
		return v
	}
	return GeoInfo{
		Country:  get(0),
		Region:   get(1),
		Province: get(2),
		City:     get(3),
		ISP:      get(4),
	}
}
