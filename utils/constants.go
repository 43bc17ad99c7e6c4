// File: utils/constants.go
package utils

import "time"

// DateLayout is the canonical representation of calendar dates in stored documents.
const DateLayout = "2006-01-02"

// ReportCachePrefix is the prefix used for Redis report cache keys.
const ReportCachePrefix = "report:"

// BusinessLocation is where events take place. Calendar days are computed in this zone.
var BusinessLocation = loadLocation("America/Santiago")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
