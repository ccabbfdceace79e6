package format

import (
	"strconv"
	"strings"
)

// PointFormatter parses "lat,long"-style (or whitespace separated)
// coordinates into the normalized "lat,long" point representation Solr's
// spatial types expect. Out-of-range or non-numeric coordinates drop the
// value.
type PointFormatter struct{}

// Format implements Formatter.
func (PointFormatter) Format(raw string) (string, bool) {
	lat, lng, ok := parsePoint(strings.TrimSpace(raw))
	if !ok {
		return "", false
	}
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64), true
}

func parsePoint(s string) (lat, lng float64, ok bool) {
	var parts []string
	if strings.Contains(s, ",") {
		parts = strings.SplitN(s, ",", 2)
	} else {
		parts = strings.Fields(s)
	}
	if len(parts) != 2 {
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, false
	}
	return lat, lng, true
}
