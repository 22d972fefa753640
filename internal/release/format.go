package release

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var timeNow = time.Now

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatByteSize renders a byte count for display, e.g. 1572864 -> "1.5 MB".
// Values past the GB tier stay in GB ("2048 GB"); there is no TB unit.
func FormatByteSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	tier := 0
	for threshold := int64(1024); tier < len(sizeUnits)-1 && bytes >= threshold; threshold *= 1024 {
		tier++
	}

	value := float64(bytes) / math.Pow(1024, float64(tier))
	rounded := math.Round(value*100) / 100

	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[tier]
}

type interval struct {
	unit    string
	seconds int64
}

// Fixed-length approximations; a month is always 30 days.
var intervals = []interval{
	{"year", 31536000},
	{"month", 2592000},
	{"week", 604800},
	{"day", 86400},
	{"hour", 3600},
	{"minute", 60},
}

// FormatRelativeTime describes how long ago t was ("3 days ago", "just now").
// Future instants render as "just now".
func FormatRelativeTime(t time.Time) string {
	elapsed := int64(timeNow().Sub(t) / time.Second)

	for _, iv := range intervals {
		n := elapsed / iv.seconds
		if n >= 1 {
			if n == 1 {
				return fmt.Sprintf("1 %s ago", iv.unit)
			}
			return fmt.Sprintf("%d %ss ago", n, iv.unit)
		}
	}

	return "just now"
}

// FormatCount groups digits with commas, e.g. 1234567 -> "1,234,567".
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
