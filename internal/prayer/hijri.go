package prayer

import (
	"time"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
)

// ToHijri converts a Gregorian date to the tabular (civil) Islamic calendar.
// Tabular dates can differ by a day from sighting-based calendars; that is
// acceptable for display and snapshot labeling.
func ToHijri(date time.Time) internal.HijriDate {
	jd := julianDay(date.Year(), int(date.Month()), date.Day())

	l := jd - 1948440 + 10632
	n := (l - 1) / 10631
	l = l - 10631*n + 354
	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29
	month := (24 * l) / 709
	day := l - (709*month)/24
	year := 30*n + j - 30

	return internal.HijriDate{Year: year, Month: month, Day: day}
}

// julianDay computes the Julian day number for a Gregorian calendar date.
func julianDay(y, m, d int) int {
	a := (m - 14) / 12
	return (1461*(y+4800+a))/4 +
		(367*(m-2-12*a))/12 -
		(3*((y+4900+a)/100))/4 +
		d - 32075
}
