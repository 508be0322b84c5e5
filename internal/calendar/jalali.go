// Package calendar converts between the Jalali (Persian) calendar, the
// Gregorian calendar and the Chinese lunar year. All operations are pure.
package calendar

import (
	"errors"
	"fmt"
)

var ErrInvalidDate = errors.New("invalid date")

// Date is a Gregorian calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// breaks marks the starts of the irregular sub-cycles of the arithmetic
// Jalali calendar (Birashk's tabulation, same as the jalaali-js reference).
var breaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181,
	1210, 1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

// ToGregorian validates a Jalali (year, month, day) triple and converts it.
// Triples that do not denote a real Jalali date, including non-existent
// leap days such as 1369/12/30, yield ErrInvalidDate.
func ToGregorian(jy, jm, jd int) (Date, error) {
	if err := ValidateJalali(jy, jm, jd); err != nil {
		return Date{}, err
	}
	return jdnToGregorian(jalaliToJDN(jy, jm, jd)), nil
}

// ToJalali is the inverse of ToGregorian.
func ToJalali(d Date) (jy, jm, jd int) {
	return jdnToJalali(gregorianToJDN(d.Year, d.Month, d.Day))
}

// ValidateJalali reports whether the triple denotes a real Jalali date.
func ValidateJalali(jy, jm, jd int) error {
	if jy <= breaks[0] || jy >= breaks[len(breaks)-1] {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidDate, jy)
	}
	if jm < 1 || jm > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, jm)
	}
	if jd < 1 || jd > MonthLength(jy, jm) {
		return fmt.Errorf("%w: %04d/%02d/%02d", ErrInvalidDate, jy, jm, jd)
	}
	return nil
}

// MonthLength returns the number of days in a Jalali month.
func MonthLength(jy, jm int) int {
	switch {
	case jm <= 6:
		return 31
	case jm <= 11:
		return 30
	default:
		if IsLeapJalaliYear(jy) {
			return 30
		}
		return 29
	}
}

// IsLeapJalaliYear reports whether Esfand has 30 days in the given year.
func IsLeapJalaliYear(jy int) bool {
	leap, _, _ := jalCal(jy)
	return leap == 0
}

// jalCal determines the leap offset of a Jalali year and the Gregorian
// date (march of gy) its Farvardin 1 falls on.
func jalCal(jy int) (leap, gy, march int) {
	gy = jy + 621
	leapJ := -14
	jp := breaks[0]

	var jump int
	for i := 1; i < len(breaks); i++ {
		jmark := breaks[i]
		jump = jmark - jp
		if jy < jmark {
			break
		}
		leapJ += jump/33*8 + jump%33/4
		jp = jmark
	}
	n := jy - jp

	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}

	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march = 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap = ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}
	return leap, gy, march
}

func jalaliToJDN(jy, jm, jd int) int {
	_, gy, march := jalCal(jy)
	return gregorianToJDN(gy, 3, march) + (jm-1)*31 - jm/7*(jm-7) + jd - 1
}

func jdnToJalali(jdn int) (jy, jm, jd int) {
	g := jdnToGregorian(jdn)
	jy = g.Year - 621
	leap, _, march := jalCal(jy)
	k := jdn - gregorianToJDN(g.Year, 3, march)

	if k >= 0 {
		if k <= 185 {
			return jy, 1 + k/31, k%31 + 1
		}
		k -= 186
	} else {
		jy--
		k += 179
		if leap == 1 {
			k++
		}
	}
	return jy, 7 + k/30, k%30 + 1
}

func gregorianToJDN(gy, gm, gd int) int {
	d := (gy+(gm-8)/6+100100)*1461/4 + (153*((gm+9)%12)+2)/5 + gd - 34840408
	return d - (gy+100100+(gm-8)/6)/100*3/4 + 752
}

func jdnToGregorian(jdn int) Date {
	j := 4*jdn + 139361631
	j += (4*jdn+183187720)/146097*3/4*4 - 3908
	i := j%1461/4*5 + 308

	gd := i%153/5 + 1
	gm := i/153%12 + 1
	gy := j/1461 - 100100 + (8-gm)/6
	return Date{Year: gy, Month: gm, Day: gd}
}
