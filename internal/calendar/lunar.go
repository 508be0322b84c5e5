package calendar

import (
	"errors"
	"fmt"
)

var ErrUnsupportedYear = errors.New("unsupported year")

const lunarTableBase = 1930

// lunarNewYear holds the Gregorian date (month, day) of the Chinese New
// Year for each year starting at lunarTableBase. The festival always falls
// between Jan 21 and Feb 21; a linear approximation is not good enough
// because the boundary moves by up to 30 days from one year to the next.
var lunarNewYear = [...][2]int{
	{1, 30}, {2, 17}, {2, 6}, {1, 26}, {2, 14}, // 1930-1934
	{2, 4}, {1, 24}, {2, 11}, {1, 31}, {2, 19}, // 1935-1939
	{2, 8}, {1, 27}, {2, 15}, {2, 5}, {1, 25}, // 1940-1944
	{2, 13}, {2, 2}, {1, 22}, {2, 10}, {1, 29}, // 1945-1949
	{2, 17}, {2, 6}, {1, 27}, {2, 14}, {2, 3}, // 1950-1954
	{1, 24}, {2, 12}, {1, 31}, {2, 18}, {2, 8}, // 1955-1959
	{1, 28}, {2, 15}, {2, 5}, {1, 25}, {2, 13}, // 1960-1964
	{2, 2}, {1, 21}, {2, 9}, {1, 30}, {2, 17}, // 1965-1969
	{2, 6}, {1, 27}, {2, 15}, {2, 3}, {1, 23}, // 1970-1974
	{2, 11}, {1, 31}, {2, 18}, {2, 7}, {1, 28}, // 1975-1979
	{2, 16}, {2, 5}, {1, 25}, {2, 13}, {2, 2}, // 1980-1984
	{2, 20}, {2, 9}, {1, 29}, {2, 17}, {2, 6}, // 1985-1989
	{1, 27}, {2, 15}, {2, 4}, {1, 23}, {2, 10}, // 1990-1994
	{1, 31}, {2, 19}, {2, 7}, {1, 28}, {2, 16}, // 1995-1999
	{2, 5}, {1, 24}, {2, 12}, {2, 1}, {1, 22}, // 2000-2004
	{2, 9}, {1, 29}, {2, 18}, {2, 7}, {1, 26}, // 2005-2009
	{2, 14}, {2, 3}, {1, 23}, {2, 10}, {1, 31}, // 2010-2014
	{2, 19}, {2, 8}, {1, 28}, {2, 16}, {2, 5}, // 2015-2019
	{1, 25}, {2, 12}, {2, 1}, {1, 22}, {2, 10}, // 2020-2024
	{1, 29}, {2, 17}, {2, 6}, {1, 26}, {2, 13}, // 2025-2029
	{2, 3}, {1, 23}, {2, 11}, {1, 31}, {2, 19}, // 2030-2034
	{2, 8}, {1, 28}, {2, 15}, {2, 4}, {1, 24}, // 2035-2039
	{2, 12}, {2, 1}, {1, 22}, {2, 10}, {1, 30}, // 2040-2044
	{2, 17}, {2, 6}, {1, 26}, {2, 14}, {2, 2}, // 2045-2049
	{1, 23}, // 2050
}

// LunarYearOf returns the Chinese lunar year enclosing a Gregorian date.
// A date before that year's lunar new year belongs to the previous lunar
// year, so two dates within one Gregorian year may map to different lunar
// years. Dates outside the tabulated range yield ErrUnsupportedYear.
func LunarYearOf(d Date) (int, error) {
	idx := d.Year - lunarTableBase
	if idx < 0 || idx >= len(lunarNewYear) {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedYear, d.Year)
	}
	ny := lunarNewYear[idx]
	if d.Month < ny[0] || (d.Month == ny[0] && d.Day < ny[1]) {
		return d.Year - 1, nil
	}
	return d.Year, nil
}
