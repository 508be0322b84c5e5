// Package tables holds the static lookup tables shared by the calculation
// features. They are loaded once at startup and never mutated afterwards.
package tables

import (
	"embed"
	"errors"
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

//go:embed data/kua.json data/zodiac_animals.json
var dataFS embed.FS

var ErrUnsupportedYear = errors.New("unsupported year")

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// The Monkey-first ordering makes lunarYear mod 12 index directly into the
// cycle (e.g. 2016 mod 12 == 0, the year of the Monkey).
var signs = [12]string{
	"Monkey", "Rooster", "Dog", "Pig", "Rat", "Ox",
	"Tiger", "Rabbit", "Dragon", "Snake", "Horse", "Goat",
}

var elements = [5]string{"Metal", "Water", "Wood", "Fire", "Earth"}

var signsFarsi = map[string]string{
	"Monkey":  "میمون",
	"Rooster": "خروس",
	"Dog":     "سگ",
	"Pig":     "خوک",
	"Rat":     "موش",
	"Ox":      "گاو",
	"Tiger":   "ببر",
	"Rabbit":  "خرگوش",
	"Dragon":  "اژدها",
	"Snake":   "مار",
	"Horse":   "اسب",
	"Goat":    "بز",
}

var elementsFarsi = map[string]string{
	"Metal": "فلز",
	"Water": "آب",
	"Wood":  "چوب",
	"Fire":  "آتش",
	"Earth": "زمین",
}

// Tables is the immutable set of year-keyed lookups.
type Tables struct {
	kua     map[Gender]map[string]int
	animals map[string]string
}

// Load decodes the embedded table definitions. Call once at process start.
func Load() (*Tables, error) {
	t := &Tables{}

	raw, err := dataFS.ReadFile("data/kua.json")
	if err != nil {
		return nil, fmt.Errorf("reading kua table: %w", err)
	}
	if err = jsoniter.Unmarshal(raw, &t.kua); err != nil {
		return nil, fmt.Errorf("decoding kua table: %w", err)
	}
	if len(t.kua[GenderMale]) == 0 || len(t.kua[GenderFemale]) == 0 {
		return nil, errors.New("kua table is missing a gender")
	}

	raw, err = dataFS.ReadFile("data/zodiac_animals.json")
	if err != nil {
		return nil, fmt.Errorf("reading zodiac table: %w", err)
	}
	if err = jsoniter.Unmarshal(raw, &t.animals); err != nil {
		return nil, fmt.Errorf("decoding zodiac table: %w", err)
	}
	return t, nil
}

// KuaNumber resolves the kua (lucky) number for a gender and Gregorian
// birth year. Years outside the table yield ErrUnsupportedYear, never a
// default value.
func (t *Tables) KuaNumber(g Gender, year int) (int, error) {
	n, ok := t.kua[g][strconv.Itoa(year)]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedYear, year)
	}
	return n, nil
}

// AnimalKey resolves the zodiac animal key for a Gregorian birth year.
func (t *Tables) AnimalKey(year int) (string, error) {
	a, ok := t.animals[strconv.Itoa(year)]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedYear, year)
	}
	return a, nil
}

// Sign returns the zodiac sign for a lunar year.
func Sign(lunarYear int) string {
	return signs[lunarYear%12]
}

// Element returns the zodiac element for a lunar year. Each element spans
// two consecutive years of the ten-year stem cycle.
func Element(lunarYear int) string {
	return elements[lunarYear%10/2]
}

// kuaElements maps each kua number to its feng shui element. The number
// 5 never appears because the formula remaps it per gender.
var kuaElements = map[int]string{
	1: "Water",
	2: "Earth",
	3: "Wood",
	4: "Wood",
	6: "Metal",
	7: "Metal",
	8: "Earth",
	9: "Fire",
}

// KuaElement returns the element associated with a kua number.
func KuaElement(number int) string {
	return kuaElements[number]
}

// SignFarsi returns the Persian display name of a sign key.
func SignFarsi(key string) string {
	return signsFarsi[key]
}

// ElementFarsi returns the Persian display name of an element key.
func ElementFarsi(key string) string {
	return elementsFarsi[key]
}
