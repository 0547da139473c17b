package timetable

import (
	"regexp"
	"strconv"
	"strings"
)

// NeutralColor is assigned to courses whose section identifier cannot be
// parsed into a program and year level.
const NeutralColor = "#9CA3AF"

// YearPalettes holds ten colors per year level 1-4, darkening with seniority
// so a whole year level reads as one family on the grid.
var YearPalettes = map[int][]string{
	1: {
		"#DC2626", "#D97706", "#059669", "#0891B2", "#2563EB",
		"#7C3AED", "#DB2777", "#EA580C", "#0D9488", "#65A30D",
	},
	2: {
		"#991B1B", "#92400E", "#065F46", "#0E7490", "#1E40AF",
		"#5B21B6", "#9D174D", "#C2410C", "#115E59", "#3F6212",
	},
	3: {
		"#7F1D1D", "#78350F", "#064E3B", "#155E75", "#1E3A8A",
		"#4C1D95", "#831843", "#9A3412", "#134E4A", "#365314",
	},
	4: {
		"#450A0A", "#451A03", "#022C22", "#083344", "#172554",
		"#2E1065", "#500724", "#7C2D12", "#042F2E", "#1A2E05",
	},
}

// SectionInfo is the result of parsing a section identifier like "BSIT3B":
// the program code and the year level digit following it.
type SectionInfo struct {
	Program   string
	YearLevel int
}

// sectionStrategy is one parsing attempt in the fallback chain. Strategies are
// tried in order, first match wins.
type sectionStrategy struct {
	name  string
	parse func(string) (SectionInfo, bool)
}

var (
	compactPattern    = regexp.MustCompile(`^([A-Za-z]+)(\d)([A-Za-z]*)$`)
	spacedPattern     = regexp.MustCompile(`^([A-Za-z]+)\s+(\d)([A-Za-z]*)$`)
	hyphenatedPattern = regexp.MustCompile(`^([A-Za-z]+)-(\d)([A-Za-z]*)$`)
	leadingLetters    = regexp.MustCompile(`^[A-Za-z]+`)
	anyDigit          = regexp.MustCompile(`\d`)
)

var sectionStrategies = []sectionStrategy{
	{name: "compact", parse: patternStrategy(compactPattern)},
	{name: "spaced", parse: patternStrategy(spacedPattern)},
	{name: "hyphenated", parse: patternStrategy(hyphenatedPattern)},
	{name: "loose", parse: looseStrategy},
}

func patternStrategy(pattern *regexp.Regexp) func(string) (SectionInfo, bool) {
	return func(section string) (SectionInfo, bool) {
		match := pattern.FindStringSubmatch(section)
		if match == nil {
			return SectionInfo{}, false
		}

		year, _ := strconv.Atoi(match[2])

		return SectionInfo{Program: match[1], YearLevel: year}, true
	}
}

// looseStrategy is the last resort: the leading run of letters is the program
// and the first digit found anywhere is the year level.
func looseStrategy(section string) (SectionInfo, bool) {
	program := leadingLetters.FindString(section)
	digit := anyDigit.FindString(section)

	if program == "" || digit == "" {
		return SectionInfo{}, false
	}

	year, _ := strconv.Atoi(digit)

	return SectionInfo{Program: program, YearLevel: year}, true
}

// ParseSection extracts the program and year level from a section identifier,
// trying each strategy in order.
func ParseSection(section string) (SectionInfo, bool) {
	trimmed := strings.TrimSpace(section)
	if trimmed == "" {
		return SectionInfo{}, false
	}

	for _, strategy := range sectionStrategies {
		if info, ok := strategy.parse(trimmed); ok {
			return info, ok
		}
	}

	return SectionInfo{}, false
}

// AssignCourseColors derives a stable color per course from the full booking
// set. Courses are grouped by (program, year level) parsed out of the section
// identifier and cycle through that year level's palette in first-seen order;
// unparseable sections share the neutral color. Recomputing from an unchanged
// booking list always yields the same map, since the iteration order is the
// input order.
func AssignCourseColors(bookings []Booking) map[string]string {
	colors := make(map[string]string)
	counters := make(map[string]int)

	for _, b := range bookings {
		if b.CourseID == "" {
			continue
		}

		if _, ok := colors[b.CourseID]; ok {
			continue
		}

		info, ok := ParseSection(b.SectionName)
		if !ok || info.YearLevel < 1 || info.YearLevel > 4 {
			colors[b.CourseID] = NeutralColor

			continue
		}

		palette := YearPalettes[info.YearLevel]
		key := info.Program + "-" + strconv.Itoa(info.YearLevel)

		colors[b.CourseID] = palette[counters[key]%len(palette)]
		counters[key]++
	}

	return colors
}
