// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package models

import (
	"strings"
	"time"
)

// Domain identifies a recommendation domain. The set is closed.
type Domain string

const (
	DomainMovies        Domain = "movies"
	DomainTVSeries      Domain = "tv-series"
	DomainDocumentaries Domain = "documentaries"
)

// Domains lists the supported domains in display order.
func Domains() []Domain {
	return []Domain{DomainMovies, DomainTVSeries, DomainDocumentaries}
}

// Valid reports whether the domain is one of the supported values.
func (d Domain) Valid() bool {
	switch d {
	case DomainMovies, DomainTVSeries, DomainDocumentaries:
		return true
	}
	return false
}

// TimeOfDay buckets the local clock into coarse periods.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeLateNight TimeOfDay = "late_night"
)

// DayClass classifies the day of week.
type DayClass string

const (
	DayWeekday DayClass = "weekday"
	DayFriday  DayClass = "friday"
	DayWeekend DayClass = "weekend"
)

// Season names the meteorological season.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
)

// MomentContext captures the client's temporal context at session start.
// All fields are derived server-side when the client omits them.
type MomentContext struct {
	TimeOfDay TimeOfDay `json:"timeOfDay"`
	DayClass  DayClass  `json:"dayClass"`
	Season    Season    `json:"season"`
	Timezone  string    `json:"timezone"`
}

// ContextFromTime derives a full MomentContext from a wall-clock instant.
func ContextFromTime(t time.Time) MomentContext {
	return MomentContext{
		TimeOfDay: bucketTimeOfDay(t.Hour()),
		DayClass:  classifyDay(t.Weekday()),
		Season:    seasonOf(t.Month()),
		Timezone:  t.Location().String(),
	}
}

// Normalize fills empty fields from the given instant and lowercases the
// bucket values so client-supplied context is comparable.
func (c MomentContext) Normalize(now time.Time) MomentContext {
	derived := ContextFromTime(now)
	if c.TimeOfDay == "" {
		c.TimeOfDay = derived.TimeOfDay
	} else {
		c.TimeOfDay = TimeOfDay(strings.ToLower(string(c.TimeOfDay)))
	}
	if c.DayClass == "" {
		c.DayClass = derived.DayClass
	} else {
		c.DayClass = DayClass(strings.ToLower(string(c.DayClass)))
	}
	if c.Season == "" {
		c.Season = derived.Season
	} else {
		c.Season = Season(strings.ToLower(string(c.Season)))
	}
	if c.Timezone == "" {
		c.Timezone = derived.Timezone
	}
	return c
}

func bucketTimeOfDay(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return TimeMorning
	case hour >= 12 && hour < 17:
		return TimeAfternoon
	case hour >= 17 && hour < 23:
		return TimeEvening
	default:
		return TimeLateNight
	}
}

func classifyDay(d time.Weekday) DayClass {
	switch d {
	case time.Saturday, time.Sunday:
		return DayWeekend
	case time.Friday:
		return DayFriday
	default:
		return DayWeekday
	}
}

func seasonOf(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}
