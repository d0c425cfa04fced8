// Package scheduler evaluates reminder definitions against wall-clock time
// and fires each matching occurrence exactly once.
//
// This file implements the per-frequency occurrence matchers. Each
// frequency has its own matcher encapsulating the calendar rule for
// deciding whether "now" is an occurrence of the reminder's anchor date.
package scheduler

import (
	"time"

	"fintrack/internal/core"
)

// OccurrenceMatcher decides whether now falls on an occurrence of a
// reminder anchored at the given date. Time-of-day matching happens before
// the matcher is consulted.
type OccurrenceMatcher interface {
	Matches(now time.Time, anchor core.Date) bool
}

// DailyMatcher matches every day.
type DailyMatcher struct{}

func (DailyMatcher) Matches(time.Time, core.Date) bool { return true }

// WeeklyMatcher matches when now shares the anchor's day of week.
type WeeklyMatcher struct{}

func (WeeklyMatcher) Matches(now time.Time, anchor core.Date) bool {
	return now.Weekday() == anchor.Weekday()
}

// MonthlyMatcher matches when now shares the anchor's day of month.
type MonthlyMatcher struct{}

func (MonthlyMatcher) Matches(now time.Time, anchor core.Date) bool {
	return now.Day() == anchor.Day()
}

// YearlyMatcher matches when now shares the anchor's month and day.
type YearlyMatcher struct{}

func (YearlyMatcher) Matches(now time.Time, anchor core.Date) bool {
	return now.Day() == anchor.Day() && now.Month() == anchor.Time.Month()
}

// OneTimeMatcher matches only on the anchor's exact calendar date.
type OneTimeMatcher struct{}

func (OneTimeMatcher) Matches(now time.Time, anchor core.Date) bool {
	return anchor.SameCalendarDay(now)
}

// occurrenceMatchers maps frequencies to their matchers.
var occurrenceMatchers = map[core.Frequency]OccurrenceMatcher{
	core.Daily:   DailyMatcher{},
	core.Weekly:  WeeklyMatcher{},
	core.Monthly: MonthlyMatcher{},
	core.Yearly:  YearlyMatcher{},
	core.OneTime: OneTimeMatcher{},
}

// MatcherFor returns the matcher for a frequency. Unknown frequencies fall
// back to exact-date matching, the same rule as one-time reminders.
func MatcherFor(freq core.Frequency) OccurrenceMatcher {
	if m, ok := occurrenceMatchers[freq]; ok {
		return m
	}
	return OneTimeMatcher{}
}
