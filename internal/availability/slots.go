package availability

import (
	"fmt"
	"slices"
	"time"
)

// LabelLayout formats slot start times, e.g. "09:00 AM".
const LabelLayout = "03:04 PM"

const dateLayout = "2006-01-02"

// SlotLabels is the fixed set of bookable start times, in ascending order.
// Slots are hourly during business hours with a gap at noon.
var SlotLabels = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"01:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
}

// Slot is one entry of the fixed vocabulary with its booked state.
type Slot struct {
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

func IsSlotLabel(label string) bool {
	return slices.Contains(SlotLabels, label)
}

// Slots renders the vocabulary, marking every label found in booked as unavailable.
func Slots(booked []string) []Slot {
	out := make([]Slot, len(SlotLabels))
	for i, label := range SlotLabels {
		out[i] = Slot{Label: label, Available: !slices.Contains(booked, label)}
	}
	return out
}

// DayWindow returns the UTC bounds of a calendar date: 00:00:00.000 through 23:59:59.999.
func DayWindow(date string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	end := day.Add(24*time.Hour - time.Millisecond)
	return day, end, nil
}

// SlotStart combines a calendar date and a slot label into a UTC start time.
func SlotStart(date, label string) (time.Time, error) {
	if !IsSlotLabel(label) {
		return time.Time{}, fmt.Errorf("unknown slot label %q", label)
	}
	day, _, err := DayWindow(date)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := time.Parse(LabelLayout, label)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse slot label %q: %w", label, err)
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute), nil
}

// Label formats a start time in UTC using the slot vocabulary layout.
func Label(t time.Time) string {
	return t.UTC().Format(LabelLayout)
}

// toLabels maps booked start times to vocabulary labels, dropping anything outside
// the vocabulary and duplicates. Order follows the vocabulary, which is ascending.
func toLabels(starts []time.Time) []string {
	seen := make(map[string]bool, len(starts))
	for _, st := range starts {
		seen[Label(st)] = true
	}
	labels := make([]string, 0, len(seen))
	for _, label := range SlotLabels {
		if seen[label] {
			labels = append(labels, label)
		}
	}
	return labels
}
