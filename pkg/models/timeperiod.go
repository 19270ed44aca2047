package models

import (
	"errors"
	"fmt"
)

var errBadTimerange = errors.New("malformed timerange")

// Timerange is one "HH:MM-HH:MM" interval inside a daterange. This is the
// canonical shape; whatever variant the wire carries is normalized into it
// at the decode boundary.
type Timerange struct {
	HourStart   int
	MinuteStart int
	HourEnd     int
	MinuteEnd   int
}

func (t Timerange) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", t.HourStart, t.MinuteStart, t.HourEnd, t.MinuteEnd)
}

// ParseTimerange parses the canonical "HH:MM-HH:MM" form.
func ParseTimerange(s string) (Timerange, error) {
	var tr Timerange

	n, err := fmt.Sscanf(s, "%02d:%02d-%02d:%02d", &tr.HourStart, &tr.MinuteStart, &tr.HourEnd, &tr.MinuteEnd)
	if err != nil || n != 4 {
		return Timerange{}, fmt.Errorf("%w: %q", errBadTimerange, s)
	}

	return tr, nil
}

// Daterange is one date-range entry of a timeperiod with its timeranges.
type Daterange struct {
	StartYear          int
	StartMonth         int
	StartMonthDay      int
	StartWeekDay       int
	StartWeekDayOffset int
	EndYear            int
	EndMonth           int
	EndMonthDay        int
	EndWeekDay         int
	EndWeekDayOffset   int
	SkipInterval       int
	Other              string

	Timeranges []Timerange
}

// Timeperiod defines when checks and notifications apply. Shared across
// instances and upserted by name. The exclude list is self-referential and
// resolved by the linker.
type Timeperiod struct {
	ID    string
	Name  string
	Alias string

	Dateranges []*Daterange

	ExcludeNames []string
	Exclude      []*Timeperiod
}
