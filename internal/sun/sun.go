// Package sun computes the wall-clock instants of solar events for a fixed
// location and the signed offset between "now" and a chosen event.
//
// All astronomical work is delegated to github.com/nathan-osman/go-sunrise;
// this package only maps event names onto that library and handles the polar
// day/night case, where an event has no instant on a given date.
package sun

import (
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Event names a solar milestone that can be computed for a location and date.
type Event string

const (
	Dawn    Event = "dawn"
	Sunrise Event = "sunrise"
	Noon    Event = "noon"
	Sunset  Event = "sunset"
	Dusk    Event = "dusk"
)

// Events lists all supported events in chronological order of a normal day.
func Events() []Event {
	return []Event{Dawn, Sunrise, Noon, Sunset, Dusk}
}

// ParseEvent converts a user-supplied string into an Event.
func ParseEvent(s string) (Event, error) {
	for _, ev := range Events() {
		if s == string(ev) {
			return ev, nil
		}
	}
	return "", fmt.Errorf("unknown sun event %q: must be one of %v", s, Events())
}

// civilTwilightElevation is the solar elevation angle (degrees below the
// horizon) that defines civil dawn and dusk.
const civilTwilightElevation = -6.0

// Almanac computes the instant at which an event occurs on a calendar date at
// the given coordinates. Implementations return a NoEventError when the event
// has no instant on that date (polar day or polar night).
type Almanac interface {
	EventTime(ev Event, lat, lon float64, year int, month time.Month, day int) (time.Time, error)
}

// SunriseAlmanac is the go-sunrise backed Almanac. The library returns zero
// times when the sun never crosses the relevant elevation on the requested
// date; those are translated into NoEventError.
type SunriseAlmanac struct{}

func (SunriseAlmanac) EventTime(ev Event, lat, lon float64, year int, month time.Month, day int) (time.Time, error) {
	var t time.Time
	switch ev {
	case Dawn:
		t, _ = sunrise.TimeOfElevation(lat, lon, civilTwilightElevation, year, month, day)
	case Dusk:
		_, t = sunrise.TimeOfElevation(lat, lon, civilTwilightElevation, year, month, day)
	case Sunrise:
		t, _ = sunrise.SunriseSunset(lat, lon, year, month, day)
	case Sunset:
		_, t = sunrise.SunriseSunset(lat, lon, year, month, day)
	case Noon:
		// Solar noon is the midpoint of the daylight arc.
		rise, set := sunrise.SunriseSunset(lat, lon, year, month, day)
		if rise.IsZero() || set.IsZero() {
			return time.Time{}, newNoEventError(ev, year, month, day)
		}
		t = rise.Add(set.Sub(rise) / 2)
	default:
		return time.Time{}, fmt.Errorf("unknown sun event %q", ev)
	}
	if t.IsZero() {
		return time.Time{}, newNoEventError(ev, year, month, day)
	}
	return t, nil
}

// Calculator binds an Almanac to a fixed location and time zone.
type Calculator struct {
	Latitude  float64
	Longitude float64
	Location  *time.Location
	Almanac   Almanac
}

// NewCalculator builds a Calculator backed by the real almanac.
func NewCalculator(lat, lon float64, loc *time.Location) *Calculator {
	return &Calculator{
		Latitude:  lat,
		Longitude: lon,
		Location:  loc,
		Almanac:   SunriseAlmanac{},
	}
}

// EventTime returns the instant of ev on the calendar date of ts, where the
// date is taken in the calculator's time zone. The result is expressed in
// that same zone.
func (c *Calculator) EventTime(ev Event, ts time.Time) (time.Time, error) {
	local := ts.In(c.Location)
	year, month, day := local.Date()
	t, err := c.Almanac.EventTime(ev, c.Latitude, c.Longitude, year, month, day)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(c.Location), nil
}

// Value returns the signed offset, in fractional hours, between now and the
// instant of ev on now's calendar date. Positive means the event has already
// passed; negative means it is still ahead.
func (c *Calculator) Value(ev Event, now time.Time) (float64, error) {
	t, err := c.EventTime(ev, now)
	if err != nil {
		return 0, err
	}
	return now.Sub(t).Hours(), nil
}

// Times holds the instants of all supported events on one calendar date.
type Times struct {
	Dawn    time.Time `json:"dawn"`
	Sunrise time.Time `json:"sunrise"`
	Noon    time.Time `json:"noon"`
	Sunset  time.Time `json:"sunset"`
	Dusk    time.Time `json:"dusk"`
}

// Of returns the instant for a single event out of the set.
func (t Times) Of(ev Event) time.Time {
	switch ev {
	case Dawn:
		return t.Dawn
	case Sunrise:
		return t.Sunrise
	case Noon:
		return t.Noon
	case Sunset:
		return t.Sunset
	case Dusk:
		return t.Dusk
	}
	return time.Time{}
}

// Times computes all five events for the calendar date of ts. It fails on the
// first event that has no instant on that date.
func (c *Calculator) Times(ts time.Time) (Times, error) {
	var out Times
	for _, ev := range Events() {
		t, err := c.EventTime(ev, ts)
		if err != nil {
			return Times{}, err
		}
		switch ev {
		case Dawn:
			out.Dawn = t
		case Sunrise:
			out.Sunrise = t
		case Noon:
			out.Noon = t
		case Sunset:
			out.Sunset = t
		case Dusk:
			out.Dusk = t
		}
	}
	return out, nil
}
