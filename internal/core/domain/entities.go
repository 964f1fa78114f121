package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// CityRef is a route endpoint as returned by the upstream API. Older API
// versions send a bare city name, newer ones an object with a name field,
// so it unmarshals from either shape.
type CityRef struct {
	Name string `json:"name"`
}

// UnmarshalJSON accepts both `"Abidjan"` and `{"name":"Abidjan"}`.
func (c *CityRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("city ref: %w", err)
	}
	c.Name = obj.Name
	return nil
}

// MarshalJSON always emits the object form.
func (c CityRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name string `json:"name"`
	}{Name: c.Name})
}

// CompanyRef is an operator reference, again either a bare name or an object.
type CompanyRef struct {
	Name string `json:"name"`
}

func (c *CompanyRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("company ref: %w", err)
	}
	c.Name = obj.Name
	return nil
}

func (c CompanyRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name string `json:"name"`
	}{Name: c.Name})
}

// StopCount unmarshals from either a plain count or a list of stop names.
type StopCount int

func (s *StopCount) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = StopCount(n)
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("stops: %w", err)
	}
	*s = StopCount(len(list))
	return nil
}

// Route is a single scheduled intercity trip. Immutable once fetched; a
// fresh search replaces the whole result set.
type Route struct {
	ID             string     `json:"id"`
	From           CityRef    `json:"from"`
	To             CityRef    `json:"to"`
	DepartureDate  string     `json:"departureDate"` // YYYY-MM-DD
	DepartureTime  string     `json:"departureTime"` // HH:MM, zero-padded 24h
	ArrivalTime    string     `json:"arrivalTime"`
	Duration       string     `json:"duration,omitempty"`
	Price          float64    `json:"price"`
	CompanyName    CompanyRef `json:"companyName"`
	AvailableSeats int        `json:"availableSeats"`
	Amenities      []string   `json:"amenities,omitempty"`
	Stops          StopCount  `json:"stops,omitempty"`
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// DepartureAt combines the route's calendar date and HH:MM time into a
// single timestamp in loc. A missing or malformed time defaults to midnight.
func (r Route) DepartureAt(loc *time.Location) (time.Time, error) {
	date := strings.TrimSpace(r.DepartureDate)
	if len(date) > len(dateLayout) {
		// Tolerate full timestamps like 2025-06-01T00:00:00Z.
		date = date[:len(dateLayout)]
	}
	if t := strings.TrimSpace(r.DepartureTime); t != "" {
		if at, err := time.ParseInLocation(dateTimeLayout, date+" "+t, loc); err == nil {
			return at, nil
		}
	}
	at, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("route %s departure: %w", r.ID, err)
	}
	return at, nil
}

// DepartureDay returns the route's calendar date, ignoring time of day.
func (r Route) DepartureDay(loc *time.Location) (time.Time, error) {
	date := strings.TrimSpace(r.DepartureDate)
	if len(date) > len(dateLayout) {
		date = date[:len(dateLayout)]
	}
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("route %s date: %w", r.ID, err)
	}
	return day, nil
}

// HasAmenity reports whether the route carries the given tag.
// Air conditioning is also published under the legacy "ac" tag.
func (r Route) HasAmenity(tag string) bool {
	want := strings.ToLower(strings.TrimSpace(tag))
	for _, a := range r.Amenities {
		got := strings.ToLower(strings.TrimSpace(a))
		if got == want {
			return true
		}
		if want == "air-conditioning" && got == "ac" {
			return true
		}
		if want == "ac" && got == "air-conditioning" {
			return true
		}
	}
	return false
}

// City is an entry in the searchable city vocabulary.
type City struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Company is an operator in the company vocabulary.
type Company struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}
