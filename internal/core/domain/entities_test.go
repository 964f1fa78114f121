package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/konanyao/akwaba/internal/core/domain"
)

func TestCityRef_UnmarshalBothShapes(t *testing.T) {
	var bare domain.CityRef
	if err := json.Unmarshal([]byte(`"Abidjan"`), &bare); err != nil {
		t.Fatalf("bare string: %v", err)
	}
	if bare.Name != "Abidjan" {
		t.Errorf("bare string name %q", bare.Name)
	}

	var obj domain.CityRef
	if err := json.Unmarshal([]byte(`{"name":"Yamoussoukro"}`), &obj); err != nil {
		t.Fatalf("object: %v", err)
	}
	if obj.Name != "Yamoussoukro" {
		t.Errorf("object name %q", obj.Name)
	}
}

func TestStopCount_UnmarshalBothShapes(t *testing.T) {
	var n domain.StopCount
	if err := json.Unmarshal([]byte(`3`), &n); err != nil || n != 3 {
		t.Errorf("count form: %d, %v", n, err)
	}
	var list domain.StopCount
	if err := json.Unmarshal([]byte(`["Toumodi","Tiébissou"]`), &list); err != nil || list != 2 {
		t.Errorf("list form: %d, %v", list, err)
	}
}

func TestRoute_DepartureAt(t *testing.T) {
	loc := time.UTC
	r := domain.Route{ID: "r1", DepartureDate: "2025-06-01", DepartureTime: "14:30"}
	at, err := r.DepartureAt(loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2025, 6, 1, 14, 30, 0, 0, loc); !at.Equal(want) {
		t.Errorf("got %v, want %v", at, want)
	}

	// Full timestamps are tolerated, missing times default to midnight.
	r = domain.Route{ID: "r2", DepartureDate: "2025-06-01T00:00:00Z"}
	at, err = r.DepartureAt(loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2025, 6, 1, 0, 0, 0, 0, loc); !at.Equal(want) {
		t.Errorf("got %v, want %v", at, want)
	}

	r = domain.Route{ID: "r3", DepartureDate: "junk"}
	if _, err := r.DepartureAt(loc); err == nil {
		t.Error("expected an error for an unparseable date")
	}
}

func TestRoute_HasAmenitySynonyms(t *testing.T) {
	r := domain.Route{Amenities: []string{"wifi", "AC"}}
	if !r.HasAmenity("air-conditioning") {
		t.Error("the ac tag must satisfy air-conditioning")
	}
	if !r.HasAmenity("WiFi") {
		t.Error("amenity matching must be case-insensitive")
	}
	if r.HasAmenity("power") {
		t.Error("absent amenity must not match")
	}
}

func TestNormalizeSearchParams(t *testing.T) {
	q := domain.NormalizeSearchParams(domain.SearchParams{
		From:          " Abidjan ",
		To:            "Yamoussoukro",
		DepartureDate: "2025-06-01",
		Passengers:    "2",
		CompanyName:   "all",
		DepartureTime: "Toutes",
	})
	if q.From != "Abidjan" || q.To != "Yamoussoukro" {
		t.Errorf("endpoints not trimmed: %+v", q)
	}
	if q.Passengers != 2 {
		t.Errorf("passengers = %d, want 2", q.Passengers)
	}
	if q.CompanyName != "" || q.DepartureTime != "" {
		t.Errorf("sentinel values must not be forwarded: %+v", q)
	}

	q = domain.NormalizeSearchParams(domain.SearchParams{Passengers: "zero"})
	if q.Passengers != 1 {
		t.Errorf("unparseable passengers must default to 1, got %d", q.Passengers)
	}
}

func TestFilterCriteria_IsZero(t *testing.T) {
	if !(domain.FilterCriteria{}).IsZero() {
		t.Error("empty criteria must be zero")
	}
	if !(domain.FilterCriteria{Company: "ALL", TimeBand: "all"}).IsZero() {
		t.Error("the all sentinel must count as unset")
	}
	if (domain.FilterCriteria{PriceBand: "low"}).IsZero() {
		t.Error("a real predicate must not be zero")
	}
}

func TestBooking_IsPast(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	future := domain.Booking{OutboundRoute: domain.Route{DepartureDate: "2025-06-02", DepartureTime: "08:00"}}
	if future.IsPast(now) {
		t.Error("tomorrow's departure is not past")
	}

	past := domain.Booking{OutboundRoute: domain.Route{DepartureDate: "2025-05-30", DepartureTime: "08:00"}}
	if !past.IsPast(now) {
		t.Error("a departed booking is past")
	}

	broken := domain.Booking{OutboundRoute: domain.Route{DepartureDate: "not-a-date"}}
	if !broken.IsPast(now) {
		t.Error("an unparseable departure sorts to history")
	}
}
