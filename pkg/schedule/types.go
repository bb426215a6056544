// Package schedule is the read-only bus timetable shown on the dashboard.
package schedule

import (
	"github.com/mmcdole/campus-transit/pkg/accounts"
)

// Direction of travel relative to campus
type Direction string

const (
	FromCampus Direction = "from_cuet"
	ToCampus   Direction = "to_cuet"
)

// Label is the heading used for a direction
func (d Direction) Label() string {
	switch d {
	case FromCampus:
		return "From CUET"
	case ToCampus:
		return "To CUET"
	}
	return string(d)
}

// Stop is a named pickup point. Coordinates are [longitude, latitude].
type Stop struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Route is an ordered list of stops
type Route struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stops []Stop `json:"stops"`
	Color string `json:"color"`
}

// Driver operates a scheduled trip
type Driver struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Bus is a vehicle in the fleet
type Bus struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	PlateNumber string `json:"plateNumber"`
}

// Schedule is one departure. DepartureTime is 24h "HH:MM"; Category lists
// the roles the trip serves.
type Schedule struct {
	ID            string          `json:"id"`
	BusID         string          `json:"busId"`
	RouteID       string          `json:"routeId"`
	DriverID      string          `json:"driverId"`
	DepartureTime string          `json:"departureTime"`
	Direction     Direction       `json:"direction"`
	Category      []accounts.Role `json:"category"`
}

// Serves reports whether the trip is open to role
func (s *Schedule) Serves(role accounts.Role) bool {
	for _, r := range s.Category {
		if r == role {
			return true
		}
	}
	return false
}

// Details is a schedule joined with its bus, route and driver
type Details struct {
	Schedule
	Bus    Bus    `json:"bus"`
	Route  Route  `json:"route"`
	Driver Driver `json:"driver"`
}

// Group is the set of departures sharing one departure time
type Group struct {
	Time      string    `json:"time"`
	Label     string    `json:"label"`
	Schedules []Details `json:"schedules"`
}

// Stats summarises a list of schedules
type Stats struct {
	Schedules int `json:"schedules"`
	Buses     int `json:"buses"`
	Routes    int `json:"routes"`
}
