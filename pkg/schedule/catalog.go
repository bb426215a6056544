package schedule

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/mmcdole/campus-transit/pkg/accounts"
)

// ErrNotFound is returned when no schedule has the requested id
var ErrNotFound = errors.New("schedule not found")

var departureTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Data is the raw content of a catalog
type Data struct {
	Stops     []Stop     `json:"stops"`
	Routes    []Route    `json:"routes"`
	Drivers   []Driver   `json:"drivers"`
	Buses     []Bus      `json:"buses"`
	Schedules []Schedule `json:"schedules"`
}

// Catalog is an immutable, validated timetable
type Catalog struct {
	data    Data
	buses   map[string]Bus
	routes  map[string]Route
	drivers map[string]Driver
}

// NewCatalog validates data and indexes it. Every schedule must reference a
// known bus, route and driver.
func NewCatalog(data Data) (*Catalog, error) {
	c := &Catalog{
		data:    data,
		buses:   make(map[string]Bus, len(data.Buses)),
		routes:  make(map[string]Route, len(data.Routes)),
		drivers: make(map[string]Driver, len(data.Drivers)),
	}
	for _, b := range data.Buses {
		c.buses[b.ID] = b
	}
	for _, r := range data.Routes {
		c.routes[r.ID] = r
	}
	for _, d := range data.Drivers {
		c.drivers[d.ID] = d
	}

	seen := make(map[string]bool, len(data.Schedules))
	for _, s := range data.Schedules {
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate schedule %q", s.ID)
		}
		seen[s.ID] = true

		if _, ok := c.buses[s.BusID]; !ok {
			return nil, fmt.Errorf("schedule %s: unknown bus %q", s.ID, s.BusID)
		}
		if _, ok := c.routes[s.RouteID]; !ok {
			return nil, fmt.Errorf("schedule %s: unknown route %q", s.ID, s.RouteID)
		}
		if _, ok := c.drivers[s.DriverID]; !ok {
			return nil, fmt.Errorf("schedule %s: unknown driver %q", s.ID, s.DriverID)
		}
		if !departureTimePattern.MatchString(s.DepartureTime) {
			return nil, fmt.Errorf("schedule %s: bad departure time %q", s.ID, s.DepartureTime)
		}
		if s.Direction != FromCampus && s.Direction != ToCampus {
			return nil, fmt.Errorf("schedule %s: bad direction %q", s.ID, s.Direction)
		}
	}
	return c, nil
}

func (c *Catalog) details(s Schedule) Details {
	return Details{
		Schedule: s,
		Bus:      c.buses[s.BusID],
		Route:    c.routes[s.RouteID],
		Driver:   c.drivers[s.DriverID],
	}
}

// All returns every schedule with details, in catalog order
func (c *Catalog) All() []Details {
	out := make([]Details, 0, len(c.data.Schedules))
	for _, s := range c.data.Schedules {
		out = append(out, c.details(s))
	}
	return out
}

// ForRole returns the schedules serving role. Admins see every schedule.
func (c *Catalog) ForRole(role accounts.Role) []Details {
	if role == accounts.RoleAdmin {
		return c.All()
	}
	var out []Details
	for i := range c.data.Schedules {
		if c.data.Schedules[i].Serves(role) {
			out = append(out, c.details(c.data.Schedules[i]))
		}
	}
	return out
}

// Find returns one schedule with details
func (c *Catalog) Find(id string) (*Details, error) {
	for _, s := range c.data.Schedules {
		if s.ID == id {
			d := c.details(s)
			return &d, nil
		}
	}
	return nil, ErrNotFound
}

// Buses returns the fleet
func (c *Catalog) Buses() []Bus { return append([]Bus(nil), c.data.Buses...) }

// Routes returns every route
func (c *Catalog) Routes() []Route { return append([]Route(nil), c.data.Routes...) }

// Drivers returns every driver
func (c *Catalog) Drivers() []Driver { return append([]Driver(nil), c.data.Drivers...) }

// Stops returns every stop
func (c *Catalog) Stops() []Stop { return append([]Stop(nil), c.data.Stops...) }
