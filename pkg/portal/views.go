package portal

import (
	"github.com/mmcdole/campus-transit/pkg/authorization"
	"github.com/mmcdole/campus-transit/pkg/schedule"
)

// noDeparture is shown when nothing else leaves today
const noDeparture = "N/A"

// Dashboard is the signed-in landing view
type Dashboard struct {
	User          *Profile               `json:"user"`
	Stats         schedule.Stats         `json:"stats"`
	NextDeparture string                 `json:"nextDeparture"`
	NextBus       string                 `json:"nextBus,omitempty"`
	FromCampus    []schedule.Group       `json:"fromCampus"`
	ToCampus      []schedule.Group       `json:"toCampus"`
	Screens       []authorization.Screen `json:"screens"`
}

// Dashboard builds the dashboard for the signed-in user
func (p *Portal) Dashboard() (*Dashboard, error) {
	sess, err := p.guard(authorization.ScreenDashboard)
	if err != nil {
		return nil, err
	}

	list := p.catalog.ForRole(sess.Role)
	view := &Dashboard{
		User:          ProfileOf(sess),
		Stats:         schedule.Summarize(list),
		NextDeparture: noDeparture,
		FromCampus:    schedule.GroupByTime(schedule.ByDirection(list, schedule.FromCampus)),
		ToCampus:      schedule.GroupByTime(schedule.ByDirection(list, schedule.ToCampus)),
		Screens:       p.authorizer.Visible(sess),
	}
	if next := schedule.NextDeparture(list, p.now()); next != nil {
		view.NextDeparture = schedule.FormatTime(next.DepartureTime)
		view.NextBus = next.Bus.Name
	}
	return view, nil
}

// BusDetails returns one schedule with its bus, route and driver
func (p *Portal) BusDetails(scheduleID string) (*schedule.Details, error) {
	if _, err := p.guard(authorization.ScreenBusDetails); err != nil {
		return nil, err
	}
	return p.catalog.Find(scheduleID)
}

// AdminBuses lists the fleet
func (p *Portal) AdminBuses() ([]schedule.Bus, error) {
	if _, err := p.guard(authorization.ScreenAdminBuses); err != nil {
		return nil, err
	}
	return p.catalog.Buses(), nil
}

// AdminRoutes lists every route
func (p *Portal) AdminRoutes() ([]schedule.Route, error) {
	if _, err := p.guard(authorization.ScreenAdminRoutes); err != nil {
		return nil, err
	}
	return p.catalog.Routes(), nil
}

// AdminSchedules lists every schedule with details
func (p *Portal) AdminSchedules() ([]schedule.Details, error) {
	if _, err := p.guard(authorization.ScreenAdminSchedules); err != nil {
		return nil, err
	}
	return p.catalog.All(), nil
}

// AdminDrivers lists every driver
func (p *Portal) AdminDrivers() ([]schedule.Driver, error) {
	if _, err := p.guard(authorization.ScreenAdminDrivers); err != nil {
		return nil, err
	}
	return p.catalog.Drivers(), nil
}
