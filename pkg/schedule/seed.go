package schedule

import (
	"github.com/mmcdole/campus-transit/pkg/accounts"
)

var (
	student = accounts.RoleStudent
	teacher = accounts.RoleTeacher
	staff   = accounts.RoleStaff
)

// DefaultData returns the built-in timetable
func DefaultData() Data {
	stops := []Stop{
		{ID: "s1", Name: "CUET", Coordinates: [2]float64{91.9714, 22.4617}},
		{ID: "s2", Name: "Rastar Matha", Coordinates: [2]float64{91.8334, 22.3702}},
		{ID: "s3", Name: "Bahaddarhat", Coordinates: [2]float64{91.8200, 22.3530}},
		{ID: "s4", Name: "Muradpur", Coordinates: [2]float64{91.8150, 22.3600}},
		{ID: "s5", Name: "2 No Gate", Coordinates: [2]float64{91.8100, 22.3550}},
		{ID: "s6", Name: "GEC", Coordinates: [2]float64{91.8180, 22.3590}},
		{ID: "s7", Name: "Lalkhan Bazar", Coordinates: [2]float64{91.8320, 22.3480}},
		{ID: "s8", Name: "New Market", Coordinates: [2]float64{91.8350, 22.3420}},
		{ID: "s9", Name: "KUESH", Coordinates: [2]float64{91.8000, 22.3700}},
		{ID: "s10", Name: "Oxygen", Coordinates: [2]float64{91.8100, 22.3650}},
	}

	routeOf := func(idx ...int) []Stop {
		r := make([]Stop, len(idx))
		for i, n := range idx {
			r[i] = stops[n]
		}
		return r
	}

	routes := []Route{
		{ID: "r1", Name: "Main Route (Full)", Stops: routeOf(0, 1, 2, 3, 4, 5, 6, 7), Color: "#3B82F6"},
		{ID: "r2", Name: "Express Route", Stops: routeOf(0, 1, 2, 5, 6, 7), Color: "#22C55E"},
		{ID: "r3", Name: "Short Route", Stops: routeOf(0, 1, 2, 6, 7), Color: "#F59E0B"},
		{ID: "r4", Name: "Oxygen Route", Stops: routeOf(0, 8, 9, 5, 6, 7), Color: "#8B5CF6"},
	}

	drivers := []Driver{
		{ID: "d1", Name: "Mohammad Ali", Phone: "01711-123456"},
		{ID: "d2", Name: "Jamal Uddin", Phone: "01811-234567"},
		{ID: "d3", Name: "Rafiq Islam", Phone: "01911-345678"},
		{ID: "d4", Name: "Kamal Hossain", Phone: "01611-456789"},
		{ID: "d5", Name: "Shafiq Ahmed", Phone: "01511-567890"},
		{ID: "d6", Name: "Noor Mohammad", Phone: "01411-678901"},
		{ID: "d7", Name: "Habib Rahman", Phone: "01311-789012"},
		{ID: "d8", Name: "Fazlul Haque", Phone: "01711-890123"},
	}

	buses := []Bus{
		{ID: "b1", Name: "Padma", Capacity: 52, PlateNumber: "চট্ট-ম-১১-১২৩৪"},
		{ID: "b2", Name: "Meghna", Capacity: 52, PlateNumber: "চট্ট-ম-১১-২৩৪৫"},
		{ID: "b3", Name: "Jamuna", Capacity: 52, PlateNumber: "চট্ট-ম-১১-৩৪৫৬"},
		{ID: "b4", Name: "Surma", Capacity: 48, PlateNumber: "চট্ট-ম-১১-৪৫৬৭"},
		{ID: "b5", Name: "Karnaphuli", Capacity: 48, PlateNumber: "চট্ট-ম-১১-৫৬৭৮"},
		{ID: "b6", Name: "Brahmaputra", Capacity: 52, PlateNumber: "চট্ট-ম-১১-৬৭৮৯"},
		{ID: "b7", Name: "Teesta", Capacity: 48, PlateNumber: "চট্ট-ম-১১-৭৮৯০"},
		{ID: "b8", Name: "Matamuhuri", Capacity: 44, PlateNumber: "চট্ট-ম-১১-৮৯০১"},
		{ID: "b9", Name: "Sangu", Capacity: 44, PlateNumber: "চট্ট-ম-১১-৯০১২"},
		{ID: "b10", Name: "Halda", Capacity: 44, PlateNumber: "চট্ট-ম-১১-০১২৩"},
		{ID: "b11", Name: "Kushiyara", Capacity: 52, PlateNumber: "চট্ট-ম-১২-১২৩৪"},
		{ID: "b12", Name: "Rupsha", Capacity: 48, PlateNumber: "চট্ট-ম-১২-২৩৪৫"},
		{ID: "b13", Name: "Shitalakshya", Capacity: 52, PlateNumber: "চট্ট-ম-১২-৩৪৫৬"},
		{ID: "b14", Name: "Buriganga", Capacity: 48, PlateNumber: "চট্ট-ম-১২-৪৫৬৭"},
		{ID: "b15", Name: "Dhaleshwari", Capacity: 44, PlateNumber: "চট্ট-ম-১২-৫৬৭৮"},
		{ID: "b16", Name: "Gorai", Capacity: 44, PlateNumber: "চট্ট-ম-১২-৬৭৮৯"},
	}

	schedules := []Schedule{
		{ID: "sch1", BusID: "b1", RouteID: "r1", DriverID: "d1", DepartureTime: "05:30", Direction: FromCampus, Category: []accounts.Role{student, teacher, staff}},
		{ID: "sch2", BusID: "b2", RouteID: "r2", DriverID: "d2", DepartureTime: "05:30", Direction: FromCampus, Category: []accounts.Role{student}},
		{ID: "sch3", BusID: "b3", RouteID: "r3", DriverID: "d3", DepartureTime: "05:30", Direction: FromCampus, Category: []accounts.Role{teacher, staff}},
		{ID: "sch4", BusID: "b1", RouteID: "r1", DriverID: "d1", DepartureTime: "07:00", Direction: ToCampus, Category: []accounts.Role{student, teacher, staff}},
		{ID: "sch5", BusID: "b4", RouteID: "r2", DriverID: "d4", DepartureTime: "07:00", Direction: ToCampus, Category: []accounts.Role{student}},
		{ID: "sch6", BusID: "b5", RouteID: "r3", DriverID: "d5", DepartureTime: "07:00", Direction: ToCampus, Category: []accounts.Role{student}},
		{ID: "sch7", BusID: "b6", RouteID: "r4", DriverID: "d6", DepartureTime: "07:00", Direction: ToCampus, Category: []accounts.Role{teacher, staff}},
		{ID: "sch8", BusID: "b7", RouteID: "r1", DriverID: "d7", DepartureTime: "13:00", Direction: FromCampus, Category: []accounts.Role{student}},
		{ID: "sch9", BusID: "b8", RouteID: "r2", DriverID: "d8", DepartureTime: "13:00", Direction: FromCampus, Category: []accounts.Role{teacher, staff}},
		{ID: "sch10", BusID: "b9", RouteID: "r1", DriverID: "d1", DepartureTime: "14:00", Direction: FromCampus, Category: []accounts.Role{student}},
		{ID: "sch11", BusID: "b10", RouteID: "r3", DriverID: "d2", DepartureTime: "14:00", Direction: FromCampus, Category: []accounts.Role{student}},
		{ID: "sch12", BusID: "b11", RouteID: "r1", DriverID: "d3", DepartureTime: "17:00", Direction: FromCampus, Category: []accounts.Role{student, teacher, staff}},
		{ID: "sch13", BusID: "b12", RouteID: "r2", DriverID: "d4", DepartureTime: "17:00", Direction: FromCampus, Category: []accounts.Role{student}},
		{ID: "sch14", BusID: "b13", RouteID: "r4", DriverID: "d5", DepartureTime: "17:00", Direction: FromCampus, Category: []accounts.Role{teacher, staff}},
		{ID: "sch15", BusID: "b14", RouteID: "r1", DriverID: "d6", DepartureTime: "21:00", Direction: ToCampus, Category: []accounts.Role{student, teacher, staff}},
		{ID: "sch16", BusID: "b15", RouteID: "r2", DriverID: "d7", DepartureTime: "21:00", Direction: ToCampus, Category: []accounts.Role{student}},
	}

	return Data{
		Stops:     stops,
		Routes:    routes,
		Drivers:   drivers,
		Buses:     buses,
		Schedules: schedules,
	}
}

// DefaultCatalog returns the built-in timetable as a Catalog
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultData())
	if err != nil {
		panic("schedule: invalid built-in data: " + err.Error())
	}
	return c
}
