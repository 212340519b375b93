package route

import "strings"

type Route struct {
	Name string
}

func (r Route) Code() string {
	return r.Name
}

func (r Route) Label() string {
	parts := strings.Split(r.Name, "-")
	for i := range parts {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, " ")
}

// Assigned reports whether the route carries a manually maintained order.
// The unassigned bucket is unordered; its members keep position 0.
func (r Route) Assigned() bool {
	return r.Name != Routes.Unassigned.Name
}

type Enum struct {
	Route1     Route
	Route2     Route
	Unassigned Route
}

var Routes = Enum{
	Route1:     Route{Name: "route-1"},
	Route2:     Route{Name: "route-2"},
	Unassigned: Route{Name: "unassigned"},
}

var All = []Route{
	Routes.Route1,
	Routes.Route2,
	Routes.Unassigned,
}

// ByName returns the route for a given name, or nil if not found
func ByName(name string) *Route {
	for _, r := range All {
		if r.Name == name {
			return &r
		}
	}
	return nil
}
