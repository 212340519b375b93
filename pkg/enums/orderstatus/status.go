package orderstatus

import "strings"

type Status struct {
	Name string
}

func (s Status) Code() string {
	return s.Name
}

func (s Status) Label() string {
	parts := strings.Split(s.Name, "-")
	for i := range parts {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, " ")
}

type Enum struct {
	Pending       Status
	InPreparation Status
	Ready         Status
	Dispatched    Status
	Cancelled     Status
}

var Statuses = Enum{
	Pending:       Status{Name: "pending"},
	InPreparation: Status{Name: "in-preparation"},
	Ready:         Status{Name: "ready"},
	Dispatched:    Status{Name: "dispatched"},
	Cancelled:     Status{Name: "cancelled"},
}

var All = []Status{
	Statuses.Pending,
	Statuses.InPreparation,
	Statuses.Ready,
	Statuses.Dispatched,
	Statuses.Cancelled,
}

// ByName returns the status for a given name, or nil if not found
func ByName(name string) *Status {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}
