package session

// Destination is the screen the console lands on after startup or login.
type Destination string

const (
	DestinationLogin     Destination = "login"
	DestinationDashboard Destination = "dashboard"
	DestinationAdmin     Destination = "admin"
)

// RouteFor picks the landing screen from the principal alone: no session
// means login, administrators land on the admin console, everyone else on
// their dashboard.
func RouteFor(p *Principal) Destination {
	switch {
	case p == nil:
		return DestinationLogin
	case p.Role == "ADMIN":
		return DestinationAdmin
	default:
		return DestinationDashboard
	}
}
