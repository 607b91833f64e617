// internal/client/profile/route.go
package profile

// Destination is the screen the navigation guard sends the player to.
type Destination string

const (
	RouteLoading Destination = "loading"
	RouteLogin   Destination = "login"
	RouteMain    Destination = "main"
)

// Route waits for hydration, then sends logged-out players to login and
// everyone else to the main tabs.
func Route(c *Cache) Destination {
	switch {
	case !c.Hydrated():
		return RouteLoading
	case !c.LoggedIn():
		return RouteLogin
	default:
		return RouteMain
	}
}
