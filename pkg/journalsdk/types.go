package journalsdk

// User is the public view of an account.
type User struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
}

// TravelStory is a single journal entry as returned by the service.
// VisitedDate and CreatedAt are epoch milliseconds.
type TravelStory struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Story           string   `json:"story"`
	VisitedLocation []string `json:"visitedLocation"`
	ImageURL        string   `json:"imageUrl"`
	VisitedDate     int64    `json:"visitedDate"`
	IsFavourite     bool     `json:"isFavourite"`
	CreatedAt       int64    `json:"createdAt"`
}

// StoryRequest carries the editable fields of a travel story for
// create and update calls. VisitedDate is epoch milliseconds.
type StoryRequest struct {
	Title           string   `json:"title"`
	Story           string   `json:"story"`
	VisitedLocation []string `json:"visitedLocation"`
	ImageURL        string   `json:"imageUrl"`
	VisitedDate     int64    `json:"visitedDate"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type favouriteRequest struct {
	IsFavourite bool `json:"isFavourite"`
}

// StoryResponse wraps a single travel story.
type StoryResponse struct {
	Story TravelStory `json:"story"`
}

// StoriesResponse wraps a story listing.
type StoriesResponse struct {
	Stories []TravelStory `json:"stories"`
}

// UserResponse wraps the authenticated user's details.
type UserResponse struct {
	User User `json:"user"`
}

// UploadResponse is returned by the image upload endpoint.
type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of the service's dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}
