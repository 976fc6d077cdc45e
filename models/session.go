package models

// Session is the client-side record of an authenticated user: a bearer
// token plus an optional refresh token. It is also the JSON shape of
// the auth API's login and refresh responses.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Established reports whether a bearer token is present.
func (s Session) Established() bool {
	return s.AccessToken != ""
}
