package dto

type SignupRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is returned by signup and signin and persisted by the client.
type Session struct {
	AccessToken string `json:"access_token"`
	ProfileImg  string `json:"profile_img"`
	Username    string `json:"username"`
	Fullname    string `json:"fullname"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}
