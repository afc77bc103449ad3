package domain

// TokenPair is what the credential endpoints return. RefreshToken is empty
// when a renewal did not rotate the refresh token; the JSON key is omitted
// in that case so clients can tell the difference.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}
