package userpayload

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

//--
// Request and Response payloads for authors.
//--

// UserPayload is the author as rendered to clients, with a computed
// display name.
type UserPayload struct {
	*model.User

	DisplayName string `json:"displayName"`
}

func NewUserPayloadResponse(user *model.User) *UserPayload {
	return &UserPayload{User: user}
}

func (u *UserPayload) Render(w http.ResponseWriter, r *http.Request) error {
	if u.User == nil {
		return nil
	}

	var parts []string
	for _, p := range []*string{u.FirstName, u.LastName} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	u.DisplayName = strings.Join(parts, " ")
	if u.DisplayName == "" {
		u.DisplayName = u.ID
	}

	return nil
}

// UpsertRequest is the profile pushed by the identity provider. The id comes
// from the URL, never from the body.
type UpsertRequest struct {
	model.UpsertUser
}

// Bind on UpsertRequest runs after the unmarshalling is complete.
func (u *UpsertRequest) Bind(r *http.Request) error {
	u.ID = ""
	if u.Email != nil {
		email := strings.TrimSpace(*u.Email)
		if email == "" {
			u.Email = nil
		} else if !strings.Contains(email, "@") {
			return errors.New("email is malformed")
		} else {
			u.Email = &email
		}
	}

	return nil
}
