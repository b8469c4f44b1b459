package responses

import (
	models "Sahada/models/postgres"
	"time"
)

// SessionResponse is the external shape of a session: owner and members are
// resolved to usernames, every other field passes through.
type SessionResponse struct {
	ID           uint      `json:"id"`
	Description  string    `json:"description,omitempty"`
	Owner        string    `json:"owner"`
	Users        []string  `json:"users"`
	City         string    `json:"city"`
	District     string    `json:"district,omitempty"`
	FacilityName string    `json:"facility_name"`
	EventDate    time.Time `json:"event_date"`
	PlayerLimit  *int      `json:"player_limit,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSessionResponse is the session shape embedded in a user profile. The
// owner field is omitted since the profile only lists sessions the user owns.
type UserSessionResponse struct {
	ID           uint      `json:"id"`
	Description  string    `json:"description,omitempty"`
	Users        []string  `json:"users"`
	City         string    `json:"city"`
	District     string    `json:"district,omitempty"`
	FacilityName string    `json:"facility_name"`
	EventDate    time.Time `json:"event_date"`
	PlayerLimit  *int      `json:"player_limit,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserResponse is the public profile of a user.
type UserResponse struct {
	ID             uint                  `json:"id"`
	Username       string                `json:"username"`
	NameAndSurname string                `json:"name_and_surname"`
	Email          string                `json:"email"`
	PhoneNumber    string                `json:"phone_number"`
	Sessions       []UserSessionResponse `json:"sessions"`
}

func memberUsernames(members []models.SessionMember) []string {
	users := make([]string, len(members))
	for i, member := range members {
		users[i] = member.User.Username
	}
	return users
}

// NewSessionResponse maps a session (with Owner and Members.User loaded) to
// its external view.
func NewSessionResponse(session *models.Session) SessionResponse {
	return SessionResponse{
		ID:           session.ID,
		Description:  session.Description,
		Owner:        session.Owner.Username,
		Users:        memberUsernames(session.Members),
		City:         session.City,
		District:     session.District,
		FacilityName: session.FacilityName,
		EventDate:    session.EventDate,
		PlayerLimit:  session.PlayerLimit,
		CreatedAt:    session.CreatedAt,
	}
}

// NewUserResponse maps a user and the sessions they own to the profile view.
func NewUserResponse(user *models.User, ownedSessions []models.Session) UserResponse {
	sessions := make([]UserSessionResponse, len(ownedSessions))
	for i, session := range ownedSessions {
		sessions[i] = UserSessionResponse{
			ID:           session.ID,
			Description:  session.Description,
			Users:        memberUsernames(session.Members),
			City:         session.City,
			District:     session.District,
			FacilityName: session.FacilityName,
			EventDate:    session.EventDate,
			PlayerLimit:  session.PlayerLimit,
			CreatedAt:    session.CreatedAt,
		}
	}

	return UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		NameAndSurname: user.Name + " " + user.Surname,
		Email:          user.Email,
		PhoneNumber:    user.PhoneNumber,
		Sessions:       sessions,
	}
}
