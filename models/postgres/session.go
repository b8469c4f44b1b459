package postgres

import (
	"time"
)

// City is the closed set of cities a session can be listed in.
type City string

const (
	CityTrabzon  City = "TRABZON"
	CityIstanbul City = "ISTANBUL"
	CityIzmir    City = "IZMIR"
	CityAnkara   City = "ANKARA"
)

// IsValid reports whether c is one of the known cities.
func (c City) IsValid() bool {
	switch c {
	case CityTrabzon, CityIstanbul, CityIzmir, CityAnkara:
		return true
	}
	return false
}

/*
 * 'Session' defines a scheduled sports meetup. The creating user is the
 * owner; members are tracked through the SessionMember join table.
 */
type Session struct {
	ID           uint      `gorm:"primaryKey"`
	Description  string    `gorm:"size:255"`
	City         string    `gorm:"size:20;not null;index:idx_sessions_city"`
	District     string    `gorm:"size:255"`
	FacilityName string    `gorm:"size:30;not null"`
	EventDate    time.Time `gorm:"not null"`
	PlayerLimit  *int
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	OwnerID      uint      `gorm:"not null;index:idx_sessions_owner"`

	// Relationships
	Owner   User            `gorm:"foreignKey:OwnerID"`
	Members []SessionMember `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
