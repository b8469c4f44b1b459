package postgres

/*
 * 'User' contains the blueprint definition of a registered player.
 * Username, email and phone number must be unique across all users.
 */
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:20;not null;uniqueIndex"`
	Email        string `gorm:"size:100;not null;uniqueIndex"`
	PhoneNumber  string `gorm:"size:12;not null;uniqueIndex"`
	Name         string `gorm:"size:30;not null"`
	Surname      string `gorm:"size:30;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	// Sessions created by this user
	OwnedSessions []Session `gorm:"foreignKey:OwnerID"`
}
