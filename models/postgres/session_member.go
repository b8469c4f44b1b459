package postgres

/*
 * 'SessionMember' is one (session, user) membership pairing. The composite
 * primary key keeps a user from appearing twice in the same session.
 */
type SessionMember struct {
	SessionID uint `gorm:"primaryKey;autoIncrement:false;not null;index:idx_session_members_session"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false;not null;index:idx_session_members_user"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
