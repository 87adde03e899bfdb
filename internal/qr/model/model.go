package model

import "time"

// User local mirror of an auth user; ID is the auth user id
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Username  string    `gorm:"type:varchar(50)"               json:"username"`
	FullName  string    `gorm:"type:varchar(100)"              json:"full_name"`
	Role      string    `gorm:"type:varchar(20)"               json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime"                 json:"created_at"`
}

func (User) TableName() string { return "users" }

// DisplayName full name, falling back to the username
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Session one recorded attendance
type Session struct {
	ID          uint      `gorm:"primaryKey"       json:"id"`
	UserID      uint      `gorm:"not null;index"   json:"user_id"`
	SessionTime time.Time `gorm:"not null"         json:"session_time"`
	SubjectID   uint      `gorm:"not null"         json:"subject_id"`
	ShiftID     uint      `gorm:"not null"         json:"shift_id"`
	TeacherID   uint      `gorm:"not null"         json:"teacher_id"`
	DayOfWeek   int       `gorm:"not null"         json:"day_of_week"`
	TokenID     string    `gorm:"type:varchar(36)" json:"token_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime"   json:"created_at"`
}

func (Session) TableName() string { return "sessions" }

// AttendanceStat attendance count of one (subject, shift, teacher, weekday) slot
type AttendanceStat struct {
	SubjectID       uint  `json:"subject_id"`
	ShiftID         uint  `json:"shift_id"`
	TeacherID       uint  `json:"teacher_id"`
	DayOfWeek       int   `json:"day_of_week"`
	AttendanceCount int64 `json:"attendance_count"`
}
