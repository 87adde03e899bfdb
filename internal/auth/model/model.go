package model

import (
	"time"

	"gorm.io/datatypes"
)

// Role maps to roles
type Role struct {
	ID          uint           `gorm:"primaryKey"                      json:"id"`
	Name        string         `gorm:"type:varchar(50);uniqueIndex"   json:"name"`
	Permissions datatypes.JSON `gorm:"type:text;not null"             json:"permissions"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"                 json:"created_at"`
}

func (Role) TableName() string { return "roles" }

// User maps to users
type User struct {
	ID           uint      `gorm:"primaryKey"                     json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex"  json:"username"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex" json:"email"`
	FullName     string    `gorm:"type:varchar(100)"             json:"full_name"`
	PasswordHash string    `gorm:"type:varchar(255);not null"    json:"-"`
	RoleID       uint      `gorm:"not null;index"                json:"role_id"`
	Disabled     bool      `gorm:"not null;default:false"        json:"disabled"`
	CreatedAt    time.Time `gorm:"autoCreateTime"                json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"                json:"updated_at"`

	Role    *Role        `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Profile *UserProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (User) TableName() string { return "users" }

// RoleName role name or "" when the role is not loaded
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// UserProfile maps to user_profiles, 1:1 with users
type UserProfile struct {
	ID                      uint           `gorm:"primaryKey"            json:"id"`
	UserID                  uint           `gorm:"uniqueIndex;not null"  json:"user_id"`
	Telegram                string         `gorm:"type:varchar(100)"     json:"telegram"`
	PhoneNumber             string         `gorm:"type:varchar(30)"      json:"phone_number"`
	BirthDate               string         `gorm:"type:varchar(10)"      json:"birth_date"`
	Gender                  string         `gorm:"type:varchar(20)"      json:"gender"`
	City                    string         `gorm:"type:varchar(100)"     json:"city"`
	NotificationPreferences datatypes.JSON `gorm:"type:text"             json:"notification_preferences"`
	Theme                   string         `gorm:"type:varchar(20)"      json:"theme"`
	Language                string         `gorm:"type:varchar(10)"      json:"language"`
	CreatedAt               time.Time      `gorm:"autoCreateTime"        json:"created_at"`
	UpdatedAt               time.Time      `gorm:"autoUpdateTime"        json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// Profile defaults
const (
	DefaultTheme    = "light"
	DefaultLanguage = "ru"
)

// DefaultNotificationPreferences email on, telegram off
var DefaultNotificationPreferences = datatypes.JSON(`{"email":true,"telegram":false}`)

// NewProfile empty profile with defaults
func NewProfile(userID uint) *UserProfile {
	return &UserProfile{
		UserID:                  userID,
		NotificationPreferences: DefaultNotificationPreferences,
		Theme:                   DefaultTheme,
		Language:                DefaultLanguage,
	}
}

// Faculty maps to faculties
type Faculty struct {
	ID          uint      `gorm:"primaryKey"                     json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex" json:"name"`
	Description string    `gorm:"type:text"                     json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime"                json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"                json:"updated_at"`
}

func (Faculty) TableName() string { return "faculties" }

// Department maps to departments
type Department struct {
	ID            uint      `gorm:"primaryKey"                     json:"id"`
	Name          string    `gorm:"type:varchar(100);uniqueIndex" json:"name"`
	FacultyID     uint      `gorm:"not null;index"                json:"faculty_id"`
	HeadTeacherID *uint     `gorm:"index"                         json:"head_teacher_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime"                json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"                json:"updated_at"`

	Faculty     *Faculty `gorm:"foreignKey:FacultyID"     json:"faculty,omitempty"`
	HeadTeacher *Teacher `gorm:"foreignKey:HeadTeacherID" json:"head_teacher,omitempty"`
}

func (Department) TableName() string { return "departments" }

// Group maps to student_groups
type Group struct {
	ID        uint      `gorm:"primaryKey"                    json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex" json:"name"`
	FacultyID uint      `gorm:"not null;index"               json:"faculty_id"`
	Year      int       `gorm:"not null;default:1"           json:"year"`
	CreatedAt time.Time `gorm:"autoCreateTime"               json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"               json:"updated_at"`

	Faculty *Faculty `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
}

func (Group) TableName() string { return "student_groups" }

// Teacher maps to teachers
type Teacher struct {
	ID           uint      `gorm:"primaryKey"            json:"id"`
	UserID       uint      `gorm:"uniqueIndex;not null"  json:"user_id"`
	DepartmentID uint      `gorm:"not null;index"        json:"department_id"`
	Position     string    `gorm:"type:varchar(100)"     json:"position"`
	ContactInfo  string    `gorm:"type:varchar(255)"     json:"contact_info"`
	CreatedAt    time.Time `gorm:"autoCreateTime"        json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"        json:"updated_at"`

	User       *User       `gorm:"foreignKey:UserID"                json:"user,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID"          json:"department,omitempty"`
	Subjects   []Subject   `gorm:"many2many:teacher_subjects"       json:"subjects,omitempty"`
}

func (Teacher) TableName() string { return "teachers" }

// TeacherSubject join row of teacher_subjects
type TeacherSubject struct {
	TeacherID uint `gorm:"primaryKey"`
	SubjectID uint `gorm:"primaryKey"`
}

func (TeacherSubject) TableName() string { return "teacher_subjects" }

// Student maps to students
type Student struct {
	ID             uint      `gorm:"primaryKey"                    json:"id"`
	UserID         uint      `gorm:"uniqueIndex;not null"          json:"user_id"`
	GroupID        uint      `gorm:"not null;index"                json:"group_id"`
	StudentNumber  string    `gorm:"type:varchar(50);uniqueIndex" json:"student_number"`
	EnrollmentYear int       `gorm:"not null;default:0"           json:"enrollment_year"`
	CreatedAt      time.Time `gorm:"autoCreateTime"               json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"               json:"updated_at"`

	User  *User  `gorm:"foreignKey:UserID"  json:"user,omitempty"`
	Group *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

func (Student) TableName() string { return "students" }

// Subject maps to subjects
type Subject struct {
	ID          uint      `gorm:"primaryKey"                     json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex" json:"name"`
	Description string    `gorm:"type:text"                     json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime"                json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"                json:"updated_at"`
}

func (Subject) TableName() string { return "subjects" }
