package model

import "time"

// User local mirror of an auth user; ID is the auth user id
type User struct {
	ID             uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Username       string    `gorm:"type:varchar(50)"               json:"username"`
	Email          string    `gorm:"type:varchar(100)"              json:"email"`
	FullName       string    `gorm:"type:varchar(100)"              json:"full_name"`
	Role           string    `gorm:"type:varchar(20)"               json:"role"`
	IsActive       bool      `gorm:"not null"                       json:"is_active"`
	Telegram       string    `gorm:"type:varchar(100)"              json:"telegram"`
	PhoneNumber    string    `gorm:"type:varchar(30)"               json:"phone_number"`
	FacultyName    string    `gorm:"type:varchar(100)"              json:"faculty_name"`
	GroupName      string    `gorm:"type:varchar(50)"               json:"group_name"`
	DepartmentName string    `gorm:"type:varchar(100)"              json:"department_name"`
	Position       string    `gorm:"type:varchar(100)"              json:"position"`
	CreatedAt      time.Time `gorm:"autoCreateTime"                 json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"                 json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Review states shared by documents and registration requests
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Document a submitted document
type Document struct {
	ID           uint      `gorm:"primaryKey"        json:"id"`
	Title        string    `gorm:"type:varchar(100)" json:"title"`
	Content      string    `gorm:"type:text"         json:"content"`
	Status       string    `gorm:"type:varchar(20)"  json:"status"`
	AuthorID     uint      `gorm:"not null;index"    json:"author_id"`
	RecipientID  *uint     `gorm:"index"             json:"recipient_id"`
	TemplateType string    `gorm:"type:varchar(100)" json:"template_type"`
	FilePath     string    `gorm:"type:varchar(255)" json:"file_path"`
	CreatedAt    time.Time `gorm:"autoCreateTime"    json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"    json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Document) TableName() string { return "documents" }

// RegistrationRequest a request for a role, reviewed by an admin
type RegistrationRequest struct {
	ID            uint       `gorm:"primaryKey"       json:"id"`
	UserID        uint       `gorm:"not null;index"   json:"user_id"`
	RequestedRole string     `gorm:"type:varchar(20)" json:"requested_role"`
	Status        string     `gorm:"type:varchar(20)" json:"status"`
	Comment       string     `gorm:"type:text"        json:"comment"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"   json:"created_at"`
	ProcessedAt   *time.Time `                        json:"processed_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (RegistrationRequest) TableName() string { return "registration_requests" }

// Template a blank PDF form offered to students and/or teachers
type Template struct {
	ID                   uint      `gorm:"primaryKey"        json:"id"`
	Name                 string    `gorm:"type:varchar(100)" json:"name"`
	Description          string    `gorm:"type:text"         json:"description"`
	FilePath             string    `gorm:"type:varchar(255)" json:"file_path"`
	AvailableForStudents bool      `gorm:"not null"          json:"available_for_students"`
	AvailableForTeachers bool      `gorm:"not null"          json:"available_for_teachers"`
	CreatedAt            time.Time `gorm:"autoCreateTime"    json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"    json:"updated_at"`
}

func (Template) TableName() string { return "templates" }
