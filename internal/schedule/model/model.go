package model

import (
	"time"

	"gorm.io/datatypes"
)

// Subject maps to subjects
type Subject struct {
	ID          uint      `gorm:"primaryKey"                     json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex" json:"name"`
	Description string    `gorm:"type:text"                     json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime"                json:"created_at"`
}

func (Subject) TableName() string { return "subjects" }

// Classroom maps to classrooms
type Classroom struct {
	ID        uint      `gorm:"primaryKey"                     json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex"  json:"name"`
	Building  string    `gorm:"type:varchar(100)"             json:"building"`
	Capacity  int       `gorm:"not null;default:0"            json:"capacity"`
	CreatedAt time.Time `gorm:"autoCreateTime"                json:"created_at"`
}

func (Classroom) TableName() string { return "classrooms" }

// LessonType maps to lesson_types, seeded by migration
type LessonType struct {
	ID   uint   `gorm:"primaryKey"                    json:"id"`
	Name string `gorm:"type:varchar(50);uniqueIndex" json:"name"`
}

func (LessonType) TableName() string { return "lesson_types" }

// Entry one lesson; maps to schedule.
// TeacherID and GroupID are auth service ids.
type Entry struct {
	ID           uint      `gorm:"primaryKey"             json:"id"`
	Date         string    `gorm:"type:varchar(10);index" json:"date"`
	TimeStart    string    `gorm:"type:varchar(5)"        json:"time_start"`
	TimeEnd      string    `gorm:"type:varchar(5)"        json:"time_end"`
	SubjectID    uint      `gorm:"not null"               json:"subject_id"`
	TeacherID    uint      `gorm:"not null;index"         json:"teacher_id"`
	GroupID      uint      `gorm:"not null;index"         json:"group_id"`
	ClassroomID  uint      `gorm:"not null"               json:"classroom_id"`
	LessonTypeID uint      `gorm:"not null"               json:"lesson_type_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime"         json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"         json:"updated_at"`

	Subject    *Subject    `gorm:"foreignKey:SubjectID"    json:"subject,omitempty"`
	Classroom  *Classroom  `gorm:"foreignKey:ClassroomID"  json:"classroom,omitempty"`
	LessonType *LessonType `gorm:"foreignKey:LessonTypeID" json:"lesson_type,omitempty"`
}

func (Entry) TableName() string { return "schedule" }

// Change types of a notification
const (
	ChangeCreate = "create"
	ChangeUpdate = "update"
	ChangeDelete = "delete"
)

// Notification a schedule change waiting to be delivered.
// PreviousData and NewData hold Snapshot documents.
type Notification struct {
	ID           uint           `gorm:"primaryKey"             json:"id"`
	ScheduleID   uint           `gorm:"not null"               json:"schedule_id"`
	ChangeType   string         `gorm:"type:varchar(10)"       json:"change_type"`
	PreviousData datatypes.JSON `gorm:"type:text"              json:"previous_data"`
	NewData      datatypes.JSON `gorm:"type:text"              json:"new_data"`
	IsSent       bool           `gorm:"not null;default:false" json:"is_sent"`
	SentAt       *time.Time     `                              json:"sent_at"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"         json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// Snapshot state of an entry at the time of a change, with names resolved
type Snapshot struct {
	ID             uint   `json:"id"`
	Date           string `json:"date"`
	TimeStart      string `json:"time_start"`
	TimeEnd        string `json:"time_end"`
	SubjectID      uint   `json:"subject_id"`
	SubjectName    string `json:"subject_name"`
	TeacherID      uint   `json:"teacher_id"`
	GroupID        uint   `json:"group_id"`
	ClassroomID    uint   `json:"classroom_id"`
	ClassroomName  string `json:"classroom_name"`
	LessonTypeID   uint   `json:"lesson_type_id"`
	LessonTypeName string `json:"lesson_type_name"`
}

// SnapshotOf copies e and the names of its preloaded relations
func SnapshotOf(e *Entry) Snapshot {
	s := Snapshot{
		ID:           e.ID,
		Date:         e.Date,
		TimeStart:    e.TimeStart,
		TimeEnd:      e.TimeEnd,
		SubjectID:    e.SubjectID,
		TeacherID:    e.TeacherID,
		GroupID:      e.GroupID,
		ClassroomID:  e.ClassroomID,
		LessonTypeID: e.LessonTypeID,
	}
	if e.Subject != nil {
		s.SubjectName = e.Subject.Name
	}
	if e.Classroom != nil {
		s.ClassroomName = e.Classroom.Name
	}
	if e.LessonType != nil {
		s.LessonTypeName = e.LessonType.Name
	}
	return s
}
