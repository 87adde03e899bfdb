package model

import "time"

// Transfer statuses
const (
	TransferPending   = "pending"
	TransferApproved  = "approved"
	TransferRejected  = "rejected"
	TransferCancelled = "cancelled"
)

// History actions
const (
	ActionInitialAssignment = "initial_assignment"
	ActionAssignment        = "assignment"
	ActionTransfer          = "transfer"
	ActionReturn            = "return"
)

// Key a physical room key
type Key struct {
	ID          uint      `gorm:"primaryKey"                   json:"id"`
	KeyCode     string    `gorm:"type:varchar(20);uniqueIndex" json:"key_code"`
	RoomNumber  string    `gorm:"type:varchar(20);not null"    json:"room_number"`
	Building    string    `gorm:"type:varchar(100)"            json:"building"`
	Floor       int       `json:"floor"`
	Description string    `gorm:"type:text"                    json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime"               json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"               json:"updated_at"`
}

func (Key) TableName() string { return "keys" }

// KeyWithHolder a key joined with its active assignment, if any
type KeyWithHolder struct {
	Key
	TeacherID  *uint
	AssignedAt *time.Time
}

// KeyAssignment who holds a key; only one active row per key
type KeyAssignment struct {
	ID         uint      `gorm:"primaryKey"`
	KeyID      uint      `gorm:"not null"`
	TeacherID  uint      `gorm:"not null"`
	AssignedAt time.Time `gorm:"not null"`
	IsActive   bool      `gorm:"not null"`
}

func (KeyAssignment) TableName() string { return "key_assignments" }

// KeyTransfer a request to hand a key from one teacher to another
type KeyTransfer struct {
	ID            uint       `gorm:"primaryKey"`
	KeyID         uint       `gorm:"not null"`
	Key           *Key       `gorm:"foreignKey:KeyID"`
	FromTeacherID uint       `gorm:"not null"`
	ToTeacherID   uint       `gorm:"not null"`
	Status        string     `gorm:"type:varchar(10);not null"`
	RequestedAt   time.Time  `gorm:"not null"`
	CompletedAt   *time.Time
	Notes         string     `gorm:"type:text"`
}

func (KeyTransfer) TableName() string { return "key_transfers" }

// IsPending reports whether the transfer still awaits a decision
func (t *KeyTransfer) IsPending() bool { return t.Status == TransferPending }

// KeyHistory one movement of a key
type KeyHistory struct {
	ID            uint      `gorm:"primaryKey"`
	KeyID         uint      `gorm:"not null"`
	Key           *Key      `gorm:"foreignKey:KeyID"`
	FromTeacherID *uint
	ToTeacherID   *uint
	Action        string    `gorm:"type:varchar(20);not null"`
	Timestamp     time.Time `gorm:"not null"`
	Notes         string    `gorm:"type:text"`
}

func (KeyHistory) TableName() string { return "key_history" }

// ── aggregates ──

// CountRow a grouped count, keyed by a string label
type CountRow struct {
	Label string
	Count int64
}

// TeacherActivity history rows touching one teacher
type TeacherActivity struct {
	TeacherID uint  `json:"teacher_id"`
	Count     int64 `json:"count"`
}

// KeyTransferCount transfers recorded for one key
type KeyTransferCount struct {
	ID            uint   `json:"id"`
	KeyCode       string `json:"key_code"`
	RoomNumber    string `json:"room_number"`
	Building      string `json:"building"`
	TransferCount int64  `json:"transfer_count"`
}
