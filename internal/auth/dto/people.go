package dto

// ── teachers ──

// TeacherListRequest GET /teachers query
type TeacherListRequest struct {
	DepartmentID uint `form:"department_id"`
	UserID       uint `form:"user_id"`
}

// CreateTeacherRequest attach a teacher record to an existing user
type CreateTeacherRequest struct {
	UserID       uint   `json:"user_id"       binding:"required,min=1"`
	DepartmentID uint   `json:"department_id" binding:"required,min=1"`
	Position     string `json:"position"      binding:"max=100"`
	ContactInfo  string `json:"contact_info"  binding:"max=255"`
	SubjectIDs   []uint `json:"subject_ids"`
}

// UpdateTeacherRequest partial update. A non-nil SubjectIDs replaces the whole set.
type UpdateTeacherRequest struct {
	DepartmentID *uint   `json:"department_id" binding:"omitempty,min=1"`
	Position     *string `json:"position"      binding:"omitempty,max=100"`
	ContactInfo  *string `json:"contact_info"  binding:"omitempty,max=255"`
	SubjectIDs   *[]uint `json:"subject_ids"`
}

// TeacherResponse teacher joined with user and department
type TeacherResponse struct {
	ID             uint              `json:"id"`
	UserID         uint              `json:"user_id"`
	FullName       string            `json:"full_name"`
	Email          string            `json:"email"`
	Telegram       string            `json:"telegram"`
	DepartmentID   uint              `json:"department_id"`
	DepartmentName string            `json:"department_name"`
	Position       string            `json:"position"`
	ContactInfo    string            `json:"contact_info"`
	Subjects       []SubjectResponse `json:"subjects"`
}

// ── students ──

// StudentListRequest GET /students query
type StudentListRequest struct {
	GroupID uint `form:"group_id"`
	UserID  uint `form:"user_id"`
}

// CreateStudentRequest attach a student record to an existing user
type CreateStudentRequest struct {
	UserID         uint   `json:"user_id"         binding:"required,min=1"`
	GroupID        uint   `json:"group_id"        binding:"required,min=1"`
	StudentNumber  string `json:"student_number"  binding:"required,max=50"`
	EnrollmentYear int    `json:"enrollment_year" binding:"omitempty,min=1990,max=2100"`
}

// UpdateStudentRequest partial update
type UpdateStudentRequest struct {
	GroupID        *uint   `json:"group_id"        binding:"omitempty,min=1"`
	StudentNumber  *string `json:"student_number"  binding:"omitempty,min=1,max=50"`
	EnrollmentYear *int    `json:"enrollment_year" binding:"omitempty,min=1990,max=2100"`
}

// StudentResponse student joined with user, group and faculty
type StudentResponse struct {
	ID             uint   `json:"id"`
	UserID         uint   `json:"user_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Telegram       string `json:"telegram"`
	GroupID        uint   `json:"group_id"`
	GroupName      string `json:"group_name"`
	FacultyID      uint   `json:"faculty_id"`
	FacultyName    string `json:"faculty_name"`
	StudentNumber  string `json:"student_number"`
	EnrollmentYear int    `json:"enrollment_year"`
}

// ImportStudentsResponse result of an xlsx import
type ImportStudentsResponse struct {
	Total   int           `json:"total"`
	Created int           `json:"created"`
	Failed  []ImportError `json:"failed"`
}

// ImportError one rejected spreadsheet row
type ImportError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
