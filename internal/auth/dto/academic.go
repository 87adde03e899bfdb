package dto

// ── faculties ──

// CreateFacultyRequest new faculty
type CreateFacultyRequest struct {
	Name        string `json:"name"        binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateFacultyRequest partial update
type UpdateFacultyRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// FacultyResponse faculty
type FacultyResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// ── departments ──

// DepartmentListRequest GET /departments query
type DepartmentListRequest struct {
	FacultyID uint `form:"faculty_id"`
}

// CreateDepartmentRequest new department
type CreateDepartmentRequest struct {
	Name          string `json:"name"            binding:"required,max=100"`
	FacultyID     uint   `json:"faculty_id"      binding:"required,min=1"`
	HeadTeacherID *uint  `json:"head_teacher_id" binding:"omitempty,min=1"`
}

// UpdateDepartmentRequest partial update. head_teacher_id 0 removes the head.
type UpdateDepartmentRequest struct {
	Name          *string `json:"name"            binding:"omitempty,min=1,max=100"`
	FacultyID     *uint   `json:"faculty_id"      binding:"omitempty,min=1"`
	HeadTeacherID *uint   `json:"head_teacher_id"`
}

// DepartmentResponse department with faculty and head names
type DepartmentResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	FacultyID       uint   `json:"faculty_id"`
	FacultyName     string `json:"faculty_name"`
	HeadTeacherID   *uint  `json:"head_teacher_id"`
	HeadTeacherName string `json:"head_teacher_name"`
	CreatedAt       string `json:"created_at"`
}

// ── groups ──

// GroupListRequest GET /groups query
type GroupListRequest struct {
	FacultyID uint `form:"faculty_id"`
}

// CreateGroupRequest new group
type CreateGroupRequest struct {
	Name      string `json:"name"       binding:"required,max=50"`
	FacultyID uint   `json:"faculty_id" binding:"required,min=1"`
	Year      int    `json:"year"       binding:"omitempty,min=1,max=6"`
}

// UpdateGroupRequest partial update
type UpdateGroupRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=1,max=50"`
	FacultyID *uint   `json:"faculty_id" binding:"omitempty,min=1"`
	Year      *int    `json:"year"       binding:"omitempty,min=1,max=6"`
}

// GroupResponse group with its faculty name
type GroupResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	FacultyID   uint   `json:"faculty_id"`
	FacultyName string `json:"faculty_name"`
	Year        int    `json:"year"`
	CreatedAt   string `json:"created_at"`
}

// ── subjects ──

// CreateSubjectRequest new subject
type CreateSubjectRequest struct {
	Name        string `json:"name"        binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateSubjectRequest partial update
type UpdateSubjectRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// SubjectResponse subject
type SubjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
