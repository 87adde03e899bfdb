package dto

// ── users ──

// UserResponse local user mirror
type UserResponse struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"`
	IsActive       bool   `json:"is_active"`
	Telegram       string `json:"telegram"`
	PhoneNumber    string `json:"phone_number"`
	FacultyName    string `json:"faculty_name"`
	GroupName      string `json:"group_name"`
	DepartmentName string `json:"department_name"`
	Position       string `json:"position"`
}

// ── registration ──

// RegisterRequest POST /register, public sign-up with a requested role
type RegisterRequest struct {
	Username      string `json:"username"       binding:"required,min=3,max=50"`
	Email         string `json:"email"          binding:"required,email,max=100"`
	FullName      string `json:"full_name"      binding:"required,max=100"`
	Password      string `json:"password"       binding:"required,min=6,max=72"`
	RequestedRole string `json:"requested_role" binding:"required,oneof=student teacher"`
}

// CreateRegistrationRequest POST /registration-requests
type CreateRegistrationRequest struct {
	RequestedRole string `json:"requested_role" binding:"required,oneof=student teacher"`
	Comment       string `json:"comment"        binding:"max=1000"`
}

// ProcessRegistrationRequest PATCH /registration-requests/:id
type ProcessRegistrationRequest struct {
	Status  string `json:"status"  binding:"required,oneof=approved rejected"`
	Comment string `json:"comment" binding:"max=1000"`
}

// RegistrationResponse registration request with the applicant
type RegistrationResponse struct {
	ID            uint    `json:"id"`
	UserID        uint    `json:"user_id"`
	Username      string  `json:"username"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	RequestedRole string  `json:"requested_role"`
	Status        string  `json:"status"`
	Comment       string  `json:"comment"`
	CreatedAt     string  `json:"created_at"`
	ProcessedAt   *string `json:"processed_at"`
}

// RegisterResponse outcome of a public sign-up
type RegisterResponse struct {
	User    UserResponse         `json:"user"`
	Request RegistrationResponse `json:"request"`
}
