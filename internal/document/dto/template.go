package dto

// ── templates ──

// CreateTemplateRequest multipart fields; the PDF comes as "file".
// Missing availability flags default to true.
type CreateTemplateRequest struct {
	Name                 string `form:"name"                   binding:"required,max=100"`
	Description          string `form:"description"            binding:"max=2000"`
	AvailableForStudents *bool  `form:"available_for_students"`
	AvailableForTeachers *bool  `form:"available_for_teachers"`
}

// UpdateTemplateRequest partial update; accepted as JSON or multipart with an optional new file
type UpdateTemplateRequest struct {
	Name                 *string `json:"name"                   form:"name"                   binding:"omitempty,min=1,max=100"`
	Description          *string `json:"description"            form:"description"            binding:"omitempty,max=2000"`
	AvailableForStudents *bool   `json:"available_for_students" form:"available_for_students"`
	AvailableForTeachers *bool   `json:"available_for_teachers" form:"available_for_teachers"`
}

// TemplateResponse template
type TemplateResponse struct {
	ID                   uint   `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description"`
	AvailableForStudents bool   `json:"available_for_students"`
	AvailableForTeachers bool   `json:"available_for_teachers"`
	HasFile              bool   `json:"has_file"`
	CreatedAt            string `json:"created_at"`
	UpdatedAt            string `json:"updated_at"`
}
