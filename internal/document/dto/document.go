package dto

import "github.com/yerk0w/EduLifeFor-merge/internal/dto"

// ── documents ──

// CreateDocumentRequest JSON document; only an admin may address it to someone
type CreateDocumentRequest struct {
	Title        string `json:"title"         binding:"required,max=100"`
	Content      string `json:"content"       binding:"max=20000"`
	TemplateType string `json:"template_type" binding:"max=100"`
	RecipientID  *uint  `json:"recipient_id"  binding:"omitempty,min=1"`
}

// UploadDocumentRequest multipart fields of a PDF upload; the file comes as "file"
type UploadDocumentRequest struct {
	Title        string `form:"title"         binding:"required,max=100"`
	Content      string `form:"content"       binding:"max=20000"`
	TemplateType string `form:"template_type" binding:"max=100"`
}

// DocumentListRequest GET /documents query
type DocumentListRequest struct {
	dto.PaginationRequest
	Status       string `form:"status"        binding:"omitempty,oneof=pending approved rejected"`
	TemplateType string `form:"template_type"`
}

// DocumentFilterRequest GET /documents/filter query
type DocumentFilterRequest struct {
	dto.PaginationRequest
	AuthorID       uint   `form:"author_id"`
	Status         string `form:"status"          binding:"omitempty,oneof=pending approved rejected"`
	TemplateType   string `form:"template_type"`
	FacultyName    string `form:"faculty_name"`
	DepartmentName string `form:"department_name"`
	GroupName      string `form:"group_name"`
}

// ReviewDocumentRequest PATCH /documents/:id/review
type ReviewDocumentRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

// DocumentResponse document with the author's name
type DocumentResponse struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Status       string `json:"status"`
	AuthorID     uint   `json:"author_id"`
	AuthorName   string `json:"author_name"`
	RecipientID  *uint  `json:"recipient_id"`
	TemplateType string `json:"template_type"`
	HasFile      bool   `json:"has_file"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// DocumentStats GET /documents/stats
type DocumentStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByTemplate map[string]int64 `json:"by_template"`
	ByFaculty  map[string]int64 `json:"by_faculty"`
}
