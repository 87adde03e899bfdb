package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/document/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/model"
)

const (
	timeLayout        = time.RFC3339
	unknownAuthorName = "Неизвестный автор"
)

func notFoundAs(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		IsActive:       u.IsActive,
		Telegram:       u.Telegram,
		PhoneNumber:    u.PhoneNumber,
		FacultyName:    u.FacultyName,
		GroupName:      u.GroupName,
		DepartmentName: u.DepartmentName,
		Position:       u.Position,
	}
}

func toDocumentResponse(d *model.Document) dto.DocumentResponse {
	resp := dto.DocumentResponse{
		ID:           d.ID,
		Title:        d.Title,
		Content:      d.Content,
		Status:       d.Status,
		AuthorID:     d.AuthorID,
		AuthorName:   unknownAuthorName,
		RecipientID:  d.RecipientID,
		TemplateType: d.TemplateType,
		HasFile:      d.FilePath != "",
		CreatedAt:    d.CreatedAt.Format(timeLayout),
		UpdatedAt:    d.UpdatedAt.Format(timeLayout),
	}
	if d.Author != nil && d.Author.FullName != "" {
		resp.AuthorName = d.Author.FullName
	}
	return resp
}

func toDocumentResponses(list []model.Document) []dto.DocumentResponse {
	result := make([]dto.DocumentResponse, 0, len(list))
	for i := range list {
		result = append(result, toDocumentResponse(&list[i]))
	}
	return result
}

func toRegistrationResponse(r *model.RegistrationRequest) dto.RegistrationResponse {
	resp := dto.RegistrationResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		RequestedRole: r.RequestedRole,
		Status:        r.Status,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt.Format(timeLayout),
	}
	if r.User != nil {
		resp.Username = r.User.Username
		resp.FullName = r.User.FullName
		resp.Email = r.User.Email
	}
	if r.ProcessedAt != nil {
		s := r.ProcessedAt.Format(timeLayout)
		resp.ProcessedAt = &s
	}
	return resp
}

func toTemplateResponse(t *model.Template) dto.TemplateResponse {
	return dto.TemplateResponse{
		ID:                   t.ID,
		Name:                 t.Name,
		Description:          t.Description,
		AvailableForStudents: t.AvailableForStudents,
		AvailableForTeachers: t.AvailableForTeachers,
		HasFile:              t.FilePath != "",
		CreatedAt:            t.CreatedAt.Format(timeLayout),
		UpdatedAt:            t.UpdatedAt.Format(timeLayout),
	}
}
