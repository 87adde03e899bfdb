package service

import (
	"encoding/json"
	"time"

	"github.com/yerk0w/EduLifeFor-merge/internal/auth/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/model"
)

const timeLayout = time.RFC3339

func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.RoleName(),
		RoleID:    u.RoleID,
		Disabled:  u.Disabled,
		CreatedAt: u.CreatedAt.Format(timeLayout),
	}
}

func toFacultyResponse(f *model.Faculty) *dto.FacultyResponse {
	return &dto.FacultyResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		CreatedAt:   f.CreatedAt.Format(timeLayout),
	}
}

func toDepartmentResponse(d *model.Department) *dto.DepartmentResponse {
	resp := &dto.DepartmentResponse{
		ID:            d.ID,
		Name:          d.Name,
		FacultyID:     d.FacultyID,
		HeadTeacherID: d.HeadTeacherID,
		CreatedAt:     d.CreatedAt.Format(timeLayout),
	}
	if d.Faculty != nil {
		resp.FacultyName = d.Faculty.Name
	}
	if d.HeadTeacher != nil && d.HeadTeacher.User != nil {
		resp.HeadTeacherName = d.HeadTeacher.User.FullName
	}
	return resp
}

func toGroupResponse(g *model.Group) *dto.GroupResponse {
	resp := &dto.GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		FacultyID: g.FacultyID,
		Year:      g.Year,
		CreatedAt: g.CreatedAt.Format(timeLayout),
	}
	if g.Faculty != nil {
		resp.FacultyName = g.Faculty.Name
	}
	return resp
}

func toSubjectResponse(s *model.Subject) dto.SubjectResponse {
	return dto.SubjectResponse{ID: s.ID, Name: s.Name, Description: s.Description}
}

func toTeacherResponse(t *model.Teacher) *dto.TeacherResponse {
	resp := &dto.TeacherResponse{
		ID:           t.ID,
		UserID:       t.UserID,
		DepartmentID: t.DepartmentID,
		Position:     t.Position,
		ContactInfo:  t.ContactInfo,
		Subjects:     make([]dto.SubjectResponse, 0, len(t.Subjects)),
	}
	if t.User != nil {
		resp.FullName = t.User.FullName
		resp.Email = t.User.Email
		if t.User.Profile != nil {
			resp.Telegram = t.User.Profile.Telegram
		}
	}
	if t.Department != nil {
		resp.DepartmentName = t.Department.Name
	}
	for i := range t.Subjects {
		resp.Subjects = append(resp.Subjects, toSubjectResponse(&t.Subjects[i]))
	}
	return resp
}

func toStudentResponse(s *model.Student) *dto.StudentResponse {
	resp := &dto.StudentResponse{
		ID:             s.ID,
		UserID:         s.UserID,
		GroupID:        s.GroupID,
		StudentNumber:  s.StudentNumber,
		EnrollmentYear: s.EnrollmentYear,
	}
	if s.User != nil {
		resp.FullName = s.User.FullName
		resp.Email = s.User.Email
		if s.User.Profile != nil {
			resp.Telegram = s.User.Profile.Telegram
		}
	}
	if s.Group != nil {
		resp.GroupName = s.Group.Name
		resp.FacultyID = s.Group.FacultyID
		if s.Group.Faculty != nil {
			resp.FacultyName = s.Group.Faculty.Name
		}
	}
	return resp
}

func toProfileResponse(u *model.User, p *model.UserProfile) *dto.ProfileResponse {
	prefs := map[string]bool{}
	raw := p.NotificationPreferences
	if len(raw) == 0 {
		raw = model.DefaultNotificationPreferences
	}
	_ = json.Unmarshal(raw, &prefs)

	return &dto.ProfileResponse{
		UserID:                  u.ID,
		Username:                u.Username,
		Email:                   u.Email,
		FullName:                u.FullName,
		Role:                    u.RoleName(),
		Telegram:                p.Telegram,
		PhoneNumber:             p.PhoneNumber,
		BirthDate:               p.BirthDate,
		Gender:                  p.Gender,
		City:                    p.City,
		NotificationPreferences: prefs,
		Theme:                   p.Theme,
		Language:                p.Language,
	}
}
