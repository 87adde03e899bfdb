package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/integration/dto"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// PaperworkService documents prefilled from a student's profile
type PaperworkService interface {
	AbsenceRequest(ctx context.Context, caller Caller, studentID uint, q *dto.AbsenceQuery) (*dto.AbsenceRequestResponse, error)
	Reference(ctx context.Context, caller Caller, studentID uint) (*dto.ReferenceResponse, error)
}

type paperworkService struct {
	*base
}

// template name fragments, matched case-insensitively
const (
	absenceTemplateHint   = "отпуск"
	referenceTemplateHint = "справка"
)

const issueDateLayout = "02.01.2006"

// AbsenceRequest files a request to skip the lessons of one day, listing them
func (s *paperworkService) AbsenceRequest(ctx context.Context, caller Caller, studentID uint, q *dto.AbsenceQuery) (*dto.AbsenceRequestResponse, error) {
	st, group, err := s.enrolled(ctx, caller, studentID)
	if err != nil {
		return nil, err
	}
	lessons, err := s.schedule(ctx, client.ScheduleFilter{GroupID: st.GroupID, Date: q.Date})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Директору ВУЗа\n")
	fmt.Fprintf(&b, "от студента группы %s\n%s\n\n", group.Name, st.FullName)
	b.WriteString("ЗАЯВЛЕНИЕ\n\n")
	fmt.Fprintf(&b, "Прошу освободить меня от занятий %s по причине: %s.\n\n", q.Date, q.Reason)
	b.WriteString("Список занятий в этот день:\n")
	for i, l := range lessons {
		fmt.Fprintf(&b, "%d. %s (%s - %s)\n", i+1, l.SubjectName, l.TimeStart, l.TimeEnd)
	}
	fmt.Fprintf(&b, "\nДата: %s\nПодпись: ___________\n", q.Date)

	doc, err := s.createDocument(ctx, client.NewDocument{
		Title:        fmt.Sprintf("Заявление о пропуске занятий (%s)", q.Date),
		Content:      b.String(),
		TemplateType: s.templateType(ctx, absenceTemplateHint),
		RecipientID:  recipientFor(caller, st),
	})
	if err != nil {
		return nil, err
	}

	return &dto.AbsenceRequestResponse{
		DocumentID:  doc.ID,
		StudentInfo: *st,
		Date:        q.Date,
		Reason:      q.Reason,
		Schedule:    lessons,
	}, nil
}

// Reference issues a certificate of enrollment dated today
func (s *paperworkService) Reference(ctx context.Context, caller Caller, studentID uint) (*dto.ReferenceResponse, error) {
	st, group, err := s.enrolled(ctx, caller, studentID)
	if err != nil {
		return nil, err
	}
	issued := s.now().Format(issueDateLayout)

	var b strings.Builder
	b.WriteString("СПРАВКА\n\n")
	fmt.Fprintf(&b, "Дана %s в том, что он(а) действительно является студентом(кой) %d курса группы %s факультета %s.\n\n",
		st.FullName, group.Year, group.Name, group.FacultyName)
	b.WriteString("Справка выдана для предъявления по месту требования.\n\n")
	fmt.Fprintf(&b, "Дата выдачи: %s\n", issued)
	b.WriteString("Декан факультета: _____________ / ____________\n")
	b.WriteString("Секретарь: _____________ / ____________\n\nМ.П.\n")

	doc, err := s.createDocument(ctx, client.NewDocument{
		Title:        "Справка с места учебы для " + st.FullName,
		Content:      b.String(),
		TemplateType: s.templateType(ctx, referenceTemplateHint),
		RecipientID:  recipientFor(caller, st),
	})
	if err != nil {
		return nil, err
	}

	return &dto.ReferenceResponse{
		DocumentID:  doc.ID,
		StudentInfo: *st,
		GroupInfo:   *group,
		IssueDate:   issued,
	}, nil
}

// enrolled the student and their group, once the caller may act for them
func (s *paperworkService) enrolled(ctx context.Context, caller Caller, studentID uint) (*client.StudentInfo, *client.GroupInfo, error) {
	st, err := s.student(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	if err := checkSelf(caller, st.UserID); err != nil {
		return nil, nil, err
	}
	if st.GroupID == 0 {
		return nil, nil, ErrNoGroup
	}
	group, err := s.group(ctx, st.GroupID)
	if err != nil {
		return nil, nil, err
	}
	return st, group, nil
}

// templateType name of the first visible template containing hint.
// The document is still filed without one when the lookup fails.
func (s *paperworkService) templateType(ctx context.Context, hint string) string {
	list, err := s.Documents.ListTemplates(ctx)
	if err != nil {
		s.logger.Warn("template lookup failed", zap.String("hint", hint), zap.Error(err))
		return ""
	}
	for _, t := range list {
		if strings.Contains(strings.ToLower(t.Name), hint) {
			return t.Name
		}
	}
	return ""
}

// recipientFor addresses documents an admin files on a student's behalf to that student
func recipientFor(caller Caller, st *client.StudentInfo) *uint {
	if caller.ID == st.UserID {
		return nil
	}
	id := st.UserID
	return &id
}

// checkSelf admins may act for anyone, everybody else only for themselves
func checkSelf(caller Caller, userID uint) error {
	if caller.Role == roles.Admin || caller.ID == userID {
		return nil
	}
	return ErrNotSelf
}
