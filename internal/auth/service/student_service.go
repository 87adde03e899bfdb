package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/auth/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// StudentService student records and bulk import
type StudentService interface {
	List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.StudentResponse, error)
	GetByUserID(ctx context.Context, userID uint) (*dto.StudentResponse, error)
	ListByGroup(ctx context.Context, groupID uint) ([]dto.StudentResponse, error)
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id uint) error
	// Import reads an xlsx workbook: username, email, full_name, password, group, student_number, enrollment_year
	Import(ctx context.Context, r io.Reader) (*dto.ImportStudentsResponse, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService creates a StudentService
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, error) {
	list, err := s.repo.Student.List(ctx, &repository.StudentFilters{GroupID: req.GroupID, UserID: req.UserID})
	if err != nil {
		s.logger.Error("list students failed", zap.Error(err))
		return nil, err
	}
	return toStudentResponses(list), nil
}

func (s *studentService) GetByID(ctx context.Context, id uint) (*dto.StudentResponse, error) {
	st, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		return nil, mapStudentErr(err)
	}
	return toStudentResponse(st), nil
}

func (s *studentService) GetByUserID(ctx context.Context, userID uint) (*dto.StudentResponse, error) {
	st, err := s.repo.Student.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapStudentErr(err)
	}
	return toStudentResponse(st), nil
}

func (s *studentService) ListByGroup(ctx context.Context, groupID uint) ([]dto.StudentResponse, error) {
	if _, err := s.repo.Group.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	list, err := s.repo.Student.List(ctx, &repository.StudentFilters{GroupID: groupID})
	if err != nil {
		return nil, err
	}
	return toStudentResponses(list), nil
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := s.checkGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}
	if _, err := s.repo.Student.GetByUserID(ctx, req.UserID); err == nil {
		return nil, ErrStudentExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	number := strings.TrimSpace(req.StudentNumber)
	if err := s.checkNumber(ctx, number); err != nil {
		return nil, err
	}

	st := &model.Student{
		UserID:         req.UserID,
		GroupID:        req.GroupID,
		StudentNumber:  number,
		EnrollmentYear: req.EnrollmentYear,
	}
	if err := s.repo.Student.Create(ctx, st); err != nil {
		s.logger.Error("create student failed", zap.Uint("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, st.ID)
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, id uint, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	st, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		return nil, mapStudentErr(err)
	}

	if req.GroupID != nil && *req.GroupID != st.GroupID {
		if err := s.checkGroup(ctx, *req.GroupID); err != nil {
			return nil, err
		}
		st.GroupID = *req.GroupID
		st.Group = nil
	}
	if req.StudentNumber != nil {
		number := strings.TrimSpace(*req.StudentNumber)
		if number != st.StudentNumber {
			if err := s.checkNumber(ctx, number); err != nil {
				return nil, err
			}
			st.StudentNumber = number
		}
	}
	if req.EnrollmentYear != nil {
		st.EnrollmentYear = *req.EnrollmentYear
	}

	if err := s.repo.Student.Update(ctx, st); err != nil {
		s.logger.Error("update student failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

// Delete drops the record and resets the user to student unless they teach or administer
func (s *studentService) Delete(ctx context.Context, id uint) error {
	st, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		return mapStudentErr(err)
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Student.Delete(ctx, id); err != nil {
			return err
		}
		user, err := tx.User.GetByID(ctx, st.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		switch user.RoleName() {
		case roles.Admin, roles.Teacher:
			return nil
		}
		return setRole(ctx, tx, user, roles.Student)
	})
	if err != nil {
		s.logger.Error("delete student failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// Import
// ═══════════════════════════════════════════════════════════
//
// The first row is a header. Each following row creates one user, its
// profile and its student record in a single transaction; a failing row
// is reported and does not stop the import.

const importColumns = 7

func (s *studentService) Import(ctx context.Context, r io.Reader) (*dto.ImportStudentsResponse, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ErrInvalidImportFile
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrInvalidImportFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, ErrInvalidImportFile
	}

	studentRole, err := s.repo.Role.GetByName(ctx, roles.Student)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportStudentsResponse{Failed: []dto.ImportError{}}
	groups := make(map[string]*model.Group)

	for i, row := range rows {
		if i == 0 || isBlankRow(row) {
			continue
		}
		result.Total++
		rowNum := i + 1

		if err := s.importRow(ctx, row, studentRole, groups); err != nil {
			result.Failed = append(result.Failed, dto.ImportError{Row: rowNum, Reason: err.Error()})
			continue
		}
		result.Created++
	}

	s.logger.Info("student import finished",
		zap.Int("total", result.Total),
		zap.Int("created", result.Created),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

func (s *studentService) importRow(ctx context.Context, row []string, studentRole *model.Role, groups map[string]*model.Group) error {
	cells := make([]string, importColumns)
	for i := 0; i < importColumns && i < len(row); i++ {
		cells[i] = strings.TrimSpace(row[i])
	}
	username, email, fullName, password, groupName, number, yearStr :=
		cells[0], strings.ToLower(cells[1]), cells[2], cells[3], cells[4], cells[5], cells[6]

	if username == "" || email == "" || password == "" || groupName == "" || number == "" {
		return errors.New("username, email, password, group and student number are required")
	}
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	year := 0
	if yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			return fmt.Errorf("invalid enrollment year %q", yearStr)
		}
		year = y
	}

	group, ok := groups[groupName]
	if !ok {
		g, err := s.repo.Group.GetByName(ctx, groupName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("group %q not found", groupName)
			}
			return err
		}
		groups[groupName] = g
		group = g
	}

	if _, err := s.repo.User.GetByUsername(ctx, username); err == nil {
		return ErrUsernameExists
	}
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return ErrEmailExists
	}
	if err := s.checkNumber(ctx, number); err != nil {
		return err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		user := &model.User{
			Username:     username,
			Email:        email,
			FullName:     fullName,
			PasswordHash: hash,
			RoleID:       studentRole.ID,
		}
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}
		if err := tx.Profile.Create(ctx, model.NewProfile(user.ID)); err != nil {
			return err
		}
		return tx.Student.Create(ctx, &model.Student{
			UserID:         user.ID,
			GroupID:        group.ID,
			StudentNumber:  number,
			EnrollmentYear: year,
		})
	})
}

// ── helpers ──

func (s *studentService) checkGroup(ctx context.Context, id uint) error {
	if _, err := s.repo.Group.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	return nil
}

func (s *studentService) checkNumber(ctx context.Context, number string) error {
	_, err := s.repo.Student.GetByNumber(ctx, number)
	if err == nil {
		return ErrStudentNumberExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func mapStudentErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrStudentNotFound
	}
	return err
}

func toStudentResponses(list []model.Student) []dto.StudentResponse {
	result := make([]dto.StudentResponse, 0, len(list))
	for i := range list {
		result = append(result, *toStudentResponse(&list[i]))
	}
	return result
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
