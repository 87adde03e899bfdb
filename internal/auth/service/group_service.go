package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/auth/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/repository"
)

// GroupService student groups
type GroupService interface {
	Create(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.GroupResponse, error)
	List(ctx context.Context, req *dto.GroupListRequest) ([]dto.GroupResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error)
	Delete(ctx context.Context, id uint) error
}

type groupService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGroupService creates a GroupService
func NewGroupService(repo *repository.Repository, logger *zap.Logger) GroupService {
	return &groupService{repo: repo, logger: logger}
}

func (s *groupService) Create(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.checkName(ctx, name); err != nil {
		return nil, err
	}
	if err := s.checkFaculty(ctx, req.FacultyID); err != nil {
		return nil, err
	}

	year := req.Year
	if year == 0 {
		year = 1
	}
	g := &model.Group{Name: name, FacultyID: req.FacultyID, Year: year}
	if err := s.repo.Group.Create(ctx, g); err != nil {
		s.logger.Error("create group failed", zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, g.ID)
}

func (s *groupService) GetByID(ctx context.Context, id uint) (*dto.GroupResponse, error) {
	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toGroupResponse(g), nil
}

func (s *groupService) List(ctx context.Context, req *dto.GroupListRequest) ([]dto.GroupResponse, error) {
	list, err := s.repo.Group.List(ctx, req.FacultyID)
	if err != nil {
		s.logger.Error("list groups failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.GroupResponse, 0, len(list))
	for i := range list {
		result = append(result, *toGroupResponse(&list[i]))
	}
	return result, nil
}

func (s *groupService) Update(ctx context.Context, id uint, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error) {
	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != g.Name {
			if err := s.checkName(ctx, name); err != nil {
				return nil, err
			}
			g.Name = name
		}
	}
	if req.FacultyID != nil && *req.FacultyID != g.FacultyID {
		if err := s.checkFaculty(ctx, *req.FacultyID); err != nil {
			return nil, err
		}
		g.FacultyID = *req.FacultyID
	}
	if req.Year != nil {
		g.Year = *req.Year
	}

	if err := s.repo.Group.Update(ctx, g); err != nil {
		s.logger.Error("update group failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *groupService) Delete(ctx context.Context, id uint) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.Group.CountStudents(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrGroupInUse
	}
	return s.repo.Group.Delete(ctx, id)
}

func (s *groupService) load(ctx context.Context, id uint) (*model.Group, error) {
	g, err := s.repo.Group.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *groupService) checkName(ctx context.Context, name string) error {
	_, err := s.repo.Group.GetByName(ctx, name)
	if err == nil {
		return ErrGroupNameExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *groupService) checkFaculty(ctx context.Context, id uint) error {
	if _, err := s.repo.Faculty.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFacultyNotFound
		}
		return err
	}
	return nil
}
