package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/migrations"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/database"
	"github.com/yerk0w/EduLifeFor-merge/pkg/jwt"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// ── helpers ──

type fakeBlacklist struct {
	jti      string
	ttl      time.Duration
	sessions map[string]time.Duration
}

func (f *fakeBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	f.jti, f.ttl = jti, ttl
	return nil
}

func (f *fakeBlacklist) RevokeSession(_ context.Context, sid string, ttl time.Duration) error {
	if f.sessions == nil {
		f.sessions = make(map[string]time.Duration)
	}
	f.sessions[sid] = ttl
	return nil
}

func (f *fakeBlacklist) IsSessionRevoked(_ context.Context, sid string) (bool, error) {
	_, ok := f.sessions[sid]
	return ok, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			Issuer:          "edulife",
			AccessTokenTTL:  30 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			BootstrapAdmin: config.BootstrapAdminConfig{
				Username: "admin",
				Email:    "admin@edulife.local",
				FullName: "Администратор",
				Password: "admin-pass",
			},
		},
	}
}

func newTestService(t *testing.T) (*Service, *fakeBlacklist) {
	t.Helper()
	db, err := database.OpenMemory(migrations.FS)
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := testConfig()
	bl := &fakeBlacklist{}
	svc := NewService(cfg, repository.NewRepository(db), jwt.NewManager(&cfg.Auth), bl, zap.NewNop())
	return svc, bl
}

func register(t *testing.T, svc *Service, username string) *dto.UserResponse {
	t.Helper()
	u, err := svc.Auth.Register(context.Background(), &dto.RegisterRequest{
		Username: username,
		Email:    username + "@edulife.local",
		FullName: "User " + username,
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return u
}

type academicFixture struct {
	facultyID    uint
	departmentID uint
	groupID      uint
	subjectID    uint
}

func seedAcademic(t *testing.T, svc *Service) academicFixture {
	t.Helper()
	ctx := context.Background()

	f, err := svc.Faculty.Create(ctx, &dto.CreateFacultyRequest{Name: "ФИТ"})
	if err != nil {
		t.Fatalf("create faculty: %v", err)
	}
	d, err := svc.Department.Create(ctx, &dto.CreateDepartmentRequest{Name: "Кафедра ПО", FacultyID: f.ID})
	if err != nil {
		t.Fatalf("create department: %v", err)
	}
	g, err := svc.Group.Create(ctx, &dto.CreateGroupRequest{Name: "ПО-21", FacultyID: f.ID})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	s, err := svc.Subject.Create(ctx, &dto.CreateSubjectRequest{Name: "Базы данных"})
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}
	return academicFixture{facultyID: f.ID, departmentID: d.ID, groupID: g.ID, subjectID: s.ID}
}

// ═══════════════════════════════════════════════════════════
// Auth
// ═══════════════════════════════════════════════════════════

func TestAuth_RegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u := register(t, svc, "ivanov")
	if u.Role != roles.Student {
		t.Errorf("expected role student, got %s", u.Role)
	}

	profile, err := svc.User.GetProfile(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Theme != "light" || profile.Language != "ru" {
		t.Errorf("unexpected profile defaults: %s/%s", profile.Theme, profile.Language)
	}
	if !profile.NotificationPreferences["email"] || profile.NotificationPreferences["telegram"] {
		t.Errorf("unexpected notification defaults: %v", profile.NotificationPreferences)
	}

	tok, err := svc.Auth.Login(ctx, &dto.LoginRequest{Username: "ivanov", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tok.TokenType != "bearer" || tok.AccessToken == "" || tok.RefreshToken == "" {
		t.Errorf("unexpected token response: %+v", tok)
	}
	if tok.ExpiresIn != 1800 {
		t.Errorf("expected expires_in 1800, got %d", tok.ExpiresIn)
	}

	if _, err := svc.Auth.Login(ctx, &dto.LoginRequest{Username: "ivanov", Password: "bad"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Auth.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_RegisterDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	register(t, svc, "petrov")

	_, err := svc.Auth.Register(ctx, &dto.RegisterRequest{
		Username: "petrov", Email: "other@edulife.local", FullName: "x", Password: "secret123",
	})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("expected ErrUsernameExists, got %v", err)
	}

	_, err = svc.Auth.Register(ctx, &dto.RegisterRequest{
		Username: "petrov2", Email: "PETROV@edulife.local", FullName: "x", Password: "secret123",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuth_DisabledUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u := register(t, svc, "sidorov")

	disabled := true
	if _, err := svc.User.Update(ctx, u.ID, &dto.UpdateUserRequest{Disabled: &disabled}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, err := svc.Auth.Login(ctx, &dto.LoginRequest{Username: "sidorov", Password: "secret123"}); !errors.Is(err, ErrUserDisabled) {
		t.Errorf("expected ErrUserDisabled, got %v", err)
	}
}

func TestAuth_RefreshToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	register(t, svc, "kim")

	tok, err := svc.Auth.Login(ctx, &dto.LoginRequest{Username: "kim", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	refreshed, err := svc.Auth.RefreshToken(ctx, tok.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.Username != "kim" {
		t.Errorf("unexpected refresh response: %+v", refreshed)
	}
	mgr := jwt.NewManager(&testConfig().Auth)
	before, _ := mgr.ParseToken(tok.RefreshToken)
	after, err := mgr.ParseToken(refreshed.AccessToken)
	if err != nil {
		t.Fatalf("parse refreshed token: %v", err)
	}
	if after.SessionID != before.SessionID {
		t.Errorf("refreshed access token should stay in the session: %q != %q", after.SessionID, before.SessionID)
	}

	// an access token is not a refresh token
	if _, err := svc.Auth.RefreshToken(ctx, tok.AccessToken); !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("expected ErrInvalidRefresh, got %v", err)
	}
}

func TestAuth_LogoutBlacklists(t *testing.T) {
	svc, bl := newTestService(t)
	claims := &jwt.Claims{UserID: 3, SessionID: "sid-1"}
	claims.ID = "jti-1"
	claims.ExpiresAt = jwtv5.NewNumericDate(time.Now().Add(10 * time.Minute))

	if err := svc.Auth.Logout(context.Background(), claims); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if bl.jti != "jti-1" || bl.ttl <= 9*time.Minute || bl.ttl > 10*time.Minute {
		t.Errorf("unexpected blacklist call: %s %v", bl.jti, bl.ttl)
	}
	if ttl := bl.sessions["sid-1"]; ttl != 7*24*time.Hour {
		t.Errorf("session should be revoked for the refresh lifetime, got %v", ttl)
	}
}

func TestAuth_LogoutEndsRefresh(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	register(t, svc, "park")
	mgr := jwt.NewManager(&testConfig().Auth)

	tok, err := svc.Auth.Login(ctx, &dto.LoginRequest{Username: "park", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	access, err := mgr.ParseToken(tok.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	refresh, err := mgr.ParseToken(tok.RefreshToken)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
	if access.SessionID == "" || access.SessionID != refresh.SessionID {
		t.Fatalf("login pair should share a session: %q %q", access.SessionID, refresh.SessionID)
	}

	// a second device keeps its own session
	other, err := svc.Auth.Login(ctx, &dto.LoginRequest{Username: "park", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Auth.Logout(ctx, access); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Auth.RefreshToken(ctx, tok.RefreshToken); !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("refresh after logout: expected ErrInvalidRefresh, got %v", err)
	}
	if _, err := svc.Auth.RefreshToken(ctx, other.RefreshToken); err != nil {
		t.Errorf("other session should still refresh: %v", err)
	}
}

func TestAuth_ChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u := register(t, svc, "lee")

	err := svc.Auth.ChangePassword(ctx, u.ID, &dto.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "newsecret"})
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}

	if err := svc.Auth.ChangePassword(ctx, u.ID, &dto.ChangePasswordRequest{OldPassword: "secret123", NewPassword: "newsecret"}); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := svc.Auth.Login(ctx, &dto.LoginRequest{Username: "lee", Password: "newsecret"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}

func TestAuth_EnsureBootstrapAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := svc.Auth.EnsureBootstrapAdmin(ctx); err != nil {
			t.Fatalf("EnsureBootstrapAdmin #%d: %v", i, err)
		}
	}

	users, total, err := svc.User.List(ctx, &dto.UserListRequest{Role: roles.Admin})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(users) != 1 || users[0].Username != "admin" {
		t.Errorf("expected exactly one bootstrap admin, got %d", total)
	}
}

// ═══════════════════════════════════════════════════════════
// Users, profile, permissions
// ═══════════════════════════════════════════════════════════

func TestUser_ListFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	register(t, svc, "alpha")
	register(t, svc, "beta")
	register(t, svc, "gamma")

	list, total, err := svc.User.List(ctx, &dto.UserListRequest{Keyword: "bet"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].Username != "beta" {
		t.Errorf("keyword filter mismatch: total=%d", total)
	}

	empty, total, err := svc.User.List(ctx, &dto.UserListRequest{Role: roles.Teacher})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 || len(empty) != 0 {
		t.Errorf("expected no teachers, got %d", total)
	}
}

func TestUser_UpdateEmptyAndDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	a := register(t, svc, "first")
	register(t, svc, "second")

	if _, err := svc.User.Update(ctx, a.ID, &dto.UpdateUserRequest{}); !errors.Is(err, ErrEmptyUpdate) {
		t.Errorf("expected ErrEmptyUpdate, got %v", err)
	}

	name := "second"
	if _, err := svc.User.Update(ctx, a.ID, &dto.UpdateUserRequest{Username: &name}); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("expected ErrUsernameExists, got %v", err)
	}

	role := roles.Teacher
	updated, err := svc.User.Update(ctx, a.ID, &dto.UpdateUserRequest{Role: &role})
	if err != nil {
		t.Fatalf("Update role: %v", err)
	}
	if updated.Role != roles.Teacher {
		t.Errorf("expected teacher, got %s", updated.Role)
	}
}

func TestUser_DeleteSelfRejected(t *testing.T) {
	svc, _ := newTestService(t)
	u := register(t, svc, "me")

	if err := svc.User.Delete(context.Background(), u.ID, u.ID); !errors.Is(err, ErrCannotDeleteSelf) {
		t.Errorf("expected ErrCannotDeleteSelf, got %v", err)
	}
}

func TestUser_DeleteCascadesTeacher(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	fx := seedAcademic(t, svc)
	u := register(t, svc, "head")

	teacher, err := svc.Teacher.Create(ctx, &dto.CreateTeacherRequest{
		UserID: u.ID, DepartmentID: fx.departmentID, SubjectIDs: []uint{fx.subjectID},
	})
	if err != nil {
		t.Fatalf("create teacher: %v", err)
	}
	head := teacher.ID
	if _, err := svc.Department.Update(ctx, fx.departmentID, &dto.UpdateDepartmentRequest{HeadTeacherID: &head}); err != nil {
		t.Fatalf("set head: %v", err)
	}

	if err := svc.User.Delete(ctx, u.ID, 999); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.Teacher.GetByID(ctx, teacher.ID); !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("expected teacher gone, got %v", err)
	}
	dept, err := svc.Department.GetByID(ctx, fx.departmentID)
	if err != nil {
		t.Fatalf("GetByID department: %v", err)
	}
	if dept.HeadTeacherID != nil {
		t.Errorf("expected head teacher cleared, got %d", *dept.HeadTeacherID)
	}
	if _, err := svc.User.GetByID(ctx, u.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected user gone, got %v", err)
	}
}

func TestUser_UpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u := register(t, svc, "prof")

	tg := "prof_tg"
	theme := "dark"
	fullName := "Проф Профессорович"
	p, err := svc.User.UpdateProfile(ctx, u.ID, &dto.UpdateProfileRequest{
		Telegram:                &tg,
		Theme:                   &theme,
		FullName:                &fullName,
		NotificationPreferences: map[string]bool{"telegram": true},
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if p.Telegram != "@prof_tg" {
		t.Errorf("expected normalized telegram, got %s", p.Telegram)
	}
	if p.Theme != "dark" || p.FullName != fullName {
		t.Errorf("unexpected profile: %+v", p)
	}
	if !p.NotificationPreferences["email"] || !p.NotificationPreferences["telegram"] {
		t.Errorf("expected merged preferences, got %v", p.NotificationPreferences)
	}
}

func TestUser_CheckPermission(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		role, perm string
		want       bool
	}{
		{roles.Admin, "anything.delete", true},
		{roles.Teacher, "schedule.create", true},
		{roles.Teacher, "schedule.delete", false},
		{roles.Student, "schedule.read", true},
		{roles.Student, "attendance.create", false},
		{roles.Student, "keys.read", false},
		{"ghost", "schedule.read", false},
	}
	for _, tt := range tests {
		got, err := svc.User.CheckPermission(ctx, tt.role, tt.perm)
		if err != nil {
			t.Errorf("%s %s: unexpected error %v", tt.role, tt.perm, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s %s: expected %v, got %v", tt.role, tt.perm, tt.want, got)
		}
	}

	if _, err := svc.User.CheckPermission(ctx, roles.Student, "schedule"); !errors.Is(err, ErrInvalidPermission) {
		t.Errorf("expected ErrInvalidPermission, got %v", err)
	}
}

func TestNormalizeTelegram(t *testing.T) {
	tests := map[string]string{
		"":         "",
		"  ":       "",
		"user":     "@user",
		"@user":    "@user",
		" @user  ": "@user",
	}
	for in, want := range tests {
		if got := NormalizeTelegram(in); got != want {
			t.Errorf("NormalizeTelegram(%q) = %q, want %q", in, got, want)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// Academic structure
// ═══════════════════════════════════════════════════════════

func TestFaculty_DeleteInUse(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	fx := seedAcademic(t, svc)

	if err := svc.Faculty.Delete(ctx, fx.facultyID); !errors.Is(err, ErrFacultyInUse) {
		t.Errorf("expected ErrFacultyInUse, got %v", err)
	}

	if _, err := svc.Faculty.Create(ctx, &dto.CreateFacultyRequest{Name: "ФИТ"}); !errors.Is(err, ErrFacultyNameExists) {
		t.Errorf("expected ErrFacultyNameExists, got %v", err)
	}
}

func TestDepartment_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	fx := seedAcademic(t, svc)

	if _, err := svc.Department.Create(ctx, &dto.CreateDepartmentRequest{Name: "X", FacultyID: 999}); !errors.Is(err, ErrFacultyNotFound) {
		t.Errorf("expected ErrFacultyNotFound, got %v", err)
	}
	head := uint(999)
	if _, err := svc.Department.Create(ctx, &dto.CreateDepartmentRequest{Name: "Y", FacultyID: fx.facultyID, HeadTeacherID: &head}); !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("expected ErrTeacherNotFound, got %v", err)
	}

	dept, err := svc.Department.GetByID(ctx, fx.departmentID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if dept.FacultyName != "ФИТ" {
		t.Errorf("expected faculty_name ФИТ, got %s", dept.FacultyName)
	}
}

func TestGroup_DeleteInUse(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	fx := seedAcademic(t, svc)
	u := register(t, svc, "stud")

	if _, err := svc.Student.Create(ctx, &dto.CreateStudentRequest{UserID: u.ID, GroupID: fx.groupID, StudentNumber: "S-1"}); err != nil {
		t.Fatalf("create student: %v", err)
	}
	if err := svc.Group.Delete(ctx, fx.groupID); !errors.Is(err, ErrGroupInUse) {
		t.Errorf("expected ErrGroupInUse, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Teachers and students
// ═══════════════════════════════════════════════════════════

func TestTeacher_CreatePromotesAndDeleteDemotes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	fx := seedAcademic(t, svc)
	u := register(t, svc, "teach")

	teacher, err := svc.Teacher.Create(ctx, &dto.CreateTeacherRequest{
		UserID: u.ID, DepartmentID: fx.departmentID, Position: "доцент", SubjectIDs: []uint{fx.subjectID, fx.subjectID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if teacher.DepartmentName != "Кафедра ПО" || teacher.FullName != "User teach" {
		t.Errorf("unexpected teacher response: %+v", teacher)
	}
	if len(teacher.Subjects) != 1 {
		t.Errorf("expected 1 subject, got %d", len(teacher.Subjects))
	}

	user, _ := svc.User.GetByID(ctx, u.ID)
	if user.Role != roles.Teacher {
		t.Errorf("expected promotion to teacher, got %s", user.Role)
	}

	if _, err := svc.Teacher.Create(ctx, &dto.CreateTeacherRequest{UserID: u.ID, DepartmentID: fx.departmentID}); !errors.Is(err, ErrTeacherExists) {
		t.Errorf("expected ErrTeacherExists, got %v", err)
	}

	if err := svc.Department.Delete(ctx, fx.departmentID); !errors.Is(err, ErrDepartmentInUse) {
		t.Errorf("expected ErrDepartmentInUse, got %v", err)
	}

	if err := svc.Teacher.Delete(ctx, teacher.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	user, _ = svc.User.GetByID(ctx, u.ID)
	if user.Role != roles.Student {
		t.Errorf("expected demotion to student, got %s", user.Role)
	}
}

func TestTeacher_UnknownSubject(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	fx := seedAcademic(t, svc)
	u := register(t, svc, "nosubj")

	_, err := svc.Teacher.Create(ctx, &dto.CreateTeacherRequest{UserID: u.ID, DepartmentID: fx.departmentID, SubjectIDs: []uint{404}})
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("expected ErrSubjectNotFound, got %v", err)
	}
}

func TestStudent_CreateAndLookup(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	fx := seedAcademic(t, svc)
	a := register(t, svc, "stud_a")
	b := register(t, svc, "stud_b")

	s, err := svc.Student.Create(ctx, &dto.CreateStudentRequest{UserID: a.ID, GroupID: fx.groupID, StudentNumber: "2024-001", EnrollmentYear: 2024})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.GroupName != "ПО-21" || s.FacultyName != "ФИТ" || s.FacultyID != fx.facultyID {
		t.Errorf("unexpected student response: %+v", s)
	}

	if _, err := svc.Student.Create(ctx, &dto.CreateStudentRequest{UserID: b.ID, GroupID: fx.groupID, StudentNumber: "2024-001"}); !errors.Is(err, ErrStudentNumberExists) {
		t.Errorf("expected ErrStudentNumberExists, got %v", err)
	}
	if _, err := svc.Student.Create(ctx, &dto.CreateStudentRequest{UserID: a.ID, GroupID: fx.groupID, StudentNumber: "2024-002"}); !errors.Is(err, ErrStudentExists) {
		t.Errorf("expected ErrStudentExists, got %v", err)
	}

	byUser, err := svc.Student.GetByUserID(ctx, a.ID)
	if err != nil || byUser.ID != s.ID {
		t.Errorf("GetByUserID mismatch: %v", err)
	}

	list, err := svc.Student.ListByGroup(ctx, fx.groupID)
	if err != nil || len(list) != 1 {
		t.Errorf("ListByGroup: %d %v", len(list), err)
	}
	if _, err := svc.Student.ListByGroup(ctx, 999); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestStudent_Import(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seedAcademic(t, svc)
	register(t, svc, "taken")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"username", "email", "full_name", "password", "group", "student_number", "enrollment_year"},
		{"new1", "new1@edulife.local", "Новый Один", "secret123", "ПО-21", "N-1", "2024"},
		{"taken", "x@edulife.local", "Занятый", "secret123", "ПО-21", "N-2", "2024"},
		{"new3", "new3@edulife.local", "Без группы", "secret123", "ZZ-99", "N-3", "2024"},
		{"new4", "new4@edulife.local", "Новый Четыре", "secret123", "ПО-21", "N-4", ""},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	result, err := svc.Student.Import(ctx, bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Total != 4 || result.Created != 2 {
		t.Errorf("expected total=4 created=2, got %d/%d", result.Total, result.Created)
	}
	if len(result.Failed) != 2 || result.Failed[0].Row != 3 || result.Failed[1].Row != 4 {
		t.Errorf("unexpected failures: %+v", result.Failed)
	}

	if _, err := svc.Auth.Login(ctx, &dto.LoginRequest{Username: "new1", Password: "secret123"}); err != nil {
		t.Errorf("imported user cannot log in: %v", err)
	}

	if _, err := svc.Student.Import(ctx, bytes.NewReader([]byte("not a workbook"))); !errors.Is(err, ErrInvalidImportFile) {
		t.Errorf("expected ErrInvalidImportFile, got %v", err)
	}
}
