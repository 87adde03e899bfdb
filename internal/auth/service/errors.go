package service

import "errors"

// ── auth ──

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserDisabled       = errors.New("user is disabled")
	ErrUsernameExists     = errors.New("username already taken")
	ErrEmailExists        = errors.New("email already registered")
	ErrWrongPassword      = errors.New("old password is incorrect")
	ErrInvalidRefresh     = errors.New("refresh token is invalid or expired")
)

// ── users / roles / permissions ──

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrRoleNotFound      = errors.New("role not found")
	ErrEmptyUpdate       = errors.New("no fields to update")
	ErrCannotDeleteSelf  = errors.New("cannot delete own account")
	ErrInvalidPermission = errors.New("permission must look like section.action")
)

// ── academic structure ──

var (
	ErrFacultyNotFound      = errors.New("faculty not found")
	ErrFacultyNameExists    = errors.New("faculty name already exists")
	ErrFacultyInUse         = errors.New("faculty still has departments or groups")
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrDepartmentNameExists = errors.New("department name already exists")
	ErrDepartmentInUse      = errors.New("department still has teachers")
	ErrGroupNotFound        = errors.New("group not found")
	ErrGroupNameExists      = errors.New("group name already exists")
	ErrGroupInUse           = errors.New("group still has students")
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrSubjectNameExists    = errors.New("subject name already exists")
)

// ── people ──

var (
	ErrTeacherNotFound     = errors.New("teacher not found")
	ErrTeacherExists       = errors.New("user already has a teacher record")
	ErrStudentNotFound     = errors.New("student not found")
	ErrStudentExists       = errors.New("user already has a student record")
	ErrStudentNumberExists = errors.New("student number already exists")
	ErrInvalidImportFile   = errors.New("import file is not a readable xlsx workbook")
)
