package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// PeopleHandler teachers and students
type PeopleHandler struct {
	teacherSvc service.TeacherService
	studentSvc service.StudentService
}

// NewPeopleHandler creates a PeopleHandler
func NewPeopleHandler(teacherSvc service.TeacherService, studentSvc service.StudentService) *PeopleHandler {
	return &PeopleHandler{teacherSvc: teacherSvc, studentSvc: studentSvc}
}

// ═══════════════════════════════════════════════════════════
// Teachers
// ═══════════════════════════════════════════════════════════

// ListTeachers filter by department_id, user_id
// GET /api/v1/teachers
func (h *PeopleHandler) ListTeachers(c *gin.Context) {
	var req dto.TeacherListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	list, err := h.teacherSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// GetTeacher
// GET /api/v1/teachers/:id
func (h *PeopleHandler) GetTeacher(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	t, err := h.teacherSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, t)
}

// GetTeacherByUser
// GET /api/v1/teachers/by-user/:user_id
func (h *PeopleHandler) GetTeacherByUser(c *gin.Context) {
	userID, ok := handler.ParamID(c, "user_id")
	if !ok {
		return
	}
	t, err := h.teacherSvc.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, t)
}

// CreateTeacher promotes the user to teacher
// POST /api/v1/teachers
func (h *PeopleHandler) CreateTeacher(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	t, err := h.teacherSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, t)
}

// UpdateTeacher
// PUT /api/v1/teachers/:id
func (h *PeopleHandler) UpdateTeacher(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	t, err := h.teacherSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, t)
}

// DeleteTeacher demotes the user to student
// DELETE /api/v1/teachers/:id
func (h *PeopleHandler) DeleteTeacher(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.teacherSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ═══════════════════════════════════════════════════════════
// Students
// ═══════════════════════════════════════════════════════════

// ListStudents filter by group_id, user_id
// GET /api/v1/students
func (h *PeopleHandler) ListStudents(c *gin.Context) {
	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	list, err := h.studentSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// GetStudent
// GET /api/v1/students/:id
func (h *PeopleHandler) GetStudent(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	st, err := h.studentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, st)
}

// GetStudentByUser
// GET /api/v1/students/by-user/:user_id
func (h *PeopleHandler) GetStudentByUser(c *gin.Context) {
	userID, ok := handler.ParamID(c, "user_id")
	if !ok {
		return
	}
	st, err := h.studentSvc.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, st)
}

// ListStudentsByGroup plain array of the group's students
// GET /api/v1/students/by-group/:group_id
func (h *PeopleHandler) ListStudentsByGroup(c *gin.Context) {
	groupID, ok := handler.ParamID(c, "group_id")
	if !ok {
		return
	}
	list, err := h.studentSvc.ListByGroup(c.Request.Context(), groupID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, list)
}

// CreateStudent
// POST /api/v1/students
func (h *PeopleHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	st, err := h.studentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, st)
}

// UpdateStudent
// PUT /api/v1/students/:id
func (h *PeopleHandler) UpdateStudent(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	st, err := h.studentSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, st)
}

// DeleteStudent
// DELETE /api/v1/students/:id
func (h *PeopleHandler) DeleteStudent(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.studentSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ImportStudents bulk import from an uploaded xlsx (form field "file")
// POST /api/v1/students/import
func (h *PeopleHandler) ImportStudents(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, response.CodeBadRequest, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, response.CodeBadRequest, "cannot read uploaded file")
		return
	}
	defer f.Close()

	result, err := h.studentSvc.Import(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, result)
}
