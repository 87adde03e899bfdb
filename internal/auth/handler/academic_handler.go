package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// AcademicHandler faculties, departments, groups and subjects
type AcademicHandler struct {
	facultySvc    service.FacultyService
	departmentSvc service.DepartmentService
	groupSvc      service.GroupService
	subjectSvc    service.SubjectService
}

// NewAcademicHandler creates an AcademicHandler
func NewAcademicHandler(
	facultySvc service.FacultyService,
	departmentSvc service.DepartmentService,
	groupSvc service.GroupService,
	subjectSvc service.SubjectService,
) *AcademicHandler {
	return &AcademicHandler{
		facultySvc:    facultySvc,
		departmentSvc: departmentSvc,
		groupSvc:      groupSvc,
		subjectSvc:    subjectSvc,
	}
}

// ═══════════════════════════════════════════════════════════
// Faculties
// ═══════════════════════════════════════════════════════════

// ListFaculties
// GET /api/v1/faculties
func (h *AcademicHandler) ListFaculties(c *gin.Context) {
	list, err := h.facultySvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// GetFaculty
// GET /api/v1/faculties/:id
func (h *AcademicHandler) GetFaculty(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	f, err := h.facultySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, f)
}

// CreateFaculty
// POST /api/v1/faculties
func (h *AcademicHandler) CreateFaculty(c *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	f, err := h.facultySvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, f)
}

// UpdateFaculty
// PUT /api/v1/faculties/:id
func (h *AcademicHandler) UpdateFaculty(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	f, err := h.facultySvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, f)
}

// DeleteFaculty refused while departments or groups reference it
// DELETE /api/v1/faculties/:id
func (h *AcademicHandler) DeleteFaculty(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.facultySvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ═══════════════════════════════════════════════════════════
// Departments
// ═══════════════════════════════════════════════════════════

// ListDepartments
// GET /api/v1/departments
func (h *AcademicHandler) ListDepartments(c *gin.Context) {
	var req dto.DepartmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	list, err := h.departmentSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// GetDepartment
// GET /api/v1/departments/:id
func (h *AcademicHandler) GetDepartment(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	d, err := h.departmentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, d)
}

// CreateDepartment
// POST /api/v1/departments
func (h *AcademicHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	d, err := h.departmentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, d)
}

// UpdateDepartment
// PUT /api/v1/departments/:id
func (h *AcademicHandler) UpdateDepartment(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	d, err := h.departmentSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, d)
}

// DeleteDepartment refused while teachers reference it
// DELETE /api/v1/departments/:id
func (h *AcademicHandler) DeleteDepartment(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.departmentSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ═══════════════════════════════════════════════════════════
// Groups
// ═══════════════════════════════════════════════════════════

// ListGroups
// GET /api/v1/groups
func (h *AcademicHandler) ListGroups(c *gin.Context) {
	var req dto.GroupListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	list, err := h.groupSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// GetGroup
// GET /api/v1/groups/:id
func (h *AcademicHandler) GetGroup(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	g, err := h.groupSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, g)
}

// CreateGroup
// POST /api/v1/groups
func (h *AcademicHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	g, err := h.groupSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, g)
}

// UpdateGroup
// PUT /api/v1/groups/:id
func (h *AcademicHandler) UpdateGroup(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	g, err := h.groupSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, g)
}

// DeleteGroup refused while students reference it
// DELETE /api/v1/groups/:id
func (h *AcademicHandler) DeleteGroup(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.groupSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ═══════════════════════════════════════════════════════════
// Subjects
// ═══════════════════════════════════════════════════════════

// ListSubjects
// GET /api/v1/subjects
func (h *AcademicHandler) ListSubjects(c *gin.Context) {
	list, err := h.subjectSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// GetSubject
// GET /api/v1/subjects/:id
func (h *AcademicHandler) GetSubject(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	s, err := h.subjectSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, s)
}

// CreateSubject
// POST /api/v1/subjects
func (h *AcademicHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	s, err := h.subjectSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, s)
}

// UpdateSubject
// PUT /api/v1/subjects/:id
func (h *AcademicHandler) UpdateSubject(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	s, err := h.subjectSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, s)
}

// DeleteSubject also unlinks it from teachers
// DELETE /api/v1/subjects/:id
func (h *AcademicHandler) DeleteSubject(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.subjectSvc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}
