package controller

import (
	"errors"

	"quiz_admin_backend/internal/service"
	"quiz_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
}

func NewStudentController(studentService *service.StudentService) *StudentController {
	return &StudentController{StudentService: studentService}
}

func studentServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrStudentNotFound):
		util.NotFoundMessage(ctx, "学生不存在")
	case errors.Is(err, util.ErrDepartmentNotFound):
		util.BadRequest(ctx, "院系不存在")
	case errors.Is(err, util.ErrEmailRegistered):
		util.Error(ctx, 409, "该邮箱已被注册")
	default:
		util.LogInternalError(ctx, err)
	}
}

// Create godoc
// @Summary 创建学生
// @Description 同时创建用户账号和学生档案
// @Tags 学生
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.StudentCreateReq true "学生信息"
// @Success 201 {object} util.Response{data=repository.StudentRow} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/students [post]
func (c *StudentController) Create(ctx *gin.Context) {
	var req service.StudentCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.StudentService.Create(req)
	if err != nil {
		studentServiceError(ctx, err)
		return
	}
	util.Created(ctx, student)
}

// List godoc
// @Summary 学生列表
// @Tags 学生
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]repository.StudentRow} "成功"
// @Router /api/students [get]
func (c *StudentController) List(ctx *gin.Context) {
	students, err := c.StudentService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// Get godoc
// @Summary 学生详情
// @Tags 学生
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "学生用户ID"
// @Success 200 {object} util.Response{data=repository.StudentRow} "成功"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /api/students/{id} [get]
func (c *StudentController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	student, err := c.StudentService.Get(id)
	if err != nil {
		studentServiceError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// Update godoc
// @Summary 更新学生
// @Tags 学生
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "学生用户ID"
// @Param   body body service.StudentUpdateReq true "更新字段"
// @Success 200 {object} util.Response{data=repository.StudentRow} "成功"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /api/students/{id} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req service.StudentUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.StudentService.Update(id, req)
	if err != nil {
		studentServiceError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// Delete godoc
// @Summary 删除学生
// @Description 删除学生档案及其用户账号
// @Tags 学生
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "学生用户ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /api/students/{id} [delete]
func (c *StudentController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.StudentService.Delete(id); err != nil {
		studentServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
