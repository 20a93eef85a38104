package controller

import (
	"errors"

	"quiz_admin_backend/internal/service"
	"quiz_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TeacherController struct {
	TeacherService *service.TeacherService
}

func NewTeacherController(teacherService *service.TeacherService) *TeacherController {
	return &TeacherController{TeacherService: teacherService}
}

func teacherServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTeacherNotFound):
		util.NotFoundMessage(ctx, "教师不存在")
	case errors.Is(err, util.ErrDepartmentNotFound):
		util.BadRequest(ctx, "院系不存在")
	case errors.Is(err, util.ErrEmailRegistered):
		util.Error(ctx, 409, "该邮箱已被注册")
	default:
		util.LogInternalError(ctx, err)
	}
}

// Create godoc
// @Summary 创建教师
// @Description 同时创建用户账号和教师档案
// @Tags 教师
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.TeacherCreateReq true "教师信息"
// @Success 201 {object} util.Response{data=repository.TeacherRow} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/teachers [post]
func (c *TeacherController) Create(ctx *gin.Context) {
	var req service.TeacherCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	teacher, err := c.TeacherService.Create(req)
	if err != nil {
		teacherServiceError(ctx, err)
		return
	}
	util.Created(ctx, teacher)
}

// List godoc
// @Summary 教师列表
// @Tags 教师
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]repository.TeacherRow} "成功"
// @Router /api/teachers [get]
func (c *TeacherController) List(ctx *gin.Context) {
	teachers, err := c.TeacherService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, teachers)
}

// Get godoc
// @Summary 教师详情
// @Tags 教师
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "教师用户ID"
// @Success 200 {object} util.Response{data=repository.TeacherRow} "成功"
// @Failure 404 {object} util.Response "教师不存在"
// @Router /api/teachers/{id} [get]
func (c *TeacherController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	teacher, err := c.TeacherService.Get(id)
	if err != nil {
		teacherServiceError(ctx, err)
		return
	}
	util.Success(ctx, teacher)
}

// Update godoc
// @Summary 更新教师
// @Tags 教师
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "教师用户ID"
// @Param   body body service.TeacherUpdateReq true "更新字段"
// @Success 200 {object} util.Response{data=repository.TeacherRow} "成功"
// @Failure 404 {object} util.Response "教师不存在"
// @Router /api/teachers/{id} [put]
func (c *TeacherController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req service.TeacherUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	teacher, err := c.TeacherService.Update(id, req)
	if err != nil {
		teacherServiceError(ctx, err)
		return
	}
	util.Success(ctx, teacher)
}

// Delete godoc
// @Summary 删除教师
// @Description 删除教师档案及其用户账号
// @Tags 教师
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "教师用户ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "教师不存在"
// @Router /api/teachers/{id} [delete]
func (c *TeacherController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.TeacherService.Delete(id); err != nil {
		teacherServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
