package controller

import (
	"errors"

	"quiz_admin_backend/internal/service"
	"quiz_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DepartmentController struct {
	DepartmentService *service.DepartmentService
}

func NewDepartmentController(departmentService *service.DepartmentService) *DepartmentController {
	return &DepartmentController{DepartmentService: departmentService}
}

// swagger:model DepartmentRequest
type DepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create godoc
// @Summary 创建院系
// @Tags 院系
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body DepartmentRequest true "院系信息"
// @Success 201 {object} util.Response{data=model.Department} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/departments [post]
func (c *DepartmentController) Create(ctx *gin.Context) {
	var req DepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	dept, err := c.DepartmentService.Create(req.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, dept)
}

// List godoc
// @Summary 院系列表
// @Tags 院系
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Department} "成功"
// @Router /api/departments [get]
func (c *DepartmentController) List(ctx *gin.Context) {
	depts, err := c.DepartmentService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, depts)
}

// Get godoc
// @Summary 院系详情
// @Tags 院系
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "院系ID"
// @Success 200 {object} util.Response{data=model.Department} "成功"
// @Failure 404 {object} util.Response "院系不存在"
// @Router /api/departments/{id} [get]
func (c *DepartmentController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	dept, err := c.DepartmentService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrDepartmentNotFound) {
			util.NotFoundMessage(ctx, "院系不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, dept)
}

// Update godoc
// @Summary 更新院系
// @Tags 院系
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "院系ID"
// @Param   body body DepartmentRequest true "院系信息"
// @Success 200 {object} util.Response{data=model.Department} "成功"
// @Failure 404 {object} util.Response "院系不存在"
// @Router /api/departments/{id} [put]
func (c *DepartmentController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req DepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	dept, err := c.DepartmentService.Update(id, req.Name)
	if err != nil {
		if errors.Is(err, util.ErrDepartmentNotFound) {
			util.NotFoundMessage(ctx, "院系不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, dept)
}

// Delete godoc
// @Summary 删除院系
// @Tags 院系
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "院系ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "院系不存在"
// @Router /api/departments/{id} [delete]
func (c *DepartmentController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.DepartmentService.Delete(id); err != nil {
		if errors.Is(err, util.ErrDepartmentNotFound) {
			util.NotFoundMessage(ctx, "院系不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
