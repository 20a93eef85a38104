package controller

import (
	"errors"
	"strconv"

	"quiz_admin_backend/internal/model"
	"quiz_admin_backend/internal/service"
	"quiz_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// List godoc
// @Summary 用户列表
// @Description 按角色列出用户，不带 role 参数时列出管理员
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Param   role query string false "角色" Enums(student, teacher, admin)
// @Success 200 {object} util.Response{data=[]model.User} "成功"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/users [get]
func (c *UserController) List(ctx *gin.Context) {
	role := model.UserRole(ctx.DefaultQuery("role", string(model.Admin)))

	users, err := c.UserService.ListByRole(role)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// Get godoc
// @Summary 用户详情
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	user, err := c.UserService.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFoundMessage(ctx, "用户不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// Update godoc
// @Summary 更新用户
// @Description 更新用户基础信息，内置管理员账号不可修改
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "用户ID"
// @Param   body body service.UserUpdateReq true "更新字段"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 403 {object} util.Response "受保护账号"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id} [put]
func (c *UserController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req service.UserUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.Update(id, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrProtectedUser):
			util.Error(ctx, 403, "内置管理员账号不可修改")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFoundMessage(ctx, "用户不存在")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// Delete godoc
// @Summary 删除用户
// @Description 内置管理员账号不可删除
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "受保护账号"
// @Router /api/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.UserService.Delete(id); err != nil {
		if errors.Is(err, util.ErrProtectedUser) {
			util.Error(ctx, 403, "内置管理员账号不可删除")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
