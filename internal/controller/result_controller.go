package controller

import (
	"strconv"

	"quiz_admin_backend/internal/repository"
	"quiz_admin_backend/internal/service"
	"quiz_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{ResultService: resultService}
}

func queryUint(ctx *gin.Context, name string) (*uint, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的"+name)
		return nil, false
	}
	u := uint(v)
	return &u, true
}

// List godoc
// @Summary 成绩报表
// @Description 按（学生，试卷）聚合的成绩视图，支持院系/试卷/教师过滤，院系按学生归属过滤
// @Tags 成绩
// @Produce  json
// @Security BearerAuth
// @Param   departmentId query int false "学生院系ID"
// @Param   quizId query int false "试卷ID"
// @Param   teacherId query int false "出题教师ID"
// @Success 200 {object} util.Response{data=[]repository.AggregateResultRow} "成功"
// @Failure 400 {object} util.Response "过滤参数无效"
// @Router /api/results [get]
func (c *ResultController) List(ctx *gin.Context) {
	var filter repository.ResultFilter
	var ok bool

	if filter.DepartmentID, ok = queryUint(ctx, "departmentId"); !ok {
		return
	}
	if filter.QuizID, ok = queryUint(ctx, "quizId"); !ok {
		return
	}
	if filter.TeacherID, ok = queryUint(ctx, "teacherId"); !ok {
		return
	}

	rows, err := c.ResultService.GetAggregateResults(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
