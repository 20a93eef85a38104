package controller

import (
	"errors"
	"strconv"

	"quiz_admin_backend/internal/service"
	"quiz_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService       *service.QuizService
	AssignmentService *service.AssignmentService
}

func NewQuizController(quizService *service.QuizService, assignmentService *service.AssignmentService) *QuizController {
	return &QuizController{
		QuizService:       quizService,
		AssignmentService: assignmentService,
	}
}

func quizServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFoundMessage(ctx, "试卷不存在")
	case errors.Is(err, util.ErrNoQuestions),
		errors.Is(err, util.ErrBadOptionCount),
		errors.Is(err, util.ErrNoCorrectOption),
		errors.Is(err, util.ErrNoAssignCriteria):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// Create godoc
// @Summary 创建试卷
// @Description 创建试卷及其题目和选项，每题必须恰好一个正确选项
// @Tags 试卷
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.QuizReq true "试卷内容"
// @Success 201 {object} util.Response{data=model.Quiz} "创建成功"
// @Failure 400 {object} util.Response "题目或选项不合法"
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Create(claims.UserID, req)
	if err != nil {
		quizServiceError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// List godoc
// @Summary 试卷列表
// @Description 列出所有试卷及出题教师信息，可按出题教师过滤
// @Tags 试卷
// @Produce  json
// @Security BearerAuth
// @Param   teacherId query int false "出题教师ID"
// @Success 200 {object} util.Response{data=[]service.QuizDetail} "成功"
// @Router /api/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	var teacherID *uint
	if raw := ctx.Query("teacherId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			util.BadRequest(ctx, "无效的teacherId")
			return
		}
		u := uint(id)
		teacherID = &u
	}

	quizzes, err := c.QuizService.List(teacherID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// Get godoc
// @Summary 试卷详情
// @Description 返回试卷全文，含题目、选项和正确答案标记，仅限管理端
// @Tags 试卷
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Success 200 {object} util.Response{data=service.QuizDetail} "成功"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	quiz, err := c.QuizService.Get(id)
	if err != nil {
		quizServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Update godoc
// @Summary 更新试卷
// @Description 更新试卷元信息；携带 questions 时整体替换题目
// @Tags 试卷
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Param   body body service.QuizReq true "更新内容"
// @Success 200 {object} util.Response{data=service.QuizDetail} "成功"
// @Failure 400 {object} util.Response "题目或选项不合法"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		quizServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Delete godoc
// @Summary 删除试卷
// @Description 级联删除答题记录、指派、选项和题目
// @Tags 试卷
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.QuizService.Delete(ctx.Request.Context(), id); err != nil {
		quizServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// Assign godoc
// @Summary 指派试卷
// @Description 定向指派（studentIds）或按届/院系解析批次后逐人落行；无条件时不落行
// @Tags 试卷
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Param   body body service.AssignQuizReq true "指派规则"
// @Success 201 {object} util.Response{data=service.AssignResult} "指派成功"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/quizzes/{id}/assign [post]
func (c *QuizController) Assign(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req service.AssignQuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssignmentService.Assign(id, req, claims.UserID)
	if err != nil {
		quizServiceError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// AssignRule godoc
// @Summary 指派试卷（规则形式）
// @Description 落一条未解析的届/院系规则行，资格判定时按学生当前档案匹配
// @Tags 试卷
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Param   body body service.LegacyAssignReq true "指派规则"
// @Success 201 {object} util.Response{data=service.LegacyAssignResult} "指派成功"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/quizzes/{id}/assign-rule [post]
func (c *QuizController) AssignRule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req service.LegacyAssignReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssignmentService.AssignRule(id, req, claims.UserID)
	if err != nil {
		quizServiceError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// Assignments godoc
// @Summary 试卷指派列表
// @Tags 试卷
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Success 200 {object} util.Response{data=[]model.QuizAssignment} "成功"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/quizzes/{id}/assignments [get]
func (c *QuizController) Assignments(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	assignments, err := c.AssignmentService.ListByQuiz(id)
	if err != nil {
		quizServiceError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// Unassign godoc
// @Summary 取消指派
// @Description 删除该试卷对指定学生的定向指派行
// @Tags 试卷
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Param   studentId path int true "学生用户ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/quizzes/{id}/assign/{studentId} [delete]
func (c *QuizController) Unassign(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	studentID, err := strconv.ParseUint(ctx.Param("studentId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的学生ID")
		return
	}

	if err := c.AssignmentService.Unassign(id, uint(studentID)); err != nil {
		quizServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"quiz_id": id, "student_id": studentID})
}
