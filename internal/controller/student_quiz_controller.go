package controller

import (
	"errors"

	"quiz_admin_backend/internal/service"
	"quiz_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// StudentQuizController 学生侧答题入口，所有操作的学生身份都取自令牌
type StudentQuizController struct {
	StudentQuizService *service.StudentQuizService
}

func NewStudentQuizController(studentQuizService *service.StudentQuizService) *StudentQuizController {
	return &StudentQuizController{StudentQuizService: studentQuizService}
}

// AssignedQuizzes godoc
// @Summary 我的试卷
// @Description 列出命中当前学生的所有试卷，按 quiz_id 去重并附作答状态
// @Tags 答题
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.AssignedQuizSummary} "成功"
// @Failure 404 {object} util.Response "学生档案不存在"
// @Router /api/student/quizzes [get]
func (c *StudentQuizController) AssignedQuizzes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizzes, err := c.StudentQuizService.ListAssignedQuizzes(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFoundMessage(ctx, "学生档案不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quizzes)
}

// Attempt godoc
// @Summary 取卷答题
// @Description 返回答卷视图：题目和选项已洗牌，不含正确答案标记
// @Tags 答题
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Success 200 {object} util.Response{data=service.AttemptQuiz} "成功"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/student/quizzes/{id} [get]
func (c *StudentQuizController) Attempt(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	quiz, err := c.StudentQuizService.GetQuizForAttempt(id)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFoundMessage(ctx, "试卷不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// swagger:model SubmitAnswersRequest
type SubmitAnswersRequest struct {
	Answers []service.AnswerSubmission `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary 提交答卷
// @Description 整批评分落库，同一试卷只接受首次提交
// @Tags 答题
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Param   body body SubmitAnswersRequest true "作答内容"
// @Success 201 {object} util.Response{data=service.SubmitResult} "提交成功"
// @Failure 400 {object} util.Response "答案为空或题目不属于该试卷"
// @Failure 404 {object} util.Response "试卷不存在"
// @Failure 409 {object} util.Response "已提交过"
// @Router /api/student/quizzes/{id}/submit [post]
func (c *StudentQuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req SubmitAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.StudentQuizService.SubmitAnswers(ctx.Request.Context(), claims.UserID, id, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyAnswers):
			util.BadRequest(ctx, "答案不能为空")
		case errors.Is(err, util.ErrQuestionNotFound):
			util.BadRequest(ctx, "题目不属于该试卷")
		case errors.Is(err, util.ErrDuplicateQuestion):
			util.BadRequest(ctx, "同一题目不能重复作答")
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFoundMessage(ctx, "试卷不存在")
		case errors.Is(err, util.ErrAlreadySubmitted):
			util.Error(ctx, 409, "该试卷已提交过，不能重复提交")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, result)
}

// Result godoc
// @Summary 我的成绩
// @Description 返回得分和逐题对照，已作答题目披露正确选项
// @Tags 答题
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "试卷ID"
// @Success 200 {object} util.Response{data=service.QuizResult} "成功"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/student/quizzes/{id}/result [get]
func (c *StudentQuizController) Result(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		return
	}

	result, err := c.StudentQuizService.GetResult(ctx.Request.Context(), claims.UserID, id)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFoundMessage(ctx, "试卷不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
