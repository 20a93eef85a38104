package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrProtectedUser      = errors.New("cannot modify or delete the seed admin user")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrEmptyAnswers       = errors.New("answers must not be empty")
	ErrDuplicateQuestion  = errors.New("duplicate question in submission")
	ErrNoAssignCriteria   = errors.New("assignment rule requires batchYear or departmentId")
	ErrAlreadySubmitted   = errors.New("quiz already submitted")
	ErrNoCorrectOption    = errors.New("each question must have exactly one correct option")
	ErrBadOptionCount     = errors.New("each question must have between 2 and 5 options")
	ErrNoQuestions        = errors.New("quiz must have at least one question")
)
