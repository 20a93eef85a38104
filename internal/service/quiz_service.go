package service

import (
	"context"
	"errors"

	"quiz_admin_backend/internal/model"
	"quiz_admin_backend/internal/repository"
	"quiz_admin_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	Repo     *repository.QuizRepository
	UserRepo *repository.UserRepository
	KeyCache *AnswerKeyCache
}

func NewQuizService(repo *repository.QuizRepository, userRepo *repository.UserRepository, keyCache *AnswerKeyCache) *QuizService {
	return &QuizService{Repo: repo, UserRepo: userRepo, KeyCache: keyCache}
}

type OptionReq struct {
	OptionText string `json:"optionText" binding:"required"`
	IsCorrect  bool   `json:"isCorrect"`
}

type QuestionReq struct {
	QuestionText string      `json:"questionText" binding:"required"`
	Explanation  string      `json:"explanation"`
	Options      []OptionReq `json:"options" binding:"required"`
}

type QuizReq struct {
	Title           *string        `json:"title"`
	Description     *string        `json:"description"`
	DurationMinutes *int           `json:"durationMinutes"`
	Questions       *[]QuestionReq `json:"questions"`
}

// QuizDetail 列表/详情视图，附带出题教师
type QuizDetail struct {
	model.Quiz
	TeacherName  string `json:"teacherName"`
	TeacherEmail string `json:"teacherEmail"`
}

// validateQuestions 每题 2~5 个选项且恰好一个正确答案。存储层不约束，这里是唯一的闸口
func validateQuestions(questions []QuestionReq) error {
	if len(questions) == 0 {
		return util.ErrNoQuestions
	}
	for _, q := range questions {
		if len(q.Options) < util.MinOptionsPerQuestion || len(q.Options) > util.MaxOptionsPerQuestion {
			return util.ErrBadOptionCount
		}
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return util.ErrNoCorrectOption
		}
	}
	return nil
}

func buildQuestions(reqs []QuestionReq) []model.Question {
	questions := make([]model.Question, len(reqs))
	for i, qReq := range reqs {
		options := make([]model.Option, len(qReq.Options))
		for j, oReq := range qReq.Options {
			options[j] = model.Option{
				OptionText: oReq.OptionText,
				IsCorrect:  oReq.IsCorrect,
			}
		}
		questions[i] = model.Question{
			QuestionText: qReq.QuestionText,
			Explanation:  qReq.Explanation,
			Options:      options,
		}
	}
	return questions
}

func (s *QuizService) Create(teacherID uint, req QuizReq) (*model.Quiz, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.Questions == nil {
		return nil, util.ErrNoQuestions
	}
	if err := validateQuestions(*req.Questions); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		TeacherID: teacherID,
		Title:     *req.Title,
		Questions: buildQuestions(*req.Questions),
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		quiz.DurationMinutes = *req.DurationMinutes
	}

	if err := s.Repo.CreateWithQuestions(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Get(id uint) (*QuizDetail, error) {
	quiz, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return s.withTeacher(quiz), nil
}

// List 不带 teacherID 时列出全部试卷
func (s *QuizService) List(teacherID *uint) ([]QuizDetail, error) {
	var quizzes []model.Quiz
	var err error
	if teacherID != nil {
		quizzes, err = s.Repo.ListByTeacher(*teacherID)
	} else {
		quizzes, err = s.Repo.ListAll()
	}
	if err != nil {
		return nil, err
	}

	details := make([]QuizDetail, len(quizzes))
	for i := range quizzes {
		details[i] = *s.withTeacher(&quizzes[i])
	}
	return details, nil
}

func (s *QuizService) withTeacher(quiz *model.Quiz) *QuizDetail {
	detail := &QuizDetail{Quiz: *quiz}
	if teacher, err := s.UserRepo.FindByID(quiz.TeacherID); err == nil {
		detail.TeacherName = teacher.Name
		detail.TeacherEmail = teacher.Email
	}
	return detail
}

func (s *QuizService) Update(ctx context.Context, id uint, req QuizReq) (*QuizDetail, error) {
	quiz, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		quiz.DurationMinutes = *req.DurationMinutes
	}

	var questions []model.Question
	if req.Questions != nil {
		if err := validateQuestions(*req.Questions); err != nil {
			return nil, err
		}
		questions = buildQuestions(*req.Questions)
	}

	if err := s.Repo.UpdateWithQuestions(quiz, questions); err != nil {
		return nil, err
	}

	// 题目换了，旧答案键作废
	s.KeyCache.Invalidate(ctx, id)

	return s.Get(id)
}

func (s *QuizService) Delete(ctx context.Context, id uint) error {
	exists, err := s.Repo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrQuizNotFound
	}

	if err := s.Repo.DeleteCascade(id); err != nil {
		return err
	}

	s.KeyCache.Invalidate(ctx, id)
	return nil
}
