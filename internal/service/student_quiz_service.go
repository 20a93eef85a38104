package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"quiz_admin_backend/internal/model"
	"quiz_admin_backend/internal/repository"
	"quiz_admin_backend/internal/util"
	"quiz_admin_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// StudentQuizService 学生侧：资格判定、答卷视图、提交评分、成绩查询
type StudentQuizService struct {
	QuizRepo       *repository.QuizRepository
	AssignmentRepo *repository.AssignmentRepository
	AnswerRepo     *repository.AnswerRepository
	StudentRepo    *repository.StudentRepository
	KeyCache       *AnswerKeyCache
}

func NewStudentQuizService(
	quizRepo *repository.QuizRepository,
	assignmentRepo *repository.AssignmentRepository,
	answerRepo *repository.AnswerRepository,
	studentRepo *repository.StudentRepository,
	keyCache *AnswerKeyCache,
) *StudentQuizService {
	return &StudentQuizService{
		QuizRepo:       quizRepo,
		AssignmentRepo: assignmentRepo,
		AnswerRepo:     answerRepo,
		StudentRepo:    studentRepo,
		KeyCache:       keyCache,
	}
}

type AssignedQuizSummary struct {
	AssignmentID    uint      `json:"assignment_id"`
	QuizID          uint      `json:"quiz_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	AssignedAt      time.Time `json:"assigned_at"`
	TotalQuestions  int       `json:"total_questions"`
	IsAnswered      bool      `json:"is_answered"`
	Score           *int      `json:"score,omitempty"`
}

// specificity 规则粒度：定向 > 届+院系 > 单维度
func specificity(row *repository.AssignedQuizRow) int {
	switch {
	case row.StudentID != nil && row.BatchYear == nil && row.DepartmentID == nil:
		return 3
	case row.BatchYear != nil && row.DepartmentID != nil:
		return 2
	default:
		return 1
	}
}

// ListAssignedQuizzes 查出命中该学生的所有指派行，再按 quiz_id 去重：
// 多条规则覆盖同一张试卷时只保留粒度最细的一条（并列取最早指派的）
func (s *StudentQuizService) ListAssignedQuizzes(studentID uint) ([]AssignedQuizSummary, error) {
	student, err := s.StudentRepo.FindByUserID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	rows, err := s.AssignmentRepo.ListForStudent(studentID, student.DepartmentID, student.BatchYear)
	if err != nil {
		return nil, err
	}

	best := make(map[uint]int) // quiz_id → index into rows
	order := make([]uint, 0, len(rows))
	for i := range rows {
		idx, seen := best[rows[i].QuizID]
		if !seen {
			best[rows[i].QuizID] = i
			order = append(order, rows[i].QuizID)
			continue
		}
		if specificity(&rows[i]) > specificity(&rows[idx]) {
			best[rows[i].QuizID] = i
		}
	}

	summaries := make([]AssignedQuizSummary, 0, len(order))
	for _, quizID := range order {
		row := rows[best[quizID]]
		summary := AssignedQuizSummary{
			AssignmentID:    row.AssignmentID,
			QuizID:          row.QuizID,
			Title:           row.Title,
			Description:     row.Description,
			DurationMinutes: row.DurationMinutes,
			AssignedAt:      row.AssignedAt,
			TotalQuestions:  row.TotalQuestions,
			IsAnswered:      row.Answered > 0,
		}
		if summary.IsAnswered {
			score := row.Score
			summary.Score = &score
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// AttemptOption 答卷视图的选项。刻意没有 is_correct 字段：
// 答案键在作答前/作答中绝不能下发
type AttemptOption struct {
	ID         uint   `json:"id"`
	OptionText string `json:"optionText"`
}

type AttemptQuestion struct {
	ID           uint            `json:"id"`
	QuestionText string          `json:"questionText"`
	Explanation  string          `json:"explanation,omitempty"`
	Options      []AttemptOption `json:"options"`
}

type AttemptQuiz struct {
	ID              uint              `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	DurationMinutes int               `json:"durationMinutes"`
	Questions       []AttemptQuestion `json:"questions"`
}

// PresentQuiz 生成答卷视图：题目顺序和每题选项顺序各自独立洗牌，
// id 和文本不动。不播种、每次调用结果可不同；评分只看 option_id，与展示顺序无关
func PresentQuiz(quiz *model.Quiz) *AttemptQuiz {
	questions := make([]AttemptQuestion, len(quiz.Questions))
	for i, q := range quiz.Questions {
		options := make([]AttemptOption, len(q.Options))
		for j, opt := range q.Options {
			options[j] = AttemptOption{ID: opt.ID, OptionText: opt.OptionText}
		}
		rand.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})
		questions[i] = AttemptQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Explanation:  q.Explanation,
			Options:      options,
		}
	}
	rand.Shuffle(len(questions), func(a, b int) {
		questions[a], questions[b] = questions[b], questions[a]
	})

	return &AttemptQuiz{
		ID:              quiz.ID,
		Title:           quiz.Title,
		Description:     quiz.Description,
		DurationMinutes: quiz.DurationMinutes,
		Questions:       questions,
	}
}

func (s *StudentQuizService) GetQuizForAttempt(quizID uint) (*AttemptQuiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return PresentQuiz(quiz), nil
}

type AnswerSubmission struct {
	QuestionID uint `json:"question_id" binding:"required"`
	OptionID   uint `json:"option_id" binding:"required"`
}

type SubmitResult struct {
	AnswerID uint `json:"answer_id"`
}

func (s *StudentQuizService) answerKey(ctx context.Context, quizID uint) (map[uint]uint, error) {
	if key, ok := s.KeyCache.Get(ctx, quizID); ok {
		return key, nil
	}
	key, err := s.QuizRepo.CorrectOptions(quizID)
	if err != nil {
		return nil, err
	}
	s.KeyCache.Set(ctx, quizID, key)
	return key, nil
}

// SubmitAnswers 对照答案键逐题评分并快照 is_correct，整批原子落库。
// 同一学生对同一试卷只接受首次提交，重复提交直接拒绝
func (s *StudentQuizService) SubmitAnswers(ctx context.Context, studentID, quizID uint, answers []AnswerSubmission) (*SubmitResult, error) {
	if len(answers) == 0 {
		return nil, util.ErrEmptyAnswers
	}

	exists, err := s.QuizRepo.Exists(quizID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrQuizNotFound
	}

	submitted, err := s.AnswerRepo.HasSubmission(studentID, quizID)
	if err != nil {
		return nil, err
	}
	if submitted {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		return nil, util.ErrAlreadySubmitted
	}

	key, err := s.answerKey(ctx, quizID)
	if err != nil {
		return nil, err
	}

	rows := make([]model.StudentAnswer, len(answers))
	seen := make(map[uint]struct{}, len(answers))
	for i, ans := range answers {
		if _, dup := seen[ans.QuestionID]; dup {
			return nil, util.ErrDuplicateQuestion
		}
		seen[ans.QuestionID] = struct{}{}

		correctOptionID, ok := key[ans.QuestionID]
		if !ok {
			return nil, util.ErrQuestionNotFound
		}
		rows[i] = model.StudentAnswer{
			StudentID:  studentID,
			QuizID:     quizID,
			QuestionID: ans.QuestionID,
			OptionID:   ans.OptionID,
			IsCorrect:  ans.OptionID == correctOptionID,
		}
	}

	if err := s.AnswerRepo.CreateBatch(rows); err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues("graded").Inc()
	return &SubmitResult{AnswerID: rows[0].ID}, nil
}

type ResultAnswer struct {
	QuestionID       uint `json:"question_id"`
	SelectedOptionID uint `json:"selected_option_id"`
	CorrectOptionID  uint `json:"correct_option_id"`
	IsCorrect        bool `json:"is_correct"`
}

type ResultStudent struct {
	ID           uint   `json:"id"`
	Name         string `json:"name,omitempty"`
	DepartmentID uint   `json:"department_id,omitempty"`
	Department   string `json:"department,omitempty"`
}

type QuizResult struct {
	Quiz           *AttemptQuiz   `json:"quiz"`
	Student        ResultStudent  `json:"student"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Answers        []ResultAnswer `json:"answers"`
}

// GetResult 成绩视图。correct_option_id 只在这里、且只对已作答的题目披露；
// 部分作答时未答题目不会出现在 answers 里。total_questions 取试卷当前题目数
func (s *StudentQuizService) GetResult(ctx context.Context, studentID, quizID uint) (*QuizResult, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	key, err := s.answerKey(ctx, quizID)
	if err != nil {
		return nil, err
	}

	answerRows, err := s.AnswerRepo.ListByStudentAndQuiz(studentID, quizID)
	if err != nil {
		return nil, err
	}

	score := 0
	answers := make([]ResultAnswer, len(answerRows))
	for i, row := range answerRows {
		if row.IsCorrect {
			score++
		}
		answers[i] = ResultAnswer{
			QuestionID:       row.QuestionID,
			SelectedOptionID: row.OptionID,
			CorrectOptionID:  key[row.QuestionID],
			IsCorrect:        row.IsCorrect,
		}
	}

	student := ResultStudent{ID: studentID}
	if row, err := s.StudentRepo.FindByUserID(studentID); err == nil {
		student.Name = row.Name
		student.DepartmentID = row.DepartmentID
		student.Department = row.Department
	}

	// 成绩视图里的试卷不带正确性标记，不额外洗牌也无妨，这里复用同一结构
	resultQuiz := &AttemptQuiz{
		ID:              quiz.ID,
		Title:           quiz.Title,
		Description:     quiz.Description,
		DurationMinutes: quiz.DurationMinutes,
	}
	resultQuiz.Questions = make([]AttemptQuestion, len(quiz.Questions))
	for i, q := range quiz.Questions {
		options := make([]AttemptOption, len(q.Options))
		for j, opt := range q.Options {
			options[j] = AttemptOption{ID: opt.ID, OptionText: opt.OptionText}
		}
		resultQuiz.Questions[i] = AttemptQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Explanation:  q.Explanation,
			Options:      options,
		}
	}

	return &QuizResult{
		Quiz:           resultQuiz,
		Student:        student,
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		Answers:        answers,
	}, nil
}
