package service

import (
	"context"
	"testing"

	"quiz_admin_backend/internal/model"
	"quiz_admin_backend/internal/repository"
	"quiz_admin_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizService(t *testing.T) (*QuizService, *repository.QuizRepository, *model.User) {
	t.Helper()
	db := newTestDB(t)
	dept := createDepartment(t, db, "计算机")
	teacher := createTeacher(t, db, "teacher1", dept.ID)

	quizRepo := repository.NewQuizRepository(db)
	svc := NewQuizService(quizRepo, repository.NewUserRepository(db), NewAnswerKeyCache(nil))
	return svc, quizRepo, teacher
}

func TestQuizCreateValidation(t *testing.T) {
	svc, _, teacher := newQuizService(t)

	t.Run("没有题目", func(t *testing.T) {
		questions := []QuestionReq{}
		_, err := svc.Create(teacher.ID, QuizReq{Title: strPtr("空卷"), Questions: &questions})
		assert.ErrorIs(t, err, util.ErrNoQuestions)
	})

	t.Run("选项少于两个", func(t *testing.T) {
		questions := []QuestionReq{{
			QuestionText: "q",
			Options:      []OptionReq{{OptionText: "A", IsCorrect: true}},
		}}
		_, err := svc.Create(teacher.ID, QuizReq{Title: strPtr("坏卷"), Questions: &questions})
		assert.ErrorIs(t, err, util.ErrBadOptionCount)
	})

	t.Run("选项多于五个", func(t *testing.T) {
		options := make([]OptionReq, 6)
		for i := range options {
			options[i] = OptionReq{OptionText: "x"}
		}
		options[0].IsCorrect = true
		questions := []QuestionReq{{QuestionText: "q", Options: options}}
		_, err := svc.Create(teacher.ID, QuizReq{Title: strPtr("坏卷"), Questions: &questions})
		assert.ErrorIs(t, err, util.ErrBadOptionCount)
	})

	t.Run("没有正确答案", func(t *testing.T) {
		questions := []QuestionReq{{
			QuestionText: "q",
			Options:      []OptionReq{{OptionText: "A"}, {OptionText: "B"}},
		}}
		_, err := svc.Create(teacher.ID, QuizReq{Title: strPtr("坏卷"), Questions: &questions})
		assert.ErrorIs(t, err, util.ErrNoCorrectOption)
	})

	t.Run("多个正确答案", func(t *testing.T) {
		questions := []QuestionReq{{
			QuestionText: "q",
			Options: []OptionReq{
				{OptionText: "A", IsCorrect: true},
				{OptionText: "B", IsCorrect: true},
			},
		}}
		_, err := svc.Create(teacher.ID, QuizReq{Title: strPtr("坏卷"), Questions: &questions})
		assert.ErrorIs(t, err, util.ErrNoCorrectOption)
	})
}

func TestQuizCreateAndGet(t *testing.T) {
	svc, _, teacher := newQuizService(t)

	quiz, err := svc.Create(teacher.ID, twoQuestionQuiz("期中测验"))
	require.NoError(t, err)
	require.NotZero(t, quiz.ID)

	detail, err := svc.Get(quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "期中测验", detail.Title)
	assert.Equal(t, teacher.Name, detail.TeacherName)
	require.Len(t, detail.Questions, 2)
	for _, q := range detail.Questions {
		assert.Len(t, q.Options, 3)
	}

	_, err = svc.Get(9999)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestQuizListByTeacher(t *testing.T) {
	db := newTestDB(t)
	dept := createDepartment(t, db, "计算机")
	t1 := createTeacher(t, db, "teacher1", dept.ID)
	t2 := createTeacher(t, db, "teacher2", dept.ID)

	svc := NewQuizService(repository.NewQuizRepository(db), repository.NewUserRepository(db), NewAnswerKeyCache(nil))

	_, err := svc.Create(t1.ID, twoQuestionQuiz("卷一"))
	require.NoError(t, err)
	_, err = svc.Create(t1.ID, twoQuestionQuiz("卷二"))
	require.NoError(t, err)
	_, err = svc.Create(t2.ID, twoQuestionQuiz("卷三"))
	require.NoError(t, err)

	all, err := svc.List(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := svc.List(&t1.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, q := range mine {
		assert.Equal(t, t1.ID, q.TeacherID)
	}
}

func TestQuizUpdateReplacesQuestions(t *testing.T) {
	svc, repo, teacher := newQuizService(t)

	quiz, err := svc.Create(teacher.ID, twoQuestionQuiz("原卷"))
	require.NoError(t, err)
	oldQuestionIDs := []uint{quiz.Questions[0].ID, quiz.Questions[1].ID}

	newQuestions := []QuestionReq{{
		QuestionText: "替换后的题",
		Options: []OptionReq{
			{OptionText: "对", IsCorrect: true},
			{OptionText: "错"},
		},
	}}
	updated, err := svc.Update(context.Background(), quiz.ID, QuizReq{
		Title:     strPtr("改版卷"),
		Questions: &newQuestions,
	})
	require.NoError(t, err)
	assert.Equal(t, "改版卷", updated.Title)
	require.Len(t, updated.Questions, 1)
	assert.Equal(t, "替换后的题", updated.Questions[0].QuestionText)

	// 旧题目和旧选项整体删除
	var count int64
	require.NoError(t, repo.DB.Model(&model.Question{}).Where("id IN ?", oldQuestionIDs).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, repo.DB.Model(&model.Option{}).Where("question_id IN ?", oldQuestionIDs).Count(&count).Error)
	assert.Zero(t, count)
}

func TestQuizUpdateMetadataOnly(t *testing.T) {
	svc, _, teacher := newQuizService(t)

	quiz, err := svc.Create(teacher.ID, twoQuestionQuiz("原卷"))
	require.NoError(t, err)

	// 不带 questions 时题目保持不变
	updated, err := svc.Update(context.Background(), quiz.ID, QuizReq{DurationMinutes: intPtr(45)})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.DurationMinutes)
	assert.Len(t, updated.Questions, 2)
}

func TestQuizDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	dept := createDepartment(t, db, "计算机")
	teacher := createTeacher(t, db, "teacher1", dept.ID)
	student := createStudent(t, db, "student1", dept.ID, 2024)

	quizRepo := repository.NewQuizRepository(db)
	svc := NewQuizService(quizRepo, repository.NewUserRepository(db), NewAnswerKeyCache(nil))

	quiz, err := svc.Create(teacher.ID, twoQuestionQuiz("待删卷"))
	require.NoError(t, err)

	// 挂上指派和答题记录，验证级联
	require.NoError(t, db.Create(&model.QuizAssignment{
		QuizID: quiz.ID, CreatedBy: teacher.ID, StudentID: &student.ID,
	}).Error)
	require.NoError(t, db.Create(&model.StudentAnswer{
		StudentID: student.ID, QuizID: quiz.ID,
		QuestionID: quiz.Questions[0].ID,
		OptionID:   quiz.Questions[0].Options[0].ID,
		IsCorrect:  true,
	}).Error)

	require.NoError(t, svc.Delete(context.Background(), quiz.ID))

	for _, m := range []interface{}{&model.Quiz{}, &model.Question{}, &model.Option{}, &model.QuizAssignment{}, &model.StudentAnswer{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count)
	}

	assert.ErrorIs(t, svc.Delete(context.Background(), quiz.ID), util.ErrQuizNotFound)
}
