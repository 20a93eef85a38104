package service

import (
	"context"
	"testing"

	"quiz_admin_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAggregateResults(t *testing.T) {
	f := newAssignFixture(t)
	studentSvc := newStudentQuizService(f)
	resultSvc := NewResultService(repository.NewResultRepository(f.db))
	ctx := context.Background()

	quiz := f.createQuiz(t, "报表卷")
	otherTeacher := createTeacher(t, f.db, "teacher2", f.me.ID)
	otherQuiz, err := f.quizSvc.Create(otherTeacher.ID, twoQuestionQuiz("另一张卷"))
	require.NoError(t, err)

	// cs2024a 全对，me2024 全错
	_, err = studentSvc.SubmitAnswers(ctx, f.csStudents[0].ID, quiz.ID, []AnswerSubmission{
		{QuestionID: quiz.Questions[0].ID, OptionID: quiz.Questions[0].Options[0].ID},
		{QuestionID: quiz.Questions[1].ID, OptionID: quiz.Questions[1].Options[0].ID},
	})
	require.NoError(t, err)
	_, err = studentSvc.SubmitAnswers(ctx, f.meStudent.ID, quiz.ID, []AnswerSubmission{
		{QuestionID: quiz.Questions[0].ID, OptionID: quiz.Questions[0].Options[1].ID},
		{QuestionID: quiz.Questions[1].ID, OptionID: quiz.Questions[1].Options[1].ID},
	})
	require.NoError(t, err)
	_, err = studentSvc.SubmitAnswers(ctx, f.csStudents[1].ID, otherQuiz.ID, []AnswerSubmission{
		{QuestionID: otherQuiz.Questions[0].ID, OptionID: otherQuiz.Questions[0].Options[0].ID},
	})
	require.NoError(t, err)

	t.Run("不过滤", func(t *testing.T) {
		rows, err := resultSvc.GetAggregateResults(repository.ResultFilter{})
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("按试卷过滤", func(t *testing.T) {
		rows, err := resultSvc.GetAggregateResults(repository.ResultFilter{QuizID: &quiz.ID})
		require.NoError(t, err)
		require.Len(t, rows, 2)

		byStudent := map[uint]repository.AggregateResultRow{}
		for _, row := range rows {
			byStudent[row.StudentID] = row
		}
		full := byStudent[f.csStudents[0].ID]
		assert.Equal(t, 2, full.CorrectCount)
		assert.Equal(t, 2, full.TotalQuestions)
		assert.Equal(t, "报表卷", full.QuizTitle)
		assert.Equal(t, f.teacher.Name, full.TeacherName)
		assert.Equal(t, "计算机", full.TeacherDepartment)
		assert.NotEmpty(t, full.LastAnsweredAt)
		assert.Equal(t, "机械", byStudent[f.meStudent.ID].StudentDepartment)
		assert.Zero(t, byStudent[f.meStudent.ID].CorrectCount)
	})

	t.Run("按学生院系过滤", func(t *testing.T) {
		rows, err := resultSvc.GetAggregateResults(repository.ResultFilter{DepartmentID: &f.me.ID})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, f.meStudent.ID, rows[0].StudentID)
	})

	t.Run("按教师过滤", func(t *testing.T) {
		rows, err := resultSvc.GetAggregateResults(repository.ResultFilter{TeacherID: &otherTeacher.ID})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, otherQuiz.ID, rows[0].QuizID)
		// 部分作答：答对一题，总题数仍按试卷算
		assert.Equal(t, 1, rows[0].CorrectCount)
		assert.Equal(t, 2, rows[0].TotalQuestions)
	})
}
