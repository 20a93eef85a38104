package service

import (
	"testing"

	"quiz_admin_backend/internal/model"
	"quiz_admin_backend/internal/repository"
	"quiz_admin_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type assignFixture struct {
	db         *gorm.DB
	svc        *AssignmentService
	quizSvc    *QuizService
	teacher    *model.User
	cs         *model.Department // 计算机系
	me         *model.Department // 机械系
	csStudents []*model.User     // 计算机 2024 级两人
	meStudent  *model.User       // 机械 2024 级一人
	csOld      *model.User       // 计算机 2023 级一人
}

func newAssignFixture(t *testing.T) *assignFixture {
	t.Helper()
	db := newTestDB(t)
	f := &assignFixture{db: db}

	f.cs = createDepartment(t, db, "计算机")
	f.me = createDepartment(t, db, "机械")
	f.teacher = createTeacher(t, db, "teacher1", f.cs.ID)
	f.csStudents = []*model.User{
		createStudent(t, db, "cs2024a", f.cs.ID, 2024),
		createStudent(t, db, "cs2024b", f.cs.ID, 2024),
	}
	f.meStudent = createStudent(t, db, "me2024", f.me.ID, 2024)
	f.csOld = createStudent(t, db, "cs2023", f.cs.ID, 2023)

	quizRepo := repository.NewQuizRepository(db)
	f.svc = NewAssignmentService(
		repository.NewAssignmentRepository(db),
		quizRepo,
		repository.NewStudentRepository(db),
	)
	f.quizSvc = NewQuizService(quizRepo, repository.NewUserRepository(db), NewAnswerKeyCache(nil))
	return f
}

func (f *assignFixture) createQuiz(t *testing.T, title string) *model.Quiz {
	t.Helper()
	quiz, err := f.quizSvc.Create(f.teacher.ID, twoQuestionQuiz(title))
	require.NoError(t, err)
	return quiz
}

func TestAssignDirect(t *testing.T) {
	f := newAssignFixture(t)
	quiz := f.createQuiz(t, "定向卷")

	result, err := f.svc.Assign(quiz.ID, AssignQuizReq{
		StudentIDs: []uint{f.csStudents[0].ID, f.meStudent.ID},
	}, f.teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)

	rows, err := f.svc.ListByQuiz(quiz.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.NotNil(t, row.StudentID)
		assert.Nil(t, row.BatchYear)
		assert.Nil(t, row.DepartmentID)
		assert.Equal(t, f.teacher.ID, row.CreatedBy)
	}
}

func TestAssignCohortIntersection(t *testing.T) {
	f := newAssignFixture(t)
	quiz := f.createQuiz(t, "批次卷")

	// 计算机 ∩ 2024 级：精确命中两人，机械 2024 和计算机 2023 都不在内
	result, err := f.svc.Assign(quiz.ID, AssignQuizReq{
		BatchYear:    intPtr(2024),
		DepartmentID: uintPtr(f.cs.ID),
	}, f.teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)

	rows, err := f.svc.ListByQuiz(quiz.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	got := map[uint]bool{}
	for _, row := range rows {
		require.NotNil(t, row.StudentID)
		got[*row.StudentID] = true
		// 解析出的行带匹配条件快照
		require.NotNil(t, row.BatchYear)
		require.NotNil(t, row.DepartmentID)
		assert.Equal(t, 2024, *row.BatchYear)
		assert.Equal(t, f.cs.ID, *row.DepartmentID)
	}
	assert.True(t, got[f.csStudents[0].ID])
	assert.True(t, got[f.csStudents[1].ID])
}

func TestAssignSingleDimension(t *testing.T) {
	f := newAssignFixture(t)

	t.Run("仅按届", func(t *testing.T) {
		quiz := f.createQuiz(t, "按届卷")
		result, err := f.svc.Assign(quiz.ID, AssignQuizReq{BatchYear: intPtr(2024)}, f.teacher.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Count) // cs2024a cs2024b me2024
	})

	t.Run("仅按院系", func(t *testing.T) {
		quiz := f.createQuiz(t, "按院系卷")
		result, err := f.svc.Assign(quiz.ID, AssignQuizReq{DepartmentID: uintPtr(f.cs.ID)}, f.teacher.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Count) // cs2024a cs2024b cs2023
	})
}

func TestAssignNoCriteria(t *testing.T) {
	f := newAssignFixture(t)
	quiz := f.createQuiz(t, "空指派卷")

	result, err := f.svc.Assign(quiz.ID, AssignQuizReq{}, f.teacher.ID)
	require.NoError(t, err)
	assert.Zero(t, result.Count)

	rows, err := f.svc.ListByQuiz(quiz.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// 两个维度都为空的规则行匹配不到任何学生，不允许落库
func TestAssignRuleNoCriteria(t *testing.T) {
	f := newAssignFixture(t)
	quiz := f.createQuiz(t, "空规则卷")

	_, err := f.svc.AssignRule(quiz.ID, LegacyAssignReq{}, f.teacher.ID)
	assert.ErrorIs(t, err, util.ErrNoAssignCriteria)

	rows, err := f.svc.ListByQuiz(quiz.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAssignQuizNotFound(t *testing.T) {
	f := newAssignFixture(t)
	_, err := f.svc.Assign(9999, AssignQuizReq{BatchYear: intPtr(2024)}, f.teacher.ID)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

// 快照语义：指派之后入学的学生不被追溯覆盖
func TestAssignSnapshotSemantics(t *testing.T) {
	f := newAssignFixture(t)
	quiz := f.createQuiz(t, "快照卷")

	result, err := f.svc.Assign(quiz.ID, AssignQuizReq{
		BatchYear:    intPtr(2024),
		DepartmentID: uintPtr(f.cs.ID),
	}, f.teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)

	late := createStudent(t, f.db, "cs2024late", f.cs.ID, 2024)

	rows, err := f.svc.ListByQuiz(quiz.ID)
	require.NoError(t, err)
	for _, row := range rows {
		require.NotNil(t, row.StudentID)
		assert.NotEqual(t, late.ID, *row.StudentID)
	}
}

func TestAssignRuleAndUnassign(t *testing.T) {
	f := newAssignFixture(t)
	quiz := f.createQuiz(t, "规则卷")

	// 旧格式：落单条未解析规则行
	result, err := f.svc.AssignRule(quiz.ID, LegacyAssignReq{BatchYear: intPtr(2024)}, f.teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, result.QuizID)
	assert.Equal(t, f.teacher.ID, result.AssignedBy)

	rows, err := f.svc.ListByQuiz(quiz.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].StudentID)
	require.NotNil(t, rows[0].BatchYear)
	assert.Equal(t, 2024, *rows[0].BatchYear)

	// 再定向指派一人后取消
	_, err = f.svc.Assign(quiz.ID, AssignQuizReq{StudentIDs: []uint{f.meStudent.ID}}, f.teacher.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Unassign(quiz.ID, f.meStudent.ID))
	rows, err = f.svc.ListByQuiz(quiz.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1) // 规则行不受影响
	assert.Nil(t, rows[0].StudentID)
}
