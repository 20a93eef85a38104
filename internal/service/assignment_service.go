package service

import (
	"quiz_admin_backend/internal/model"
	"quiz_admin_backend/internal/repository"
	"quiz_admin_backend/internal/util"
)

// AssignmentService 把一条指派规则物化成 quiz_assignments 行。
// 按批次/院系指派时当场解析学生集合并逐一落行（快照语义）：
// 之后才加入该批次的学生不会被追溯覆盖
type AssignmentService struct {
	Repo        *repository.AssignmentRepository
	QuizRepo    *repository.QuizRepository
	StudentRepo *repository.StudentRepository
}

func NewAssignmentService(repo *repository.AssignmentRepository, quizRepo *repository.QuizRepository, studentRepo *repository.StudentRepository) *AssignmentService {
	return &AssignmentService{Repo: repo, QuizRepo: quizRepo, StudentRepo: studentRepo}
}

type AssignQuizReq struct {
	StudentIDs   []uint `json:"studentIds"`
	BatchYear    *int   `json:"batchYear"`
	DepartmentID *uint  `json:"departmentId"`
}

type AssignResult struct {
	Count int `json:"count"`
}

// Assign 规则形态：
//  1. studentIds 非空 → 每人一行定向指派
//  2. 否则按 batchYear/departmentId 解析批次，命中几人落几行
//  3. 什么条件都没有 → count=0，不落行
func (s *AssignmentService) Assign(quizID uint, req AssignQuizReq, actorID uint) (*AssignResult, error) {
	exists, err := s.QuizRepo.Exists(quizID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrQuizNotFound
	}

	if len(req.StudentIDs) > 0 {
		assignments := make([]model.QuizAssignment, len(req.StudentIDs))
		for i, studentID := range req.StudentIDs {
			sid := studentID
			assignments[i] = model.QuizAssignment{
				QuizID:    quizID,
				CreatedBy: actorID,
				StudentID: &sid,
			}
		}
		if err := s.Repo.CreateBatch(assignments); err != nil {
			return nil, err
		}
		return &AssignResult{Count: len(assignments)}, nil
	}

	if req.BatchYear == nil && req.DepartmentID == nil {
		return &AssignResult{Count: 0}, nil
	}

	studentIDs, err := s.StudentRepo.FindCohort(req.BatchYear, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	assignments := make([]model.QuizAssignment, len(studentIDs))
	for i, studentID := range studentIDs {
		sid := studentID
		assignments[i] = model.QuizAssignment{
			QuizID:       quizID,
			CreatedBy:    actorID,
			StudentID:    &sid,
			BatchYear:    req.BatchYear,
			DepartmentID: req.DepartmentID,
		}
	}
	if err := s.Repo.CreateBatch(assignments); err != nil {
		return nil, err
	}
	return &AssignResult{Count: len(assignments)}, nil
}

type LegacyAssignReq struct {
	BatchYear    *int  `json:"batchYear"`
	DepartmentID *uint `json:"departmentId"`
}

type LegacyAssignResult struct {
	QuizID       uint  `json:"quiz_id"`
	BatchYear    *int  `json:"batch_year"`
	DepartmentID *uint `json:"department_id"`
	AssignedBy   uint  `json:"assigned_by"`
}

// AssignRule 旧格式：落一条未解析的规则行，资格判定时按学生当前档案匹配。
// 两个维度都为空的规则永远匹配不到任何学生，直接拒绝
func (s *AssignmentService) AssignRule(quizID uint, req LegacyAssignReq, actorID uint) (*LegacyAssignResult, error) {
	if req.BatchYear == nil && req.DepartmentID == nil {
		return nil, util.ErrNoAssignCriteria
	}

	exists, err := s.QuizRepo.Exists(quizID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrQuizNotFound
	}

	assignment := &model.QuizAssignment{
		QuizID:       quizID,
		CreatedBy:    actorID,
		BatchYear:    req.BatchYear,
		DepartmentID: req.DepartmentID,
	}
	if err := s.Repo.Create(assignment); err != nil {
		return nil, err
	}

	return &LegacyAssignResult{
		QuizID:       quizID,
		BatchYear:    req.BatchYear,
		DepartmentID: req.DepartmentID,
		AssignedBy:   actorID,
	}, nil
}

func (s *AssignmentService) ListByQuiz(quizID uint) ([]model.QuizAssignment, error) {
	exists, err := s.QuizRepo.Exists(quizID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrQuizNotFound
	}
	return s.Repo.ListByQuiz(quizID)
}

func (s *AssignmentService) Unassign(quizID, studentID uint) error {
	exists, err := s.QuizRepo.Exists(quizID)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrQuizNotFound
	}
	return s.Repo.DeleteByQuizAndStudent(quizID, studentID)
}
