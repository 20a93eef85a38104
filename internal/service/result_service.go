package service

import "quiz_admin_backend/internal/repository"

// ResultService 管理端成绩报表
type ResultService struct {
	ResultRepo *repository.ResultRepository
}

func NewResultService(resultRepo *repository.ResultRepository) *ResultService {
	return &ResultService{ResultRepo: resultRepo}
}

func (s *ResultService) GetAggregateResults(filter repository.ResultFilter) ([]repository.AggregateResultRow, error) {
	return s.ResultRepo.ListResults(filter)
}
