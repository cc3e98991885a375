package service

import (
	"context"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/repository"
)

// TableService lists the dining tables
type TableService struct {
	repo repository.TableRepository
}

func NewTableService(repo repository.TableRepository) *TableService {
	return &TableService{repo: repo}
}

// ListTables returns every table ordered by table number
func (s *TableService) ListTables(ctx context.Context) ([]models.Table, error) {
	return s.repo.List(ctx)
}
