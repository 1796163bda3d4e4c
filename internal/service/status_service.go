package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/risegum/internal/db"
	"gorm.io/gorm"
)

// ErrClientNameMissing 创建状态检查时未提供 client_name
var ErrClientNameMissing = errors.New("client name is required")

const maxStatusChecks = 1000

// StatusService 记录客户端的存活探测。
type StatusService struct {
	db *gorm.DB
}

// NewStatusService 构造 StatusService
func NewStatusService(gdb *gorm.DB) *StatusService {
	return &StatusService{db: gdb}
}

// Record stores one status check for the named client.
func (s *StatusService) Record(ctx context.Context, clientName string) (*db.StatusCheck, error) {
	name := strings.TrimSpace(clientName)
	if name == "" {
		return nil, ErrClientNameMissing
	}

	check := db.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: name,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&check).Error; err != nil {
		return nil, fmt.Errorf("create status check: %w", err)
	}
	return &check, nil
}

// List returns the most recent status checks, capped at 1000.
func (s *StatusService) List(ctx context.Context) ([]db.StatusCheck, error) {
	var checks []db.StatusCheck
	if err := s.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(maxStatusChecks).
		Find(&checks).Error; err != nil {
		return nil, fmt.Errorf("list status checks: %w", err)
	}
	return checks, nil
}
