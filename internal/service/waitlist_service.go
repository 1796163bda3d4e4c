package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/risegum/internal/db"
	"gorm.io/gorm"
)

const (
	maxNameRunes = 100
	maxCityRunes = 50

	// DefaultWaitlistLimit 列表接口未指定 limit 时的默认条数
	DefaultWaitlistLimit = 100
	// MaxWaitlistLimit 列表接口允许的最大条数
	MaxWaitlistLimit = 1000
)

var (
	// ErrDuplicateEmail 邮箱已在候补名单中
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrEntryInvalid 提交内容未通过校验
	ErrEntryInvalid = errors.New("invalid waitlist entry")

	namePattern = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
)

// FieldError describes one rejected field of a waitlist submission.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field error found in one submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		messages = append(messages, field.Message)
	}
	return fmt.Sprintf("%s: %s", ErrEntryInvalid, strings.Join(messages, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrEntryInvalid
}

// WaitlistInput 是访客提交的原始字段。
type WaitlistInput struct {
	Name  string
	Email string
	City  string
}

// WaitlistService 负责候补名单的校验与持久化。
type WaitlistService struct {
	db       *gorm.DB
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// NewWaitlistService 构造 WaitlistService
func NewWaitlistService(gdb *gorm.DB) *WaitlistService {
	return &WaitlistService{
		db:       gdb,
		validate: validator.New(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Normalize trims and collapses whitespace, lower-cases the email and
// validates every field. All field errors are reported together.
func (s *WaitlistService) Normalize(input WaitlistInput) (WaitlistInput, error) {
	out := WaitlistInput{
		Name:  collapseSpaces(input.Name),
		Email: strings.ToLower(strings.TrimSpace(input.Email)),
		City:  collapseSpaces(input.City),
	}

	var fields []FieldError
	if msg := checkWord("Name", out.Name, maxNameRunes); msg != "" {
		fields = append(fields, FieldError{Field: "name", Message: msg})
	}
	if out.Email == "" {
		fields = append(fields, FieldError{Field: "email", Message: "Email cannot be empty"})
	} else if err := s.validate.Var(out.Email, "email,max=255"); err != nil {
		fields = append(fields, FieldError{Field: "email", Message: "Please enter a valid email address"})
	}
	if msg := checkWord("City", out.City, maxCityRunes); msg != "" {
		fields = append(fields, FieldError{Field: "city", Message: msg})
	}

	if len(fields) > 0 {
		return out, &ValidationError{Fields: fields}
	}
	return out, nil
}

// Join validates and stores a new waitlist entry.
func (s *WaitlistService) Join(ctx context.Context, input WaitlistInput) (*db.WaitlistEntry, error) {
	normalized, err := s.Normalize(input)
	if err != nil {
		return nil, err
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&db.WaitlistEntry{}).
		Where("email = ?", normalized.Email).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check waitlist email: %w", err)
	}
	if existing > 0 {
		return nil, ErrDuplicateEmail
	}

	entry := db.WaitlistEntry{
		ID:        s.newID(),
		Name:      normalized.Name,
		Email:     normalized.Email,
		City:      normalized.City,
		Status:    db.WaitlistStatusPending,
		Source:    db.WaitlistSourceLandingPage,
		CreatedAt: s.now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		// 并发提交时唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create waitlist entry: %w", err)
	}

	return &entry, nil
}

// List 按加入时间倒序分页返回候补记录及总数。
func (s *WaitlistService) List(ctx context.Context, skip, limit int) ([]db.WaitlistEntry, int64, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultWaitlistLimit
	}
	if limit > MaxWaitlistLimit {
		limit = MaxWaitlistLimit
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&db.WaitlistEntry{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count waitlist entries: %w", err)
	}

	var entries []db.WaitlistEntry
	if err := s.db.WithContext(ctx).
		Order("created_at DESC, id ASC").
		Offset(skip).
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("list waitlist entries: %w", err)
	}

	return entries, total, nil
}

// All 一次查询读出全部记录，顺序与 List 一致；导出用，不受 MaxWaitlistLimit 限制。
func (s *WaitlistService) All(ctx context.Context) ([]db.WaitlistEntry, error) {
	var entries []db.WaitlistEntry
	if err := s.db.WithContext(ctx).
		Order("created_at DESC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("read waitlist entries: %w", err)
	}
	return entries, nil
}

func collapseSpaces(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func checkWord(label, value string, maxRunes int) string {
	if value == "" {
		return label + " cannot be empty"
	}
	if utf8.RuneCountInString(value) > maxRunes {
		return fmt.Sprintf("%s must be at most %d characters", label, maxRunes)
	}
	if !namePattern.MatchString(value) {
		if label == "City" {
			return "City name can only contain letters, spaces, hyphens, and apostrophes"
		}
		return label + " can only contain letters, spaces, hyphens, and apostrophes"
	}
	return ""
}
