package tasks

import (
	"errors"
	"time"

	"github.com/weiwangfds/lifenote/internal/database"
	apperrors "github.com/weiwangfds/lifenote/internal/errors"
	"github.com/weiwangfds/lifenote/internal/logger"
	"gorm.io/gorm"
)

// SessionService 学习记录服务接口
// 所有操作按用户隔离
type SessionService interface {
	// CreateSession 创建学习记录
	CreateSession(userID uint, req *SessionRequest) (*database.StudySession, error)

	// GetSessionByID 获取学习记录详情
	GetSessionByID(userID, sessionID uint) (*database.StudySession, error)

	// ListSessions 学习记录列表，按日期倒序
	ListSessions(userID uint) ([]database.StudySession, error)

	// UpdateSession 更新学习记录
	UpdateSession(userID, sessionID uint, req *SessionRequest) (*database.StudySession, error)

	// DeleteSession 删除学习记录
	DeleteSession(userID, sessionID uint) error
}

// SessionRequest 学习记录创建/更新请求
type SessionRequest struct {
	Subject         string     `json:"subject" binding:"required,max=200"`        // 学习主题
	Description     string     `json:"description"`                               // 学习内容描述
	DurationMinutes int        `json:"duration_minutes" binding:"required,min=1"` // 学习时长（分钟）
	Date            *time.Time `json:"date"`                                      // 学习日期，留空时取当天
	Notes           string     `json:"notes"`                                     // 备注
}

// sessionService 学习记录服务实现
type sessionService struct {
	db *gorm.DB
}

// NewSessionService 创建学习记录服务实例
func NewSessionService(db *gorm.DB) SessionService {
	return &sessionService{db: db}
}

// CreateSession 创建学习记录
func (s *sessionService) CreateSession(userID uint, req *SessionRequest) (*database.StudySession, error) {
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	session := &database.StudySession{
		UserID:          userID,
		Subject:         req.Subject,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Date:            date,
		Notes:           req.Notes,
	}
	if err := s.db.Create(session).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseInsert, apperrors.GetErrorMessage(apperrors.ErrDatabaseInsert), err)
	}
	logger.Infof("Study session created: %s (ID: %d, user: %d)", session.Subject, session.ID, userID)
	return session, nil
}

// GetSessionByID 获取学习记录详情
func (s *sessionService) GetSessionByID(userID, sessionID uint) (*database.StudySession, error) {
	var session database.StudySession
	err := s.db.Where("user_id = ?", userID).First(&session, sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewByCode(apperrors.ErrSessionNotFound)
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return &session, nil
}

// ListSessions 学习记录列表
func (s *sessionService) ListSessions(userID uint) ([]database.StudySession, error) {
	var sessions []database.StudySession
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseQuery, apperrors.GetErrorMessage(apperrors.ErrDatabaseQuery), err)
	}
	return sessions, nil
}

// UpdateSession 更新学习记录
func (s *sessionService) UpdateSession(userID, sessionID uint, req *SessionRequest) (*database.StudySession, error) {
	session, err := s.GetSessionByID(userID, sessionID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"subject":          req.Subject,
		"description":      req.Description,
		"duration_minutes": req.DurationMinutes,
		"notes":            req.Notes,
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}

	if err := s.db.Model(session).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabaseUpdate, apperrors.GetErrorMessage(apperrors.ErrDatabaseUpdate), err)
	}
	return s.GetSessionByID(userID, sessionID)
}

// DeleteSession 删除学习记录
func (s *sessionService) DeleteSession(userID, sessionID uint) error {
	session, err := s.GetSessionByID(userID, sessionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(session).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseDelete, apperrors.GetErrorMessage(apperrors.ErrDatabaseDelete), err)
	}
	logger.Infof("Study session deleted: %d (user: %d)", sessionID, userID)
	return nil
}
