package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"smartmenu/models"
)

type SessionSummary struct {
	SessionID    uint   `json:"session_id"`
	VisitCount   int    `json:"visit_count"`
	IsReturning  bool   `json:"is_returning_customer"`
	CustomerName string `json:"customer_name,omitempty"`
	LastVisit    string `json:"last_visit,omitempty"`
}

type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// Touch records a sighting of a device. First sighting creates the
// session with visit count 1; later sightings bump the count, refresh
// last-visit and move the session to the latest table. Name and phone
// merge non-destructively: a previously known value is never blanked
// by an absent field. Plain find-then-save, no lock: concurrent
// touches from one physical device are not a realistic workload.
func (s *SessionService) Touch(deviceID string, tableID, userID uint, name, phone string) (*SessionSummary, error) {
	var session models.CustomerSession
	err := s.db.Where("device_id = ?", deviceID).First(&session).Error
	now := time.Now()

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		session = models.CustomerSession{
			DeviceID:      deviceID,
			TableID:       tableID,
			UserID:        userID,
			CustomerName:  name,
			CustomerPhone: phone,
			VisitCount:    1,
			FirstVisit:    now,
			LastVisit:     now,
		}
		if err := s.db.Create(&session).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		session.VisitCount++
		session.LastVisit = now
		session.TableID = tableID
		if name != "" {
			session.CustomerName = name
		}
		if phone != "" {
			session.CustomerPhone = phone
		}
		if err := s.db.Save(&session).Error; err != nil {
			return nil, err
		}
	}

	return &SessionSummary{
		SessionID:    session.ID,
		VisitCount:   session.VisitCount,
		IsReturning:  session.VisitCount > 1,
		CustomerName: session.CustomerName,
	}, nil
}

// Lookup returns the session for a device, or ErrNotFound if the
// device has never been seen.
func (s *SessionService) Lookup(deviceID string) (*SessionSummary, error) {
	var session models.CustomerSession
	if err := s.db.Where("device_id = ?", deviceID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &SessionSummary{
		SessionID:    session.ID,
		VisitCount:   session.VisitCount,
		IsReturning:  session.VisitCount > 1,
		CustomerName: session.CustomerName,
		LastVisit:    session.LastVisit.Format(time.RFC3339),
	}, nil
}

// SetCustomerName attaches a name to an existing device session, e.g.
// when a customer supplies their name while placing an order.
func (s *SessionService) SetCustomerName(deviceID, name string) {
	if deviceID == "" || name == "" {
		return
	}
	s.db.Model(&models.CustomerSession{}).
		Where("device_id = ?", deviceID).
		Update("customer_name", name)
}
