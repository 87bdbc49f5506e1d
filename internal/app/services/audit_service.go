package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"gorm.io/gorm"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{
		db: db,
	}
}

// LogChange records a before/after snapshot of an entity mutation.
// Audit failures are logged and never block the mutation itself.
func (s *AuditService) LogChange(tableName string, recordID uuid.UUID, action models.AuditAction, oldData, newData interface{}, changedBy *uuid.UUID) {
	auditLog := &models.AuditLog{
		TableName: tableName,
		RecordID:  recordID,
		Action:    action,
		OldData:   marshalSnapshot(tableName, oldData),
		NewData:   marshalSnapshot(tableName, newData),
		ChangedBy: changedBy,
		ChangedAt: time.Now(),
	}

	if err := s.db.Create(auditLog).Error; err != nil {
		logrus.Errorf("Audit logging failed for %s %s: %v", tableName, recordID, err)
	}
}

func marshalSnapshot(tableName string, data interface{}) *string {
	if data == nil {
		return nil
	}
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		logrus.Warnf("Could not marshal audit snapshot for %s: %v", tableName, err)
		return nil
	}
	strJSON := string(jsonBytes)
	return &strJSON
}
