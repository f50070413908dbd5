package dao

import (
	"context"

	"gorm.io/gorm"

	"vitalaid/vitalaid/sources/psql/models"
)

type ManualDAO struct {
	DB *gorm.DB
}

func NewManualDAO(db *gorm.DB) *ManualDAO {
	return &ManualDAO{DB: db}
}

func (dao *ManualDAO) GetByEmergencyType(ctx context.Context, emergencyType string) ([]models.EmergencyManual, error) {
	var manuals []models.EmergencyManual
	err := dao.DB.WithContext(ctx).
		Where("emergency_type = ?", emergencyType).
		Order("title ASC").
		Find(&manuals).Error
	if err != nil {
		return nil, err
	}
	return manuals, nil
}

func (dao *ManualDAO) ListAll(ctx context.Context) ([]models.EmergencyManual, error) {
	var manuals []models.EmergencyManual
	err := dao.DB.WithContext(ctx).
		Order("emergency_type ASC, title ASC").
		Find(&manuals).Error
	if err != nil {
		return nil, err
	}
	return manuals, nil
}
