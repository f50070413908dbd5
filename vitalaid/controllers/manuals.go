package controllers

import (
	"context"

	"vitalaid/vitalaid/sources/psql/dao"
	"vitalaid/vitalaid/sources/psql/models"
	"vitalaid/vitalaid/types"
)

// ManualController is a pure lookup surface over curated manual content.
type ManualController struct {
	manuals *dao.ManualDAO
}

func NewManualController(manuals *dao.ManualDAO) *ManualController {
	return &ManualController{manuals: manuals}
}

func (c *ManualController) GetManualsByType(ctx context.Context, emergencyType string) ([]models.EmergencyManual, error) {
	et, ok := types.ParseEmergencyType(emergencyType)
	if !ok {
		return nil, types.NewFailure(types.InvalidInput, "unknown emergencyType")
	}
	return c.manuals.GetByEmergencyType(ctx, string(et))
}

func (c *ManualController) ListManuals(ctx context.Context) ([]models.EmergencyManual, error) {
	return c.manuals.ListAll(ctx)
}
