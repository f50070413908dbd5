package dao

import (
	"context"
	"testing"
	"time"

	"vitalaid/vitalaid/sources/psql/models"
)

func seedManuals(t *testing.T, dao *ManualDAO) {
	t.Helper()
	rows := []models.EmergencyManual{
		{EmergencyType: "BURNS", Title: "Scald burns", Description: "Hot liquid burns", Steps: "1. Cool under running water.", Warning: "Do not apply ice.", UpdatedAt: time.Now().UTC()},
		{EmergencyType: "BURNS", Title: "Chemical burns", Description: "Chemical exposure", Steps: "1. Rinse for 20 minutes.", Warning: "Do not rub the eyes.", UpdatedAt: time.Now().UTC()},
		{EmergencyType: "FRACTURE", Title: "Arm fracture", Description: "Broken arm", Steps: "1. Splint and immobilize.", Warning: "Do not realign the bone.", UpdatedAt: time.Now().UTC()},
	}
	if err := dao.DB.Create(&rows).Error; err != nil {
		t.Fatalf("failed to seed manuals: %v", err)
	}
}

func TestGetManualsByEmergencyType(t *testing.T) {
	dao := NewManualDAO(setupTestDB(t))
	seedManuals(t, dao)

	manuals, err := dao.GetByEmergencyType(context.Background(), "BURNS")
	if err != nil {
		t.Fatalf("GetByEmergencyType failed: %v", err)
	}
	if len(manuals) != 2 {
		t.Fatalf("expected 2 BURNS manuals, got %d", len(manuals))
	}
	for _, m := range manuals {
		if m.EmergencyType != "BURNS" {
			t.Errorf("unexpected manual type %q", m.EmergencyType)
		}
	}
}

func TestGetManualsByTypeEmpty(t *testing.T) {
	dao := NewManualDAO(setupTestDB(t))

	manuals, err := dao.GetByEmergencyType(context.Background(), "SEIZURE")
	if err != nil {
		t.Fatalf("GetByEmergencyType failed: %v", err)
	}
	if len(manuals) != 0 {
		t.Errorf("expected no manuals, got %d", len(manuals))
	}
}

func TestListAllManuals(t *testing.T) {
	dao := NewManualDAO(setupTestDB(t))
	seedManuals(t, dao)

	manuals, err := dao.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(manuals) != 3 {
		t.Fatalf("expected 3 manuals, got %d", len(manuals))
	}
}
