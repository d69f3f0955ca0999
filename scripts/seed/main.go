package main

import (
	"log"
	"time"

	"gorm.io/datatypes"

	"github.com/sehatsaathi/voicecare/internal/domain/entities"
	"github.com/sehatsaathi/voicecare/internal/infrastructure/database"
	"github.com/sehatsaathi/voicecare/pkg/config"
)

// Seeds a development database with one ASHA worker, one responder, and a
// small caseload covering the interesting risk profiles.
func main() {
	log.Println("🚀 Starting seed data creation...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Server.Environment == "production" {
		log.Fatalf("Refusing to seed a production database")
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg, nil)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")

	log.Println("🗑️  Cleaning up existing seed data...")
	db.Where("user_id LIKE ?", "seed-%").Delete(&entities.Worker{})
	db.Where("village = ?", "Rampur (seed)").Delete(&entities.Beneficiary{})

	log.Println("👩‍⚕️ Creating workers...")
	asha := entities.Worker{
		UserID:   "seed-asha-1",
		Name:     "Meena Kumari",
		Phone:    "+919800000001",
		Village:  "Rampur (seed)",
		Language: "hi",
	}
	responder := entities.Worker{
		UserID:   "seed-anm-1",
		Name:     "Rekha Sharma",
		Phone:    "+919800000002",
		Village:  "Rampur (seed)",
		Language: "hi",
	}
	if err := db.Create(&asha).Error; err != nil {
		log.Fatalf("Failed to create ASHA worker: %v", err)
	}
	if err := db.Create(&responder).Error; err != nil {
		log.Fatalf("Failed to create responder: %v", err)
	}

	log.Println("🤰 Creating beneficiaries...")
	week28 := 28
	hb7 := 7.4
	complications := "previous postpartum hemorrhage"
	beneficiaries := []entities.Beneficiary{
		{
			Name:                  "Sunita Devi",
			Phone:                 "+919800000101",
			Village:               "Rampur (seed)",
			AssignedWorkerID:      asha.ID,
			ResponderID:           &responder.ID,
			IsHighRisk:            true,
			AnemiaStatus:          entities.AnemiaStatusSevere,
			LastHemoglobinLevel:   &hb7,
			PreviousComplications: &complications,
			IsPregnant:            true,
			PregnancyWeek:         &week28,
		},
		{
			Name:             "Anita Devi",
			Phone:            "+919800000102",
			Village:          "Rampur (seed)",
			AssignedWorkerID: asha.ID,
			ResponderID:      &responder.ID,
			AnemiaStatus:     entities.AnemiaStatusMild,
			IsPregnant:       true,
		},
		{
			Name:             "Pooja Kumari",
			Phone:            "+919800000103",
			Village:          "Rampur (seed)",
			AssignedWorkerID: asha.ID,
			AnemiaStatus:     entities.AnemiaStatusNone,
		},
	}
	for i := range beneficiaries {
		if err := db.Create(&beneficiaries[i]).Error; err != nil {
			log.Fatalf("Failed to create beneficiary %q: %v", beneficiaries[i].Name, err)
		}
	}

	log.Println("📋 Creating health history for Sunita Devi...")
	aiScore := 72.0
	logEntry := entities.HealthLog{
		BeneficiaryID: beneficiaries[0].ID,
		Symptoms:      datatypes.JSON([]byte(`["dizziness","blurred vision"]`)),
		Severity:      entities.SeveritySevere,
		IsRedFlag:     true,
		AIRiskScore:   &aiScore,
		Notes:         "reported during weekly check-in call",
		LoggedAt:      time.Now().AddDate(0, 0, -3),
	}
	if err := db.Create(&logEntry).Error; err != nil {
		log.Fatalf("Failed to create health log: %v", err)
	}

	completed := time.Now().AddDate(0, 0, -45)
	visit := entities.Visit{
		BeneficiaryID: beneficiaries[0].ID,
		WorkerID:      asha.ID,
		Status:        entities.VisitStatusCompleted,
		CompletedAt:   &completed,
	}
	if err := db.Create(&visit).Error; err != nil {
		log.Fatalf("Failed to create visit: %v", err)
	}

	log.Println("✅ Seed data created successfully")
	log.Printf("   ASHA worker user id: %s", asha.UserID)
	log.Printf("   Responder user id:   %s", responder.UserID)
}
