// Seeds the configured document store with sample platform data for local
// development: a handful of doctors, patients, appointments and reviews in the
// states the console cares about.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/clinicbook/admin-console/internal/adapters/store"
	"github.com/clinicbook/admin-console/internal/domain/providers"
	mongoclient "github.com/clinicbook/admin-console/internal/infrastructure/clients/mongo"
	redisclient "github.com/clinicbook/admin-console/internal/infrastructure/clients/redis"
	"github.com/clinicbook/admin-console/pkg/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	docStore, cleanup, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	doctors := []map[string]any{
		{
			"name":               "Dr. Ayesha Karim",
			"email":              "ayesha.karim@clinic.example",
			"phone":              "+8801711000001",
			"specialty":          "Cardiology",
			"consultationFee":    800.0,
			"experienceYears":    12,
			"isAvailable":        true,
			"isVerified":         true,
			"verificationStatus": "approved",
			"rating":             4.5,
			"totalReviews":       2,
			"hospitalName":       "City Heart Center",
			"createdAt":          now.AddDate(0, -3, 0),
		},
		{
			"name":               "Dr. Tanvir Rahman",
			"email":              "tanvir.rahman@clinic.example",
			"phone":              "+8801711000002",
			"specialty":          "Dermatology",
			"consultationFee":    600.0,
			"experienceYears":    6,
			"isAvailable":        false,
			"verificationStatus": "pending",
			"createdAt":          now.AddDate(0, 0, -4),
		},
		{
			"name":               "Dr. Farzana Haque",
			"email":              "farzana.haque@clinic.example",
			"specialty":          "Pediatrics",
			"consultationFee":    500.0,
			"verificationStatus": "rejected",
			"rejectionReason":    "license document unreadable",
			"createdAt":          now.AddDate(0, -1, 0),
		},
	}

	doctorIDs := make([]string, 0, len(doctors))
	for _, fields := range doctors {
		id, err := docStore.Add(ctx, providers.CollectionDoctors, fields)
		if err != nil {
			log.Fatalf("Failed to seed doctor: %v", err)
		}
		doctorIDs = append(doctorIDs, id)
	}
	log.Printf("Seeded %d doctors", len(doctorIDs))

	users := []map[string]any{
		{"name": "Sara Rahman", "email": "sara@example.com", "phone": "+8801811000001", "createdAt": now.AddDate(0, 0, -10)},
		{"name": "Omar Faruk", "email": "omar@example.com", "phone": "+8801811000002", "createdAt": now.AddDate(0, -2, 0)},
	}
	userIDs := make([]string, 0, len(users))
	for _, fields := range users {
		id, err := docStore.Add(ctx, providers.CollectionUsers, fields)
		if err != nil {
			log.Fatalf("Failed to seed user: %v", err)
		}
		userIDs = append(userIDs, id)
	}
	log.Printf("Seeded %d users", len(userIDs))

	appointments := []map[string]any{
		{
			"doctorId":        doctorIDs[0],
			"doctorName":      "Dr. Ayesha Karim",
			"patientId":       userIDs[0],
			"patientName":     "Sara Rahman",
			"patientPhone":    "+8801811000001",
			"status":          "pending",
			"fee":             800.0,
			"timeSlot":        "10:00 - 10:30",
			"appointmentDate": now.AddDate(0, 0, 1),
			"createdAt":       now,
		},
		{
			"doctorId":        doctorIDs[0],
			"doctorName":      "Dr. Ayesha Karim",
			"patientId":       userIDs[1],
			"patientName":     "Omar Faruk",
			"status":          "completed",
			"fee":             800.0,
			"appointmentDate": now.AddDate(0, 0, -7),
			"createdAt":       now.AddDate(0, 0, -9),
		},
		{
			"doctorId":        doctorIDs[1],
			"doctorName":      "Dr. Tanvir Rahman",
			"patientId":       userIDs[0],
			"patientName":     "Sara Rahman",
			"status":          "awaitingApproval",
			"fee":             600.0,
			"appointmentDate": now.AddDate(0, 0, 3),
			"createdAt":       now,
		},
	}
	for _, fields := range appointments {
		if _, err := docStore.Add(ctx, providers.CollectionAppointments, fields); err != nil {
			log.Fatalf("Failed to seed appointment: %v", err)
		}
	}
	log.Printf("Seeded %d appointments", len(appointments))

	reviews := []map[string]any{
		{
			"doctorId":    doctorIDs[0],
			"doctorName":  "Dr. Ayesha Karim",
			"patientName": "Omar Faruk",
			"rating":      5,
			"comment":     "Very thorough and patient.",
			"isApproved":  true,
			"createdAt":   now.AddDate(0, 0, -6),
		},
		{
			"doctorId":    doctorIDs[0],
			"doctorName":  "Dr. Ayesha Karim",
			"patientName": "Sara Rahman",
			"rating":      4,
			"comment":     "Short wait, clear advice.",
			"isApproved":  true,
			"createdAt":   now.AddDate(0, 0, -3),
		},
		{
			"doctorId":    doctorIDs[0],
			"doctorName":  "Dr. Ayesha Karim",
			"patientName": "Omar Faruk",
			"rating":      2,
			"comment":     "Clinic was overcrowded.",
			"isApproved":  false,
			"createdAt":   now.AddDate(0, 0, -1),
		},
	}
	for _, fields := range reviews {
		if _, err := docStore.Add(ctx, providers.CollectionReviews, fields); err != nil {
			log.Fatalf("Failed to seed review: %v", err)
		}
	}
	log.Printf("Seeded %d reviews", len(reviews))

	log.Println("Seeding complete")
}

func openStore(cfg *config.Config) (providers.DocumentStore, func(), error) {
	switch cfg.Store.Backend {
	case "redis":
		client, err := redisclient.NewClient(&cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		s := store.NewRedisStore(client)
		return s, func() {
			s.Close()
			client.Close()
		}, nil

	case "mongo":
		client, err := mongoclient.NewClient(&cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		s := store.NewMongoStore(client)
		return s, func() {
			s.Close()
			client.Close()
		}, nil

	default:
		// Memory is per-process, so seeding it standalone is pointless.
		return nil, nil, fmt.Errorf("seed requires a persistent backend, got %q", cfg.Store.Backend)
	}
}
