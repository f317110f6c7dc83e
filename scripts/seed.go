package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/vivasaude/consultaprecos/internal/adapters/database"
	"github.com/vivasaude/consultaprecos/internal/domain/entities"
	"github.com/vivasaude/consultaprecos/internal/infrastructure/clients/postgres"
	"github.com/vivasaude/consultaprecos/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	listingRepo := database.NewListingAdapter(pgClient)
	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE listings RESTART IDENTITY CASCADE`); err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// Prices are entered the way the intake spreadsheet has them, comma
	// decimals included, so the seed exercises the same normalization as the
	// API.
	inputs := []entities.ListingInput{
		{ClinicName: "Clínica Vida", DoctorName: "Dra. Ana Souza", Specialty: "Cardiologia", City: "Orleans", State: "SC", PriceDiscounted: "150,00", PriceOriginal: "220,00", UpdatedOn: "2026-08-01"},
		{ClinicName: "Clínica Vida", DoctorName: "Dr. Pedro Lima", Specialty: "Dermatologia", City: "Orleans", State: "SC", PriceDiscounted: "130,00", PriceOriginal: "180,00", UpdatedOn: "2026-08-01"},
		{ClinicName: "Bem Estar", DoctorName: "Dr. Bruno Costa", Specialty: "Cardiologia", City: "Tubarão", State: "SC", PriceDiscounted: "120,00", PriceOriginal: "200,00", UpdatedOn: "2026-07-15"},
		{ClinicName: "Bem Estar", DoctorName: "Dra. Carla Dias", Specialty: "Pediatria", City: "Tubarão", State: "SC", PriceDiscounted: "90,00", UpdatedOn: "2026-07-15"},
		{ClinicName: "Santa Clara", DoctorName: "Dr. Davi Rocha", Specialty: "Cardiologia", City: "Criciúma", State: "SC", PriceDiscounted: "110,50", PriceOriginal: "175,00", UpdatedOn: "2026-08-10"},
		{ClinicName: "Santa Clara", DoctorName: "Dra. Eva Martins", Specialty: "Ginecologia", City: "Criciúma", State: "SC", PriceDiscounted: "140,00", PriceOriginal: "190,00", UpdatedOn: "2026-08-10"},
		{ClinicName: "São Lucas", DoctorName: "Dr. Felipe Alves", Specialty: "Ortopedia", City: "Braço do Norte", State: "SC", PriceDiscounted: "160,00", UpdatedOn: "2026-06-30"},
		{ClinicName: "São Lucas", DoctorName: "Dra. Gabriela Nunes", Specialty: "Cardiologia", City: "Braço do Norte", State: "SC", PriceDiscounted: "95,90", PriceOriginal: "150,00", UpdatedOn: "2026-06-30"},
		{ClinicName: "Pele Sã", DoctorName: "Dra. Helena Prado", Specialty: "Dermatologia", City: "Tubarão", State: "SC", PriceDiscounted: "125,00", PriceOriginal: "170,00", UpdatedOn: "2026-08-20"},
		{ClinicName: "Clínica do Coração", DoctorName: "Dr. Igor Santos", Specialty: "Cardiologia", City: "Orleans", State: "SC", PriceDiscounted: "135,00", UpdatedOn: "2026-08-22"},
		// listing without a doctor: searchable, but never enters a comparison
		{ClinicName: "Laboratório Central", Specialty: "Análises Clínicas", City: "Orleans", State: "SC", PriceDiscounted: "45,00", UpdatedOn: "2026-08-05"},
		// listing without a price: searchable, filters as price zero
		{ClinicName: "Consultório Popular", DoctorName: "Dr. João Freitas", Specialty: "Clínica Geral", City: "São Ludgero", State: "SC", UpdatedOn: "2026-07-01"},
	}

	created := 0
	for _, input := range inputs {
		listing, err := input.Normalize()
		if err != nil {
			log.Printf("Skipping invalid seed row (%s): %v", input.ClinicName, err)
			continue
		}
		listing.ID = uuid.New().String()
		if err := listingRepo.Create(ctx, listing); err != nil {
			log.Printf("Failed to create listing %s / %s: %v", listing.ClinicName, listing.DoctorName, err)
			continue
		}
		created++
	}

	log.Printf("Seeding complete: %d listings created", created)
}
