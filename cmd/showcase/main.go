package main

import (
	"context"
	"fmt"
	"os"

	"github.com/openvp/showcase-backend/internal/app"
	"github.com/openvp/showcase-backend/internal/seed"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()

	if path := application.Cfg.SeedFile; path != "" {
		application.Log.Info("Applying seed file...", "path", path)
		file, err := seed.Load(path)
		if err != nil {
			application.Log.Error("Seed file load failed", "error", err)
			os.Exit(1)
		}
		seeder := seed.NewSeeder(
			application.Log,
			application.Repos.Tenant,
			application.Services.Users,
			application.Services.Assets,
			application.Services.CredentialSchemas,
			application.Services.CredentialDefinitions,
			application.Services.Issuers,
			application.Services.RelyingParties,
			application.Services.Personas,
			application.Services.Scenarios,
			application.Services.Showcases,
		)
		if err := seeder.Apply(ctx, file); err != nil {
			application.Log.Error("Seeding failed", "error", err)
			os.Exit(1)
		}
	}

	showcases, err := application.Services.Showcases.List(ctx)
	if err != nil {
		application.Log.Error("Listing showcases failed", "error", err)
		os.Exit(1)
	}
	application.Log.Info("Database ready", "showcases", len(showcases))
}
