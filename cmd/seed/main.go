// Command seed loads the treatment catalogue into MongoDB and creates the
// indexes the portal relies on. Treatments are upserted by name, so the
// command can be re-run after editing the file.
//
//	seed -file treatments.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/doctorsportal/portal/internal/config"
	"github.com/doctorsportal/portal/internal/database"
	"github.com/doctorsportal/portal/internal/models"
	"github.com/doctorsportal/portal/internal/treatments"
	"github.com/doctorsportal/portal/pkg/logger"
)

// readCatalogue parses a JSON array of treatments. Every treatment needs a
// name; the slot list keeps its order.
func readCatalogue(r io.Reader) ([]models.Treatment, error) {
	var list []models.Treatment
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}
	for i, t := range list {
		if t.Name == "" {
			return nil, fmt.Errorf("treatment %d has no name", i)
		}
		if list[i].Slots == nil {
			list[i].Slots = []string{}
		}
	}
	return list, nil
}

func seed(ctx context.Context, repo treatments.Repository, list []models.Treatment) error {
	for i := range list {
		if err := repo.Upsert(ctx, &list[i]); err != nil {
			return fmt.Errorf("upsert %q: %w", list[i].Name, err)
		}
		logger.Infof("treatment %q: %d slots", list[i].Name, len(list[i].Slots))
	}
	return nil
}

func main() {
	file := flag.String("file", "treatments.json", "JSON array of treatments")
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.MongoDB.URI == "" {
		logger.Fatalf("MONGODB_URI is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatalf("open %s: %v", *file, err)
	}
	defer f.Close()
	list, err := readCatalogue(f)
	if err != nil {
		logger.Fatalf("%s: %v", *file, err)
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.MongoDB.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Fatalf("failed to ensure indexes: %v", err)
	}
	if err := seed(ctx, treatments.NewMongoRepository(db.Collection(database.TreatmentsCollection)), list); err != nil {
		logger.Fatalf("seed: %v", err)
	}
	logger.Infof("seeded %d treatments into %s.%s", len(list), cfg.MongoDB.Database, database.TreatmentsCollection)
}
