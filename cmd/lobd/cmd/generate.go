package cmd

import (
	"context"
	"math/rand"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lightsgoout/quantcup-lob/internal/eventstore"
)

const randomSeed = 42

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Reset the schema and load a synthetic event stream",
	RunE: func(c *cobra.Command, _ []string) error {
		db, err := openDB(cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		store := eventstore.New(db, logger)
		if err := store.ResetSchema(c.Context()); err != nil {
			return err
		}

		gcfg := eventstore.GeneratorConfig{
			Books:        cfg.Generator.Books,
			MaxPriceMag:  65535,
			MaxQty:       1000,
			CancelChance: cfg.Generator.CancelChance,
		}
		rng := rand.New(rand.NewSource(randomSeed))
		events := eventstore.GenerateEvents(cfg.Generator.EventCount, gcfg, rng)

		logger.Info("generated synthetic events", zap.Int("count", len(events)))
		return store.InsertEvents(context.Background(), events)
	},
}
