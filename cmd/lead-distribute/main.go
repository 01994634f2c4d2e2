package main

import (
	"context"
	"flag"

	"leadmarket_backend/internal/distribution"
	"leadmarket_backend/internal/events"
	leadsrepo "leadmarket_backend/internal/leads/repository"
	"leadmarket_backend/platform/config"
	"leadmarket_backend/platform/db"
	"leadmarket_backend/platform/logger"
	"leadmarket_backend/platform/validator"

	"github.com/google/uuid"
)

// One-shot backfill: assign every unassigned lead to its best-matching
// verified realtor. Useful after importing leads or verifying a batch of
// realtors.
func main() {
	limit := flag.Int("limit", 100, "maximum number of unassigned leads to process")
	dryRun := flag.Bool("dry-run", false, "score and report without persisting assignments")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting lead distribution backfill", "limit", *limit, "dryRun", *dryRun)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	distributionModule := distribution.NewModule(pool, eventBus, validator.New(), log, cfg.GetMaxMatches())

	leads, err := leadsrepo.New(pool).ListUnassigned(ctx, *limit)
	if err != nil {
		log.Error("failed to list unassigned leads", "error", err)
		panic("failed to list unassigned leads: " + err.Error())
	}
	if len(leads) == 0 {
		log.Info("no unassigned leads to process")
		return
	}

	svc := distributionModule.Service()

	if *dryRun {
		matched := 0
		for _, lead := range leads {
			recs, err := svc.Recommendations(ctx, lead.ID)
			if err != nil {
				log.Warn("no candidates for lead", "leadId", lead.ID, "error", err)
				continue
			}
			matched++
			log.Info("would assign lead",
				"leadId", lead.ID,
				"realtor", recs[0].RealtorName,
				"score", recs[0].TotalScore,
				"reason", recs[0].Reason)
		}
		log.Info("dry run complete", "total", len(leads), "matchable", matched)
		return
	}

	leadIDs := make([]uuid.UUID, 0, len(leads))
	for _, lead := range leads {
		leadIDs = append(leadIDs, lead.ID)
	}

	results := svc.BatchDistribute(ctx, leadIDs)

	assigned := 0
	for _, result := range results {
		if result.Assigned {
			assigned++
			log.Info("lead assigned", "leadId", result.LeadID, "realtor", result.AssignedTo)
		} else {
			log.Warn("lead not assigned", "leadId", result.LeadID, "reason", result.Error)
		}
	}
	log.Info("backfill complete", "total", len(results), "assigned", assigned)
}
