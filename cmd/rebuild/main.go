package main

import (
	"context"
	"os"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/app/repositories"
	"github.com/courserank/backend/internal/app/services"
	"github.com/courserank/backend/internal/bootstrap"
	"github.com/courserank/backend/internal/pkg/logger"
)

// Rating updates are applied on a best effort basis when comparisons are
// submitted, so the stored ratings can drift from the ledger after update
// failures or undos. This tool wipes the rating table and replays every
// comparison in submission order, producing the ratings the ledger implies.
func main() {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load config or setup logger")
		os.Exit(1)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to setup database")
		os.Exit(1)
	}
	defer database.Pool.Close()

	ctx := context.Background()
	repos := repositories.NewRepositories(database)
	elo := services.NewEloService()

	comparisons, err := repos.ComparisonRepository.ListAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to load comparison ledger")
		os.Exit(1)
	}

	lgr.Info().Int("comparisons", len(comparisons)).Msg("Rebuilding ratings from comparison ledger")

	if err := repos.RatingRepository.ResetAll(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to reset ratings")
		os.Exit(1)
	}

	for _, comparison := range comparisons {
		winnerID := comparison.WinnerID
		loserID := comparison.OfferingAID
		if loserID == winnerID {
			loserID = comparison.OfferingBID
		}

		err := repos.RatingRepository.UpdatePair(ctx, winnerID, loserID, comparison.Category,
			func(winner, loser *models.OfferingRating) (*models.OfferingRating, *models.OfferingRating) {
				return elo.ApplyOutcome(winnerID, loserID, comparison.Category, winner, loser)
			})
		if err != nil {
			lgr.Error().Err(err).Int64("comparisonID", comparison.ID).Msg("Failed to replay comparison")
			os.Exit(1)
		}
	}

	lgr.Info().Int("comparisons", len(comparisons)).Msg("Ratings rebuilt")
}
