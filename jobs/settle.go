package jobs

import (
	"sbook/config"
	"sbook/database"
	"sbook/models"
	"sbook/services"
	"sbook/settlement"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm/clause"
)

// StartSettlementScheduler runs the auto-settlement sweep on the configured
// cron spec: pull finished scores from the external feed, record them, then
// settle every match that still has pending legs. Returns the cron so main
// can stop it on shutdown.
func StartSettlementScheduler(cfg *config.Config) *cron.Cron {
	c := cron.New()

	var feed *services.ResultsClient
	if cfg.ResultsFeedURL != "" {
		feed = services.NewResultsClient(cfg.ResultsFeedURL)
	}

	_, err := c.AddFunc(cfg.SettleCronSpec, func() {
		if feed != nil {
			pullResults(feed)
		}
		sweepPending(cfg.TxRetryAttempts)
	})
	if err != nil {
		log.Fatal("invalid SETTLE_CRON_SPEC: ", err)
	}

	c.Start()
	log.WithField("spec", cfg.SettleCronSpec).Info("settlement scheduler started")
	return c
}

func pullResults(feed *services.ResultsClient) {
	results, err := feed.FetchFinished()
	if err != nil {
		log.WithError(err).Warn("results feed fetch failed")
		return
	}

	for _, r := range results {
		row := models.MatchResult{
			MatchID:   r.MatchID,
			HomeScore: r.HomeScore,
			AwayScore: r.AwayScore,
			Status:    models.MatchFinished,
		}
		if err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "match_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"home_score", "away_score", "status"}),
		}).Create(&row).Error; err != nil {
			log.WithError(err).WithField("match_id", r.MatchID).Warn("result upsert failed")
		}
	}
}

func sweepPending(attempts int) {
	// Finished matches still touched by a pending ticket. Keyed off the bet
	// status rather than leg results so a ticket whose legs are all graded but
	// whose cascade failed last pass is swept again.
	var matchIDs []string
	err := database.DB.Model(&models.MatchResult{}).
		Distinct("match_results.match_id").
		Joins("JOIN bet_legs ON bet_legs.match_id = match_results.match_id AND bet_legs.deleted_at IS NULL").
		Joins("JOIN bets ON bets.id = bet_legs.bet_id AND bets.status = ? AND bets.deleted_at IS NULL", models.BetPending).
		Where("match_results.status = ?", models.MatchFinished).
		Pluck("match_results.match_id", &matchIDs).Error
	if err != nil {
		log.WithError(err).Warn("settlement sweep query failed")
		return
	}

	engine := settlement.New(database.DB, attempts)
	for _, matchID := range matchIDs {
		sum, err := engine.SettleMatch(matchID)
		if err != nil {
			log.WithError(err).WithField("match_id", matchID).Warn("sweep settle failed")
			continue
		}
		if sum.Settled > 0 || sum.Failed > 0 {
			log.WithFields(log.Fields{
				"match_id": matchID,
				"settled":  sum.Settled,
				"failed":   sum.Failed,
			}).Info("sweep settled match")
		}
	}
}
