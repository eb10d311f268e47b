package app

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacit-labs/tacit/internal/extraction/infrastructure/recognizer"
	"github.com/tacit-labs/tacit/internal/extraction/pipeline"
	"github.com/tacit-labs/tacit/pkg/config"
)

func TestBuildRecognizer(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("ruler backend", func(t *testing.T) {
		rec, err := buildRecognizer(&config.Config{RecognizerBackend: config.RecognizerRuler}, logger)

		require.NoError(t, err)
		assert.IsType(t, &recognizer.Ruler{}, rec)
	})

	t.Run("remote backend", func(t *testing.T) {
		cfg := &config.Config{
			RecognizerBackend: config.RecognizerRemote,
			RecognizerURL:     "http://localhost:9090/ner",
			RecognizerTimeout: 5 * time.Second,
		}

		rec, err := buildRecognizer(cfg, logger)

		require.NoError(t, err)
		assert.IsType(t, &recognizer.Remote{}, rec)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := buildRecognizer(&config.Config{RecognizerBackend: "magic"}, logger)

		assert.Error(t, err)
	})
}

func TestBuildPolicy(t *testing.T) {
	t.Run("lead policy carries the configured lead", func(t *testing.T) {
		cfg := &config.Config{
			ReminderPolicy:   config.ReminderPolicyLead,
			ReminderLeadTime: 45 * time.Minute,
		}

		policy := buildPolicy(cfg)

		require.IsType(t, pipeline.FixedLeadPolicy{}, policy)
		assert.Equal(t, 45*time.Minute, policy.(pipeline.FixedLeadPolicy).Lead)
	})

	t.Run("departure policy carries the configured estimates", func(t *testing.T) {
		cfg := &config.Config{
			ReminderPolicy:    config.ReminderPolicyDeparture,
			DefaultTravelTime: 20 * time.Minute,
			DefaultPrepTime:   10 * time.Minute,
		}

		policy := buildPolicy(cfg)

		require.IsType(t, pipeline.DeparturePolicy{}, policy)
		departure := policy.(pipeline.DeparturePolicy)
		assert.Equal(t, 20*time.Minute, departure.Travel)
		assert.Equal(t, 10*time.Minute, departure.Prep)
	})
}
