package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tacit-labs/tacit/internal/extraction/domain"
)

const (
	defaultRemoteTimeout    = 10 * time.Second
	breakerFailureThreshold = 5
)

// Remote calls an external NER inference endpoint over HTTP+JSON. All
// calls go through a circuit breaker so a failing model service cannot
// stall extraction.
type Remote struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]domain.Entity]
	logger  *slog.Logger
}

type remoteRequest struct {
	Text string `json:"text"`
}

type remoteEntity struct {
	Entity string  `json:"entity"`
	Word   string  `json:"word"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Score  float64 `json:"score"`
}

func NewRemote(url string, timeout time.Duration, logger *slog.Logger) *Remote {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}

	breaker := gobreaker.NewCircuitBreaker[[]domain.Entity](gobreaker.Settings{
		Name:        "remote-recognizer",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("recognizer circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	return &Remote{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
		logger:  logger,
	}
}

// Recognize posts the text to the inference endpoint and normalizes the
// wire entities. When the breaker is open the call fails fast with
// gobreaker.ErrOpenState.
func (r *Remote) Recognize(ctx context.Context, text string) ([]domain.Entity, error) {
	return r.breaker.Execute(func() ([]domain.Entity, error) {
		return r.call(ctx, text)
	})
}

func (r *Remote) call(ctx context.Context, text string) ([]domain.Entity, error) {
	body, err := json.Marshal(remoteRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("encoding recognizer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building recognizer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling recognizer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recognizer returned status %d", resp.StatusCode)
	}

	var wire []remoteEntity
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decoding recognizer response: %w", err)
	}

	entities := make([]domain.Entity, 0, len(wire))
	for _, e := range wire {
		entities = append(entities, domain.Entity{
			Label:      e.Entity,
			Text:       e.Word,
			Start:      e.Start,
			End:        e.End,
			Confidence: e.Score,
		})
	}
	return entities, nil
}
