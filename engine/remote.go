package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tictacmcts/experiments/metrics"
	"tictacmcts/game"
	"tictacmcts/searcher/agent"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
)

const remoteAttempts = 3

// RemoteAgent asks an agent server for every move it plays.
type RemoteAgent struct {
	name   string
	url    string
	client *http.Client
}

func NewRemoteAgent(name, url string, timeout time.Duration) *RemoteAgent {
	return &RemoteAgent{
		name:   name,
		url:    strings.TrimSuffix(url, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

func (a *RemoteAgent) Name() string {
	return a.name
}

func (a *RemoteAgent) SelectMove(m *game.Match) (int, metrics.SearchMetric, error) {
	body, err := json.Marshal(agent.Request{
		Board: m.Board().Compact(),
		Turn:  m.Turn().String(),
	})
	if err != nil {
		return 0, metrics.SearchMetric{}, err
	}

	resp, err := retry.DoWithData(
		func() (agent.Response, error) {
			return a.requestMove(body)
		},
		retry.Attempts(remoteAttempts),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Msgf("[RemoteAgent] attempt %d for %s failed: %v", n+1, a.name, err)
		}),
	)
	if err != nil {
		return 0, metrics.SearchMetric{}, err
	}
	return resp.Square, resp.Metric, nil
}

// requestMove posts the position to /findmove. Client errors are not retried.
func (a *RemoteAgent) requestMove(body []byte) (agent.Response, error) {
	var out agent.Response

	resp, err := a.client.Post(a.url+"/findmove", "application/json", bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("agent returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
		if resp.StatusCode < http.StatusInternalServerError {
			return out, retry.Unrecoverable(err)
		}
		return out, err
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, retry.Unrecoverable(fmt.Errorf("failed to decode move: %w", err))
	}
	return out, nil
}

// Observe is a no-op: the server searches every position from scratch.
func (a *RemoteAgent) Observe(m *game.Match, action int) error {
	return nil
}
