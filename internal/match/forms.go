// File: internal/match/forms.go
package match

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"toski_backend/internal/config"
	"toski_backend/internal/platform/metrics"
)

// Google Form question ids of the match history form.
const (
	entryDate        = "1178471159"
	entryTurnCount   = "676929187"
	entryExtraNotes  = "2043626966"
	entryFirstKOTurn = "1755577221"
	entryTimeLength  = "861944794"
)

// playerEntries holds the name, commander, turn order and rank question ids per seat.
var playerEntries = [4][4]string{
	{"2132042053", "961836116", "1252336227", "147625596"},
	{"840407098", "493870522", "898724110", "531480374"},
	{"2099339267", "1961193649", "87571757", "807216034"},
	{"575868019", "270994715", "153957972", "652184592"},
}

// FormSubmitter posts answers to the match history form. Keys are question ids
// without the "entry." prefix.
type FormSubmitter interface {
	Submit(ctx context.Context, answers map[string]string) error
}

// BuildAnswers flattens a match into form answers. playedAt is reported as a UTC date.
func BuildAnswers(req SubmitMatchRequest, playedAt time.Time) map[string]string {
	answers := map[string]string{
		entryDate: playedAt.UTC().Format("2006-01-02"),
	}
	for i, p := range req.Players() {
		if p == nil {
			continue
		}
		ids := playerEntries[i]
		answers[ids[0]] = p.Name
		answers[ids[1]] = p.Commander
		answers[ids[2]] = strconv.Itoa(p.TurnOrder)
		answers[ids[3]] = strconv.Itoa(p.Rank)
	}
	answers[entryTurnCount] = optionalInt(req.TurnCount)
	answers[entryExtraNotes] = ""
	if req.ExtraNotes != nil {
		answers[entryExtraNotes] = *req.ExtraNotes
	}
	answers[entryFirstKOTurn] = optionalInt(req.FirstKOTurn)
	answers[entryTimeLength] = optionalInt(req.TimeLength)
	return answers
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// GoogleFormsClient submits answers to a public Google Form formResponse endpoint.
type GoogleFormsClient struct {
	submitURL  string
	timeout    time.Duration
	httpClient *http.Client
	metrics    *metrics.Registry
}

var _ FormSubmitter = (*GoogleFormsClient)(nil)

func NewGoogleFormsClient(cfg *config.Config, registry *metrics.Registry) *GoogleFormsClient {
	return &GoogleFormsClient{
		submitURL:  cfg.MatchFormSubmitURL,
		timeout:    cfg.ExternalCallTimeout,
		httpClient: &http.Client{Timeout: cfg.ExternalCallTimeout},
		metrics:    registry,
	}
}

// Submit posts the answers url-encoded. Any non-2xx answer is a failure.
func (g *GoogleFormsClient) Submit(ctx context.Context, answers map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	form := url.Values{}
	for id, value := range answers {
		form.Set("entry."+id, value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.submitURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build form request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.metrics.ObserveOutbound("google_forms", "submit_match", metrics.OutcomeTransport, time.Since(start))
		return fmt.Errorf("post match form: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	g.metrics.ObserveOutbound("google_forms", "submit_match", metrics.OutcomeForStatus(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("match form returned status %d", resp.StatusCode)
	}
	return nil
}
