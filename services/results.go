package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type FeedResult struct {
	MatchID   string `json:"match_id"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Status    string `json:"status"`
}

type resultsResponse struct {
	Status string       `json:"status"`
	Data   []FeedResult `json:"data"`
}

type ResultsClient struct {
	http *resty.Client
	url  string
}

func NewResultsClient(url string) *ResultsClient {
	return &ResultsClient{
		http: resty.New().SetTimeout(15 * time.Second),
		url:  url,
	}
}

// Finished reports whether a feed status string means full time.
func Finished(status string) bool {
	switch strings.ToUpper(status) {
	case "FT", "FINISHED", "CLOSED":
		return true
	}
	return false
}

// FetchFinished pulls the feed and returns only matches at full time.
func (rc *ResultsClient) FetchFinished() ([]FeedResult, error) {
	var payload resultsResponse
	resp, err := rc.http.R().SetResult(&payload).Get(rc.url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &FeedError{Status: resp.StatusCode()}
	}

	finished := make([]FeedResult, 0, len(payload.Data))
	for _, r := range payload.Data {
		if Finished(r.Status) {
			finished = append(finished, r)
		}
	}
	return finished, nil
}

type FeedError struct {
	Status int
}

func (e *FeedError) Error() string {
	return fmt.Sprintf("results feed returned HTTP %d", e.Status)
}
