package leetcode

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/asteroid-belt/leetvault/internal/models"
)

// acceptedStatus is the display status the remote uses for passing
// submissions.
const acceptedStatus = "Accepted"

// FetchRecent returns the user's most recent accepted submissions as fully
// enriched records, newest first. limit is clamped to the remote's accepted
// range of [1, 100]. When filterProcessed is set, problems whose details were
// already resolved this session are skipped. Individual enrichment failures
// are tolerated; only a batch with zero successes is an error.
func (c *Client) FetchRecent(ctx context.Context, limit int, filterProcessed bool) ([]models.ProblemRecord, error) {
	if c.cfg.Username == "" {
		return nil, &APIError{Kind: KindAuth, Message: "no username configured", Retryable: false}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	var data recentAcSubmissionsData
	vars := map[string]any{"username": c.cfg.Username, "limit": limit}
	if err := c.call(ctx, "recent submissions", recentAcSubmissionsQuery, vars, &data); err != nil {
		return nil, err
	}

	records := make([]models.ProblemRecord, 0, len(data.RecentAcSubmissionList))
	inCall := make(map[string]struct{})
	var failed int
	var lastErr error

	for _, sub := range data.RecentAcSubmissionList {
		if sub.TitleSlug == "" {
			continue
		}
		if _, dup := inCall[sub.TitleSlug]; dup {
			continue
		}
		inCall[sub.TitleSlug] = struct{}{}

		if filterProcessed && c.seen.hasSlug(sub.TitleSlug) {
			continue
		}

		rec, err := c.fetchProblem(ctx, sub.TitleSlug, sub.epochSeconds(), sub.submissionID())
		if err != nil {
			failed++
			lastErr = err
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 && failed > 0 {
		return nil, &APIError{
			Kind:      KindNetwork,
			Message:   fmt.Sprintf("no data obtained: all %d detail fetches failed", failed),
			Retryable: true,
			Err:       lastErr,
		}
	}
	if failed > 0 {
		log.Printf("leetcode: tolerating %d failed detail fetches, %d records kept: %v", failed, len(records), lastErr)
	}

	models.SortBySolvedDesc(records)
	return records, nil
}

// FetchAll walks the user's entire submission history and returns one
// enriched record per distinct accepted problem, newest first. Without a
// session cookie the private history is unreadable, so the walk degrades to
// FetchRecent over public data instead of failing.
//
// Pages are requested strictly sequentially. A failed page is retried in
// place with increasing delays; after maxPageFailures consecutive failures
// the walk aborts. The walk also stops at the configured MaxSyncLimit
// ceiling.
func (c *Client) FetchAll(ctx context.Context) ([]models.ProblemRecord, error) {
	if c.cfg.Session == "" {
		return c.FetchRecent(ctx, 100, false)
	}

	var (
		records  []models.ProblemRecord
		inCall   = make(map[string]struct{})
		failed   int
		lastErr  error
		offset   int
		lastKey  string
		pageErrs int
	)

	for {
		vars := map[string]any{"offset": offset, "limit": c.cfg.PageSize}
		if lastKey != "" {
			vars["lastKey"] = lastKey
		}

		var page submissionListData
		if err := c.post(ctx, submissionListQuery, vars, &page); err != nil {
			if !IsRetryable(err) {
				return nil, err
			}
			if KindOf(err) == KindCSRF {
				c.invalidateCSRF()
			}
			pageErrs++
			if pageErrs >= maxPageFailures {
				return nil, &APIError{
					Kind:      KindOf(err),
					Message:   fmt.Sprintf("history walk aborted after %d consecutive page failures", pageErrs),
					Retryable: false,
					Err:       err,
				}
			}
			log.Printf("leetcode: history page at offset %d failed (%d consecutive): %v", offset, pageErrs, err)
			if err := sleepCtx(ctx, c.backoffDelay(pageErrs-1)); err != nil {
				return nil, err
			}
			continue
		}
		pageErrs = 0

		for _, sub := range page.SubmissionList.Submissions {
			if sub.StatusDisplay != acceptedStatus || sub.TitleSlug == "" {
				continue
			}
			if _, dup := inCall[sub.TitleSlug]; dup {
				continue
			}
			inCall[sub.TitleSlug] = struct{}{}

			if len(records) >= c.cfg.MaxSyncLimit {
				break
			}
			rec, err := c.fetchProblem(ctx, sub.TitleSlug, sub.epochSeconds(), sub.submissionID())
			if err != nil {
				failed++
				lastErr = err
				continue
			}
			records = append(records, rec)
		}

		if !page.SubmissionList.HasNext || len(records) >= c.cfg.MaxSyncLimit {
			break
		}
		offset += c.cfg.PageSize
		lastKey = page.SubmissionList.LastKey

		if err := sleepCtx(ctx, c.cfg.PageDelay); err != nil {
			return nil, err
		}
	}

	if len(records) == 0 && failed > 0 {
		return nil, &APIError{
			Kind:      KindNetwork,
			Message:   fmt.Sprintf("no data obtained: all %d detail fetches failed", failed),
			Retryable: true,
			Err:       lastErr,
		}
	}
	if failed > 0 {
		log.Printf("leetcode: tolerating %d failed detail fetches, %d records kept: %v", failed, len(records), lastErr)
	}

	models.SortBySolvedDesc(records)
	return records, nil
}

// FetchDetail fetches a single problem by slug. The returned record carries
// no solve status or timestamp; it describes the problem, not the user's
// history with it.
func (c *Client) FetchDetail(ctx context.Context, slug string) (models.ProblemRecord, error) {
	if slug == "" {
		return models.ProblemRecord{}, &APIError{Kind: KindUnknown, Message: "slug is required", Retryable: false}
	}
	return c.questionDetail(ctx, slug)
}

// HealthCheck verifies the configuration and performs one low-cost call
// against the remote. It reports a verdict and a human-readable message and
// never returns an error.
func (c *Client) HealthCheck(ctx context.Context) (bool, string) {
	if c.cfg.Username == "" {
		return false, "no username configured"
	}

	var status userStatusData
	if err := c.call(ctx, "health check", userStatusQuery, nil, &status); err != nil {
		return false, err.Error()
	}

	if c.cfg.Session != "" {
		if !status.UserStatus.IsSignedIn {
			return false, "session cookie rejected: sign in again and update it"
		}
		return true, fmt.Sprintf("signed in as %s", status.UserStatus.Username)
	}
	return true, "remote reachable; no session configured, only public data available"
}

// fetchProblem enriches one accepted submission into a full record: problem
// detail always, submitted code best-effort when a session is available.
func (c *Client) fetchProblem(ctx context.Context, slug string, solvedAt int64, submissionID int) (models.ProblemRecord, error) {
	rec, err := c.questionDetail(ctx, slug)
	if err != nil {
		return models.ProblemRecord{}, err
	}
	rec.Status = models.StatusSolved
	rec.SolvedAt = solvedAt

	if c.cfg.Session != "" && submissionID > 0 {
		// Code enrichment is optional: the record stands without it.
		if detail, err := c.submissionDetail(ctx, submissionID); err == nil {
			rec.Detail = detail
		}
	}
	return rec, nil
}

// questionDetail fetches and converts one problem description.
func (c *Client) questionDetail(ctx context.Context, slug string) (models.ProblemRecord, error) {
	var data questionData
	vars := map[string]any{"titleSlug": slug}
	if err := c.call(ctx, "problem detail", questionDetailQuery, vars, &data); err != nil {
		return models.ProblemRecord{}, err
	}
	if data.Question == nil {
		return models.ProblemRecord{}, &APIError{
			Kind:      KindNotFound,
			Message:   fmt.Sprintf("problem %q not found", slug),
			Retryable: false,
		}
	}

	q := data.Question
	id, _ := strconv.Atoi(q.QuestionFrontendID)
	topics := make([]string, 0, len(q.TopicTags))
	for _, t := range q.TopicTags {
		topics = append(topics, t.Name)
	}

	rec := models.ProblemRecord{
		ID:          id,
		Slug:        q.TitleSlug,
		Title:       q.Title,
		Difficulty:  models.DifficultyFromRemote(q.Difficulty),
		Topics:      topics,
		URL:         c.baseURL() + "problems/" + q.TitleSlug + "/",
		Description: CleanHTML(q.Content),
	}
	c.seen.mark(rec.ID, rec.Slug)
	return rec, nil
}

// submissionDetail fetches runtime/memory stats and the submitted code for
// one submission id.
func (c *Client) submissionDetail(ctx context.Context, submissionID int) (*models.SubmissionDetail, error) {
	var data submissionDetailsData
	vars := map[string]any{"submissionId": submissionID}
	if err := c.call(ctx, "submission detail", submissionDetailsQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.SubmissionDetails == nil {
		return nil, &APIError{
			Kind:      KindNotFound,
			Message:   fmt.Sprintf("submission %d not found", submissionID),
			Retryable: false,
		}
	}

	d := data.SubmissionDetails
	return &models.SubmissionDetail{
		Runtime:    d.RuntimeDisplay,
		Memory:     d.MemoryDisplay,
		RuntimePct: d.RuntimePercentile,
		MemoryPct:  d.MemoryPercentile,
		Code:       d.Code,
		Lang:       d.Lang.Name,
	}, nil
}

// sleepCtx pauses for d unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return classifyTransport(ctx, ctx.Err())
	}
}
