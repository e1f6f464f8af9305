// Package syncer reconciles freshly fetched problem records against the
// local vault. It decides which records are genuinely new, drives their
// materialization in bounded concurrent batches, and maintains the persisted
// processed-slug set so repeated runs never duplicate a note or index row.
package syncer

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/asteroid-belt/leetvault/internal/models"
)

const (
	// DefaultBatchSize bounds how many notes are written concurrently.
	DefaultBatchSize = 10

	// DefaultBatchPause is the rest between consecutive batches.
	DefaultBatchPause = 250 * time.Millisecond

	// integrityChunkSize bounds how many notes an integrity scan holds
	// metadata for at once.
	integrityChunkSize = 50
)

// requiredNoteFields is the frontmatter every materialized note must carry.
var requiredNoteFields = []string{"id", "title", "slug", "difficulty", "status", "url"}

// NoteStore is the slice of the vault the coordinator drives. *vault.FS
// satisfies it.
type NoteStore interface {
	ListExistingIDs() (map[int]struct{}, error)
	MaterializeProblem(rec models.ProblemRecord) error
	ListProblemNotes() ([]string, error)
	ReadNoteMetadata(rel string) (map[string]any, error)
}

// StateStore persists the processed-slug set and sync bookkeeping. *db.DB
// satisfies it.
type StateStore interface {
	ListProcessedSlugs() ([]string, error)
	AddProcessedSlugs(slugs []string) error
	ClearProcessedSlugs() error
	GetSyncMeta(key string) (string, error)
	SetSyncMeta(key, value string) error
}

// Config controls reconciliation batching. The zero value falls back to
// defaults.
type Config struct {
	BatchSize  int
	BatchPause time.Duration
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.BatchPause <= 0 {
		c.BatchPause = DefaultBatchPause
	}
	return c
}

// Coordinator owns the sync cycle between fetched records and the vault.
type Coordinator struct {
	notes     NoteStore
	state     StateStore
	cfg       Config
	processed *ProcessedSet
}

// New builds a coordinator, loading the persisted processed-slug set once.
func New(notes NoteStore, state StateStore, cfg Config) (*Coordinator, error) {
	slugs, err := state.ListProcessedSlugs()
	if err != nil {
		return nil, fmt.Errorf("load processed slugs: %w", err)
	}
	return &Coordinator{
		notes:     notes,
		state:     state,
		cfg:       cfg.withDefaults(),
		processed: NewProcessedSet(slugs),
	}, nil
}

// ProcessedCount reports the size of the processed-slug set.
func (c *Coordinator) ProcessedCount() int {
	return c.processed.Len()
}

// ReconcileOptions tunes a single reconcile run.
type ReconcileOptions struct {
	// OnProgress, when set, is called after each record settles, with the
	// number of settled records, the total, and the record's slug.
	OnProgress func(done, total int, slug string)
}

// Reconcile runs ReconcileWithOptions with defaults.
func (c *Coordinator) Reconcile(ctx context.Context, batch []models.ProblemRecord) ([]models.ProblemRecord, error) {
	return c.ReconcileWithOptions(ctx, batch, ReconcileOptions{})
}

// ReconcileWithOptions filters batch down to records not yet materialized and
// writes a note, topic links, and an index row for each. The id check runs
// against a fresh vault snapshot every call; the slug check runs against the
// persisted processed set. Both must miss for a record to count as new.
//
// Materialization happens in batches of Config.BatchSize; records within one
// batch run concurrently, batches strictly in sequence. One record's failure
// never affects its siblings. Every attempted slug is marked processed
// afterwards, whether or not its write succeeded; the vault snapshot covers
// re-runs, so marking is safe even for failures, and an unmarked slug is
// simply re-evaluated next cycle.
//
// The returned slice is the new-subset as decided up front, regardless of
// per-record outcomes. Only a run where every single write failed is an
// error.
func (c *Coordinator) ReconcileWithOptions(ctx context.Context, batch []models.ProblemRecord, opts ReconcileOptions) ([]models.ProblemRecord, error) {
	existing, err := c.notes.ListExistingIDs()
	if err != nil {
		return nil, fmt.Errorf("snapshot existing note ids: %w", err)
	}

	fresh := c.filterNew(batch, existing)
	if len(fresh) == 0 {
		c.recordSync(0)
		return nil, nil
	}

	type noteResult struct {
		slug string
		err  error
	}

	total := len(fresh)
	var settled int32
	var (
		attempted []string
		failures  []error
		succeeded int
	)

	for start := 0; start < total; start += c.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			c.markProcessed(attempted)
			return fresh, err
		}

		end := start + c.cfg.BatchSize
		if end > total {
			end = total
		}
		chunk := fresh[start:end]

		results := make(chan noteResult, len(chunk))
		var wg sync.WaitGroup
		for _, rec := range chunk {
			wg.Add(1)
			go func(rec models.ProblemRecord) {
				defer wg.Done()
				err := c.notes.MaterializeProblem(rec)
				if opts.OnProgress != nil {
					opts.OnProgress(int(atomic.AddInt32(&settled, 1)), total, rec.Slug)
				}
				results <- noteResult{slug: rec.Slug, err: err}
			}(rec)
		}
		go func() {
			wg.Wait()
			close(results)
		}()

		for res := range results {
			attempted = append(attempted, res.slug)
			if res.err != nil {
				failures = append(failures, fmt.Errorf("%s: %w", res.slug, res.err))
				continue
			}
			succeeded++
		}

		if end < total {
			if err := sleepCtx(ctx, c.cfg.BatchPause); err != nil {
				c.markProcessed(attempted)
				return fresh, err
			}
		}
	}

	for _, ferr := range failures {
		log.Printf("syncer: materialize failed: %v", ferr)
	}
	if succeeded == 0 && len(failures) > 0 {
		return nil, fmt.Errorf("materialization failed for all %d new problems: %w", len(failures), failures[len(failures)-1])
	}

	c.markProcessed(attempted)
	c.recordSync(succeeded)
	return fresh, nil
}

// filterNew returns the subset of batch that is absent from both the vault id
// snapshot and the processed-slug set, deduplicated by slug within the batch.
func (c *Coordinator) filterNew(batch []models.ProblemRecord, existing map[int]struct{}) []models.ProblemRecord {
	fresh := make([]models.ProblemRecord, 0, len(batch))
	inBatch := make(map[string]struct{}, len(batch))
	for _, rec := range batch {
		if rec.Slug == "" {
			continue
		}
		if _, dup := inBatch[rec.Slug]; dup {
			continue
		}
		inBatch[rec.Slug] = struct{}{}

		if rec.ID > 0 {
			if _, ok := existing[rec.ID]; ok {
				continue
			}
		}
		if c.processed.Contains(rec.Slug) {
			continue
		}
		fresh = append(fresh, rec)
	}
	return fresh
}

// markProcessed grows the in-memory set and persists it. A persistence
// failure is logged rather than raised: the vault id snapshot re-covers these
// records on the next cycle.
func (c *Coordinator) markProcessed(slugs []string) {
	if len(slugs) == 0 {
		return
	}
	c.processed.Add(slugs...)
	if err := c.state.AddProcessedSlugs(slugs); err != nil {
		log.Printf("syncer: persist processed slugs: %v", err)
	}
}

// recordSync updates the bookkeeping rows behind the stats output.
func (c *Coordinator) recordSync(succeeded int) {
	now := time.Now().UTC().Format(time.RFC3339)
	_ = c.state.SetSyncMeta(models.SyncMetaLastSync, now)
	if succeeded == 0 {
		return
	}
	total := 0
	if raw, err := c.state.GetSyncMeta(models.SyncMetaTotalSynced); err == nil && raw != "" {
		total, _ = strconv.Atoi(raw)
	}
	_ = c.state.SetSyncMeta(models.SyncMetaTotalSynced, strconv.Itoa(total+succeeded))
}

// IntegrityIssue describes one note that fails the integrity contract.
type IntegrityIssue struct {
	Note    string   // vault-relative path
	Missing []string // required frontmatter keys the note lacks
	Reason  string   // set when the metadata could not be read at all
}

// IntegrityReport summarizes a full vault scan.
type IntegrityReport struct {
	Scanned int
	Issues  []IntegrityIssue
}

// Valid reports whether the scan found no issues.
func (r IntegrityReport) Valid() bool {
	return len(r.Issues) == 0
}

// ValidateIntegrity checks every problem note for the required frontmatter
// fields. Violations are collected, never raised per file; the scan walks the
// note list in fixed-size chunks.
func (c *Coordinator) ValidateIntegrity(ctx context.Context) (IntegrityReport, error) {
	var report IntegrityReport

	notes, err := c.notes.ListProblemNotes()
	if err != nil {
		return report, fmt.Errorf("list problem notes: %w", err)
	}

	for start := 0; start < len(notes); start += integrityChunkSize {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		end := start + integrityChunkSize
		if end > len(notes) {
			end = len(notes)
		}
		for _, rel := range notes[start:end] {
			report.Scanned++
			meta, err := c.notes.ReadNoteMetadata(rel)
			if err != nil {
				report.Issues = append(report.Issues, IntegrityIssue{Note: rel, Reason: err.Error()})
				continue
			}
			var missing []string
			for _, key := range requiredNoteFields {
				if v, ok := meta[key]; !ok || v == nil {
					missing = append(missing, key)
				}
			}
			if len(missing) > 0 {
				report.Issues = append(report.Issues, IntegrityIssue{Note: rel, Missing: missing})
			}
		}
	}
	return report, nil
}

// ClearProcessed wipes the persisted processed-slug set and its in-memory
// view. The next reconcile re-evaluates everything against the vault alone.
func (c *Coordinator) ClearProcessed() error {
	if err := c.state.ClearProcessedSlugs(); err != nil {
		return fmt.Errorf("clear processed slugs: %w", err)
	}
	c.processed.Clear()
	return nil
}

// sleepCtx pauses for d unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
