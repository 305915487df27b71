// Package batch processes every supported invoice file under a directory
// root through a bounded worker pool. Documents are independent and the
// engine is stateless, so files parallelize safely; one document's failure
// never aborts the rest of the run.
package batch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/docufin/invoice-parser/constants"
	"github.com/docufin/invoice-parser/internal/format"
	"github.com/docufin/invoice-parser/internal/parser"
	"github.com/docufin/invoice-parser/internal/store"
)

// Job is one document queued for processing.
type Job struct {
	ID          uuid.UUID
	Path        string
	SubmittedAt time.Time
}

// Result is the outcome of one document. Err is empty on success.
type Result struct {
	Path    string
	JobID   uuid.UUID
	Status  constants.JobStatus
	Outputs []string
	Err     string
}

// Stats aggregates a run.
type Stats struct {
	Scanned   uint32
	Matched   uint32
	Succeeded uint32
	Failed    uint32
}

// Runner drives a batch run: walk, filter, process, write, archive.
type Runner struct {
	parser  *parser.Parser
	archive *store.Store
	logger  *slog.Logger
	workers int
	timeout time.Duration
	outDir  string
	format  string
}

type Option func(*Runner)

func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

func WithProcessTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithArchive persists each successfully parsed record to st.
func WithArchive(st *store.Store) Option {
	return func(r *Runner) {
		r.archive = st
	}
}

func NewRunner(p *parser.Parser, outDir, outFormat string, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		parser:  p,
		logger:  logger,
		workers: 4,
		timeout: time.Minute,
		outDir:  outDir,
		format:  outFormat,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run walks root, filters to supported extensions (hidden files and
// directories skipped), and processes each match through the worker pool.
// Per-file failures land in the results with their error string; only a
// broken walk or an unusable output directory fails the run itself.
func (r *Runner) Run(ctx context.Context, root string) ([]Result, Stats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, Stats{}, errors.New("root path is required")
	}

	var stats Stats
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			return walkErr
		}
		if isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	if len(paths) == 0 {
		r.logger.Info("no invoice files found", "root", root)
		return nil, stats, nil
	}
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return nil, stats, err
	}

	jobs := make(chan Job)
	results := make([]Result, 0, len(paths))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for job := range jobs {
				res := r.processOne(ctx, job)
				if res.Err == "" {
					atomic.AddUint32(&stats.Succeeded, 1)
					r.logger.Info("processed invoice", "worker_id", workerID, "path", job.Path, "job_id", job.ID)
				} else {
					atomic.AddUint32(&stats.Failed, 1)
					r.logger.Error("processing failed", "worker_id", workerID, "path", job.Path, "error", res.Err)
				}
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
			}
		}(i + 1)
	}

feed:
	for _, path := range paths {
		job := Job{ID: uuid.New(), Path: path, SubmittedAt: time.Now()}
		select {
		case jobs <- job:
			r.logger.Debug("job queued", "job_id", job.ID, "path", path, "status", constants.JobStatusQueued)
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return results, stats, ctx.Err()
}

func (r *Runner) processOne(ctx context.Context, job Job) Result {
	res := Result{Path: job.Path, JobID: job.ID, Status: constants.JobStatusRunning}

	rec, err := r.parser.Parse(job.Path)
	if err != nil {
		res.Status, res.Err = constants.JobStatusFailed, err.Error()
		return res
	}

	base := strings.TrimSuffix(filepath.Base(job.Path), filepath.Ext(job.Path))
	outPath := filepath.Join(r.outDir, base+format.Ext(r.format))
	outputs, err := format.Write(rec, outPath, r.format)
	if err != nil {
		res.Status, res.Err = constants.JobStatusFailed, err.Error()
		return res
	}
	res.Status, res.Outputs = constants.JobStatusOK, outputs

	if r.archive != nil {
		jobCtx, cancel := context.WithTimeout(ctx, r.timeout)
		_, err := r.archive.SaveInvoice(jobCtx, job.Path, rec)
		cancel()
		if err != nil {
			// Outputs are already on disk; archiving is best-effort.
			r.logger.Warn("archive failed", "path", job.Path, "error", err)
		}
	}
	return res
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
