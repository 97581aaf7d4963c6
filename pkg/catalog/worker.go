// File: pkg/catalog/worker.go
package catalog

import (
	"sync"

	"go.uber.org/zap"
)

// readJob is one file handed to the pool together with its output slot.
type readJob struct {
	index int
	file  FileCandidate
}

// ReadFiles reads every candidate with the byte cap and returns the results
// in the same order as files. With one worker the reads run sequentially on
// the calling goroutine; otherwise they are spread over a fixed pool.
func ReadFiles(files []FileCandidate, maxBytes, maxWorkers int, logger *zap.Logger) []ExtractedFile {
	results := make([]ExtractedFile, len(files))

	if maxWorkers <= 0 {
		maxWorkers = DefaultWorkers()
		logger.Debug("Adjusted worker count", zap.Int("workers", maxWorkers))
	}
	if maxWorkers > len(files) {
		maxWorkers = max(len(files), 1)
	}

	if maxWorkers == 1 {
		logger.Debug("Reading files sequentially", zap.Int("files", len(files)))
		for i, file := range files {
			results[i] = readBounded(file, maxBytes)
			logResult(results[i], logger)
		}
		return results
	}

	jobs := make(chan readJob, len(files))
	var wg sync.WaitGroup

	logger.Debug("Initializing worker pool", zap.Int("workers", maxWorkers))
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go worker(jobs, results, maxBytes, &wg, logger.With(zap.Int("workerID", w)))
	}

	for i, file := range files {
		jobs <- readJob{index: i, file: file}
	}
	close(jobs)

	wg.Wait()
	logger.Debug("All files read", zap.Int("files", len(results)))
	return results
}

// worker drains the jobs channel. Each job owns a distinct slot in results,
// so no locking is required.
func worker(jobs <-chan readJob, results []ExtractedFile, maxBytes int, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()

	for job := range jobs {
		results[job.index] = readBounded(job.file, maxBytes)
		logResult(results[job.index], logger)
	}
}

func logResult(file ExtractedFile, logger *zap.Logger) {
	switch {
	case file.Err != nil:
		logger.Warn("Failed to read file, recording error in catalog",
			zap.String("file", file.Rel),
			zap.Error(file.Err))
	case file.Truncated:
		logger.Debug("File truncated at byte cap", zap.String("file", file.Rel))
	default:
		logger.Debug("File read", zap.String("file", file.Rel), zap.Int("bytes", len(file.Content)))
	}
}
