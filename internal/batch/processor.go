package batch

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"cardfx/internal/avatar"
	"cardfx/internal/imageio"
	"cardfx/internal/logging"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir string
	Processor *avatar.Processor
	Workers   int
	// Fallback copies undecodable uploads to the output unchanged.
	Fallback bool
	Log      logrus.FieldLogger
}

// Result holds the outcome of processing one upload.
type Result struct {
	Name     string `json:"name"`
	Output   string `json:"output,omitempty"`
	Success  bool   `json:"success"`
	Fallback bool   `json:"fallback,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Run processes all jobs using a worker pool. Each upload runs through the
// pipeline synchronously on one worker; results keep the order of jobs.
func Run(cfg Config, jobs []Job) []Result {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Processor == nil {
		cfg.Processor = avatar.New()
	}
	if cfg.Log == nil {
		cfg.Log = logging.Discard()
	}

	total := len(jobs)
	results := make([]Result, total)
	outputs := planOutputs(jobs, cfg.Processor.Format().Ext())
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					cfg.Log.WithFields(logrus.Fields{
						"done":  p,
						"total": total,
						"rate":  float64(p) / elapsed,
					}).Info("Progress")
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx], outputs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, job Job, output string) Result {
	res := Result{Name: job.Name}
	log := cfg.Log.WithField("file", job.Name)

	data, err := os.ReadFile(job.Path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	out, err := cfg.Processor.Process(data)
	if err != nil {
		var decErr *imageio.DecodeError
		if !cfg.Fallback || !errors.As(err, &decErr) {
			res.Error = err.Error()
			log.WithError(err).Warn("Processing failed")
			return res
		}
		// Keep the upload as it was.
		out = data
		output = job.Name
		res.Fallback = true
		res.Error = err.Error()
		log.WithError(err).Warn("Undecodable upload, copying original")
	}

	outPath := filepath.Join(cfg.OutputDir, output)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Output = outPath
	res.Success = !res.Fallback
	return res
}
