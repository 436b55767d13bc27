package scheduler

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/marruca/snag/internal/download"
	"github.com/marruca/snag/internal/output"
	"github.com/marruca/snag/internal/utils"
)

type failedJob struct {
	url string
	err error
}

// Run executes the jobs one at a time. Transfers are never concurrent, so the
// status stream carries at most one live progress line and redraw sequences
// cannot interleave. Failures don't stop the run; they are collected and
// summarized at the end.
func Run(jobs []utils.Job) error {
	logger := utils.GetLogger("scheduler")
	var failures []failedJob

	for i := range jobs {
		job := &jobs[i]
		if job.ID == "" {
			job.ID = uuid.NewString()
		}
		logger.Debug().Str("id", job.ID).Str("url", job.URL).Msg("Starting download job")

		client := utils.NewSnagHTTPClient(job.HTTPClientConfig)
		data, err := download.FetchWithProgress(job.URL, client, os.Stderr)
		if err != nil {
			logger.Error().Str("id", job.ID).Err(err).Msg("Download failed")
			failures = append(failures, failedJob{url: job.URL, err: err})
			continue
		}

		outPath := job.OutputPath
		if outPath == "" {
			outPath = utils.InferOutputPath(job.URL)
		}
		if _, err := os.Stat(outPath); err == nil {
			renewed := utils.RenewOutputPath(outPath)
			output.PrintWarning(fmt.Sprintf("%s exists, saving as %s", outPath, renewed))
			outPath = renewed
		}
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			logger.Error().Str("id", job.ID).Err(err).Msg("Writing output failed")
			failures = append(failures, failedJob{url: job.URL, err: err})
			continue
		}

		logger.Debug().Str("id", job.ID).Str("path", outPath).Msg("Download job complete")
		size := strings.TrimSpace(utils.FormatBytes(int64(len(data))))
		output.PrintSuccess(fmt.Sprintf("Saved %s %s", outPath, output.FDebug("("+size+")")))
	}

	if len(failures) > 0 {
		output.PrintError(fmt.Sprintf("Failed %d of %d", len(failures), len(jobs)))
		for _, f := range failures {
			output.PrintError(fmt.Sprintf("  %s: %v", f.url, f.err))
		}
		return fmt.Errorf("%d of %d downloads failed", len(failures), len(jobs))
	}
	return nil
}
