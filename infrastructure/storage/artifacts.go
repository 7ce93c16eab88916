package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"shop_automation/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ScenarioResult records the outcome of one test scenario for the run report.
type ScenarioResult struct {
	Name       string        `json:"name"`
	Status     string        `json:"status"`
	Duration   time.Duration `json:"duration_ns"`
	Screenshot string        `json:"screenshot,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// RunSummary aggregates one full suite run.
type RunSummary struct {
	RunID       string           `json:"run_id"`
	Environment string           `json:"environment"`
	Browser     string           `json:"browser"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
	Passed      int              `json:"passed"`
	Failed      int              `json:"failed"`
	Skipped     int              `json:"skipped"`
	Scenarios   []ScenarioResult `json:"scenarios"`
}

// ArtifactStore writes screenshots and run reports under the configured
// report directories.
type ArtifactStore struct {
	screenshotDir string
	reportDir     string
	runID         string
	log           *logrus.Logger
}

func NewArtifactStore(cfg *config.Config, log *logrus.Logger) (*ArtifactStore, error) {
	for _, dir := range []string{cfg.ScreenshotDir, cfg.ReportDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create artifact directory %s: %w", dir, err)
		}
	}
	return &ArtifactStore{
		screenshotDir: cfg.ScreenshotDir,
		reportDir:     cfg.ReportDir,
		runID:         uuid.NewString(),
		log:           log,
	}, nil
}

// RunID identifies this suite run in reports and fixture data.
func (s *ArtifactStore) RunID() string {
	return s.runID
}

// SaveScreenshot writes PNG bytes under a sanitized, timestamped filename and
// returns the file path.
func (s *ArtifactStore) SaveScreenshot(name string, png []byte) (string, error) {
	filename := fmt.Sprintf("%s_%s.png", sanitize(name), time.Now().Format("20060102_150405"))
	path := filepath.Join(s.screenshotDir, filename)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("save screenshot: %w", err)
	}
	s.log.Infof("screenshot saved: %s", path)
	return path, nil
}

// SaveRunSummary writes the run report as JSON and returns the file path.
func (s *ArtifactStore) SaveRunSummary(summary RunSummary) (string, error) {
	if summary.RunID == "" {
		summary.RunID = s.runID
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal run summary: %w", err)
	}
	path := filepath.Join(s.reportDir, fmt.Sprintf("run_%s.json", summary.RunID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save run summary: %w", err)
	}
	s.log.Infof("run summary saved: %s", path)
	return path, nil
}

// sanitize turns a scenario name into a safe filename fragment.
func sanitize(name string) string {
	mapper := func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}
	cleaned := strings.Map(mapper, name)
	if cleaned == "" {
		cleaned = "screenshot"
	}
	return cleaned
}
