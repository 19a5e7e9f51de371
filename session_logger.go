package membench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SessionRecord captures one kernel's outcome for a benchmark session log.
type SessionRecord struct {
	Kernel       string    `json:"kernel"`
	BandwidthMBs float64   `json:"bandwidth_mb_s"`
	AvgTime      float64   `json:"avg_time_s"`
	MinTime      float64   `json:"min_time_s"`
	MaxTime      float64   `json:"max_time_s"`
	Bytes        uint64    `json:"bytes_per_trial"`
	ArraySize    int       `json:"array_size"`
	Trials       int       `json:"trials"`
	Workers      int       `json:"workers"`
	Precision    string    `json:"precision"`
	Unreliable   bool      `json:"unreliable,omitempty"`
	Validated    bool      `json:"validated"`
	Timestamp    time.Time `json:"timestamp"`
}

// SessionLogger appends benchmark results to a timestamped JSON file so
// runs can be compared across kernel sizes, worker counts and machines.
type SessionLogger struct {
	mu          sync.Mutex
	records     []SessionRecord
	logDir      string
	sessionFile string
}

// NewSessionLogger creates the log directory if needed and opens a new
// timestamped session file inside it.
func NewSessionLogger(logDir string) (*SessionLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	sl := &SessionLogger{
		logDir:      logDir,
		sessionFile: filepath.Join(logDir, fmt.Sprintf("membench_%s.json", timestamp)),
	}

	return sl, sl.flush()
}

// Path returns the session file this logger writes to.
func (sl *SessionLogger) Path() string {
	return sl.sessionFile
}

// LogRun appends one record per kernel from a completed run.
func (sl *SessionLogger) LogRun(res *Results) error {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	validated := res.Validated()
	for _, st := range res.Kernels {
		sl.records = append(sl.records, SessionRecord{
			Kernel:       st.Label,
			BandwidthMBs: st.BandwidthMBs,
			AvgTime:      st.AvgTime,
			MinTime:      st.MinTime,
			MaxTime:      st.MaxTime,
			Bytes:        st.BytesPerTrial,
			ArraySize:    res.Config.N,
			Trials:       res.Config.NTimes,
			Workers:      res.Workers,
			Precision:    res.Config.Precision.String(),
			Unreliable:   st.Unreliable,
			Validated:    validated,
			Timestamp:    res.Timestamp,
		})
	}

	// Flush to disk immediately to avoid losing data on crash
	return sl.flush()
}

// flush writes records to disk
func (sl *SessionLogger) flush() error {
	data, err := json.MarshalIndent(sl.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	return os.WriteFile(sl.sessionFile, data, 0644)
}

// LoadSession reads a session file written by a SessionLogger.
func LoadSession(path string) ([]SessionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []SessionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", path, err)
	}
	return records, nil
}

// LatestSession returns the most recently modified session file in dir.
func LatestSession(dir string) (string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no session files found in %s", dir)
	}

	var latest string
	var latestTime time.Time
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latest = file
			latestTime = info.ModTime()
		}
	}

	return latest, nil
}
