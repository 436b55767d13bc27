package utils

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	kiB = 1024
	miB = kiB * 1024
	giB = miB * 1024
)

// FormatBytes renders a byte count with binary units: one decimal place at
// KiB and above, plain integer bytes below.
func FormatBytes(size int64) string {
	s := float64(size)
	switch {
	case s >= giB:
		return fmt.Sprintf("%5.1f GiB", s/giB)
	case s >= miB:
		return fmt.Sprintf("%5.1f MiB", s/miB)
	case s >= kiB:
		return fmt.Sprintf("%5.1f KiB", s/kiB)
	default:
		return fmt.Sprintf("%3.0f B", s)
	}
}

// FormatSpeed is FormatBytes with a per-second suffix.
func FormatSpeed(size int64) string {
	return FormatBytes(size) + "/s"
}

// FormatDuration renders a duration as seconds, minutes, hours and days,
// suppressing the most significant components while they are zero. There is
// no sub-second precision.
func FormatDuration(d time.Duration) string {
	days, hours, mins, secs := formatDHMS(uint64(d / time.Second))
	switch {
	case days > 0:
		return fmt.Sprintf("%3dd %2dh %2dm %2ds", days, hours, mins, secs)
	case hours > 0:
		return fmt.Sprintf("%2dh %2dm %2ds", hours, mins, secs)
	case mins > 0:
		return fmt.Sprintf("%2dm %2ds", mins, secs)
	default:
		return fmt.Sprintf("%2ds", secs)
	}
}

func formatDHMS(sec uint64) (days, hours, mins, secs uint64) {
	mins, secs = sec/60, sec%60
	hours, mins = mins/60, mins%60
	days, hours = hours/24, hours%24
	return days, hours, mins, secs
}

func ParseHeaderArgs(headers []string) map[string]string {
	result := make(map[string]string)
	for _, header := range headers {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			result[key] = value
		}
	}
	return result
}

// InferOutputPath derives a local file name from the last URL path segment.
func InferOutputPath(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "download"
	}
	pathParts := strings.Split(parsedURL.Path, "/")
	name := pathParts[len(pathParts)-1]
	if name == "" {
		return "download"
	}
	return name
}

// RenewOutputPath returns a sibling name with a numeric suffix that does not
// exist yet, so an existing file is never overwritten.
func RenewOutputPath(outputPath string) string {
	dir := filepath.Dir(outputPath)
	base := filepath.Base(outputPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	index := 1
	for {
		outputPath = filepath.Join(dir, fmt.Sprintf("%s-(%d)%s", name, index, ext))
		if _, err := os.Stat(outputPath); os.IsNotExist(err) {
			return outputPath
		}
		index++
	}
}

// ReadDownloadList parses a YAML file of download entries.
func ReadDownloadList(path string) ([]DownloadEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading download list: %w", err)
	}
	var entries []DownloadEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing download list: %w", err)
	}
	for i, entry := range entries {
		if entry.URL == "" {
			return nil, fmt.Errorf("entry %d has no link", i+1)
		}
	}
	return entries, nil
}
