package utils

// DownloadEntry is one item of a YAML download list.
type DownloadEntry struct {
	OutputPath string `yaml:"op"`
	URL        string `yaml:"link"`
}

// Job carries everything the scheduler needs for one transfer.
type Job struct {
	ID               string
	URL              string
	OutputPath       string
	HTTPClientConfig HTTPClientConfig
}
