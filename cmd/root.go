package cmd

import (
	"fmt"
	u "net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/marruca/snag/internal/output"
	"github.com/marruca/snag/internal/scheduler"
	"github.com/marruca/snag/internal/utils"
)

var (
	outputPath  string
	urlListFile string
	certPath    string
	timeout     time.Duration
	kaTimeout   time.Duration
	userAgent   string
	proxyURL    string
	headers     []string
	debug       bool
)

var SnagVersion = "dev"

var rootCmd = &cobra.Command{
	Use:     "snag [URL]",
	Short:   "Snag is a streaming downloader with live transfer stats",
	Version: SnagVersion,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(debug)
		if len(args) == 0 && urlListFile == "" {
			output.PrintError("No URL or URL list provided")
			os.Exit(1)
		}
		if urlListFile != "" && len(args) > 0 {
			output.PrintError("Cannot specify url argument and --urllist together, choose one")
			os.Exit(1)
		}

		// The root certificate is loaded exactly once here and shared by
		// every job through the client config.
		httpClientConfig := utils.HTTPClientConfig{
			Timeout:   timeout,
			KATimeout: kaTimeout,
			ProxyURL:  proxyURL,
			UserAgent: userAgent,
			Headers:   utils.ParseHeaderArgs(headers),
			RootCAs:   utils.LoadRootCAs(certPath),
		}

		var jobs []utils.Job
		if len(args) > 0 {
			url := args[0]
			if _, err := u.Parse(url); err != nil {
				output.PrintError("Invalid URL format")
				os.Exit(1)
			}
			jobs = []utils.Job{{URL: url, OutputPath: outputPath, HTTPClientConfig: httpClientConfig}}
		} else {
			entries, err := utils.ReadDownloadList(urlListFile)
			if err != nil {
				output.PrintError(fmt.Sprintf("Failed to read URL list file: %v", err))
				os.Exit(1)
			}
			for _, entry := range entries {
				jobs = append(jobs, utils.Job{
					URL:              entry.URL,
					OutputPath:       entry.OutputPath,
					HTTPClientConfig: httpClientConfig,
				})
			}
			output.PrintInfo(fmt.Sprintf("Queued %d downloads from %s", len(jobs), urlListFile))
		}

		if err := scheduler.Run(jobs); err != nil {
			os.Exit(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (inferred from the URL if not provided)")
	rootCmd.Flags().StringVarP(&urlListFile, "urllist", "l", "", "Path to YAML file containing URLs and output paths")
	rootCmd.Flags().StringVar(&certPath, "cert", "", "Path to a PEM root certificate to trust in addition to the system store")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 3*time.Minute, "Connection timeout (eg. 5s, 10m)")
	rootCmd.Flags().DurationVarP(&kaTimeout, "keep-alive-timeout", "k", 90*time.Second, "Keep-alive timeout for client (eg. 10s, 1m, 80s)")
	rootCmd.Flags().StringVarP(&userAgent, "user-agent", "a", utils.ToolUserAgent, "User agent")
	rootCmd.Flags().StringVarP(&proxyURL, "proxy", "p", "", "HTTP/HTTPS proxy URL (standard proxy env vars apply when unset)")
	rootCmd.Flags().StringArrayVarP(&headers, "header", "H", []string{}, "Custom headers (like 'Authorization: Basic dXNlcjpwYXNz'); can be specified multiple times")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
