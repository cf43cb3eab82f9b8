// Package main provides a one-shot command-line tool that exports wired
// clients from a Meraki network and prepares a segment migration CSV for
// bulk import into the target network-access-control system.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"Migrate-Meraki-Clients-To-Segments/pkg/filters"
	"Migrate-Meraki-Clients-To-Segments/pkg/logger"
	"Migrate-Meraki-Clients-To-Segments/pkg/meraki"
	"Migrate-Meraki-Clients-To-Segments/pkg/output"
	"Migrate-Meraki-Clients-To-Segments/pkg/segments"

	"github.com/joho/godotenv"
)

// Config holds all configuration options from environment variables and command-line flags.
type Config struct {
	APIKey      string // Meraki Dashboard API key
	OrgID       string // Meraki organization ID
	NetworkID   string // Meraki network ID
	Output      string // Output CSV path
	Timespan    int    // Client history window in seconds
	SegmentMap  string // Optional YAML segment mapping file
	ExcludeMACs string // Comma-separated MAC exclusion patterns
	BaseURL     string // Meraki API base URL
	LogFile     string // Path to log file
	LogLevel    string // Log level: DEBUG, INFO, WARNING, ERROR
	Verbose     bool   // Enable verbose output
	Preview     bool   // Print a preview table before writing the CSV
}

// Version information injected at build time via ldflags.
// Build with: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=<git-sha> -X main.BuildTime=<timestamp>"
const (
	RepositoryURL     = "https://github.com/bci/Migrate-Meraki-Clients-To-Segments"
	defaultOutputFile = "migration_clients.csv"
	defaultTimespan   = 86400
)

var (
	Version   = "dev"     // Version set at build time
	Commit    = "unknown" // Git commit SHA set at build time
	BuildTime = "unknown" // Build timestamp set at build time
	GoVersion = "go1.21"  // Go version (can be updated at build time)
)

func main() {
	_ = godotenv.Load()

	apiKeyFlag := flag.String("api-key", "", "Meraki Dashboard API key")
	orgFlag := flag.String("org-id", "", "Meraki organization ID")
	networkFlag := flag.String("network-id", "", "Meraki network ID")
	outputFlag := flag.String("output", defaultOutputFile, "Output CSV file")
	timespanFlag := flag.Int("timespan", defaultTimespan, "Client history window in seconds")
	segmentMapFlag := flag.String("segment-map", "", "YAML segment mapping file (skips interactive prompts)")
	excludeFlag := flag.String("exclude-macs", "", "Comma-separated MAC patterns to exclude")
	previewFlag := flag.Bool("preview", false, "Print a preview table before writing the CSV")
	listOrgsFlag := flag.Bool("list-orgs", false, "List organizations the API key can access and exit")
	listNetworksFlag := flag.Bool("list-networks", false, "List networks per organization and exit")
	testAPIFlag := flag.Bool("test-api", false, "Validate API key and exit")
	verboseFlag := flag.Bool("verbose", false, "Show migration progress details")
	logFileFlag := flag.String("log-file", "", "Log file path")
	logLevelFlag := flag.String("log-level", "", "Log level: DEBUG, INFO, WARNING, ERROR")
	versionFlag := flag.Bool("version", false, "Show version and exit")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.Usage = func() {
		printUsage(os.Stdout)
	}
	flag.Parse()

	cfg := Config{
		APIKey:      strings.TrimSpace(firstNonEmpty(*apiKeyFlag, os.Getenv("MERAKI_API_KEY"))),
		OrgID:       strings.TrimSpace(firstNonEmpty(*orgFlag, os.Getenv("MERAKI_ORG_ID"))),
		NetworkID:   strings.TrimSpace(firstNonEmpty(*networkFlag, os.Getenv("MERAKI_NETWORK_ID"))),
		Output:      strings.TrimSpace(*outputFlag),
		Timespan:    *timespanFlag,
		SegmentMap:  strings.TrimSpace(*segmentMapFlag),
		ExcludeMACs: strings.TrimSpace(*excludeFlag),
		BaseURL:     strings.TrimSpace(firstNonEmpty(os.Getenv("MERAKI_BASE_URL"), "https://api.meraki.com/api/v1")),
		LogFile:     strings.TrimSpace(firstNonEmpty(*logFileFlag, os.Getenv("LOG_FILE"), "Migrate-Meraki-Clients-To-Segments.log")),
		LogLevel:    strings.TrimSpace(firstNonEmpty(*logLevelFlag, os.Getenv("LOG_LEVEL"), "INFO")),
		Verbose:     *verboseFlag,
		Preview:     *previewFlag,
	}

	if *helpFlag {
		printUsage(os.Stdout)
		return
	}

	if *versionFlag {
		printVersion(os.Stdout)
		return
	}

	log := logger.New(cfg.LogFile, logger.ParseLogLevel(cfg.LogLevel))
	defer log.Close()

	if cfg.APIKey == "" {
		exitWithError(log, "--api-key or MERAKI_API_KEY is required")
	}
	if cfg.Output == "" {
		cfg.Output = defaultOutputFile
	}
	if cfg.Timespan <= 0 {
		exitWithError(log, "--timespan must be a positive number of seconds")
	}

	client := meraki.NewClient(cfg.APIKey, cfg.BaseURL, 0)
	ctx := context.Background()

	if *testAPIFlag {
		orgs, err := client.GetOrganizations(ctx)
		if err != nil {
			exitWithError(log, err.Error())
		}
		fmt.Fprintf(os.Stdout, "API OK: %d organizations found\n", len(orgs))
		return
	}

	if *listOrgsFlag {
		orgs, err := client.GetOrganizations(ctx)
		if err != nil {
			exitWithError(log, err.Error())
		}
		writeOrganizations(os.Stdout, orgs)
		return
	}

	if *listNetworksFlag {
		orgs, err := client.GetOrganizations(ctx)
		if err != nil {
			exitWithError(log, err.Error())
		}
		for _, org := range orgs {
			if cfg.OrgID != "" && org.ID != cfg.OrgID {
				continue
			}
			networks, err := client.GetNetworks(ctx, org.ID)
			if err != nil {
				exitWithError(log, err.Error())
			}
			writeNetworksForOrg(os.Stdout, org, networks)
		}
		return
	}

	if cfg.OrgID == "" {
		exitWithError(log, "--org-id or MERAKI_ORG_ID is required")
	}
	if cfg.NetworkID == "" {
		exitWithError(log, "--network-id or MERAKI_NETWORK_ID is required")
	}

	// The network must belong to the organization before anything is fetched.
	networks, err := client.GetNetworks(ctx, cfg.OrgID)
	if err != nil {
		exitWithError(log, fmt.Sprintf("listing networks for organization %s: %s", cfg.OrgID, err))
	}
	if err := verifyNetwork(cfg.NetworkID, cfg.OrgID, networks); err != nil {
		exitWithError(log, err.Error())
	}
	if cfg.Verbose {
		log.Infof("Verified network %s in organization %s", cfg.NetworkID, cfg.OrgID)
	}

	fmt.Println("Fetching all clients...")
	allClients, err := client.GetNetworkClients(ctx, cfg.NetworkID, cfg.Timespan)
	if err != nil {
		exitWithError(log, fmt.Sprintf("fetching clients for network %s: %s", cfg.NetworkID, err))
	}
	fmt.Printf("Total clients retrieved: %d\n", len(allClients))
	log.Infof("Fetched %d clients from network %s (timespan %ds)", len(allClients), cfg.NetworkID, cfg.Timespan)

	wired := filters.FilterWired(allClients)
	if cfg.Verbose {
		log.Infof("%d wired clients after switchport filter", len(wired))
	}

	excludePatterns := splitPatterns(cfg.ExcludeMACs)

	var resolver segments.Resolver
	if cfg.SegmentMap != "" {
		mapFile, err := segments.LoadMapFile(cfg.SegmentMap)
		if err != nil {
			exitWithError(log, err.Error())
		}
		excludePatterns = append(excludePatterns, mapFile.ExcludeMACs...)
		resolver = mapFile
	}

	wired, err = filters.ExcludeMACs(wired, excludePatterns)
	if err != nil {
		exitWithError(log, err.Error())
	}

	wired = filters.DedupeClients(wired)
	if cfg.Verbose {
		log.Infof("%d unique wired clients after exclusion and dedupe", len(wired))
	}

	vlans := filters.DistinctVLANs(wired)
	log.Infof("Discovered %d distinct VLANs", len(vlans))

	if resolver == nil {
		fmt.Println("Discovered VLANs:")
		resolver = segments.NewPromptResolver(os.Stdin, os.Stdout)
	}
	mapping, err := segments.BuildMapping(vlans, resolver)
	if err != nil {
		exitWithError(log, err.Error())
	}

	rows, skipped, err := output.BuildRows(wired, mapping)
	if err != nil {
		exitWithError(log, err.Error())
	}
	if skipped > 0 {
		fmt.Printf("Skipped %d clients with no VLAN assignment\n", skipped)
		log.Warnf("Skipped %d clients with no VLAN assignment", skipped)
	}

	if cfg.Preview {
		output.WriteText(os.Stdout, rows)
	}

	fmt.Println("Writing migration CSV...")
	file, err := os.Create(cfg.Output)
	if err != nil {
		exitWithError(log, fmt.Sprintf("creating %s: %s", cfg.Output, err))
	}
	if err := output.WriteCSV(file, rows); err != nil {
		_ = file.Close()
		exitWithError(log, fmt.Sprintf("writing %s: %s", cfg.Output, err))
	}
	if err := file.Close(); err != nil {
		exitWithError(log, fmt.Sprintf("closing %s: %s", cfg.Output, err))
	}
	log.Infof("Wrote %d migration rows to %s", len(rows), cfg.Output)
	fmt.Printf("Done — migration CSV exported to %s\n", cfg.Output)
}

// firstNonEmpty returns the first non-empty string from the provided values.
// Returns empty string if all values are empty or contain only whitespace.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// splitPatterns splits a comma-separated pattern list, dropping empty entries.
func splitPatterns(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var patterns []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// exitWithError logs an error message and exits the program with status code 1.
// If log is nil, the error is written to stderr instead.
func exitWithError(log *logger.Logger, msg string) {
	if log != nil {
		log.Errorf(msg)
		log.Close()
	} else {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", msg)
	}
	os.Exit(1)
}

// verifyNetwork checks that the given network ID belongs to the organization.
func verifyNetwork(networkID, orgID string, networks []meraki.Network) error {
	for _, n := range networks {
		if n.ID == networkID {
			return nil
		}
	}
	return fmt.Errorf("network %s not found in organization %s", networkID, orgID)
}

// printUsage writes comprehensive help text to the specified file.
// Includes all command-line flags, environment variables, and usage examples.
func printUsage(w *os.File) {
	fmt.Fprintln(w, "Migrate-Meraki-Clients-To-Segments - export wired Meraki clients as a segment migration CSV")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  Migrate-Meraki-Clients-To-Segments --api-key <key> --org-id 123456 --network-id N_1234")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --api-key <key>             Meraki Dashboard API key (or MERAKI_API_KEY)")
	fmt.Fprintln(w, "  --org-id <id>               Meraki organization ID (or MERAKI_ORG_ID)")
	fmt.Fprintln(w, "  --network-id <id>           Meraki network ID (or MERAKI_NETWORK_ID)")
	fmt.Fprintln(w, "  --output <file>             Output CSV file, overwritten if present (default migration_clients.csv)")
	fmt.Fprintln(w, "  --timespan <seconds>        Client history window (default 86400)")
	fmt.Fprintln(w, "  --segment-map <file>        YAML VLAN-to-segment mapping; skips interactive prompts")
	fmt.Fprintln(w, "  --exclude-macs <patterns>   Comma-separated MAC patterns to leave out of the export")
	fmt.Fprintln(w, "  --preview                   Print a preview table before writing the CSV")
	fmt.Fprintln(w, "  --list-orgs                 List organizations and exit")
	fmt.Fprintln(w, "  --list-networks             List networks per organization and exit")
	fmt.Fprintln(w, "  --test-api                  Validate API key and exit")
	fmt.Fprintln(w, "  --verbose                   Show migration progress details")
	fmt.Fprintln(w, "  --log-file <filename>       Log file path (default from .env)")
	fmt.Fprintln(w, "  --log-level <DEBUG|INFO|WARNING|ERROR>  Log level (default INFO)")
	fmt.Fprintln(w, "  --version                   Show version and exit")
	fmt.Fprintln(w, "  --help                      Show this help")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MERAKI_API_KEY     Meraki Dashboard API key (required)")
	fmt.Fprintln(w, "  MERAKI_ORG_ID      Default organization ID")
	fmt.Fprintln(w, "  MERAKI_NETWORK_ID  Default network ID")
	fmt.Fprintln(w, "  MERAKI_BASE_URL    API base URL (default https://api.meraki.com/api/v1)")
	fmt.Fprintln(w, "  LOG_FILE           Log file path")
	fmt.Fprintln(w, "  LOG_LEVEL          DEBUG | INFO | WARNING | ERROR")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  Migrate-Meraki-Clients-To-Segments --org-id 123456 --network-id N_1234")
	fmt.Fprintln(w, "  Migrate-Meraki-Clients-To-Segments --org-id 123456 --network-id N_1234 --segment-map segments.yaml")
	fmt.Fprintln(w, "  Migrate-Meraki-Clients-To-Segments --org-id 123456 --network-id N_1234 --exclude-macs \"00:18:0a:*:*:*\" --preview")
	fmt.Fprintln(w, "  Migrate-Meraki-Clients-To-Segments --list-networks --org-id 123456")
	fmt.Fprintln(w, "  Migrate-Meraki-Clients-To-Segments --test-api")
}

// writeOrganizations writes a formatted list of organizations to the specified file.
func writeOrganizations(w *os.File, orgs []meraki.Organization) {
	fmt.Fprintln(w, "Organizations:")
	for _, org := range orgs {
		fmt.Fprintf(w, "- %s (%s)\n", org.Name, org.ID)
	}
}

// writeNetworksForOrg writes a formatted list of networks for an organization to the specified file.
func writeNetworksForOrg(w *os.File, org meraki.Organization, networks []meraki.Network) {
	fmt.Fprintf(w, "Organization: %s (%s)\n", org.Name, org.ID)
	if len(networks) == 0 {
		fmt.Fprintln(w, "  (no networks)")
		return
	}
	for _, n := range networks {
		fmt.Fprintf(w, "  - %s (%s)\n", n.Name, n.ID)
	}
}

// printVersion writes version and build information to the specified file.
func printVersion(w *os.File) {
	fmt.Fprintf(w, "Migrate-Meraki-Clients-To-Segments version %s\n", Version)
	fmt.Fprintf(w, "  Commit:     %s\n", Commit)
	fmt.Fprintf(w, "  Build Time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Go Version: %s\n", GoVersion)
	fmt.Fprintf(w, "  Repository: %s\n", RepositoryURL)
}
