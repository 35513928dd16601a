// Package config resolves the CLI flags, an optional YAML or JSON config
// file and environment-backed credentials into one Config passed through
// the run. Explicit flags always win over file values.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTLDs is the candidate TLD list swept by the TLD-scoped sources.
var DefaultTLDs = []string{"co", "in", "net", "group", "online", "world", "ai", "biz", "org", "app"}

type Config struct {
	Domain      string
	ListFile    string
	Output      string
	TLDs        []string
	Workers     int
	TimeoutS    int
	Verbosity   int
	GitHubToken string
	VTAPIKey    string
}

type fileConfig struct {
	Domain      *string     `json:"domain" yaml:"domain"`
	ListFile    *string     `json:"list" yaml:"list"`
	Output      *string     `json:"output" yaml:"output"`
	TLDs        *stringList `json:"tlds" yaml:"tlds"`
	Workers     *int        `json:"workers" yaml:"workers"`
	TimeoutS    *int        `json:"timeout" yaml:"timeout"`
	Verbosity   *int        `json:"verbosity" yaml:"verbosity"`
	GitHubToken *string     `json:"github_token" yaml:"github_token"`
	VTAPIKey    *string     `json:"vt_api_key" yaml:"vt_api_key"`
}

// stringList accepts both a sequence and a comma-separated scalar in config
// files.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*s = nil
		return nil
	}
	switch trimmed[0] {
	case '[':
		var aux []string
		if err := json.Unmarshal(data, &aux); err != nil {
			return err
		}
		*s = cleanStringSlice(aux)
		return nil
	case '"':
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*s = cleanStringSlice(strings.Split(single, ","))
		return nil
	default:
		return errors.New("tlds must be a string or a list")
	}
}

func (s *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		aux := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			aux = append(aux, node.Value)
		}
		*s = cleanStringSlice(aux)
		return nil
	case yaml.ScalarNode:
		*s = cleanStringSlice(strings.Split(value.Value, ","))
		return nil
	default:
		return errors.New("tlds must be a string or a list")
	}
}

// ParseFlags builds the Config from os.Args. Fatal config-file problems are
// returned, not logged, so main owns the exit.
func ParseFlags() (*Config, error) {
	configPath := flag.String("config", "", "Path to a YAML or JSON config file")
	domain := flag.String("d", "", "Single seed domain (e.g. apex.com)")
	list := flag.String("l", "", "File with seed domains, one per line")
	output := flag.String("output", "", "Output file (.json or .csv); default prints JSON to stdout")
	tlds := flag.String("tlds", strings.Join(DefaultTLDs, ","), "Candidate TLDs to sweep, CSV")
	workers := flag.Int("workers", 6, "Concurrent source queries per seed domain")
	timeout := flag.Int("timeout", 30, "Timeout per source query (seconds)")
	verbosity := flag.Int("v", 0, "Verbosity (0=info, 2=debug, 3=trace)")
	githubToken := flag.String("github-token", os.Getenv("GITHUB_TOKEN"), "GitHub code-search token (or export GITHUB_TOKEN)")
	vtKey := flag.String("vt-api-key", os.Getenv("VT_API_KEY"), "VirusTotal API key (or export VT_API_KEY)")

	flag.Parse()

	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	cfg := &Config{
		Domain:      strings.TrimSpace(*domain),
		ListFile:    strings.TrimSpace(*list),
		Output:      strings.TrimSpace(*output),
		TLDs:        cleanStringSlice(strings.Split(*tlds, ",")),
		Workers:     *workers,
		TimeoutS:    *timeout,
		Verbosity:   *verbosity,
		GitHubToken: strings.TrimSpace(*githubToken),
		VTAPIKey:    strings.TrimSpace(*vtKey),
	}

	if *configPath != "" {
		fileCfg, err := loadConfigFile(*configPath)
		if err != nil {
			return nil, err
		}
		cfg.applyFile(fileCfg, setFlags)
	}
	return cfg, nil
}

// applyFile merges file values under any flag the user set explicitly.
func (c *Config) applyFile(fc *fileConfig, setFlags map[string]bool) {
	if fc == nil {
		return
	}
	if fc.Domain != nil && !setFlags["d"] {
		c.Domain = strings.TrimSpace(*fc.Domain)
	}
	if fc.ListFile != nil && !setFlags["l"] {
		c.ListFile = strings.TrimSpace(*fc.ListFile)
	}
	if fc.Output != nil && !setFlags["output"] {
		c.Output = strings.TrimSpace(*fc.Output)
	}
	if fc.TLDs != nil && !setFlags["tlds"] {
		c.TLDs = *fc.TLDs
	}
	if fc.Workers != nil && !setFlags["workers"] {
		c.Workers = *fc.Workers
	}
	if fc.TimeoutS != nil && !setFlags["timeout"] {
		c.TimeoutS = *fc.TimeoutS
	}
	if fc.Verbosity != nil && !setFlags["v"] {
		c.Verbosity = *fc.Verbosity
	}
	if fc.GitHubToken != nil && !setFlags["github-token"] {
		c.GitHubToken = strings.TrimSpace(*fc.GitHubToken)
	}
	if fc.VTAPIKey != nil && !setFlags["vt-api-key"] {
		c.VTAPIKey = strings.TrimSpace(*fc.VTAPIKey)
	}
}

func loadConfigFile(path string) (*fileConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %q is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &fc)
	default:
		err = yaml.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return &fc, nil
}

func cleanStringSlice(values []string) []string {
	var cleaned []string
	for _, v := range values {
		v = strings.TrimSpace(strings.ToLower(v))
		v = strings.TrimPrefix(v, ".")
		if v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}
