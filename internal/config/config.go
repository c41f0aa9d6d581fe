package config

import (
	"errors"
	"os"
	"strings"
)

// TagPolicy controls the role tags appended to placed file names. The
// export format does not document how paired files are marked, so the
// tags stay configurable.
type TagPolicy struct {
	Primary string
	Clip    string
}

func DefaultTagPolicy() TagPolicy {
	return TagPolicy{Primary: "original", Clip: "clip"}
}

type Config struct {
	ManifestPath string
	OutputRoot   string
	DryRun       bool
	Plain        bool
	Verbose      bool
	UseExif      bool
	Tags         TagPolicy
}

// ApplyEnv fills unset fields from MEMORG_* environment variables.
func (c *Config) ApplyEnv() {
	if c.ManifestPath == "" {
		c.ManifestPath = envOrEmpty("MEMORG_MANIFEST")
	}
	if c.OutputRoot == "" {
		c.OutputRoot = envOrEmpty("MEMORG_OUTPUT")
	}
	if !c.Verbose {
		c.Verbose = envTruthy("MEMORG_VERBOSE")
	}
	if !c.UseExif {
		c.UseExif = envTruthy("MEMORG_USE_EXIF")
	}
	if c.Tags.Primary == "" {
		c.Tags.Primary = envOrEmpty("MEMORG_TAG_ORIGINAL")
	}
	if c.Tags.Clip == "" {
		c.Tags.Clip = envOrEmpty("MEMORG_TAG_CLIP")
	}
}

// Validate checks the pre-run requirements: the manifest must exist and
// the output root must be named.
func (c *Config) Validate() error {
	if c.ManifestPath == "" || c.OutputRoot == "" {
		return errors.New("manifest and output are required")
	}
	info, err := os.Stat(c.ManifestPath)
	if err != nil {
		return errors.New("manifest not readable: " + c.ManifestPath)
	}
	if info.IsDir() {
		return errors.New("manifest is a directory: " + c.ManifestPath)
	}
	if info, err := os.Stat(c.OutputRoot); err == nil && !info.IsDir() {
		return errors.New("output root is not a directory: " + c.OutputRoot)
	}
	if c.Tags.Primary == "" {
		c.Tags.Primary = DefaultTagPolicy().Primary
	}
	if c.Tags.Clip == "" {
		c.Tags.Clip = DefaultTagPolicy().Clip
	}
	return nil
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
