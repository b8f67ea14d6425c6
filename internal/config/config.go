package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/openclaw/clawkeeper/internal/constants"
	"github.com/openclaw/clawkeeper/internal/restic"
	"github.com/openclaw/clawkeeper/internal/utils"
)

// Environment variables injected by the secrets wrapper. Their presence is a
// capability check performed at process start: either the wrapper ran and
// the credentials are here, or the invocation fails before any side effect.
var RequiredSecretVars = []string{
	"RESTIC_PASSWORD",
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
}

// Config is the explicit configuration record constructed once at process
// start. The backup, staging and comparator logic never perform ambient
// environment lookups.
type Config struct {
	// Object-store repository locator pieces. Concatenated into an opaque
	// string for the snapshot engine, never parsed further.
	S3Endpoint string
	S3Bucket   string
	S3Prefix   string

	ResticBinary   string
	ResticPassword string

	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// Volumes backed up and restored. Paths as they appear inside snapshots.
	Volumes []string

	// Host recorded on snapshots, defaults to "openclaw".
	BackupHost string

	Retention restic.RetentionPolicy

	CoolifyURL        string
	CoolifyToken      string
	CoolifyResourceID string

	// Release metadata endpoint for the latest upstream version.
	ReleaseURL string

	// File holding the currently installed version string. May be absent.
	VersionFile string

	// Cron expression for the schedule command.
	BackupSchedule string

	Debug bool
}

// Load constructs the Config from the environment. Only presence is checked
// here; per-command validation happens in the Validate* methods so that e.g.
// a restore does not demand Coolify credentials.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("RESTIC_BINARY", constants.EngineBinary)
	v.SetDefault("BACKUP_HOST", "openclaw")
	v.SetDefault("KEEP_DAILY", 7)
	v.SetDefault("KEEP_WEEKLY", 4)
	v.SetDefault("KEEP_MONTHLY", 6)
	v.SetDefault("OPENCLAW_RELEASE_URL", "https://api.github.com/repos/openclaw/openclaw/releases/latest")
	v.SetDefault("OPENCLAW_VERSION_FILE", "/var/lib/openclaw/VERSION")

	cfg := &Config{
		S3Endpoint:         v.GetString("R2_ENDPOINT"),
		S3Bucket:           v.GetString("R2_BUCKET"),
		S3Prefix:           v.GetString("R2_PREFIX"),
		ResticBinary:       v.GetString("RESTIC_BINARY"),
		ResticPassword:     v.GetString("RESTIC_PASSWORD"),
		AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		Volumes:            splitList(v.GetString("BACKUP_VOLUMES")),
		BackupHost:         v.GetString("BACKUP_HOST"),
		Retention: restic.RetentionPolicy{
			KeepDaily:   v.GetInt("KEEP_DAILY"),
			KeepWeekly:  v.GetInt("KEEP_WEEKLY"),
			KeepMonthly: v.GetInt("KEEP_MONTHLY"),
		},
		CoolifyURL:        v.GetString("COOLIFY_URL"),
		CoolifyToken:      v.GetString("COOLIFY_TOKEN"),
		CoolifyResourceID: v.GetString("COOLIFY_RESOURCE_UUID"),
		ReleaseURL:        v.GetString("OPENCLAW_RELEASE_URL"),
		VersionFile:       v.GetString("OPENCLAW_VERSION_FILE"),
		BackupSchedule:    v.GetString("BACKUP_SCHEDULE"),
		Debug:             v.GetBool("CLAWKEEPER_DEBUG"),
	}

	return cfg, nil
}

// CheckSecrets verifies the secrets wrapper supplied every required
// credential. Returns a configuration error naming the first missing one.
func (c *Config) CheckSecrets() error {
	if c.ResticPassword == "" {
		return utils.ConfigurationErrorf("RESTIC_PASSWORD is not set (secrets injection missing?)")
	}
	if c.AWSAccessKeyID == "" {
		return utils.ConfigurationErrorf("AWS_ACCESS_KEY_ID is not set (secrets injection missing?)")
	}
	if c.AWSSecretAccessKey == "" {
		return utils.ConfigurationErrorf("AWS_SECRET_ACCESS_KEY is not set (secrets injection missing?)")
	}
	return nil
}

// ValidateRepository checks everything the snapshot engine needs.
func (c *Config) ValidateRepository() error {
	if err := c.CheckSecrets(); err != nil {
		return err
	}
	if c.S3Endpoint == "" {
		return utils.ConfigurationErrorf("R2_ENDPOINT is not set")
	}
	if c.S3Bucket == "" {
		return utils.ConfigurationErrorf("R2_BUCKET is not set")
	}
	return nil
}

// ValidateBackup checks everything the backup operation needs.
func (c *Config) ValidateBackup() error {
	if err := c.ValidateRepository(); err != nil {
		return err
	}
	if len(c.Volumes) == 0 {
		return utils.ConfigurationErrorf("BACKUP_VOLUMES is not set")
	}
	return nil
}

// ValidateRedeploy checks everything the redeploy decision needs.
func (c *Config) ValidateRedeploy() error {
	if c.CoolifyURL == "" {
		return utils.ConfigurationErrorf("COOLIFY_URL is not set")
	}
	if c.CoolifyToken == "" {
		return utils.ConfigurationErrorf("COOLIFY_TOKEN is not set")
	}
	if c.CoolifyResourceID == "" {
		return utils.ConfigurationErrorf("COOLIFY_RESOURCE_UUID is not set")
	}
	return nil
}

// ValidateSchedule checks the schedule command inputs.
func (c *Config) ValidateSchedule() error {
	if err := c.ValidateBackup(); err != nil {
		return err
	}
	if c.BackupSchedule == "" {
		return utils.ConfigurationErrorf("BACKUP_SCHEDULE is not set")
	}
	return nil
}

// RepositoryLocator builds the opaque repository string handed to the
// snapshot engine. Constructed by concatenation only.
func (c *Config) RepositoryLocator() string {
	locator := fmt.Sprintf("s3:%s/%s", strings.TrimRight(c.S3Endpoint, "/"), c.S3Bucket)
	if c.S3Prefix != "" {
		locator += "/" + strings.Trim(c.S3Prefix, "/")
	}
	return locator
}

// EngineEnv builds the environment for snapshot engine invocations from the
// explicit config record.
func (c *Config) EngineEnv() []string {
	return []string{
		"RESTIC_PASSWORD=" + c.ResticPassword,
		"AWS_ACCESS_KEY_ID=" + c.AWSAccessKeyID,
		"AWS_SECRET_ACCESS_KEY=" + c.AWSSecretAccessKey,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
