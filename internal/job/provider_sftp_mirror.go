package job

const ProviderSFTPMirror Provider = "sftp-mirror"

// ArchiveConfig enables bundling the mirrored directory into a zip and
// pushing it to an S3-compatible bucket after a successful sync.
type ArchiveConfig struct {
	Enabled         bool   `mapstructure:"enabled" json:"enabled"`
	Region          string `mapstructure:"region" json:"region"`
	Endpoint        string `mapstructure:"endpoint" json:"endpoint,omitempty"`
	Bucket          string `mapstructure:"bucket" json:"bucket"`
	Prefix          string `mapstructure:"prefix" json:"prefix,omitempty"`
	AccessKeyID     string `mapstructure:"access_key_id" json:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" json:"secret_access_key"`
}

// MirrorConfig describes a one-way, newer-only SFTP pull of a remote
// statement directory into a local directory.
type MirrorConfig struct {
	Host      string `mapstructure:"host" json:"host"`
	Port      int    `mapstructure:"port" json:"port"`
	Username  string `mapstructure:"username" json:"username"`
	KeyFile   string `mapstructure:"key_file" json:"key_file"`
	RemoteDir string `mapstructure:"remote_dir" json:"remote_dir"`
	LocalDir  string `mapstructure:"local_dir" json:"local_dir"`
	LogFile   string `mapstructure:"log_file" json:"log_file"`

	// KnownHostsFile pins the server host key. When empty the host key is
	// not verified, matching the original StrictHostKeyChecking=no setup.
	KnownHostsFile string `mapstructure:"known_hosts_file" json:"known_hosts_file,omitempty"`

	Archive ArchiveConfig `mapstructure:"archive" json:"archive"`
}

func (c *MirrorConfig) Type() Provider { return ProviderSFTPMirror }

func (c *MirrorConfig) Validate() error {
	var r requiredFields
	r.want("host", c.Host)
	r.wantInt("port", c.Port)
	r.want("username", c.Username)
	r.want("key_file", c.KeyFile)
	r.want("remote_dir", c.RemoteDir)
	r.want("local_dir", c.LocalDir)
	r.want("log_file", c.LogFile)
	if c.Archive.Enabled {
		r.want("archive.region", c.Archive.Region)
		r.want("archive.bucket", c.Archive.Bucket)
		r.want("archive.access_key_id", c.Archive.AccessKeyID)
		r.want("archive.secret_access_key", c.Archive.SecretAccessKey)
	}
	return r.err()
}
