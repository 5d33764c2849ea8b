// Package mirror implements the one-way, newer-only pull of a remote SFTP
// directory into a local directory.
package mirror

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"stmtagent/internal/job"
)

const dialTimeout = 30 * time.Second

// Client wraps an authenticated SSH connection with an SFTP subsystem.
type Client struct {
	ssh  *ssh.Client
	sftp *sftp.Client
}

// Dial opens an SFTP session to the configured host using private-key
// authentication. The key file must exist and parse before any network
// connection is attempted.
func Dial(ctx context.Context, cfg *job.MirrorConfig) (*Client, error) {
	key, err := os.ReadFile(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file %s: %w", cfg.KeyFile, err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse key file %s: %w", cfg.KeyFile, err)
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if cfg.KnownHostsFile != "" {
		hostKeyCallback, err = knownhosts.New(cfg.KnownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load known hosts %s: %w", cfg.KnownHostsFile, err)
		}
	}

	sshConfig := &ssh.ClientConfig{
		User:            cfg.Username,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         dialTimeout,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, sshConfig)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh handshake with %s failed: %w", addr, err)
	}
	sshClient := ssh.NewClient(sshConn, chans, reqs)

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, fmt.Errorf("failed to open sftp subsystem: %w", err)
	}

	return &Client{ssh: sshClient, sftp: sftpClient}, nil
}

// Source returns the remote file source backed by this connection.
func (c *Client) Source() Source {
	return sftpSource{c.sftp}
}

// Close tears down the SFTP subsystem and the SSH connection.
func (c *Client) Close() error {
	sftpErr := c.sftp.Close()
	sshErr := c.ssh.Close()
	if sftpErr != nil {
		return sftpErr
	}
	return sshErr
}

type sftpSource struct {
	client *sftp.Client
}

func (s sftpSource) List(dir string) ([]os.FileInfo, error) {
	return s.client.ReadDir(dir)
}

func (s sftpSource) Fetch(path string) (io.ReadCloser, error) {
	return s.client.Open(path)
}
