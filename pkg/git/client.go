// Package git reads commit subjects and tags through the git binary.
package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoTags is returned when a tag range is requested from an untagged repository.
var ErrNoTags = errors.New("repository has no tags")

// subjectFormat renders each commit as "<subject> :<hash>".
const subjectFormat = "--pretty=format:%s :%H"

// Client wraps git command execution.
type Client struct {
	WorkDir string
	Logger  *slog.Logger
}

// NewClient creates a new git client for the given working directory.
func NewClient(workDir string, logger *slog.Logger) *Client {
	return &Client{
		WorkDir: workDir,
		Logger:  logger,
	}
}

// IsInstalled reports whether the git binary is on PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo reports whether WorkDir is inside a git work tree.
func (c *Client) IsRepo() bool {
	if _, err := os.Stat(filepath.Join(c.WorkDir, ".git")); err == nil {
		return true
	}
	out, err := c.Run(context.Background(), "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Run executes a raw git command in the working directory.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}

	return strings.TrimSpace(output), nil
}

// Init initializes a new git repository.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.Run(ctx, "init")
	return err
}

// Commit records an empty commit with msg. Used to build fixtures.
func (c *Client) Commit(ctx context.Context, msg string) error {
	_, err := c.Run(ctx, "-c", "user.name=dedma", "-c", "user.email=dedma@localhost",
		"commit", "--allow-empty", "-m", msg)
	return err
}

// Tag creates a lightweight tag on HEAD.
func (c *Client) Tag(ctx context.Context, name string) error {
	_, err := c.Run(ctx, "tag", name)
	return err
}

// Tags returns the tags of the repository, newest first.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	out, err := c.Run(ctx, "tag", "--list", "--sort=-creatordate")
	if err != nil {
		return nil, err
	}
	return nonEmptyLines(out), nil
}

// LatestRange returns the range between the two newest tags.
// With a single tag, the range covers all history up to it.
func (c *Client) LatestRange(ctx context.Context) (Range, error) {
	tags, err := c.Tags(ctx)
	if err != nil {
		return Range{}, err
	}
	switch len(tags) {
	case 0:
		return Range{}, ErrNoTags
	case 1:
		return Range{To: tags[0]}, nil
	default:
		return Range{From: tags[1], To: tags[0]}, nil
	}
}

// RangeTo returns the range ending at ref and starting at the newest tag
// reachable from its parent. Without such a tag, the range covers all
// history up to ref.
func (c *Client) RangeTo(ctx context.Context, ref string) (Range, error) {
	if _, err := c.Run(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}"); err != nil {
		return Range{}, fmt.Errorf("unknown revision %q: %w", ref, err)
	}

	prev, err := c.Run(ctx, "describe", "--tags", "--abbrev=0", ref+"^")
	if err != nil {
		// No parent commit, or no tag behind ref.
		if c.Logger != nil {
			c.Logger.Debug("no previous tag", "ref", ref)
		}
		return Range{To: ref}, nil
	}
	return Range{From: prev, To: ref}, nil
}

// Subjects lists the commits of r, one "<subject> :<hash>" line each,
// newest first.
func (c *Client) Subjects(ctx context.Context, r Range) (string, error) {
	out, err := c.Run(ctx, "log", subjectFormat, r.Spec())
	if err != nil {
		return "", err
	}
	return out, nil
}

// Range is a commit range between two refs.
type Range struct {
	From string
	To   string
}

// Spec returns the revision range understood by git log.
func (r Range) Spec() string {
	to := r.To
	if to == "" {
		to = "HEAD"
	}
	if r.From == "" {
		return to
	}
	return r.From + ".." + to
}

// Tag names the release the range belongs to.
func (r Range) Tag() string {
	if r.To == "" {
		return "HEAD"
	}
	return r.To
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
