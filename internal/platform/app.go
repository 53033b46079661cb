package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/dedma/pkg/classify"
	"github.com/aretw0/dedma/pkg/git"
)

// Request describes one generation run.
type Request struct {
	// Sources are file patterns. When empty, commits come from git.
	Sources []string
	// Tag names the release. With git sources it defaults to the newest tag,
	// and commits are read from the previous tag up to it.
	Tag string
	// Output is the Markdown path, relative to the root unless absolute.
	Output string
}

// Report summarizes a run.
type Report struct {
	Tag      string
	Found    int
	Recorded int
	Output   string
}

// DefaultFileTag is the tag used for file sources when none is given.
const DefaultFileTag = "tag"

// Collect reads the raw lines of req and resolves the tag they belong to.
func (a *App) Collect(ctx context.Context, req Request) (text, tag string, err error) {
	msgs := a.Messages()

	if len(req.Sources) > 0 {
		a.report(msgs.Gathering, "'"+strings.Join(req.Sources, "', '")+"'")
		text, err = ReadSources(req.Sources...)
		if err != nil {
			return "", "", err
		}
		tag = req.Tag
		if tag == "" {
			tag = DefaultFileTag
		}
		return text, tag, nil
	}

	a.report(msgs.Gathering, "Git")
	if !git.IsInstalled() {
		return "", "", errors.New("git is not installed")
	}
	if !a.Git.IsRepo() {
		return "", "", fmt.Errorf("path is not a git repository: %s", a.Root)
	}

	var r git.Range
	if req.Tag == "" {
		r, err = a.Git.LatestRange(ctx)
	} else {
		r, err = a.Git.RangeTo(ctx, req.Tag)
	}
	if err != nil {
		return "", "", err
	}
	text, err = a.Git.Subjects(ctx, r)
	if err != nil {
		return "", "", err
	}
	return text, r.Tag(), nil
}

// Record classifies text and stores its commits under tag.
// It returns the number of commits found and newly recorded.
func (a *App) Record(ctx context.Context, tag, text string) (found, recorded int, err error) {
	msgs := a.Messages()

	a.report(msgs.Parsing)
	commits, err := classify.All(text)
	if err != nil {
		return 0, 0, err
	}
	a.report(msgs.Found, len(commits))

	recorded, err = a.Service.Record(ctx, tag, commits)
	if err != nil {
		return len(commits), recorded, err
	}
	a.report(msgs.Recorded, recorded)
	return len(commits), recorded, nil
}

// Render composes the note for tag and writes it to output.
// It returns the path written.
func (a *App) Render(ctx context.Context, tag, output string) (string, error) {
	if output == "" {
		output = a.Config.Output
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(a.Root, output)
	}

	doc, err := a.Composer.Compose(ctx, tag)
	if err != nil {
		return "", err
	}

	a.report(a.Messages().Writing, output)
	if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write release notes: %w", err)
	}
	return output, nil
}

// Generate runs the whole pipeline: collect, classify, record, render.
func (a *App) Generate(ctx context.Context, req Request) (Report, error) {
	text, tag, err := a.Collect(ctx, req)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Tag: tag}
	rep.Found, rep.Recorded, err = a.Record(ctx, tag, text)
	if err != nil {
		return rep, err
	}

	rep.Output, err = a.Render(ctx, tag, req.Output)
	if err != nil {
		return rep, err
	}

	a.logger.Debug("release note generated", "tag", tag, "found", rep.Found, "recorded", rep.Recorded, "output", rep.Output)
	return rep, nil
}
