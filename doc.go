// Package dedma builds release notes from commit subject lines.
//
// Lines shaped like
//
//	feat (Reward): Added one more reward :13883a
//
// are classified into a kind, a title and a content, recorded once per
// commit hash in a SQLite store under ./.dedma, and rendered per tag as a
// Markdown document grouped by kind and title.
//
// Usage:
//
//	app, err := dedma.New(".", dedma.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//
//	report, err := app.Generate(ctx, dedma.Request{Sources: []string{"commits.txt"}})
package dedma
