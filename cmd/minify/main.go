// Command minify writes minified copies of templates/ and static/ into dist/,
// which the server prefers in production mode.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
)

var mediaTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
}

func newMinifier() *minify.M {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
		TemplateDelims:   html.GoTemplateDelims,
	})
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)
	m.AddFunc("application/json", json.Minify)
	return m
}

// result describes one written file.
type result struct {
	Path     string
	Original int
	Minified int
}

// build mirrors every directory in dirs under out, minifying what it can and
// copying the rest byte for byte.
func build(m *minify.M, out string, dirs ...string) ([]result, error) {
	var results []result
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			r, err := minifyFile(m, path, filepath.Join(out, path))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results = append(results, r)
			return nil
		})
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func minifyFile(m *minify.M, srcPath, dstPath string) (result, error) {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return result{}, err
	}

	output := src
	if mediaType, ok := mediaTypes[strings.ToLower(filepath.Ext(srcPath))]; ok {
		if output, err = m.Bytes(mediaType, src); err != nil {
			return result{}, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return result{}, err
	}
	if err := os.WriteFile(dstPath, output, 0o644); err != nil {
		return result{}, err
	}
	return result{Path: srcPath, Original: len(src), Minified: len(output)}, nil
}

func reduction(r result) float64 {
	if r.Original == 0 {
		return 0
	}
	return float64(r.Original-r.Minified) / float64(r.Original) * 100
}

func newCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "minify [dir...]",
		Short: "Minify templates and static assets into a dist directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"templates", "static"}
			}
			results, err := build(newMinifier(), out, args...)
			if err != nil {
				return err
			}
			for _, r := range results {
				log.Info().
					Str("file", r.Path).
					Int("bytes", r.Original).
					Int("minified", r.Minified).
					Msgf("%.1f%% reduction", reduction(r))
			}
			log.Info().Int("files", len(results)).Str("out", out).Msg("minification complete")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "dist", "output directory")
	cmd.SilenceUsage = true
	return cmd
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := newCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("minify failed")
	}
}
