// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package site builds a static website from a tree of Markdown files.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"go4.org/bytereplacer"
	"zombiezen.com/go/sitemark"
)

// Template placeholders replaced by [FillTemplate].
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

const (
	markdownExt = ".md"
	htmlExt     = ".html"
)

// ErrMissingTitle is returned by [ExtractTitle]
// when the document does not start with a level 1 heading.
var ErrMissingTitle = errors.New("first line is not a level 1 heading")

// ExtractTitle returns the text of the level 1 heading
// on the first line of a Markdown document.
// Inline Markdown in the title is returned as-is.
func ExtractTitle(markdown string) (string, error) {
	line := markdown
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	const prefix = "# "
	if !strings.HasPrefix(line, prefix) {
		return "", ErrMissingTitle
	}
	return strings.TrimSpace(line[len(prefix):]), nil
}

// FillTemplate returns a copy of tmpl
// with every [TitlePlaceholder] replaced by title
// and every [ContentPlaceholder] replaced by content.
func FillTemplate(tmpl []byte, title, content string) []byte {
	r := bytereplacer.New(
		TitlePlaceholder, title,
		ContentPlaceholder, content,
	)
	return r.Replace(bytes.Clone(tmpl))
}

// Page renders a Markdown document into the given HTML template.
func Page(markdown string, tmpl []byte) ([]byte, error) {
	title, err := ExtractTitle(markdown)
	if err != nil {
		return nil, err
	}
	content, err := sitemark.RenderString(markdown)
	if err != nil {
		return nil, err
	}
	return FillTemplate(tmpl, title, content), nil
}

// Config describes the directories of a site.
type Config struct {
	// StaticDir holds files copied verbatim to OutputDir.
	StaticDir string
	// ContentDir holds the Markdown pages.
	ContentDir string
	// TemplatePath is the HTML template every page is rendered into.
	TemplatePath string
	// OutputDir receives the built site.
	// It is deleted at the start of a build.
	OutputDir string
}

// A Generator writes sites to disk.
// The zero value is ready to use.
type Generator struct {
	// Log receives a message for each file written.
	// If Log is nil, nothing is logged.
	Log logrus.FieldLogger
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func (g *Generator) log() logrus.FieldLogger {
	if g == nil || g.Log == nil {
		return discardLogger
	}
	return g.Log
}

// Build deletes cfg.OutputDir, copies the static files into it,
// and generates a page for every Markdown file in cfg.ContentDir.
func (g *Generator) Build(ctx context.Context, cfg Config) error {
	if cfg.OutputDir == "" {
		return fmt.Errorf("build site: output directory not set")
	}
	g.log().WithField("dir", cfg.OutputDir).Info("Removing output directory")
	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return fmt.Errorf("build site: %w", err)
	}
	if err := g.CopyDir(ctx, cfg.StaticDir, cfg.OutputDir); err != nil {
		return fmt.Errorf("build site: %w", err)
	}
	if err := g.GeneratePages(ctx, cfg.ContentDir, cfg.TemplatePath, cfg.OutputDir); err != nil {
		return fmt.Errorf("build site: %w", err)
	}
	return nil
}

// GeneratePage renders the Markdown file at fromPath
// into the template at templatePath
// and writes the result to destPath,
// creating any missing parent directories.
func (g *Generator) GeneratePage(fromPath, templatePath, destPath string) error {
	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("generate page: %w", err)
	}
	return g.generatePage(fromPath, tmpl, destPath)
}

func (g *Generator) generatePage(fromPath string, tmpl []byte, destPath string) error {
	markdown, err := os.ReadFile(fromPath)
	if err != nil {
		return fmt.Errorf("generate page: %w", err)
	}
	page, err := Page(string(markdown), tmpl)
	if err != nil {
		return fmt.Errorf("generate page %s: %w", fromPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("generate page %s: %w", fromPath, err)
	}
	if err := os.WriteFile(destPath, page, 0o644); err != nil {
		return fmt.Errorf("generate page %s: %w", fromPath, err)
	}
	g.log().WithFields(logrus.Fields{
		"from": fromPath,
		"to":   destPath,
		"size": humanize.Bytes(uint64(len(page))),
	}).Info("Generated page")
	return nil
}

// GeneratePages generates a page for every Markdown file under contentDir,
// mirroring the directory structure into destDir
// and replacing the ".md" extension with ".html".
// Other files are ignored.
func (g *Generator) GeneratePages(ctx context.Context, contentDir, templatePath, destDir string) error {
	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("generate pages: %w", err)
	}
	return filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("generate pages: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("generate pages: %w", err)
		}
		if d.IsDir() || filepath.Ext(path) != markdownExt {
			return nil
		}
		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return fmt.Errorf("generate pages: %w", err)
		}
		dest := filepath.Join(destDir, strings.TrimSuffix(rel, markdownExt)+htmlExt)
		return g.generatePage(path, tmpl, dest)
	})
}

// CopyDir recursively copies the files and directories in src into dst.
// Directories are created as needed and existing files are overwritten.
func (g *Generator) CopyDir(ctx context.Context, src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("copy %s: not a directory", src)
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("copy %s: %w", src, err)
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("copy %s: %w", src, err)
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("copy %s: %w", src, err)
		}
		dest := filepath.Join(dst, rel)
		if d.IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return fmt.Errorf("copy %s: %w", src, err)
			}
			return nil
		}
		n, err := copyFile(dest, path)
		if err != nil {
			return fmt.Errorf("copy %s: %w", src, err)
		}
		g.log().WithFields(logrus.Fields{
			"from": path,
			"to":   dest,
			"size": humanize.Bytes(uint64(n)),
		}).Info("Copied file")
		return nil
	})
}

// copyFile copies the regular file src to dst,
// keeping its permission bits.
func copyFile(dst, src string) (n int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return 0, err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}
	n, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return n, err
}
