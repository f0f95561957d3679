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

// sitemark builds a static website from Markdown files.
//
// Usage:
//
//	sitemark build [-config FILE] [-static DIR] [-content DIR] [-template FILE] [-output DIR] [-v]
//	sitemark render [FILE]
//
// The build command deletes the output directory,
// copies the static directory into it,
// and renders every Markdown file in the content directory
// into the HTML template.
// Settings are read from a JSON file (sitemark.json by default)
// and may be overridden by flags.
//
// The render command converts a single Markdown document
// read from FILE or standard input
// and writes the HTML to standard output.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"zombiezen.com/go/sitemark"
	"zombiezen.com/go/sitemark/site"
)

const usageText = `usage: sitemark build [-config FILE] [-static DIR] [-content DIR] [-template FILE] [-output DIR] [-v]
       sitemark render [FILE]
`

// errUsage is returned for bad command-line arguments.
var errUsage = errors.New("usage error")

func main() {
	log := logrus.New()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, log, os.Args[1:], os.Stdin, os.Stdout)
	cancel()
	switch {
	case err == nil || errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		fmt.Fprintf(os.Stderr, "sitemark: %v\n%s", err, usageText)
		os.Exit(2)
	default:
		log.Fatal(err)
	}
}

func run(ctx context.Context, log *logrus.Logger, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.Wrap(errUsage, "missing command")
	}
	switch cmd, args := args[0], args[1:]; cmd {
	case "build":
		return runBuild(ctx, log, args)
	case "render":
		return runRender(args, stdin, stdout)
	case "help", "-h", "-help", "--help":
		_, err := io.WriteString(stdout, usageText)
		return err
	default:
		return errors.Wrapf(errUsage, "unknown command %q", cmd)
	}
}

func runBuild(ctx context.Context, log *logrus.Logger, args []string) error {
	flags := flag.NewFlagSet("sitemark build", flag.ContinueOnError)
	configPath := flags.String("config", "", "JSON configuration `file` (default "+defaultConfigPath+" if present)")
	static := flags.String("static", "", "`dir`ectory of files copied as-is")
	content := flags.String("content", "", "`dir`ectory of Markdown pages")
	template := flags.String("template", "", "HTML template `file`")
	output := flags.String("output", "", "output `dir`ectory")
	verbose := flags.Bool("v", false, "log every file written")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() > 0 {
		return errors.Wrapf(errUsage, "build: unexpected argument %q", flags.Arg(0))
	}

	config, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "static":
			config.Static = *static
		case "content":
			config.Content = *content
		case "template":
			config.Template = *template
		case "output":
			config.Output = *output
		}
	})

	if *verbose {
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	start := time.Now()
	g := &site.Generator{Log: log}
	if err := g.Build(ctx, config.site()); err != nil {
		return errors.Wrap(err, "build")
	}
	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("Build finished")
	return nil
}

func runRender(args []string, stdin io.Reader, stdout io.Writer) error {
	flags := flag.NewFlagSet("sitemark render", flag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}
	var markdown []byte
	var err error
	switch flags.NArg() {
	case 0:
		markdown, err = io.ReadAll(stdin)
	case 1:
		markdown, err = os.ReadFile(flags.Arg(0))
	default:
		return errors.Wrap(errUsage, "render: too many arguments")
	}
	if err != nil {
		return errors.Wrap(err, "render")
	}
	if err := sitemark.RenderHTML(stdout, string(markdown)); err != nil {
		return errors.Wrap(err, "render")
	}
	if _, err := io.WriteString(stdout, "\n"); err != nil {
		return errors.Wrap(err, "render")
	}
	return nil
}
