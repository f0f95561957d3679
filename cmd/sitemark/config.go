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

package main

import (
	"encoding/json"
	"io/fs"
	"os"

	"github.com/pkg/errors"
	"zombiezen.com/go/sitemark/site"
)

// defaultConfigPath is read when no -config flag is given.
// It is not an error for it to be missing.
const defaultConfigPath = "sitemark.json"

type configuration struct {
	Static   string `json:"static"`
	Content  string `json:"content"`
	Template string `json:"template"`
	Output   string `json:"output"`
}

func defaultConfig() configuration {
	return configuration{
		Static:   "static",
		Content:  "content",
		Template: "template.html",
		Output:   "public",
	}
}

// configFromBytes parses a JSON configuration.
// Fields absent from the input keep their default values.
func configFromBytes(data []byte) (configuration, error) {
	config := defaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return configuration{}, errors.Wrap(err, "could not parse config")
	}
	return config, nil
}

// loadConfig reads the configuration file at path.
// An empty path reads defaultConfigPath if it exists
// and otherwise returns the default configuration.
func loadConfig(path string) (configuration, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	fileBytes, err := os.ReadFile(path)
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil
	}
	if err != nil {
		return configuration{}, errors.Wrap(err, "could not open config")
	}
	config, err := configFromBytes(fileBytes)
	if err != nil {
		return configuration{}, errors.Wrap(err, path)
	}
	return config, nil
}

func (config configuration) site() site.Config {
	return site.Config{
		StaticDir:    config.Static,
		ContentDir:   config.Content,
		TemplatePath: config.Template,
		OutputDir:    config.Output,
	}
}
