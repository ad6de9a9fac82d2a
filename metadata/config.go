///////////////////////////////////////////////////////////////////////////////////////////////////
//                                                                                               //
//                                                                                               //
//         oooooo   oooooo     oooo           oooooo   oooooo     oooo         .o8               //
//          `888.    `888.     .8'             `888.    `888.     .8'         "888               //
//           `888.   .8888.   .8' oooo    ooo   `888.   .8888.   .8' .ooooo.   888oooo.          //
//            `888  .8'`888. .8'   `88.  .8'     `888  .8'`888. .8' d88' `88b  d88' `88b         //
//             `888.8'  `888.8'     `88..8'       `888.8'  `888.8'  888ooo888  888   888         //
//              `888'    `888'       `888'         `888'    `888'   888    .o  888   888         //
//               `8'      `8'         .8'           `8'      `8'    `Y8bod8P'  `Y8bod8P'         //
//                                .o..P'                                                         //
//                                `Y8P'                                                          //
//                                                                                               //
//                                                                                               //
//                              Copyright (C) 2024  Wyatt Sheffield                              //
//                                                                                               //
//                 This program is free software: you can redistribute it and/or                 //
//                 modify it under the terms of the GNU General Public License as                //
//                 published by the Free Software Foundation, either version 3 of                //
//                      the License, or (at your option) any later version.                      //
//                                                                                               //
//                This program is distributed in the hope that it will be useful,                //
//                 but WITHOUT ANY WARRANTY; without even the implied warranty of                //
//                 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the                 //
//                          GNU General Public License for more details.                         //
//                                                                                               //
//                   You should have received a copy of the GNU General Public                   //
//                         License along with this program.  If not, see                         //
//                                <https://www.gnu.org/licenses/>.                               //
//                                                                                               //
//                                                                                               //
///////////////////////////////////////////////////////////////////////////////////////////////////

package metadata

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up when ReadConfig is handed a directory.
const ConfigFileName = "slackmark.yaml"

type CheckboxGlyphs struct {
	Checked   string `yaml:"checked,omitempty"`
	Unchecked string `yaml:"unchecked,omitempty"`
}

type Config struct {
	Checkbox         CheckboxGlyphs `yaml:"checkbox,omitempty"`
	MaxDepth         int            `yaml:"max_depth,omitempty"`
	BlockLimit       int            `yaml:"block_limit,omitempty"`
	MaxInputBytes    int            `yaml:"max_input_bytes,omitempty"`
	BaseURL          string         `yaml:"base_url,omitempty"`
	FileExtensions   []string       `yaml:"file_extensions,omitempty"`
	TableOfContents  bool           `yaml:"table_of_contents,omitempty"`
	FrontMatterTitle bool           `yaml:"front_matter_title,omitempty"`
	PreviewLength    int            `yaml:"preview_length,omitempty"`
}

func Default() Config {
	return Config{
		Checkbox: CheckboxGlyphs{
			Checked:   "✅",
			Unchecked: "☐",
		},
		MaxDepth:         50,
		BlockLimit:       50,
		MaxInputBytes:    100000,
		FrontMatterTitle: true,
		PreviewLength:    150,
	}
}

// UnmarshalYAML decodes on top of Default so that omitted keys keep their
// default values. The document may carry a !slackmark tag.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	switch tag := strings.ToLower(node.Tag); tag {
	case "", "!!map", "!slackmark":
	default:
		return fmt.Errorf("unknown tag: %s", node.Tag)
	}
	type plain Config
	out := plain(Default())
	if err := node.Decode(&out); err != nil {
		return err
	}
	*c = Config(out)
	return c.Validate()
}

func (c *Config) Validate() error {
	var errs []error
	if c.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth))
	}
	if c.BlockLimit < 1 {
		errs = append(errs, fmt.Errorf("block_limit must be positive, got %d", c.BlockLimit))
	}
	if c.MaxInputBytes < 1 {
		errs = append(errs, fmt.Errorf("max_input_bytes must be positive, got %d", c.MaxInputBytes))
	}
	if c.PreviewLength < 0 {
		errs = append(errs, fmt.Errorf("preview_length must not be negative, got %d", c.PreviewLength))
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			errs = append(errs, fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL))
		}
	}
	for i, ext := range c.FileExtensions {
		c.FileExtensions[i] = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	}
	return errors.Join(errs...)
}

// ReadConfig reads a config file, or ConfigFileName inside a directory.
func ReadConfig(path string) (*Config, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	filename := path
	if stat.IsDir() {
		filename = filepath.Join(path, ConfigFileName)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data, filename)
}

func ParseConfig(data []byte, name string) (*Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return &cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Printf("WARN: could not read configuration %s\n", name)
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &cfg, nil
}
