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

package slackmark

import (
	"slices"

	"slackmark.site/slackmark/metadata"
	"slackmark.site/slackmark/util"
)

// Options control a single conversion. The zero value of a numeric field
// means "use the default".
type Options struct {
	// Checkbox returns the glyph placed before a task list item.
	Checkbox         func(checked bool) string
	MaxDepth         int
	BlockLimit       int
	MaxInputBytes    int
	BaseURL          string
	FileExtensions   []string
	TableOfContents  bool
	FrontMatterTitle bool
	PreviewLength    int
}

func DefaultOptions() Options {
	return OptionsFromConfig(nil)
}

// OptionsFromConfig maps a configuration file onto Options. A nil config
// yields the defaults.
func OptionsFromConfig(cfg *metadata.Config) Options {
	if cfg == nil {
		def := metadata.Default()
		cfg = &def
	}
	checked, unchecked := cfg.Checkbox.Checked, cfg.Checkbox.Unchecked
	return Options{
		Checkbox: func(c bool) string {
			if c {
				return checked
			}
			return unchecked
		},
		MaxDepth:         cfg.MaxDepth,
		BlockLimit:       cfg.BlockLimit,
		MaxInputBytes:    cfg.MaxInputBytes,
		BaseURL:          cfg.BaseURL,
		FileExtensions:   slices.Clone(cfg.FileExtensions),
		TableOfContents:  cfg.TableOfContents,
		FrontMatterTitle: cfg.FrontMatterTitle,
		PreviewLength:    cfg.PreviewLength,
	}
}

func (o Options) withDefaults() Options {
	def := metadata.Default()
	if o.MaxDepth <= 0 {
		o.MaxDepth = def.MaxDepth
	}
	if o.BlockLimit <= 0 {
		o.BlockLimit = def.BlockLimit
	}
	if o.MaxInputBytes <= 0 {
		o.MaxInputBytes = def.MaxInputBytes
	}
	if o.PreviewLength <= 0 {
		o.PreviewLength = def.PreviewLength
	}
	return o
}

func (o Options) checkbox(checked bool) string {
	if o.Checkbox != nil {
		return o.Checkbox(checked)
	}
	def := metadata.Default()
	if checked {
		return def.Checkbox.Checked
	}
	return def.Checkbox.Unchecked
}

func (o Options) fileExtensions() []string {
	return util.ConcatUnique(defaultFileExtensions, o.FileExtensions)
}
