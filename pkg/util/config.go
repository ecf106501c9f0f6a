// Copyright 2023-2024 daviszhen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import "github.com/BurntSushi/toml"

// TableOptions sizes the hash table the driver constructs.
type TableOptions struct {
	InitialCapacity int     `toml:"initial_capacity"`
	LoadFactor      float64 `toml:"load_factor"`
}

// DebugOptions controls the driver's diagnostic output, not the table.
type DebugOptions struct {
	PrintLayout  bool   `toml:"print_layout"`
	PrintResult  bool   `toml:"print_result"`
	LogLevel     string `toml:"log_level"`
	MaxPrintRows int    `toml:"max_print_rows"`
}

type Config struct {
	Table TableOptions `toml:"table"`
	Debug DebugOptions `toml:"debug"`
}

// DefaultConfig mirrors the values cmd/aggbench falls back to when no
// config file is present.
func DefaultConfig() Config {
	return Config{
		Table: TableOptions{
			InitialCapacity: 1024,
			LoadFactor:      0.5,
		},
		Debug: DebugOptions{
			PrintLayout:  true,
			PrintResult:  true,
			LogLevel:     "info",
			MaxPrintRows: 20,
		},
	}
}

// LoadConfig decodes path into a Config, starting from DefaultConfig so an
// incomplete file still yields sane values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if !FileIsValid(path) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
