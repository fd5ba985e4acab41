// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads cmd/ entrypoint configuration. The core library
// (address, selection, essence, unlock, secretmanager, ledger) never reads
// this package directly; it is wired through constructor arguments instead.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Debug   DebugConfig   `yaml:"debug"`
	Node    NodeConfig    `yaml:"node"`
	Storage StorageConfig `yaml:"storage"`
	Wallet  WalletConfig  `yaml:"wallet"`
	Network string        `yaml:"network" envconfig:"NETWORK"`
}

type LoggingConfig struct {
	Level string `yaml:"level" envconfig:"LOGGING_LEVEL"`
}

type DebugConfig struct {
	ListenAddress string `yaml:"address" envconfig:"DEBUG_ADDRESS"`
	ListenPort    uint   `yaml:"port"    envconfig:"DEBUG_PORT"`
}

// NodeConfig describes how to reach the out-of-scope node/indexer REST
// collaborator consumed by the nodeview package.
type NodeConfig struct {
	IndexerUrl string `yaml:"indexerUrl" envconfig:"INDEXER_URL"`
	CoreUrl    string `yaml:"coreUrl"    envconfig:"CORE_URL"`
}

type StorageConfig struct {
	// Directory holds the local badger cache (nodeview/cache) and, when
	// used, the secure-enclave secret manager snapshot.
	Directory string `yaml:"dir" envconfig:"STORAGE_DIR"`
}

// WalletConfig's Mnemonic field exists only for example/test flows, per
// spec.md §6 — production callers supply a secretmanager.SecretManager
// constructed from their own key material.
type WalletConfig struct {
	Mnemonic string `yaml:"mnemonic" envconfig:"MNEMONIC"`
}

// Singleton config instance with default values
var globalConfig = &Config{
	Network: "mainnet",
	Logging: LoggingConfig{
		Level: "info",
	},
	Debug: DebugConfig{
		ListenAddress: "localhost",
		ListenPort:    0,
	},
	Storage: StorageConfig{
		Directory: "./.meshledger",
	},
	Node: NodeConfig{
		IndexerUrl: "http://localhost:14265/api/indexer/v1",
		CoreUrl:    "http://localhost:14265/api/core/v2",
	},
}

func Load(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %s", err)
		}
		if err := yaml.Unmarshal(buf, globalConfig); err != nil {
			return nil, fmt.Errorf("error parsing config file: %s", err)
		}
	}
	// Load config values from environment variables
	// We use "dummy" as the app name here to (mostly) prevent picking up env
	// vars that we hadn't explicitly specified in annotations above
	if err := envconfig.Process("dummy", globalConfig); err != nil {
		return nil, fmt.Errorf("error processing environment: %s", err)
	}
	return globalConfig, nil
}

// Return global config instance
func GetConfig() *Config {
	return globalConfig
}
