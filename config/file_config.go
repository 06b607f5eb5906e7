// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package config

import (
	"fmt"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"io/ioutil"
	"os"
	"strconv"
	"strings"
	"time"
)

const ENV_PREFIX = "COUNTER_"

func convertKeyName(key string) string {
	return strings.ToUpper(strings.Replace(key, "-", "_", -1))
}

func modifyFromJson(cfg mutableNodeConfig, source string) error {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(source), &data); err != nil {
		return err
	}

	return populateConfig(cfg, data)
}

func populateConfig(cfg mutableNodeConfig, data map[string]interface{}) error {
	for key, value := range data {
		name := convertKeyName(key)
		kind, known := keyKinds[name]
		if !known {
			return fmt.Errorf("unknown config key %s", key)
		}

		switch v := value.(type) {
		case bool:
			if kind != KIND_BOOL {
				return fmt.Errorf("could not decode value for config key %s: unexpected bool", key)
			}
			cfg.SetBool(name, v)
		case float64:
			if kind != KIND_UINT32 || v < 0 || v != float64(uint32(v)) {
				return fmt.Errorf("could not decode value for config key %s: %v is not a uint32", key, v)
			}
			cfg.SetUint32(name, uint32(v))
		case string:
			switch kind {
			case KIND_STRING:
				cfg.SetString(name, v)
			case KIND_DURATION:
				duration, err := time.ParseDuration(v)
				if err != nil {
					return errors.Wrapf(err, "could not decode duration for config key %s", key)
				}
				cfg.SetDuration(name, duration)
			default:
				return fmt.Errorf("could not decode value for config key %s: unexpected string", key)
			}
		default:
			return fmt.Errorf("could not decode value for config key %s: unsupported type %T", key, value)
		}
	}

	return nil
}

// modifyFromEnvironment applies COUNTER_<KEY> variables on top of the file config, decoding each by the
// declared kind of its key
func modifyFromEnvironment(cfg mutableNodeConfig, environ []string) error {
	for _, entry := range environ {
		pair := strings.SplitN(entry, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], ENV_PREFIX) {
			continue
		}
		key := convertKeyName(strings.TrimPrefix(pair[0], ENV_PREFIX))
		raw := pair[1]

		kind, known := keyKinds[key]
		if !known {
			return errors.Errorf("unknown config key %s in environment variable %s", key, pair[0])
		}

		switch kind {
		case KIND_DURATION:
			d, err := time.ParseDuration(raw)
			if err != nil {
				return errors.Wrapf(err, "could not decode duration for config key %s", key)
			}
			cfg.SetDuration(key, d)
		case KIND_UINT32:
			n, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return errors.Wrapf(err, "could not decode uint32 for config key %s", key)
			}
			cfg.SetUint32(key, uint32(n))
		case KIND_STRING:
			cfg.SetString(key, raw)
		case KIND_BOOL:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return errors.Wrapf(err, "could not decode bool for config key %s", key)
			}
			cfg.SetBool(key, b)
		}
	}
	return nil
}

// For main reading several files into one config

type FilesPaths []string

func (i *FilesPaths) String() string {
	return strings.Join(*i, ",")
}

func (i *FilesPaths) Set(value string) error {
	*i = append(*i, value)
	return nil
}

// GetNodeConfigFromFiles layers production defaults, then each json file in order, then an optional .env file
// and the process environment. A non-empty httpAddress wins over all of them.
func GetNodeConfigFromFiles(configFiles FilesPaths, envFile string, httpAddress string) (NodeConfig, error) {
	cfg := defaultProductionConfig().(*config)

	for _, configFile := range configFiles {
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			return nil, errors.Errorf("could not open config file: %s", err)
		}

		contents, err := ioutil.ReadFile(configFile)
		if err != nil {
			return nil, err
		}

		if err := modifyFromJson(cfg, string(contents)); err != nil {
			return nil, errors.Wrapf(err, "failed parsing config file %s", configFile)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed loading env file %s", envFile)
		}
	}

	if err := modifyFromEnvironment(cfg, os.Environ()); err != nil {
		return nil, err
	}

	if httpAddress != "" {
		cfg.SetString(HTTP_ADDRESS, httpAddress)
	}

	return cfg, nil
}
