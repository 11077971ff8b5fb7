// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the Staffdeck
// client.
//
// Configuration is loaded from a single file specified by either the
// STAFFDECK_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). Unlike a server deployment, a client must
// work with zero setup, so an unset STAFFDECK_CONFIG yields the
// defaults rather than an error: localhost backend, page size ten,
// permanent deletion.
//
// The configuration file supports environment-specific sections
// (development, staging, production) that override base values when
// [Config].Environment matches.
//
// Variable expansion is performed after loading: ${HOME} and
// ${VAR:-default} patterns are expanded in the backend URL and the
// session file path. No other environment variables override config
// values.
//
// Key exports:
//
//   - [Config] -- master struct with Backend, Admin, Session
//   - [Default] -- returns a Config usable with no file at all
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other Staffdeck packages.
package config
