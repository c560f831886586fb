// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the chatbot client.
//
// Configuration lives in ~/.chatbot/config.toml. A missing file is fine;
// built-in defaults target the development backend on localhost.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CHATBOT_*)
//   - ~/.chatbot/config.toml
//   - Built-in defaults
//
// Watch provides live reload: edits to the config file are debounced,
// re-loaded, and delivered on a channel so the running UI can pick up a
// backend or theme switch without restarting.
package config
