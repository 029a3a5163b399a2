// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the med-cms admin command-line client.
//
// [App] dispatches a subcommand (health, login, check-id, ids ...) to the
// server through an [adapter.ServerAdapter] and prints the result as
// indented JSON.
package client
