// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when no HTTP address is
// configured. The application cannot serve anything then, so startup fails.
var errNoHandlersAreCreated = errors.New("no handlers are created")
