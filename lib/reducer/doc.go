// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package reducer normalizes arbitrary tool-call outputs to a {text,
// structured} pair, trims the structured half by depth/keys/items, and
// truncates the text half by a UTF-8-safe byte budget. It is stateless:
// every call to Reduce depends only on its arguments.
package reducer
