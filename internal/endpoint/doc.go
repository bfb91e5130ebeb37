// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package endpoint provides the HTTP client for the completion service.
//
// The service exposes a single operation:
//
//	POST {base}/api/chat
//	{"conversation":[{"role":"user","text":"..."}, ...]}
//
// and answers with {"result":"..."}. The whole conversation is sent on every
// call, oldest turn first. The client makes exactly one attempt per call;
// there is no retry or backoff.
//
// # Usage
//
//	c := endpoint.NewClient("http://127.0.0.1:3000")
//	reply, err := c.Complete(ctx, sess.Snapshot())
//	if err != nil {
//	    // transport failure or non-2xx status
//	}
//	if reply.Result == "" {
//	    // reached the service but it had nothing to say
//	}
package endpoint
