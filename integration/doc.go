// Package integration contains the end-to-end smoke test for the test
// generation pipeline. Tests in this package exercise the full driver over a
// real temporary project tree with deterministic stub producers standing in
// for the model service, so no network, credential, or compiler is required.
//
// Run with: go test ./integration/... -v -timeout 60s
package integration
