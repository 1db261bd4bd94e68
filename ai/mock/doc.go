// Package mock provides test doubles for the ai interfaces.
// Defaults are deterministic so tests stay reproducible; behavior can be
// overridden per-test through the exported function fields.
package mock
