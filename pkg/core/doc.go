// Package core defines the shared language of the leapaudit system.
//
// This package contains:
//   - Domain values (Category, Verdict, Example, Match)
//   - Configuration types shared by stores and embedders (TargetConfig, EmbeddingConfig)
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
