// Package engine contains the core scanning logic for pushguard. It walks a
// directory tree under a fixed exclusion policy, matches the detector
// catalogue against each eligible file and returns structured findings. This
// package is internal; external consumers should use the facade in pkg/core.
package engine
