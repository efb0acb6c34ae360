// Package config loads pushguard configuration from local and global YAML
// files. It is internal; CLI code merges the result with flags, flags winning.
package config
