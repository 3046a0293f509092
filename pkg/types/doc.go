// Package types defines the core types and interfaces used throughout
// gitfarm. This includes the configuration data model (RepoEntry, Link,
// Category, FlagSet), the operation and outcome enumerations, and the
// Executor and Editor collaborator interfaces.
package types
