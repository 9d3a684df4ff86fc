// Package infra contains technical adapters such as the CSV loader
// and the logging backend. These packages should depend only on the
// types defined in the core packages.
package infra
