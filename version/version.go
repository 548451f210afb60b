// Package version holds the build version, set with
// -ldflags "-X github.com/JiscSD/rdss-image-archive/version.VERSION=v1.0.0".
package version

var VERSION = "(devel)"
