// Package alerts materializes declared alert-rule sets as independent rule
// files under the daemon's rules directory.
package alerts
