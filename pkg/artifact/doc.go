// Package artifact resolves the downloadable binary artifact for one
// provisioning run.
//
// Resolution has two steps: mapping the host's raw CPU architecture fact to
// the canonical tag used in upstream release file names, and templating the
// final download URL. URL templating honors the upstream release-tagging
// change at version 1.0.0, where the download path segment gained a "v"
// prefix (the file name did not). An operator-supplied explicit URL bypasses
// templating entirely and is returned verbatim.
package artifact
