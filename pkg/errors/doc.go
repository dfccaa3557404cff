// Package errors provides structured error types shared across the
// provisioning pipeline.
//
// Every failure mode the pipeline can surface before or during orchestration
// carries an ErrorCode so that callers can branch on the class of failure
// without string matching. StructuredError supports errors.Is/errors.As via
// Unwrap, so wrapped causes remain inspectable.
//
// Example:
//
//	if err := run(spec); errors.HasCode(err, errors.ErrCodeStageFailure) {
//	    // a stage failed mid-chain; converged-so-far state was left in place
//	}
package errors
