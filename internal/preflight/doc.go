// Package preflight provides readiness checks for the upload server and the
// filesystem paths a batch depends on.
//
// The CLI "batch-upload check" command runs RunAll and renders the results
// as a table. Individual checks are usable on their own; none of them
// modify state.
package preflight
