// Package tvimport normalizes brokerage trade transactions, parsed from OFX
// statements, into the canonical execution records the Tradervue bulk import
// API expects.
//
// The heart of the package is the transformation from Transaction to
// Execution: OCC option symbol decoding, per-institution trade timestamp
// correction, index ticker remapping and mini-option detection. Everything
// around it (OFX parsing, credential storage, the HTTP upload, the console
// output) is thin glue living in the subpackages and the cmd tool.
package tvimport
