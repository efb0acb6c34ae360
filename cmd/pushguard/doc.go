// Package pushguard implements the pushguard command line: a pre-publish
// check that scans a source tree for likely secrets and reviews basic
// repository hygiene before anything is committed or pushed.
//
// Exit codes: 0 when the scan and the hygiene checks pass, 1 when findings
// remain or a hygiene check fails, 2 on usage or fatal errors such as a
// missing root or a malformed config file.
package pushguard
