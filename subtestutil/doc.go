/*
Package subtestutil holds small assertion helpers shared by the format
packages' test suites, mostly around the recurring "parse, serialize,
reparse, compare" round-trip shape every format test exercises.
*/
package subtestutil
