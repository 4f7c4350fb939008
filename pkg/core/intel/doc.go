// Package intel scores artifact versions for stability and fuses the score
// with vulnerability data into a single safety verdict.
//
// The stability side is pure: [Grade] and [Score] depend only on the version
// string, the release flag, the publication time and the current time. The
// security side asks a [Feed] for advisories and condenses them into a
// [Report]. [Safety] combines both, vulnerabilities first.
//
// A feed that is unreachable or returns an error yields a clean report; the
// failure is logged and never reaches the caller.
package intel
