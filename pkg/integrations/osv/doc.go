// Package osv provides a client for the OSV vulnerability database
// (https://osv.dev).
//
// [Client] implements the intelligence engine's vulnerability feed: given an
// ecosystem, a package name and an exact version it returns the advisories
// affecting that version, following next_page_token pagination.
//
//	client := osv.NewClient(c, osv.Config{})
//	advisories, err := client.Query(ctx, "Maven", "org.apache.logging.log4j:log4j-core", "2.14.1")
//
// Severity comes from a numeric CVSS score when the record carries one and
// from database_specific.severity otherwise; CVSS vectors are kept verbatim
// but not scored. Responses are cached for cache.TTLVulnerabilities.
package osv
