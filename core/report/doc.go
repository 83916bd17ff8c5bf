// Package report turns run outcomes into operator-facing artifacts.
//
// # Components
//
//   - Sinks: Multi fans outcomes out; LogSink streams progress to the logger;
//     AuditWriter appends a CSV audit trail.
//   - CredentialPDFs: printable sheets with the login details and a QR code
//     for every account created in a run.
//   - Archiver: uploads the produced files to object storage under a per-run
//     prefix.
//
// Passwords only ever appear on the credential sheets. The audit log and the
// run history never contain them.
package report
