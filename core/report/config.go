package report

// Config holds configuration for the reports written after a run.
type Config struct {
	// OutputDir receives the audit log and credential PDFs.
	OutputDir string `mapstructure:"output_dir" default:"output"`
	// PDF enables credential sheet generation for newly created accounts.
	PDF bool `mapstructure:"pdf" default:"true"`
	// PDFPerUser writes one PDF per created account instead of a single
	// combined document.
	PDFPerUser bool `mapstructure:"pdf_per_user" default:"false"`
	// QRCodes embeds a login QR code on each credential sheet.
	QRCodes bool `mapstructure:"qr_codes" default:"true"`
}
