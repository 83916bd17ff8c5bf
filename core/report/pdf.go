package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"nc-usersync/core/sync"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
)

// loginURI builds the payload understood by the Nextcloud mobile apps, which
// log the user in directly when the QR code is scanned.
func loginURI(username, password, serverURL string) string {
	return fmt.Sprintf("nc://login/user:%s&password:%s&server:%s", username, password, serverURL)
}

// CredentialPDFs writes credential sheets for every account created in this
// run and returns the paths written. Depending on the configuration this is a
// single combined document or one file per account.
func CredentialPDFs(outcomes []sync.Outcome, serverURL string, cfg Config, now time.Time) ([]string, error) {
	var created []sync.Outcome
	for _, o := range outcomes {
		if o.Op == sync.OpCreate && o.Success && o.Password != "" {
			created = append(created, o)
		}
	}
	if len(created) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if cfg.PDFPerUser {
		paths := make([]string, 0, len(created))
		for _, o := range created {
			pdf := newSheet()
			if err := addCredentialPage(pdf, o, serverURL, cfg.QRCodes); err != nil {
				return nil, err
			}
			path := filepath.Join(cfg.OutputDir, fmt.Sprintf("credentials-%s.pdf", o.Username))
			if err := pdf.OutputFileAndClose(path); err != nil {
				return nil, fmt.Errorf("failed to write credential sheet for %s: %w", o.Username, err)
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	pdf := newSheet()
	for _, o := range created {
		if err := addCredentialPage(pdf, o, serverURL, cfg.QRCodes); err != nil {
			return nil, err
		}
	}
	path := filepath.Join(cfg.OutputDir, fmt.Sprintf("credentials-%s.pdf", now.Format("2006-01-02-150405")))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return nil, fmt.Errorf("failed to write credential sheets: %w", err)
	}
	return []string{path}, nil
}

func newSheet() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Account credentials", false)
	return pdf
}

// addCredentialPage renders one page with the login details of a single
// account and, optionally, a QR code that logs the user in when scanned.
func addCredentialPage(pdf *fpdf.Fpdf, o sync.Outcome, serverURL string, withQR bool) error {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Your new account", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	name := o.DisplayName
	if name == "" {
		name = o.Username
	}
	pdf.CellFormat(0, 8, fmt.Sprintf("Hello %s,", name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "an account has been created for you. Your login details:", "", 1, "L", false, 0, "")
	pdf.Ln(6)

	rows := [][2]string{
		{"Server", serverURL},
		{"Username", o.Username},
		{"Password", o.Password},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(35, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Courier", "", 12)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Please change your password after the first login.", "", 1, "L", false, 0, "")

	if !withQR {
		return nil
	}

	png, err := qrcode.Encode(loginURI(o.Username, o.Password, serverURL), qrcode.Medium, 512)
	if err != nil {
		return fmt.Errorf("failed to encode login QR code for %s: %w", o.Username, err)
	}

	imageName := "qr-" + o.Username
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(png))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Or scan this code with the mobile app to log in directly:", "", 1, "L", false, 0, "")
	pdf.ImageOptions(imageName, 15, pdf.GetY()+4, 60, 60, false, opts, 0, "")

	return pdf.Error()
}
