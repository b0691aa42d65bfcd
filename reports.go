package radmachine

import (
	"context"
	"errors"
	"os"
	"strings"
)

// Report formats accepted by the report endpoints.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// SavedReport is a server-side precomputed report definition, created
// through the web UI and runnable via the API.
type SavedReport struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	ReportType   string `json:"report_type"`
	RunReportURL string `json:"run_report_url"`
}

// ListSavedReports iterates the account's saved report definitions.
func (c *Client) ListSavedReports(ctx context.Context, filter Filter) *Iter[SavedReport] {
	return listAs[SavedReport](c, ctx, "reports/savedreports/", filter)
}

// Report is a generated report document. Filename comes from the
// server's filename header.
type Report struct {
	Filename string
	Data     []byte
}

// WriteFile saves the report to path, or to the server-provided
// filename in the current directory when path is empty.
func (r *Report) WriteFile(path string) error {
	if path == "" {
		path = r.Filename
	}
	if path == "" {
		return errors.New("report has no filename")
	}
	return os.WriteFile(path, r.Data, 0644)
}

// RunSavedReport generates a saved report in the given format and
// downloads the result.
func (c *Client) RunSavedReport(ctx context.Context, report SavedReport, format string) (*Report, error) {
	return c.downloadReport(ctx, report.RunReportURL, format)
}

// QASessionReport generates and downloads the report for a specific QA
// session.
func (c *Client) QASessionReport(ctx context.Context, session *QASession, format string) (*Report, error) {
	ref := strings.TrimRight(session.URL, "/") + "/report/"
	return c.downloadReport(ctx, ref, format)
}

func (c *Client) downloadReport(ctx context.Context, ref, format string) (*Report, error) {
	if format == "" {
		format = FormatPDF
	}
	att, err := c.api.Download(ctx, ref, Filter{"report_format": format}.query())
	if err != nil {
		return nil, err
	}
	return &Report{Filename: att.Filename, Data: att.Data}, nil
}
