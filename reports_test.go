package radmachine

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func TestListSavedReports(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/myclinic/api/reports/savedreports/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":2,"results":[
			{"url":"https://example.com/reports/savedreports/1/","title":"Weekly QA","report_type":"qa","run_report_url":"https://example.com/reports/savedreports/1/run/"},
			{"url":"https://example.com/reports/savedreports/2/","title":"Monthly Summary","report_type":"qa","run_report_url":"https://example.com/reports/savedreports/2/run/"}
		],"next":null}`)
	}))

	reports, err := client.ListSavedReports(context.Background(), nil).Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[0].Title != "Weekly QA" {
		t.Errorf("Title = %q", reports[0].Title)
	}
	if reports[1].RunReportURL != "https://example.com/reports/savedreports/2/run/" {
		t.Errorf("RunReportURL = %q", reports[1].RunReportURL)
	}
}

func TestRunSavedReport(t *testing.T) {
	pdf := []byte("%PDF-1.7 fake report body")

	mux := http.NewServeMux()
	mux.HandleFunc("/myclinic/api/reports/savedreports/1/run/", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("report_format"); got != "xlsx" {
			t.Errorf("report_format = %q, want xlsx", got)
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("filename", "weekly_qa.xlsx")
		w.Write(pdf)
	})

	var serverURL string
	client, server := newTestClient(t, mux)
	serverURL = server.URL

	saved := SavedReport{
		Title:        "Weekly QA",
		RunReportURL: serverURL + "/myclinic/api/reports/savedreports/1/run/",
	}
	report, err := client.RunSavedReport(context.Background(), saved, FormatXLSX)
	if err != nil {
		t.Fatalf("RunSavedReport() error = %v", err)
	}
	if report.Filename != "weekly_qa.xlsx" {
		t.Errorf("Filename = %q, want weekly_qa.xlsx", report.Filename)
	}
	if !bytes.Equal(report.Data, pdf) {
		t.Errorf("Data = %q", report.Data)
	}
}

func TestQASessionReport(t *testing.T) {
	var serverURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/myclinic/api/qa/testlistinstances/42/report/", func(w http.ResponseWriter, r *http.Request) {
		// Default format kicks in when none is given.
		if got := r.URL.Query().Get("report_format"); got != "pdf" {
			t.Errorf("report_format = %q, want pdf", got)
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("filename", "session_42.pdf")
		w.Write([]byte("session report"))
	})

	client, server := newTestClient(t, mux)
	serverURL = server.URL

	session := &QASession{URL: serverURL + "/myclinic/api/qa/testlistinstances/42/"}
	report, err := client.QASessionReport(context.Background(), session, "")
	if err != nil {
		t.Fatalf("QASessionReport() error = %v", err)
	}
	if report.Filename != "session_42.pdf" {
		t.Errorf("Filename = %q", report.Filename)
	}
	if string(report.Data) != "session report" {
		t.Errorf("Data = %q", report.Data)
	}
}

func TestReportWriteFile(t *testing.T) {
	dir := t.TempDir()
	report := &Report{Filename: "out.pdf", Data: []byte("contents")}

	path := filepath.Join(dir, "report.pdf")
	if err := report.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "contents" {
		t.Errorf("file contents = %q", data)
	}

	empty := &Report{Data: []byte("x")}
	if err := empty.WriteFile(""); err == nil {
		t.Error("WriteFile() with no filename should fail")
	}
}
