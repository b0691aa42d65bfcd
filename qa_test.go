package radmachine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestListTestInstances(t *testing.T) {
	var query string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/myclinic/api/qa/testinstances/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[
			{"value":1.002,"work_completed":"2023-04-12 10:01","skipped":false},
			{"value":0.998,"work_completed":"2023-04-11 10:01","skipped":false}
		],"next":null}`)
	}))

	filter := Filter{"skipped": "false"}.WithOrdering("-work_completed")
	results, err := client.ListTestInstances(context.Background(), filter).Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Value == nil || *results[0].Value != 1.002 {
		t.Errorf("results[0].Value = %v, want 1.002", results[0].Value)
	}
	if results[0].WorkCompleted != "2023-04-12 10:01" {
		t.Errorf("WorkCompleted = %q", results[0].WorkCompleted)
	}
	for _, param := range []string{"skipped=false", "ordering=-work_completed"} {
		if !containsParam(query, param) {
			t.Errorf("query %q missing %q", query, param)
		}
	}
}

func containsParam(rawQuery, param string) bool {
	for _, p := range strings.Split(rawQuery, "&") {
		if p == param {
			return true
		}
	}
	return false
}

func TestPerformQA(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/myclinic/api/qa/testlistinstances/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}

		var payload struct {
			UnitTestCollection string                `json:"unit_test_collection"`
			Tests              map[string]TestResult `json:"tests"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.UnitTestCollection == "" {
			t.Error("unit_test_collection missing from payload")
		}
		if got := payload.Tests["temperature"].Value; got != 22.0 {
			t.Errorf("temperature value = %v, want 22", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"url":"u","site_url":"https://x/myclinic/qa/session/7/"}`)
	})
	client, _ := newTestClient(t, mux)

	session, err := client.PerformQA(context.Background(), QASessionData{
		UnitTestCollection: client.AssignmentURL(123),
		WorkStarted:        "2023-04-12 10:00",
		WorkCompleted:      "2023-04-12 10:01",
		Tests: map[string]TestResult{
			"temperature": {Value: 22.0},
			"pressure":    {Value: 750.0},
		},
	})
	if err != nil {
		t.Fatalf("PerformQA() error = %v", err)
	}
	if session.SiteURL != "https://x/myclinic/qa/session/7/" {
		t.Errorf("SiteURL = %q", session.SiteURL)
	}
}

func TestPerformQA_Strict201(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"u"}`)) // 200, not 201
	}))

	_, err := client.PerformQA(context.Background(), QASessionData{})
	var unexpErr *UnexpectedStatusError
	if !errors.As(err, &unexpErr) {
		t.Fatalf("expected UnexpectedStatusError, got %v", err)
	}
}

func TestPerformQA_AcceptCreateOK(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"u","site_url":"s"}`))
	}), WithAcceptCreateOK())

	session, err := client.PerformQA(context.Background(), QASessionData{})
	if err != nil {
		t.Fatalf("PerformQA() error = %v", err)
	}
	if session.SiteURL != "s" {
		t.Errorf("SiteURL = %q, want s", session.SiteURL)
	}
}

func TestLatestQASession(t *testing.T) {
	var query string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":40,"results":[{"url":"u","work_completed":"2023-04-12 10:01"}],"next":"ignored"}`)
	}))

	session, err := client.LatestQASession(context.Background(), nil)
	if err != nil {
		t.Fatalf("LatestQASession() error = %v", err)
	}
	if session.WorkCompleted != "2023-04-12 10:01" {
		t.Errorf("WorkCompleted = %q", session.WorkCompleted)
	}
	for _, param := range []string{"ordering=-work_completed", "limit=1"} {
		if !containsParam(query, param) {
			t.Errorf("query %q missing %q", query, param)
		}
	}
}

func TestLatestQASession_NoResult(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":0,"results":[],"next":null}`)
	}))

	_, err := client.LatestQASession(context.Background(), nil)
	if !errors.Is(err, ErrNoResult) {
		t.Errorf("err = %v, want ErrNoResult", err)
	}
}

func TestGetAssignmentAndTestList(t *testing.T) {
	var serverURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/myclinic/api/qa/unittestcollections/123/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"url":"%s/myclinic/api/qa/unittestcollections/123/","tests_object":"%s/myclinic/api/qa/testlists/55/"}`,
			serverURL, serverURL)
	})
	mux.HandleFunc("/myclinic/api/qa/testlists-details/55/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"name":"Monthly Output","tests":[
			{"name":"Temperature","slug":"temperature","type":"simple"},
			{"name":"Ktp","slug":"ktp","type":"composite"}
		]}`)
	})
	client, server := newTestClient(t, mux)
	serverURL = server.URL

	ctx := context.Background()

	assignment, err := client.GetAssignment(ctx, 123)
	if err != nil {
		t.Fatalf("GetAssignment() error = %v", err)
	}
	if assignment.TestsObject == "" {
		t.Error("TestsObject is empty")
	}

	testList, err := client.GetTestListDetails(ctx, 55)
	if err != nil {
		t.Fatalf("GetTestListDetails() error = %v", err)
	}
	if len(testList.Tests) != 2 {
		t.Fatalf("got %d tests, want 2", len(testList.Tests))
	}
	if testList.Tests[1].Slug != "ktp" || testList.Tests[1].Type != "composite" {
		t.Errorf("tests[1] = %+v", testList.Tests[1])
	}
}
