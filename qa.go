package radmachine

import (
	"context"
	"encoding/json"
	"fmt"
)

// TestInstance is one recorded result of a single test.
type TestInstance struct {
	URL           string   `json:"url"`
	Value         *float64 `json:"value"`
	StringValue   string   `json:"string_value"`
	Skipped       bool     `json:"skipped"`
	Comment       string   `json:"comment"`
	WorkStarted   string   `json:"work_started"`
	WorkCompleted string   `json:"work_completed"`
	UnitTestInfo  string   `json:"unit_test_info"`
}

// ListTestInstances iterates recorded test results. Filters pass
// through to the API, e.g.
//
//	radmachine.Filter{
//	    "unit_test_info__unit__name": "TrueBeam 1",
//	    "unit_test_info__test__name": "Measured Dose (cGy) :: 6MV",
//	    "skipped":                    "false",
//	}.WithOrdering("-work_completed")
func (c *Client) ListTestInstances(ctx context.Context, filter Filter) *Iter[TestInstance] {
	return listAs[TestInstance](c, ctx, "qa/testinstances/", filter)
}

// TestResult is the caller-supplied value for one test when performing
// QA. Calculated tests are omitted; the server computes them. Upload
// tests carry Filename, Encoding and an encoded Value (see FileUpload).
type TestResult struct {
	Value    any    `json:"value,omitempty"`
	Filename string `json:"filename,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	Comment  string `json:"comment,omitempty"`
	Skipped  bool   `json:"skipped,omitempty"`
}

// QASessionData is the payload for performing a test list. The server
// calls QA sessions "test list instances" and assignments "unit test
// collections"; UnitTestCollection is the assignment's resource URL
// (see AssignmentURL). Work timestamps use the server's "2006-01-02
// 15:04" convention.
type QASessionData struct {
	UnitTestCollection string                `json:"unit_test_collection"`
	WorkStarted        string                `json:"work_started"`
	WorkCompleted      string                `json:"work_completed"`
	Tests              map[string]TestResult `json:"tests"`
	Comment            string                `json:"comment,omitempty"`
	InProgress         bool                  `json:"in_progress,omitempty"`
}

// QASession is a performed test list instance.
type QASession struct {
	URL           string `json:"url"`
	SiteURL       string `json:"site_url"`
	UnitTestColl  string `json:"unit_test_collection"`
	WorkStarted   string `json:"work_started"`
	WorkCompleted string `json:"work_completed"`
	Comment       string `json:"comment"`
}

// PerformQA creates a QA session for an assignment. The server signals
// success with 201; see WithAcceptCreateOK for endpoints that reply 200.
func (c *Client) PerformQA(ctx context.Context, data QASessionData) (*QASession, error) {
	raw, err := c.api.Create(ctx, "qa/testlistinstances/", data)
	if err != nil {
		return nil, err
	}
	var session QASession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetQASession fetches a QA session by its resource URL or by a path
// like "qa/testlistinstances/123/".
func (c *Client) GetQASession(ctx context.Context, ref string) (*QASession, error) {
	return getAs[QASession](c, ctx, ref, nil)
}

// LatestQASession returns the most recently completed QA session
// matching the filter, or ErrNoResult.
func (c *Client) LatestQASession(ctx context.Context, filter Filter) (*QASession, error) {
	query := filter.WithOrdering("-work_completed").query()
	query.Set("limit", "1")
	return firstAs[QASession](c, ctx, "qa/testlistinstances/", query)
}

// Assignment is a test list assigned to a unit (a "unit test
// collection" in API terms).
type Assignment struct {
	URL         string `json:"url"`
	Unit        string `json:"unit"`
	TestsObject string `json:"tests_object"`
	Frequency   string `json:"frequency"`
	Active      bool   `json:"active"`
}

// AssignmentURL returns the resource URL for an assignment ID, suitable
// for QASessionData.UnitTestCollection. The ID is visible when
// performing the assignment in the web UI, e.g.
// .../qa/utc/perform/123/ means assignment 123.
func (c *Client) AssignmentURL(id int) string {
	return c.api.EndpointURL(fmt.Sprintf("qa/unittestcollections/%d/", id))
}

// GetAssignment fetches an assignment by ID.
func (c *Client) GetAssignment(ctx context.Context, id int) (*Assignment, error) {
	return getAs[Assignment](c, ctx, fmt.Sprintf("qa/unittestcollections/%d/", id), nil)
}

// Test is one test belonging to a test list.
type Test struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Type string `json:"type"`
}

// TestList is a test list including its member tests, served by the
// testlists-details endpoint.
type TestList struct {
	URL   string `json:"url"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Tests []Test `json:"tests"`
}

// GetTestListDetails fetches a test list with its member tests.
func (c *Client) GetTestListDetails(ctx context.Context, id int) (*TestList, error) {
	return getAs[TestList](c, ctx, fmt.Sprintf("qa/testlists-details/%d/", id), nil)
}
