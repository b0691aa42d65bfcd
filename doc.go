// Package radmachine provides a Go client SDK for the RadMachine
// QA platform REST API.
//
// The client applies authentication, rate limiting, retry with
// exponential backoff and pagination traversal uniformly to every
// operation, so callers write a single loop or call regardless of page
// count or transient failures.
//
// Basic usage:
//
//	client, err := radmachine.New(token, "myclinic")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	units := client.ListUnits(ctx, nil)
//	for units.Next() {
//	    fmt.Println(units.Value().Name)
//	}
//	if err := units.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// Performing QA:
//
//	session, err := client.PerformQA(ctx, radmachine.QASessionData{
//	    UnitTestCollection: client.AssignmentURL(123),
//	    WorkStarted:        "2023-04-12 10:00",
//	    WorkCompleted:      "2023-04-12 10:01",
//	    Tests: map[string]radmachine.TestResult{
//	        "temperature": {Value: 22},
//	        "pressure":    {Value: 750},
//	    },
//	})
package radmachine
