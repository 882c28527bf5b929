// Package tztail rewrites the timestamp embedded in a log line into another
// timezone, leaving the rest of the line byte-identical.
//
// # Basic Usage
//
// Build a Converter once at startup and reuse it for every line:
//
//	conv, err := tztail.New(tztail.WithTimezone("Asia/Kolkata"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(conv.Convert("2018-08-08 10:32:15 +0000 request served"))
//	// 2018-08-08 16:02:15 +0530 request served
//
// Without WithTimezone or WithLocation, timestamps are converted to the
// process's local zone at call time.
//
// # Detection
//
// By default the Converter tries the built-in formats of
// [timefmt.NewDefaultRegistry] in priority order and uses the first one
// that matches. A single custom format disables autodetection:
//
//	conv, err := tztail.New(tztail.WithFormat("%Y/%m/%d %H:%M:%S %:z"))
//
// Formats without an offset or zone name are read as UTC.
//
// # Failures
//
// A line without a timestamp, or whose timestamp cannot be parsed (month
// 13, weekday not matching the date, ...), is returned unchanged. Parse
// failures are reported to the logger set with WithLogger.
//
// # Format Files
//
// Ordered format lists can be kept in YAML files, see the formatfile
// subpackage ([github.com/tztail/tztail-go/pkg/tztail/formatfile]).
package tztail
