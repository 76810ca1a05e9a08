package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
)

// ### Start - fixed configs (no change)
// These values define deterministic upload generation and must match expected results.
const (
	entriesPerUpload = 2400
	dayBucketCount   = 28
)

var formats = []string{"weblog", "jsonl", "clf"}

var contentTypes = map[string]string{
	"weblog": "text/plain",
	"jsonl":  "application/x-ndjson",
	"clf":    "text/x-clf",
}

// ### End - fixed configs

type upload struct {
	index       int
	format      string
	body        []byte
	wantHourly  [24]int64
	wantDaily   [dayBucketCount]int64
	wantMonthly [12]int64
}

type report struct {
	ReportID      string  `json:"reportId"`
	SourceFormat  string  `json:"sourceFormat"`
	TotalEntries  int64   `json:"totalEntries"`
	HourlyCounts  []int64 `json:"hourlyCounts"`
	DailyCounts   []int64 `json:"dailyCounts"`
	MonthlyCounts []int64 `json:"monthlyCounts"`
}

// main runs the e2e scenario: 001_parallel_report_uploads
//
// It uploads deterministic log files in every supported line format to POST /reports in
// parallel, then reads each report back through GET /reports/{reportID}.
//
// What it tests:
//   - Content-type based format selection
//   - Independent aggregation passes for concurrent uploads
//   - Hourly, daily and monthly totals against counts computed locally
//   - Report persistence in the file storage
//   - Out-of-range uploads are rejected with 400 and ANL_1001
//
// The server must run with analysis.day_bucket_count=28.
func main() {
	baseURL := getEnv("BASE_URL", "http://localhost:8080")
	uploadCount := getEnvInt("UPLOAD_COUNT", 30)
	parallel := getEnvInt("PARALLEL", 4)
	verbose := getEnvBool("VERBOSE", false)

	fmt.Println("Starting e2e scenario: 001_parallel_report_uploads")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("UPLOAD_COUNT: %d\n", uploadCount)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("ENTRIES_PER_UPLOAD: %d\n", entriesPerUpload)
	fmt.Println()

	uploads := make([]upload, 0, uploadCount)
	for i := 0; i < uploadCount; i++ {
		uploads = append(uploads, generateUpload(i, formats[i%len(formats)]))
	}

	client := &http.Client{Timeout: 30 * time.Second}
	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []error
	var verified int64

	for _, u := range uploads {
		wg.Add(1)
		workerChan <- struct{}{} // Acquire worker slot

		go func(u upload) {
			defer wg.Done()
			defer func() { <-workerChan }() // Release worker slot

			if err := uploadAndVerify(client, baseURL, u); err != nil {
				mu.Lock()
				failures = append(failures, fmt.Errorf("upload %d (%s): %w", u.index, u.format, err))
				mu.Unlock()
				fmt.Fprintf(os.Stderr, "ERROR: upload %d (%s): %v\n", u.index, u.format, err)
				return
			}
			atomic.AddInt64(&verified, 1)
			if verbose {
				fmt.Printf("Upload %d (%s) verified\n", u.index, u.format)
			}
		}(u)
	}
	wg.Wait()

	if err := verifyOutOfRangeRejected(client, baseURL); err != nil {
		failures = append(failures, err)
		fmt.Fprintf(os.Stderr, "ERROR: out of range upload: %v\n", err)
	}

	fmt.Println()
	if len(failures) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d checks failed\n", len(failures))
		os.Exit(1)
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("Reports verified: %d\n", atomic.LoadInt64(&verified))
	fmt.Printf("Total entries sent: %d\n", int64(uploadCount)*entriesPerUpload)
	fmt.Println("Scenario completed successfully")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// generateUpload spreads entries over hours, days and months with a per-upload skew so
// uploads differ from each other.
func generateUpload(index int, format string) upload {
	u := upload{index: index, format: format}
	var buf bytes.Buffer
	for n := 0; n < entriesPerUpload; n++ {
		hour := (n*7 + index) % 24
		day := (n*5+index)%dayBucketCount + 1
		month := (n+index*3)%12 + 1
		minute := n % 60

		u.wantHourly[hour]++
		u.wantDaily[day-1]++
		u.wantMonthly[month-1]++

		switch format {
		case "jsonl":
			fmt.Fprintf(&buf, `{"year":2024,"month":%d,"day":%d,"hour":%d,"minute":%d}`+"\n", month, day, hour, minute)
		case "clf":
			t := time.Date(2024, time.Month(month), day, hour, minute, 0, 0, time.UTC)
			fmt.Fprintf(&buf, "10.0.0.%d - - [%s] \"GET /page/%d HTTP/1.1\" 200 512\n", n%250, t.Format("02/Jan/2006:15:04:05 -0700"), n%10)
		default:
			fmt.Fprintf(&buf, "2024 %02d %02d %02d %02d\n", month, day, hour, minute)
		}
	}
	u.body = buf.Bytes()
	return u
}

func uploadAndVerify(client *http.Client, baseURL string, u upload) error {
	status, body, err := doRequest(client, http.MethodPost, baseURL+"/reports", contentTypes[u.format], u.body)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("create: HTTP %d: %s", status, body)
	}

	var created report
	if err := sonic.Unmarshal(body, &created); err != nil {
		return fmt.Errorf("create: decode: %w", err)
	}

	status, body, err = doRequest(client, http.MethodGet, baseURL+"/reports/"+created.ReportID, "", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("get: HTTP %d: %s", status, body)
	}

	var loaded report
	if err := sonic.Unmarshal(body, &loaded); err != nil {
		return fmt.Errorf("get: decode: %w", err)
	}
	return verifyReport(u, &loaded)
}

func verifyReport(u upload, r *report) error {
	if r.SourceFormat != u.format {
		return fmt.Errorf("sourceFormat = %q, want %q", r.SourceFormat, u.format)
	}
	if r.TotalEntries != entriesPerUpload {
		return fmt.Errorf("totalEntries = %d, want %d", r.TotalEntries, entriesPerUpload)
	}
	if err := compareCounts("hourlyCounts", r.HourlyCounts, u.wantHourly[:]); err != nil {
		return err
	}
	if err := compareCounts("dailyCounts", r.DailyCounts, u.wantDaily[:]); err != nil {
		return err
	}
	return compareCounts("monthlyCounts", r.MonthlyCounts, u.wantMonthly[:])
}

func compareCounts(name string, got, want []int64) error {
	if len(got) != len(want) {
		return fmt.Errorf("%s has %d slots, want %d", name, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("%s[%d] = %d, want %d", name, i, got[i], want[i])
		}
	}
	return nil
}

func verifyOutOfRangeRejected(client *http.Client, baseURL string) error {
	status, body, err := doRequest(client, http.MethodPost, baseURL+"/reports", "text/plain", []byte("2024 01 01 09 00\n2024 01 01 24 00\n"))
	if err != nil {
		return err
	}
	if status != http.StatusBadRequest || !strings.Contains(string(body), "ANL_1001") {
		return fmt.Errorf("expected 400 with ANL_1001, got HTTP %d: %s", status, body)
	}
	return nil
}

func doRequest(client *http.Client, method, url, contentType string, payload []byte) (int, []byte, error) {
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
