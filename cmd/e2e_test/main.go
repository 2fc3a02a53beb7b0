package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

var baseURL = "http://localhost:8080"

const tradesCSV = `symbol,shares,price,date
AAPL,10,150.00,2024-01-15
MSFT,5,300.00,2024-01-20
aapl,5,160.00,2024-02-01
TSLA,8,240.00,2024-02-10
TSLA,-8,250.00,2024-03-01
ACME,20,75.00,2024-03-05
`

func main() {
	if v := os.Getenv("E2E_BASE_URL"); v != "" {
		baseURL = v
	}
	// Wait for server to start
	time.Sleep(2 * time.Second)

	userID := fmt.Sprintf("e2e-user-%d", time.Now().UnixNano())

	// 1. Health Check
	checkEndpoint("GET", "/health", nil, "", 200)

	// 2. Nothing cached yet
	checkEndpoint("GET", "/portfolio/"+userID, nil, "", 404)

	// 3. Invalid upload is rejected with per-row diagnostics
	checkEndpoint("POST", "/portfolio/"+userID+"/upload", []byte("symbol,shares,price,date\n,1,2,2024-01-01\n"), "text/csv", 422)

	// 4. Upload trades
	uploadTrades(userID)

	// 5. Read back
	checkEndpoint("GET", "/portfolio/"+userID, nil, "", 200)
	checkEndpoint("GET", "/portfolio/"+userID+"/summary", nil, "", 200)
	checkEndpoint("GET", "/portfolio/"+userID+"/holdings?sort=symbol&dir=asc", nil, "", 200)
	checkEndpoint("GET", "/portfolio/"+userID+"/chart/history.png", nil, "", 200)
	checkEndpoint("GET", "/portfolio/"+userID+"/chart/allocation.png", nil, "", 200)

	// 6. Reset
	checkEndpoint("DELETE", "/portfolio/"+userID, nil, "", 200)

	// 7. Verify cache is cleared
	checkEndpoint("GET", "/portfolio/"+userID, nil, "", 404)

	fmt.Println("ALL TESTS PASSED")
}

func checkEndpoint(method, path string, body []byte, contentType string, expectedStatus int) []byte {
	fmt.Printf("Testing %s %s...\n", method, path)
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, _ := http.NewRequest(method, baseURL+path, bodyReader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		log.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, resp.StatusCode, string(respBody))
	}
	if resp.Header.Get("Content-Type") == "image/png" {
		fmt.Printf("Response: %d bytes of PNG\n", len(respBody))
	} else {
		fmt.Printf("Response: %s\n", string(respBody))
	}
	return respBody
}

func uploadTrades(userID string) {
	fmt.Println("Uploading trades...")
	body := checkEndpoint("POST", "/portfolio/"+userID+"/upload", []byte(tradesCSV), "text/csv", 201)

	var res struct {
		Holdings []struct {
			Symbol     string  `json:"symbol"`
			SharesHeld float64 `json:"sharesHeld"`
		} `json:"holdings"`
		PortfolioHistory []json.RawMessage `json:"portfolioHistory"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		log.Fatalf("Decode upload response failed: %v", err)
	}
	// TSLA is fully sold, so only AAPL, MSFT and ACME remain.
	if len(res.Holdings) != 3 {
		log.Fatalf("Expected 3 holdings, got %d", len(res.Holdings))
	}
	if res.Holdings[0].Symbol != "AAPL" || res.Holdings[0].SharesHeld != 15 {
		log.Fatalf("Unexpected first holding: %+v", res.Holdings[0])
	}
	if len(res.PortfolioHistory) != 6 {
		log.Fatalf("Expected 6 history points, got %d", len(res.PortfolioHistory))
	}
	fmt.Println("Upload successful")
}
