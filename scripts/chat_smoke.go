package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3001/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting InsightSmith Chat API Smoke Test\n")

	// 1. Health check
	color.Yellow("\n1. Health Check")
	resp, body, err := sendRequest("GET", "/chat/v1/health", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var healthResp map[string]interface{}
	json.Unmarshal(body, &healthResp)
	prettyPrint(healthResp)

	// 2. Free-text chat turn (guide phrasing)
	color.Yellow("\n2. Free-Text Chat (expects guide mode)")
	resp, body, err = sendRequest("POST", "/chat/v1", map[string]interface{}{
		"message": "転職のやり方を教えてください",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var chatResp map[string]interface{}
	json.Unmarshal(body, &chatResp)
	prettyPrint(chatResp)

	sessionID, _ := chatResp["sessionId"].(string)
	if sessionID == "" {
		color.Red("No sessionId in chat response")
		os.Exit(1)
	}

	// 3. Hard-mode trigger on the same session
	color.Yellow("\n3. Hard-Mode Trigger")
	resp, body, err = sendRequest("POST", "/chat/v1", map[string]interface{}{
		"message":   "厳しく評価してください",
		"sessionId": sessionID,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	json.Unmarshal(body, &chatResp)
	prettyPrint(chatResp)

	// 4. Quick action: cycle mode
	color.Yellow("\n4. Quick Action: mode_change")
	resp, body, err = sendRequest("POST", "/chat/v1", map[string]interface{}{
		"sessionId":      sessionID,
		"selectedAction": "mode_change",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	json.Unmarshal(body, &chatResp)
	prettyPrint(chatResp)

	// 5. Session inspection
	color.Yellow("\n5. Show Session")
	resp, body, err = sendRequest("GET", "/chat/v1/session/"+sessionID, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var sessionResp map[string]interface{}
	json.Unmarshal(body, &sessionResp)
	prettyPrint(sessionResp)

	// 6. Quick action: new_topic clears history
	color.Yellow("\n6. Quick Action: new_topic")
	resp, body, err = sendRequest("POST", "/chat/v1", map[string]interface{}{
		"sessionId":      sessionID,
		"selectedAction": "new_topic",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	// 7. Delete session
	color.Yellow("\n7. Delete Session")
	resp, _, err = sendRequest("DELETE", "/chat/v1/session/"+sessionID, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	color.Cyan("\n✅ Smoke test finished")
}
