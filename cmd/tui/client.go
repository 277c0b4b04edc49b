package main

import (
	"LatticeDb/internal/interpreter/eval"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// sqlRequest mirrors the request body expected by the HTTP /exec endpoint.
type sqlRequest struct {
	SQL string `json:"sql"`
}

// sqlResponse mirrors the server's /exec response.
type sqlResponse struct {
	Success   bool         `json:"success"`
	RequestID string       `json:"request_id"`
	Result    *eval.Result `json:"result"`
	Error     string       `json:"error"`
}

// execMsg carries the outcome of one statement back to Update.
type execMsg struct {
	result *eval.Result
	err    error
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// execSQLCmd wraps executeSQL in a Bubble Tea command so it can run
// asynchronously and send the result back to the Update loop.
func execSQLCmd(addr, sql string) tea.Cmd {
	return func() tea.Msg {
		result, err := executeSQL(addr, sql)
		return execMsg{result: result, err: err}
	}
}

func executeSQL(addr, sql string) (*eval.Result, error) {
	reqBody, err := json.Marshal(sqlRequest{SQL: sql})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := strings.TrimRight(addr, "/") + "/exec"
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var sr sqlResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("server error (%d): %s", resp.StatusCode, msg)
	}
	if !sr.Success {
		return nil, fmt.Errorf("%s", sr.Error)
	}
	if sr.Result == nil {
		return nil, fmt.Errorf("server returned no result")
	}
	return sr.Result, nil
}
