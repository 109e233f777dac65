package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/comments/internal/utils"
)

// maxBody bounds how much of the response is read and echoed in errors.
const maxBody = 64 << 10

type healthResponse struct {
	OK bool `json:"ok"`
}

// check GETs url and requires a 2xx status with a JSON body whose ok field is true.
func check(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("non-2xx status: %d\nBody: %s", resp.StatusCode, body)
	}

	var hr healthResponse
	if err := json.Unmarshal(body, &hr); err != nil {
		return fmt.Errorf("invalid JSON: %w\nBody: %s", err, body)
	}
	if !hr.OK {
		return fmt.Errorf("ok=false\nBody: %s", body)
	}
	return nil
}
