package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/onboardly/dirprov/internal/api/http/dto"
)

func splitGroups(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func runOnboard(args []string) error {
	fs := flag.NewFlagSet("onboard", flag.ExitOnError)
	server := fs.String("server", "http://localhost:8080", "Server URL")
	apiKey := fs.String("api-key", os.Getenv("DIRPROV_API_KEY"), "Operator API key")
	displayName := fs.String("display-name", "", "Display name (required)")
	upn := fs.String("upn", "", "User principal name (required)")
	mailNickname := fs.String("mail-nickname", "", "Mail alias (required)")
	department := fs.String("department", "", "Department")
	jobTitle := fs.String("job-title", "", "Job title")
	groups := fs.String("groups", "", "Comma-separated group IDs")
	license := fs.String("license", "", "License SKU ID")
	notifyFlag := fs.Bool("notify", false, "Send a welcome notification")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *displayName == "" {
		return fmt.Errorf("--display-name is required")
	}
	if *upn == "" {
		return fmt.Errorf("--upn is required")
	}
	if *mailNickname == "" {
		return fmt.Errorf("--mail-nickname is required")
	}

	reqBody, err := json.Marshal(dto.OnboardRequest{
		DisplayName:   *displayName,
		PrincipalName: *upn,
		MailNickname:  *mailNickname,
		Department:    *department,
		JobTitle:      *jobTitle,
		Groups:        splitGroups(*groups),
		LicenseSKU:    *license,
		Notify:        *notifyFlag,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	body, _, err := postJSON(*server+"/api/v1/onboard", *apiKey, reqBody)
	if err != nil {
		return err
	}

	var resp dto.OnboardResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	printResult(resp)

	if !resp.Success {
		os.Exit(1)
	}
	return nil
}

func printResult(resp dto.OnboardResponse) {
	if resp.Success {
		fmt.Println("Provisioning succeeded")
		fmt.Println("  Account ID:        ", resp.AccountID)
		fmt.Println("  Principal name:    ", resp.PrincipalName)
		fmt.Println("  Temporary password:", resp.Credential)
	} else {
		fmt.Println("Provisioning failed")
		fmt.Println("  Principal name:", resp.PrincipalName)
		fmt.Println("  Error:         ", resp.Error)
	}
	for _, w := range resp.Warnings {
		fmt.Printf("  Warning [%s] %s: %s\n", w.Step, w.Target, w.Message)
	}
	if resp.AuditID != "" {
		fmt.Println("  Audit record:", resp.AuditID)
	}
}

func postJSON(url, apiKey string, body []byte) ([]byte, int, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusServiceUnavailable {
		return nil, resp.StatusCode, fmt.Errorf("server rejected the request (status %d): %s", resp.StatusCode, raw)
	}
	return raw, resp.StatusCode, nil
}
