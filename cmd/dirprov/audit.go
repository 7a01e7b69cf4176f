package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/onboardly/dirprov/internal/api/http/dto"
	"github.com/onboardly/dirprov/internal/auth"
)

func runAudit(args []string) error {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	server := fs.String("server", "http://localhost:8080", "Server URL")
	apiKey := fs.String("api-key", os.Getenv("DIRPROV_API_KEY"), "Operator API key")
	limit := fs.Int("limit", 20, "Number of records to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/v1/audit?limit=%d", *server, *limit)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if *apiKey != "" {
		req.Header.Set("X-API-Key", *apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, raw)
	}

	var list dto.AuditListResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	for _, r := range list.Records {
		status := "FAILED"
		if r.Success {
			status = "ok"
		}
		fmt.Printf("%s  %-6s  %-30s  account=%s  warnings=%d\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), status, r.PrincipalName, r.AccountID, len(r.Warnings))
	}
	fmt.Printf("%d records\n", list.Count)
	return nil
}

func runHashKey(args []string) error {
	fs := flag.NewFlagSet("hash-key", flag.ExitOnError)
	key := fs.String("key", "", "API key to hash (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *key == "" {
		return fmt.Errorf("--key is required")
	}

	hash, err := auth.HashAPIKey(*key)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
