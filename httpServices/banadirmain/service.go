package httpServices

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotArray is returned when the /appointments endpoint responds with
// something other than a JSON array.
var ErrNotArray = errors.New("appointments response is not an array")

// ShapeError reports a remote payload missing or carrying invalid values
// for fields this application depends on.
type ShapeError struct {
	Endpoint string
	Fields   []string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("main system %s response missing or invalid fields: %s", e.Endpoint, strings.Join(e.Fields, ", "))
}

// MainClient talks to the Banadir Main system API. The base URL comes from
// the integration config on every call, so a config change takes effect
// without restarting.
type MainClient struct {
	httpClient *http.Client
}

func NewClient() *MainClient {
	return &MainClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// PostLead pushes a contact submission to the main system and returns the
// remote id it assigns.
func (c *MainClient) PostLead(baseURL, apiKey string, lead LeadPayload) (*LeadResponse, error) {
	body, err := json.Marshal(lead)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest("POST", baseURL+"/leads", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("main system leads API returned non-OK status: " + resp.Status)
	}

	var apiResp LeadResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}
	if apiResp.ID == "" {
		return nil, &ShapeError{Endpoint: "/leads", Fields: []string{"id"}}
	}

	return &apiResp, nil
}

// FetchAppointments retrieves the full appointment list from the main
// system. A syntactically valid JSON response that is not an array yields
// ErrNotArray; per-element shape problems are left to the caller via
// RemoteAppointment.Validate.
func (c *MainClient) FetchAppointments(baseURL, apiKey string) ([]RemoteAppointment, error) {
	httpReq, err := http.NewRequest("GET", baseURL+"/appointments", nil)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("main system appointments API returned non-OK status: " + resp.Status)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := json.Unmarshal(bodyBytes, &raw); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var appointments []RemoteAppointment
	if err := json.Unmarshal(trimmed, &appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

// Authenticate exchanges credentials for a main-system token.
func (c *MainClient) Authenticate(baseURL string, req AuthRequest) (*AuthResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest("POST", baseURL+"/auth", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("main system auth API returned non-OK status: " + resp.Status)
	}

	var apiResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}
	if apiResp.Token == "" {
		return nil, &ShapeError{Endpoint: "/auth", Fields: []string{"token"}}
	}

	return &apiResp, nil
}
