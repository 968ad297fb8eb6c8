package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"staffhub.dev/internal/auth"
	"staffhub.dev/internal/gql"
	"staffhub.dev/internal/store/memory"
)

type apiClient struct {
	baseURL string
	client  *http.Client
	t       *testing.T
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()

	tokens, err := auth.NewTokens("test-secret")
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	st := memory.New()
	schema := gql.NewSchema(gql.NewResolver(st, tokens))
	api := New(st, tokens, schema, "test")

	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	return &apiClient{
		baseURL: srv.URL,
		client:  srv.Client(),
		t:       t,
	}
}

// graphql posts a query document and optional variables to /graphql,
// with a bearer token when one is given.
func (c *apiClient) graphql(query string, vars map[string]any, token string) gqlResponse {
	c.t.Helper()

	payload, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": vars,
	})
	if err != nil {
		c.t.Fatalf("marshal request: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(payload))
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var out gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.t.Fatalf("decode response: %v", err)
	}
	return out
}

func (c *apiClient) mustData(resp gqlResponse, out any) {
	c.t.Helper()
	if len(resp.Errors) > 0 {
		c.t.Fatalf("unexpected errors: %+v", resp.Errors)
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		c.t.Fatalf("decode data: %v", err)
	}
}

func (c *apiClient) signup(username, email, password string) (token, userID string) {
	c.t.Helper()
	resp := c.graphql(`
		mutation ($input: SignupInput!) {
			signup(input: $input) { token user { id } }
		}`,
		map[string]any{"input": map[string]any{
			"username": username,
			"email":    email,
			"password": password,
		}}, "")
	var out struct {
		Signup struct {
			Token string
			User  struct{ ID string }
		}
	}
	c.mustData(resp, &out)
	return out.Signup.Token, out.Signup.User.ID
}

// TestEndToEndScenario walks the full documented flow: signup, login,
// create an employee with one token, read with the other, reject the
// unauthenticated read, delete, and observe the record gone.
func TestEndToEndScenario(t *testing.T) {
	c := newTestAPI(t)

	t1, userID := c.signup("alice", "alice@x.com", "secret1")
	if t1 == "" || userID == "" {
		t.Fatalf("signup returned empty payload")
	}

	var login struct {
		Login struct {
			Token string
			User  struct{ ID string }
		}
	}
	c.mustData(c.graphql(`
		query {
			login(usernameOrEmail: "alice", password: "secret1") { token user { id } }
		}`, nil, ""), &login)
	t2 := login.Login.Token
	if t2 == "" {
		t.Fatalf("login returned no token")
	}
	if login.Login.User.ID != userID {
		t.Fatalf("login and signup resolved different identities")
	}

	var added struct {
		AddEmployee struct {
			Eid   string
			Email string
		}
	}
	c.mustData(c.graphql(`
		mutation ($input: AddEmployeeInput!) {
			addEmployee(input: $input) { eid email }
		}`,
		map[string]any{"input": map[string]any{
			"first_name":  "Grace",
			"last_name":   "Hopper",
			"email":       "grace@x.com",
			"gender":      "Female",
			"designation": "Engineer",
			"salary":      5000,
			"department":  "R&D",
		}}, t1), &added)
	if added.AddEmployee.Eid == "" || added.AddEmployee.Email != "grace@x.com" {
		t.Fatalf("unexpected addEmployee payload: %+v", added.AddEmployee)
	}
	eid := added.AddEmployee.Eid

	getByID := `query ($eid: ID!) { getEmployeeById(eid: $eid) { eid email } }`
	vars := map[string]any{"eid": eid}

	// No header: rejected before touching the store.
	resp := c.graphql(getByID, vars, "")
	if len(resp.Errors) == 0 || resp.Errors[0].Message != "Unauthorized! Please provide a valid token." {
		t.Fatalf("expected unauthorized error, got %+v", resp.Errors)
	}

	// The login token resolves to the same identity the signup token did.
	var fetched struct {
		GetEmployeeById struct{ Eid string } `json:"getEmployeeById"`
	}
	c.mustData(c.graphql(getByID, vars, t2), &fetched)
	if fetched.GetEmployeeById.Eid != eid {
		t.Fatalf("fetched wrong employee: %+v", fetched)
	}

	var deleted struct {
		DeleteEmployee struct {
			Success bool
			Message string
		}
	}
	c.mustData(c.graphql(`
		mutation ($eid: ID!) { deleteEmployee(eid: $eid) { success message } }`, vars, t1), &deleted)
	if !deleted.DeleteEmployee.Success {
		t.Fatalf("delete did not succeed: %+v", deleted.DeleteEmployee)
	}

	resp = c.graphql(getByID, vars, t1)
	if len(resp.Errors) == 0 || resp.Errors[0].Message != "Employee not found" {
		t.Fatalf("expected not-found after delete, got %+v", resp.Errors)
	}
	if code, _ := resp.Errors[0].Extensions["code"].(string); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND code, got %q", code)
	}
}

func TestSignupValidationOverHTTP(t *testing.T) {
	c := newTestAPI(t)

	resp := c.graphql(`
		mutation ($input: SignupInput!) {
			signup(input: $input) { token }
		}`,
		map[string]any{"input": map[string]any{
			"username": "",
			"email":    "invalidemail",
			"password": "123",
		}}, "")
	if len(resp.Errors) == 0 {
		t.Fatalf("expected validation errors")
	}
}

func TestOperationalEndpoints(t *testing.T) {
	c := newTestAPI(t)

	for _, path := range []string{"/healthz", "/readyz", "/v1/info", "/metrics"} {
		resp, err := c.client.Get(c.baseURL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: status %d", path, resp.StatusCode)
		}
	}

	resp, err := c.client.Get(c.baseURL + "/no-such-path")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCORSPreflight(t *testing.T) {
	c := newTestAPI(t)

	req, _ := http.NewRequest(http.MethodOptions, c.baseURL+"/graphql", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := c.client.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Headers") == "" {
		t.Fatalf("missing CORS headers")
	}
}
