// Command smoke drives a running orggraph server through a generate, query
// and export round and exits non-zero on the first failed call.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("ORGGRAPH_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	c := &client{base: baseURL, http: &http.Client{Timeout: 2 * time.Minute}}

	fmt.Println("Starting smoke test against", baseURL)

	must(c.call("GET", "/health", nil, nil), "health")

	var gen struct {
		Entities map[string]int `json:"entities"`
	}
	must(c.call("POST", "/generate", map[string]any{"scale": 200, "seed": 42}, &gen), "generate")
	fmt.Printf("   generated %d people\n", gen.Entities["Person"])

	var people struct {
		Entities []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"entities"`
	}
	must(c.call("GET", "/entities?type=Person&limit=2", nil, &people), "list people")
	if len(people.Entities) < 2 {
		fail("list people", fmt.Errorf("expected 2 people, got %d", len(people.Entities)))
	}
	a, b := people.Entities[0], people.Entities[1]

	must(c.call("GET", "/entities/"+url.PathEscape(a.ID)+"/neighbors", nil, nil), "neighbors")
	must(c.call("GET", "/entities/"+url.PathEscape(a.ID)+"/blast-radius?depth=2", nil, nil), "blast radius")

	q := url.Values{"from": {a.ID}, "to": {b.ID}}
	var path struct {
		Length int `json:"length"`
	}
	must(c.call("GET", "/paths?"+q.Encode(), nil, &path), "shortest path")
	fmt.Printf("   %s -> %s in %d hops\n", a.Name, b.Name, path.Length)

	must(c.call("GET", "/centrality/pagerank?top=5", nil, nil), "pagerank")
	must(c.call("GET", "/communities?min_size=3", nil, nil), "communities")

	var quality struct {
		Overall float64 `json:"overall"`
	}
	must(c.call("GET", "/quality", nil, &quality), "quality")
	fmt.Printf("   quality %.3f\n", quality.Overall)

	must(c.call("GET", "/export?format=yaml", nil, nil), "export")
	fmt.Println("Smoke test passed")
}

type client struct {
	base string
	http *http.Client
}

func (c *client) call(method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d: %s", method, endpoint, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func must(err error, step string) {
	if err != nil {
		fail(step, err)
	}
	fmt.Println("PASSED:", step)
}

func fail(step string, err error) {
	fmt.Printf("FAILED: %s: %v\n", step, err)
	os.Exit(1)
}
