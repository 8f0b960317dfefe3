package testutil

import (
	"context"
	"fmt"
	"strings"
)

// Response represents a pre-configured command response for FakeCommander.
type Response struct {
	Output []byte
	Err    error
}

// FakeCommander returns pre-configured responses for testing.
// Responses are keyed by "name arg1 arg2 ..." format.
// If no exact match is found, it tries prefix matching.
type FakeCommander struct {
	// Responses maps command strings to their responses.
	// Key format: "command arg1 arg2" (e.g., "bash -c exit 0", "fish -c")
	Responses map[string]Response

	// Calls records all commands that were executed, in order.
	Calls []string

	// Paths maps executable names to the path LookPath reports.
	// Names missing from Paths are reported as not found.
	Paths map[string]string

	// DefaultResponse is returned when no matching response is found.
	// If nil, an error is returned for unmatched commands.
	DefaultResponse *Response
}

// NewFakeCommander creates a FakeCommander with an empty response map.
func NewFakeCommander() *FakeCommander {
	return &FakeCommander{
		Responses: make(map[string]Response),
		Paths:     make(map[string]string),
	}
}

// Register adds a response for the given command key.
func (c *FakeCommander) Register(key string, output string, err error) {
	c.Responses[key] = Response{
		Output: []byte(output),
		Err:    err,
	}
}

// Run records the command line and returns the matching response.
// An exact key wins over prefix keys; among prefix keys the longest wins.
func (c *FakeCommander) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := commandLine(name, args)
	c.Calls = append(c.Calls, line)

	if resp, ok := c.match(line); ok {
		return resp.Output, resp.Err
	}
	if c.DefaultResponse != nil {
		return c.DefaultResponse.Output, c.DefaultResponse.Err
	}
	return nil, fmt.Errorf("FakeCommander: no response registered for %q", line)
}

func (c *FakeCommander) match(line string) (Response, bool) {
	if resp, ok := c.Responses[line]; ok {
		return resp, true
	}
	best, found := "", false
	for key := range c.Responses {
		if strings.HasPrefix(line, key) && (!found || len(key) > len(best)) {
			best, found = key, true
		}
	}
	return c.Responses[best], found
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// LookPath reports the registered path for name.
func (c *FakeCommander) LookPath(name string) (string, error) {
	if p, ok := c.Paths[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("FakeCommander: executable %q not found", name)
}

// Install registers name as found at path for LookPath.
func (c *FakeCommander) Install(name, path string) {
	c.Paths[name] = path
}

// Called reports whether any recorded command starts with prefix.
func (c *FakeCommander) Called(prefix string) bool {
	return c.CallCount(prefix) > 0
}

// CallCount returns how many recorded commands start with prefix.
func (c *FakeCommander) CallCount(prefix string) int {
	n := 0
	for _, call := range c.Calls {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}
