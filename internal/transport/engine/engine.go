// Package engine is the JSON boundary of the technician selector. It turns
// raw bytes into an assignment.Request, runs the selector and renders the
// Result. Malformed input is answered with an "Invalid input" result and
// never reaches the selector.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/alanyang/hemotask/internal/domain/assignment"
	portselector "github.com/alanyang/hemotask/internal/port/selector"
)

// requestSchema mirrors assignment.Request. Every field is required and
// unknown fields are ignored.
const requestSchema = `{
  "type": "object",
  "required": ["task", "technicians"],
  "properties": {
    "task": {
      "type": "object",
      "required": ["required_skill", "priority"],
      "properties": {
        "required_skill": {"type": "string"},
        "priority": {"type": "string"}
      }
    },
    "technicians": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "skills", "active_tasks"],
        "properties": {
          "id": {"type": "string"},
          "skills": {"type": "array", "items": {"type": "string"}},
          "active_tasks": {"type": "integer", "minimum": 0, "maximum": 4294967295}
        }
      }
    }
  }
}`

var schema = mustSchema(requestSchema)

func mustSchema(s string) *gojsonschema.Schema {
	sc, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("engine: compiling request schema: %v", err))
	}
	return sc
}

// Decode parses raw into a Request. Any failure wraps
// assignment.ErrMalformedInput.
func Decode(raw []byte) (assignment.Request, error) {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return assignment.Request{}, fmt.Errorf("%w: %v", assignment.ErrMalformedInput, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return assignment.Request{}, fmt.Errorf("%w: %s", assignment.ErrMalformedInput, strings.Join(msgs, "; "))
	}

	var req assignment.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return assignment.Request{}, fmt.Errorf("%w: %v", assignment.ErrMalformedInput, err)
	}
	return req, nil
}

// Evaluate decodes raw and runs sel on it.
func Evaluate(raw []byte, sel portselector.Selector) assignment.Result {
	req, err := Decode(raw)
	if err != nil {
		return assignment.Failed(assignment.MessageInvalidInput)
	}
	return sel.Select(req)
}

// Run reads one request from in, selects with sel and writes one JSON result
// line to out. The returned error covers I/O only; selection failures are in
// the output.
func Run(ctx context.Context, in io.Reader, out io.Writer, sel portselector.Selector) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	res := Evaluate(raw, sel)
	if err := json.NewEncoder(out).Encode(res); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}
