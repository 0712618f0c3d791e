package validate_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rgt24/orderboard/pkg/validate"
)

func TestValidateJSONLStream_MixedLines(t *testing.T) {
	input := strings.Join([]string{
		`{"id":1,"foodName":"pizza","quantity":1,"status":"pending"}`,
		``,
		`{broken`,
		`{"id":2,"foodName":"pasta","quantity":2,"status":"done"}`,
		`{"id":0,"foodName":"soup","quantity":1,"status":"pending"}`,
	}, "\n")

	var out bytes.Buffer
	res, err := validate.ValidateJSONLStream(context.Background(), validate.NewOrderValidator(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.ValidLinesCount != 2 || res.InvalidLinesCount != 2 {
		t.Fatalf("want 2 valid / 2 invalid, got %+v", res)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], `"id":1`) || !strings.Contains(lines[1], `"id":2`) {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestValidateJSONLStream_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	res, err := validate.ValidateJSONLStream(context.Background(), validate.NewOrderValidator(), strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 0 || res.InvalidLinesCount != 0 {
		t.Fatalf("want empty result, got %+v", res)
	}
}
