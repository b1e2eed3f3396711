package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRequestDataRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithRequestData(context.Background(), &RequestData{UserID: id})
	if got := UserID(ctx); got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
	if UserID(context.Background()) != uuid.Nil {
		t.Fatalf("expected nil user id for anonymous context")
	}
}

func TestTraceDataMissing(t *testing.T) {
	if GetTraceData(context.Background()) != nil {
		t.Fatalf("expected nil trace data")
	}
	ctx := WithTraceData(nil, &TraceData{TraceID: "t", RequestID: "r"})
	if td := GetTraceData(ctx); td == nil || td.TraceID != "t" {
		t.Fatalf("unexpected trace data: %+v", td)
	}
}
