package notify_test

import (
	"context"
	"encoding/json"
	"testing"

	"avtovybor/internal/domain"
	"avtovybor/internal/notify"
)

func TestNew_NoBrokersIsNop(t *testing.T) {
	p := notify.New(nil, "tradein-requests")
	if _, ok := p.(notify.Nop); !ok {
		t.Fatalf("want Nop, got %T", p)
	}
	if err := p.Publish(context.Background(), notify.Event{}); err != nil {
		t.Fatal(err)
	}
	if _, ok := notify.New([]string{"kafka:9092"}, "t").(*notify.Kafka); !ok {
		t.Fatal("brokers should select kafka publisher")
	}
}

func TestNewEvent_Schema(t *testing.T) {
	ev := notify.NewEvent(domain.TradeInRequest{
		ID: 7, Make: "Volvo", Model: "XC90", Year: 2020, Mileage: 100000,
		Phone: "+79991234567", UserEmail: "ivan@example.com", EstimatedPrice: 3_850_000,
	})
	if ev.ID == "" || ev.Type != notify.EventTradeInSubmitted || ev.RequestID != 7 {
		t.Fatalf("bad event: %+v", ev)
	}
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"id", "type", "requestId", "userEmail", "estimate", "occurredAt"} {
		if _, ok := m[k]; !ok {
			t.Fatalf("missing key %q in %s", k, b)
		}
	}
}
