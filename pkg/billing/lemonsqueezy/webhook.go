package lemonsqueezy

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// Event names we fulfil. Everything else is acknowledged and ignored.
const (
	EventOrderCreated               = "order_created"
	EventSubscriptionPaymentSuccess = "subscription_payment_success"
)

// SignatureHeader is the header Lemon Squeezy signs the raw body into.
const SignatureHeader = "X-Signature"

// VerifySignature checks the HMAC-SHA256 hex signature over the raw
// request body. Constant-time comparison; a flipped byte anywhere fails.
func VerifySignature(body []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the signature for a body. Used by tests and local tooling.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Event is the subset of the webhook payload the fulfilment path reads.
type Event struct {
	Meta struct {
		EventName  string `json:"event_name"`
		CustomData struct {
			UserID string `json:"user_id"`
		} `json:"custom_data"`
	} `json:"meta"`
	Data struct {
		ID         string `json:"id"`
		Type       string `json:"type"`
		Attributes struct {
			UserEmail      string `json:"user_email"`
			Status         string `json:"status"`
			FirstOrderItem struct {
				VariantID   int    `json:"variant_id"`
				VariantName string `json:"variant_name"`
			} `json:"first_order_item"`
			// subscription_payment_success carries the variant at the top level.
			VariantID int `json:"variant_id"`
		} `json:"attributes"`
	} `json:"data"`
}

func ParseEvent(body []byte) (*Event, error) {
	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}
	if evt.Meta.EventName == "" {
		return nil, fmt.Errorf("webhook payload missing meta.event_name")
	}
	return &evt, nil
}

// EventName returns meta.event_name.
func (e *Event) EventName() string {
	return e.Meta.EventName
}

// VariantID resolves the purchased variant regardless of event shape.
func (e *Event) VariantID() int {
	if e.Data.Attributes.FirstOrderItem.VariantID != 0 {
		return e.Data.Attributes.FirstOrderItem.VariantID
	}
	return e.Data.Attributes.VariantID
}

// DedupeKey identifies one delivery for the idempotency ledger.
func (e *Event) DedupeKey() string {
	return fmt.Sprintf("%s:%s:%s", e.Meta.EventName, e.Data.Type, e.Data.ID)
}

// Plan is one purchasable credit pack, keyed by store variant id.
type Plan struct {
	VariantID int
	Name      string
	Credits   int
}

// Variant table for the store's live products. Kept hard-coded next to
// the fulfilment code; a variant missing here is acknowledged with a
// warning and grants nothing.
var plans = map[int]Plan{
	601001: {VariantID: 601001, Name: "Starter Pack", Credits: 100},
	601002: {VariantID: 601002, Name: "Creator Pack", Credits: 500},
	601003: {VariantID: 601003, Name: "Studio Pack", Credits: 1200},
	601010: {VariantID: 601010, Name: "Creator Monthly", Credits: 500},
	601011: {VariantID: 601011, Name: "Studio Monthly", Credits: 1500},
}

// PlanForVariant looks up the credit plan for a store variant id.
func PlanForVariant(variantID int) (Plan, bool) {
	p, ok := plans[variantID]
	return p, ok
}

// Plans returns every known plan sorted by variant id.
func Plans() []Plan {
	out := make([]Plan, 0, len(plans))
	for _, p := range plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VariantID < out[j].VariantID })
	return out
}
